package model

// ProjectCode represents a project cost code assets are charged against
type ProjectCode struct {
	BaseModel
	Code string `gorm:"type:varchar(64);uniqueIndex:uk_project_code;not null" json:"code"`
}

// TableName specifies the table name for ProjectCode
func (ProjectCode) TableName() string {
	return "project_codes"
}
