package model

// LocationDesc represents a top-level location description
type LocationDesc struct {
	BaseModel
	Description string `gorm:"type:varchar(255);uniqueIndex:uk_location_desc;not null" json:"description"`
}

// TableName specifies the table name for LocationDesc
func (LocationDesc) TableName() string {
	return "location_descs"
}
