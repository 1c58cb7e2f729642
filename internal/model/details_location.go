package model

// DetailsLocation represents a detailed placement within a location
type DetailsLocation struct {
	BaseModel
	Description string `gorm:"type:varchar(255);not null" json:"description"`
}

// TableName specifies the table name for DetailsLocation
func (DetailsLocation) TableName() string {
	return "details_locations"
}
