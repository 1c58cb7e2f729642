package model

import "time"

// Inspection represents a physical inspection round performed by a user
type Inspection struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	InspectorID int       `gorm:"column:inspector_id;not null;index" json:"inspectorId"`
	Date        time.Time `gorm:"column:date;not null;index" json:"date"`
	Notes       *string   `gorm:"column:notes;type:varchar(1024)" json:"notes"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Inspector *User            `gorm:"foreignKey:InspectorID" json:"inspector,omitempty"`
	Items     []InspectionItem `gorm:"foreignKey:InspectionID" json:"items,omitempty"`
}

// TableName specifies the table name for Inspection
func (Inspection) TableName() string {
	return "inspections"
}

// InspectionItem pins one asset version to an inspection. AssetVersion records
// the version that was physically checked, so later asset updates do not
// rewrite inspection history.
type InspectionItem struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	InspectionID string    `gorm:"column:inspection_id;type:varchar(36);not null;index" json:"inspectionId"`
	AssetID      string    `gorm:"column:asset_id;type:varchar(36);not null;index" json:"assetId"`
	AssetVersion int       `gorm:"column:asset_version;not null" json:"assetVersion"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// TableName specifies the table name for InspectionItem
func (InspectionItem) TableName() string {
	return "inspection_items"
}
