package model

import (
	"time"

	"gorm.io/datatypes"
)

// Asset represents one version of a fixed asset. Each update inserts a new
// row; the lineage is linked through ParentID (always the root row's id) and
// exactly one non-deleted row per lineage carries IsLatest=true.
type Asset struct {
	ID       string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	ParentID *string `gorm:"column:parent_id;type:varchar(36);index" json:"parentId"`
	Version  int     `gorm:"column:version;not null;default:1" json:"version"`
	IsLatest bool    `gorm:"column:is_latest;not null;default:true;index:idx_assets_latest" json:"isLatest"`

	AssetNo      string    `gorm:"column:asset_no;type:varchar(64);not null;index" json:"assetNo"`
	LineNo       string    `gorm:"column:line_no;type:varchar(64);not null" json:"lineNo"`
	AssetName    string    `gorm:"column:asset_name;type:varchar(255);not null;index" json:"assetName"`
	Remark       *string   `gorm:"column:remark;type:varchar(1024)" json:"remark"`
	Condition    string    `gorm:"column:asset_condition;type:varchar(32);not null" json:"condition"`
	PISDate      time.Time `gorm:"column:pis_date;not null" json:"pisDate"`
	TransDate    time.Time `gorm:"column:trans_date;not null" json:"transDate"`
	CategoryCode string    `gorm:"column:category_code;type:varchar(32);not null;index" json:"categoryCode"`
	AFENo        *string   `gorm:"column:afe_no;type:varchar(64)" json:"afeNo"`
	PONo         *string   `gorm:"column:po_no;type:varchar(64)" json:"poNo"`
	TaggingYear  *string   `gorm:"column:tagging_year;type:varchar(8)" json:"taggingYear"`

	AdjustedDepre float64 `gorm:"column:adjusted_depre;not null;default:0" json:"adjustedDepre"`
	AcqValueIDR   float64 `gorm:"column:acq_value_idr;not null;default:0" json:"acqValueIdr"`
	AcqValue      float64 `gorm:"column:acq_value;not null;default:0" json:"acqValue"`
	AccumDepre    float64 `gorm:"column:accum_depre;not null;default:0" json:"accumDepre"`
	YTDDepre      float64 `gorm:"column:ytd_depre;not null;default:0" json:"ytdDepre"`
	BookValue     float64 `gorm:"column:book_value;not null;default:0" json:"bookValue"`

	Photos datatypes.JSON `gorm:"column:photos" json:"photos,omitempty"`

	ProjectCodeID     *int `gorm:"column:project_code_id;index" json:"projectCodeId"`
	LocationDescID    *int `gorm:"column:location_desc_id;index" json:"locationDescId"`
	DetailsLocationID *int `gorm:"column:details_location_id;index" json:"detailsLocationId"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index" json:"deletedAt"`

	// Associations
	ProjectCode     *ProjectCode     `gorm:"foreignKey:ProjectCodeID" json:"projectCode,omitempty"`
	LocationDesc    *LocationDesc    `gorm:"foreignKey:LocationDescID" json:"locationDesc,omitempty"`
	DetailsLocation *DetailsLocation `gorm:"foreignKey:DetailsLocationID" json:"detailsLocation,omitempty"`
}

// TableName specifies the table name for Asset
func (Asset) TableName() string {
	return "assets"
}

// RootID returns the lineage root id: ParentID when set, else the row's own id.
func (a *Asset) RootID() string {
	if a.ParentID != nil && *a.ParentID != "" {
		return *a.ParentID
	}
	return a.ID
}

// Asset condition constants
const (
	AssetConditionGood   = "Good"
	AssetConditionBroken = "Broken"
	AssetConditionIdle   = "Idle"
)
