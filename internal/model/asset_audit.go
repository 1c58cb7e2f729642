package model

import "time"

// AssetAudit records a spot check of one asset: its observed status, optional
// remarks and where it was found. Auditors are linked through AuditUser rows.
type AssetAudit struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AssetID    string    `gorm:"column:asset_id;type:varchar(36);not null;index" json:"assetId"`
	CheckDate  time.Time `gorm:"column:check_date;not null;index" json:"checkDate"`
	LocationID *int      `gorm:"column:location_id;index" json:"locationId"`
	Status     string    `gorm:"column:status;type:varchar(32);not null;index" json:"status"`
	Remarks    *string   `gorm:"column:remarks;type:varchar(1024)" json:"remarks"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Asset      *Asset        `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	Location   *LocationDesc `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	AuditUsers []AuditUser   `gorm:"foreignKey:AuditID" json:"auditUsers,omitempty"`
}

// TableName specifies the table name for AssetAudit
func (AssetAudit) TableName() string {
	return "asset_audits"
}

// AuditUser links an auditor to an audit record
type AuditUser struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	AuditID   string    `gorm:"column:audit_id;type:varchar(36);not null;index" json:"auditId"`
	UserID    int       `gorm:"column:user_id;not null;index" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for AuditUser
func (AuditUser) TableName() string {
	return "audit_users"
}
