package model

import "time"

// User roles
const (
	UserRoleAdmin = "admin"
	UserRoleStaff = "staff"
)

// User statuses
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User represents an account that can sign in and perform inspections
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Name         string     `gorm:"type:varchar(128);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Role         string     `gorm:"type:varchar(16);not null;default:'staff'" json:"role"`
	Placement    *string    `gorm:"type:varchar(128)" json:"placement"`
	Status       string     `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	DeletedAt    *time.Time `gorm:"index" json:"deletedAt"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}
