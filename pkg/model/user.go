package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated principal. Email is unique among
// non-deleted users. CompanyID is nil only for super admins.
type User struct {
	ID           string         `gorm:"column:id;primaryKey"`
	CompanyID    *string        `gorm:"column:company_id;index"`
	DepartmentID *string        `gorm:"column:department_id"`
	Email        string         `gorm:"column:email;not null"`
	Name         string         `gorm:"column:name;not null"`
	Role         string         `gorm:"column:role;not null"`
	PasswordHash []byte         `gorm:"column:password_hash"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
