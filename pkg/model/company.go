package model

import (
	"time"

	"gorm.io/gorm"
)

// Company represents a tenant organization
type Company struct {
	ID        string         `gorm:"column:id;primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Industry  string         `gorm:"column:industry"`
	Size      string         `gorm:"column:size"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Company) TableName() string {
	return "companies"
}
