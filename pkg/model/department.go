package model

import "time"

// Department represents an organizational unit within a company.
// Departments form a tree via ParentID.
type Department struct {
	ID        string    `gorm:"column:id;primaryKey"`
	CompanyID string    `gorm:"column:company_id;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	ParentID  *string   `gorm:"column:parent_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Department) TableName() string {
	return "departments"
}
