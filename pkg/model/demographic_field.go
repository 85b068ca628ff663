package model

import "time"

// DemographicField is a per-company custom demographic attribute asked
// alongside survey responses (e.g. tenure band, work location).
type DemographicField struct {
	ID        string    `gorm:"column:id;primaryKey"`
	CompanyID string    `gorm:"column:company_id;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	FieldType string    `gorm:"column:field_type;not null"`
	Options   string    `gorm:"column:options"`
	Required  bool      `gorm:"column:required"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (DemographicField) TableName() string {
	return "demographic_fields"
}
