package gorm

import (
	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure DemographicsStore implements store.DemographicsStore
var _ store.DemographicsStore = (*DemographicsStore)(nil)

// DemographicsStore implements store.DemographicsStore using GORM
type DemographicsStore struct {
	db *gorm.DB
}

// NewDemographicsStore creates a new DemographicsStore
func NewDemographicsStore(db *gorm.DB) *DemographicsStore {
	return &DemographicsStore{db: db}
}

// ListFields returns a company's demographic fields
func (s *DemographicsStore) ListFields(companyID string) ([]model.DemographicField, error) {
	var fields []model.DemographicField
	if err := s.db.Where("company_id = ?", companyID).Order("name").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// CreateField persists a new demographic field
func (s *DemographicsStore) CreateField(field *model.DemographicField) error {
	return s.db.Create(field).Error
}

// DeleteField removes a demographic field
func (s *DemographicsStore) DeleteField(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.DemographicField{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrFieldNotFound
	}
	return nil
}
