package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure CompaniesStore implements store.CompaniesStore
var _ store.CompaniesStore = (*CompaniesStore)(nil)

// CompaniesStore implements store.CompaniesStore using GORM
type CompaniesStore struct {
	db *gorm.DB
}

// NewCompaniesStore creates a new CompaniesStore
func NewCompaniesStore(db *gorm.DB) *CompaniesStore {
	return &CompaniesStore{db: db}
}

// ListCompanies returns a page of companies and the total count
func (s *CompaniesStore) ListCompanies(limit, offset int) ([]model.Company, int, error) {
	var total int64
	if err := s.db.Model(&model.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var companies []model.Company
	if err := query.Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, int(total), nil
}

// FetchCompany retrieves a company by ID
func (s *CompaniesStore) FetchCompany(id string) (*model.Company, error) {
	var company model.Company
	tx := s.db.Where("id = ?", id).First(&company)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrCompanyNotFound
		}
		return nil, tx.Error
	}
	return &company, nil
}

// CreateCompany persists a new company
func (s *CompaniesStore) CreateCompany(company *model.Company) error {
	return s.db.Create(company).Error
}

// UpdateCompany persists changes to an existing company
func (s *CompaniesStore) UpdateCompany(company *model.Company) error {
	return s.db.Save(company).Error
}

// DeleteCompany soft-deletes a company
func (s *CompaniesStore) DeleteCompany(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.Company{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrCompanyNotFound
	}
	return nil
}
