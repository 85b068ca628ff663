package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure DepartmentsStore implements store.DepartmentsStore
var _ store.DepartmentsStore = (*DepartmentsStore)(nil)

// DepartmentsStore implements store.DepartmentsStore using GORM
type DepartmentsStore struct {
	db *gorm.DB
}

// NewDepartmentsStore creates a new DepartmentsStore
func NewDepartmentsStore(db *gorm.DB) *DepartmentsStore {
	return &DepartmentsStore{db: db}
}

// ListDepartments returns the departments of a company
func (s *DepartmentsStore) ListDepartments(companyID *string) ([]model.Department, error) {
	query := s.db.Order("name")
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	var departments []model.Department
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// FetchDepartment retrieves a department by ID
func (s *DepartmentsStore) FetchDepartment(id string) (*model.Department, error) {
	var department model.Department
	tx := s.db.Where("id = ?", id).First(&department)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrDepartmentNotFound
		}
		return nil, tx.Error
	}
	return &department, nil
}

// CreateDepartment persists a new department
func (s *DepartmentsStore) CreateDepartment(department *model.Department) error {
	return s.db.Create(department).Error
}

// DeleteDepartment removes an empty department
func (s *DepartmentsStore) DeleteDepartment(id string) error {
	var members int64
	if err := s.db.Model(&model.User{}).Where("department_id = ?", id).Count(&members).Error; err != nil {
		return err
	}

	var children int64
	if err := s.db.Model(&model.Department{}).Where("parent_id = ?", id).Count(&children).Error; err != nil {
		return err
	}

	if members > 0 || children > 0 {
		return store.ErrDepartmentInUse
	}

	tx := s.db.Where("id = ?", id).Delete(&model.Department{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrDepartmentNotFound
	}
	return nil
}
