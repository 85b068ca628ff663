package gorm

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// ListUsers returns a filtered page of users and the total count
func (s *UsersStore) ListUsers(filter store.UserFilter) ([]model.User, int, error) {
	query := s.db.Model(&model.User{})

	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var users []model.User
	if err := query.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, int(total), nil
}

// FetchUser retrieves a user by ID
func (s *UsersStore) FetchUser(id string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("id = ?", id).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FetchUserByEmail retrieves a non-deleted user by email
func (s *UsersStore) FetchUserByEmail(email string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// CreateUser persists a new user
func (s *UsersStore) CreateUser(user *model.User) error {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("LOWER(email) = ?", strings.ToLower(user.Email)).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicateEmail
	}
	return s.db.Create(user).Error
}

// UpdateUser persists changes to an existing user
func (s *UsersStore) UpdateUser(user *model.User) error {
	var count int64
	if err := s.db.Model(&model.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(user.Email), user.ID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return store.ErrDuplicateEmail
	}
	return s.db.Save(user).Error
}

// DeleteUser soft-deletes a user
func (s *UsersStore) DeleteUser(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.User{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}
