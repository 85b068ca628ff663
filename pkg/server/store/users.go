package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrUserNotFound is returned when a user doesn't exist
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when an email is already registered
var ErrDuplicateEmail = errors.New("email is already registered")

// UserFilter narrows user listing queries. CompanyID nil means
// unscoped (super admin); zero-value strings mean no filter.
type UserFilter struct {
	CompanyID    *string
	Search       string
	Role         string
	DepartmentID string
	Limit        int
	Offset       int
}

// UsersStore abstracts user storage operations
type UsersStore interface {
	// ListUsers returns a filtered page of users and the total count
	ListUsers(filter UserFilter) ([]model.User, int, error)

	// FetchUser retrieves a user by ID.
	// Returns ErrUserNotFound if the user doesn't exist.
	FetchUser(id string) (*model.User, error)

	// FetchUserByEmail retrieves a non-deleted user by email.
	FetchUserByEmail(email string) (*model.User, error)

	// CreateUser persists a new user.
	// Returns ErrDuplicateEmail when the email is taken.
	CreateUser(user *model.User) error

	// UpdateUser persists changes to an existing user.
	UpdateUser(user *model.User) error

	// DeleteUser soft-deletes a user.
	DeleteUser(id string) error
}
