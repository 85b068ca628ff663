package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrDepartmentNotFound is returned when a department doesn't exist
var ErrDepartmentNotFound = errors.New("department not found")

// ErrDepartmentInUse is returned when deleting a department that still
// has members or child departments
var ErrDepartmentInUse = errors.New("department has members or children")

// DepartmentsStore abstracts department storage operations
type DepartmentsStore interface {
	// ListDepartments returns the departments of a company. A nil
	// companyID lists departments across all companies.
	ListDepartments(companyID *string) ([]model.Department, error)

	// FetchDepartment retrieves a department by ID.
	FetchDepartment(id string) (*model.Department, error)

	// CreateDepartment persists a new department.
	CreateDepartment(department *model.Department) error

	// DeleteDepartment removes an empty department.
	// Returns ErrDepartmentInUse when users or children reference it.
	DeleteDepartment(id string) error
}
