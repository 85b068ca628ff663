package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrCompanyNotFound is returned when a company doesn't exist
var ErrCompanyNotFound = errors.New("company not found")

// CompaniesStore abstracts company storage operations
type CompaniesStore interface {
	// ListCompanies returns a page of companies and the total count
	ListCompanies(limit, offset int) ([]model.Company, int, error)

	// FetchCompany retrieves a company by ID.
	// Returns ErrCompanyNotFound if the company doesn't exist.
	FetchCompany(id string) (*model.Company, error)

	// CreateCompany persists a new company.
	CreateCompany(company *model.Company) error

	// UpdateCompany persists changes to an existing company.
	UpdateCompany(company *model.Company) error

	// DeleteCompany soft-deletes a company.
	DeleteCompany(id string) error
}
