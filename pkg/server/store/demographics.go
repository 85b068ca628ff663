package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrFieldNotFound is returned when a demographic field doesn't exist
var ErrFieldNotFound = errors.New("demographic field not found")

// DemographicsStore abstracts demographic field storage operations
type DemographicsStore interface {
	// ListFields returns a company's demographic fields
	ListFields(companyID string) ([]model.DemographicField, error)

	// CreateField persists a new demographic field
	CreateField(field *model.DemographicField) error

	// DeleteField removes a demographic field
	DeleteField(id string) error
}
