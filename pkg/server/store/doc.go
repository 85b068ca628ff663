// Package store provides storage abstractions for the OrgPulse server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database
// implementation. This enables easier testing with mocks and potential
// support for different storage backends.
//
// # Available Stores
//
//   - UsersStore: user listing, CRUD and lookup by email
//   - CompaniesStore: tenant company CRUD
//   - DepartmentsStore: department CRUD within a company
//   - DemographicsStore: per-company demographic field CRUD
//   - SurveysStore: surveys, questions and the template library
//   - ResponsesStore: response submission, listing and invitations
//   - MicroclimatesStore: pulse surveys and live result aggregation
//   - DashboardStore: company-admin dashboard aggregates
//   - HealthStore: connectivity checks
//
// # Usage
//
//	users := gorm.NewUsersStore(db)
//	user, err := users.FetchUserByEmail("a@example.com")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle not found
//	    }
//	}
package store
