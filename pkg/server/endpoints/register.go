package endpoints

import (
	"github.com/orgpulse/orgpulse/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterUsersEndpoints(srv)
	RegisterCompaniesEndpoints(srv)
	RegisterDepartmentsEndpoints(srv)
	RegisterDemographicsEndpoints(srv)
	// Templates must be registered before surveys so /api/surveys/templates
	// is not captured by the /api/surveys/{id} route.
	RegisterTemplatesEndpoints(srv)
	RegisterSurveysEndpoints(srv)
	RegisterResponsesEndpoints(srv)
	RegisterMicroclimatesEndpoints(srv)
	RegisterDashboardEndpoints(srv)
}
