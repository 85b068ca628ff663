package endpoints

import (
	"net/http"

	"github.com/orgpulse/orgpulse/pkg/rbac"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/orgpulse/orgpulse/pkg/server/middleware"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// RegisterDashboardEndpoints registers the dashboard endpoints
func RegisterDashboardEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/dashboard").Subrouter()
	r.Use(s.Session.Middleware)

	r.Handle("/company-admin", middleware.RequirePermission(rbac.ViewDashboard,
		handleCompanyAdminDashboard(s.Dashboard))).Methods("GET")
}

func handleCompanyAdminDashboard(dashboard store.DashboardStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		surveys, err := dashboard.RecentSurveys(identity.CompanyID, 5)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}

		metrics, err := dashboard.ParticipationMetrics(identity.CompanyID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}

		activity, err := dashboard.RecentActivity(identity.CompanyID, 10)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}

		respondWithData(w, http.StatusOK, map[string]interface{}{
			"surveys":               surveys,
			"participation_metrics": metrics,
			"recent_activity":       activity,
		})
	}
}
