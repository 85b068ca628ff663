package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

func TestCompanyAdminDashboard(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		dashboard := &mockDashboardStore{}
		dashboard.On("RecentSurveys", "company-1", 5).Return([]model.Survey{
			{ID: "s-1", Title: "Quarterly Climate"},
		}, nil)
		dashboard.On("ParticipationMetrics", "company-1").Return(&store.ParticipationMetrics{
			ActiveSurveys:     2,
			TotalResponses:    140,
			TotalEmployees:    80,
			ResponsesThisWeek: 12,
			ParticipationRate: 62.5,
		}, nil)
		dashboard.On("RecentActivity", "company-1", 10).Return([]store.ActivityEntry{
			{Kind: "response", ID: "r-1", Title: "Quarterly Climate", Timestamp: time.Now()},
		}, nil)

		req := newRequest(t, "GET", "/api/dashboard/company-admin", nil, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCompanyAdminDashboard(dashboard)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		data := dataField(t, rec)
		assert.Len(t, data["surveys"], 1)
		assert.Len(t, data["recent_activity"], 1)
		metrics := data["participation_metrics"].(map[string]interface{})
		assert.Equal(t, 62.5, metrics["participation_rate"])
	})

	t.Run("store failure", func(t *testing.T) {
		dashboard := &mockDashboardStore{}
		dashboard.On("RecentSurveys", "company-1", 5).
			Return([]model.Survey(nil), errors.New("connection refused"))

		req := newRequest(t, "GET", "/api/dashboard/company-admin", nil, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCompanyAdminDashboard(dashboard)(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
