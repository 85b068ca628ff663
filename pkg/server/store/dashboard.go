package store

import (
	"time"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ParticipationMetrics summarizes response participation for a company
type ParticipationMetrics struct {
	ActiveSurveys     int     `json:"active_surveys"`
	TotalResponses    int     `json:"total_responses"`
	TotalEmployees    int     `json:"total_employees"`
	ResponsesThisWeek int     `json:"responses_this_week"`
	ParticipationRate float64 `json:"participation_rate"`
}

// ActivityEntry is one item in the recent-activity feed
type ActivityEntry struct {
	Kind      string    `json:"kind"` // "survey", "microclimate", "response"
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardStore abstracts the company-admin dashboard aggregates
type DashboardStore interface {
	// RecentSurveys returns a company's most recent surveys
	RecentSurveys(companyID string, limit int) ([]model.Survey, error)

	// ParticipationMetrics computes participation aggregates
	ParticipationMetrics(companyID string) (*ParticipationMetrics, error)

	// RecentActivity returns the latest survey, microclimate and
	// response events, newest first
	RecentActivity(companyID string, limit int) ([]ActivityEntry, error)
}
