package gorm

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure DashboardStore implements store.DashboardStore
var _ store.DashboardStore = (*DashboardStore)(nil)

// DashboardStore implements store.DashboardStore using GORM
type DashboardStore struct {
	db *gorm.DB
}

// NewDashboardStore creates a new DashboardStore
func NewDashboardStore(db *gorm.DB) *DashboardStore {
	return &DashboardStore{db: db}
}

// RecentSurveys returns a company's most recently created surveys
func (s *DashboardStore) RecentSurveys(companyID string, limit int) ([]model.Survey, error) {
	var surveys []model.Survey
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at desc").Limit(limit).Find(&surveys).Error; err != nil {
		return nil, err
	}
	return surveys, nil
}

// ParticipationMetrics computes the company-wide participation snapshot
func (s *DashboardStore) ParticipationMetrics(companyID string) (*store.ParticipationMetrics, error) {
	metrics := &store.ParticipationMetrics{}

	var activeSurveys int64
	if err := s.db.Model(&model.Survey{}).
		Where("company_id = ? AND status = ?", companyID, model.SurveyStatusActive).
		Count(&activeSurveys).Error; err != nil {
		return nil, err
	}
	metrics.ActiveSurveys = int(activeSurveys)

	responseQuery := s.db.Model(&model.Response{}).
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.company_id = ?", companyID)

	var totalResponses int64
	if err := responseQuery.Count(&totalResponses).Error; err != nil {
		return nil, err
	}
	metrics.TotalResponses = int(totalResponses)

	weekAgo := time.Now().AddDate(0, 0, -7)
	var thisWeek int64
	if err := s.db.Model(&model.Response{}).
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.company_id = ? AND responses.submitted_at >= ?", companyID, weekAgo).
		Count(&thisWeek).Error; err != nil {
		return nil, err
	}
	metrics.ResponsesThisWeek = int(thisWeek)

	var totalEmployees int64
	if err := s.db.Model(&model.User{}).
		Where("company_id = ?", companyID).
		Count(&totalEmployees).Error; err != nil {
		return nil, err
	}
	metrics.TotalEmployees = int(totalEmployees)

	// Participation rate over the set of active surveys: responders
	// relative to the possible responder pool.
	if metrics.ActiveSurveys > 0 && metrics.TotalEmployees > 0 {
		var responders int64
		if err := s.db.Model(&model.Response{}).
			Joins("JOIN surveys ON surveys.id = responses.survey_id").
			Where("surveys.company_id = ? AND surveys.status = ? AND responses.user_id IS NOT NULL",
				companyID, model.SurveyStatusActive).
			Distinct("responses.user_id").
			Count(&responders).Error; err != nil {
			return nil, err
		}
		metrics.ParticipationRate = float64(responders) / float64(metrics.TotalEmployees) * 100
	}

	return metrics, nil
}

// RecentActivity returns the latest surveys, microclimates and responses interleaved
func (s *DashboardStore) RecentActivity(companyID string, limit int) ([]store.ActivityEntry, error) {
	var entries []store.ActivityEntry

	var surveys []model.Survey
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at desc").Limit(limit).Find(&surveys).Error; err != nil {
		return nil, err
	}
	for _, survey := range surveys {
		entries = append(entries, store.ActivityEntry{
			Kind:      "survey",
			ID:        survey.ID,
			Title:     survey.Title,
			Timestamp: survey.CreatedAt,
		})
	}

	var microclimates []model.Microclimate
	if err := s.db.Where("company_id = ?", companyID).
		Order("created_at desc").Limit(limit).Find(&microclimates).Error; err != nil {
		return nil, err
	}
	for _, microclimate := range microclimates {
		entries = append(entries, store.ActivityEntry{
			Kind:      "microclimate",
			ID:        microclimate.ID,
			Title:     microclimate.Title,
			Timestamp: microclimate.CreatedAt,
		})
	}

	type responseRow struct {
		ID          string
		Title       string
		SubmittedAt time.Time
	}
	var responses []responseRow
	if err := s.db.Model(&model.Response{}).
		Select("responses.id, surveys.title, responses.submitted_at").
		Joins("JOIN surveys ON surveys.id = responses.survey_id").
		Where("surveys.company_id = ?", companyID).
		Order("responses.submitted_at desc").Limit(limit).
		Scan(&responses).Error; err != nil {
		return nil, err
	}
	for _, response := range responses {
		entries = append(entries, store.ActivityEntry{
			Kind:      "response",
			ID:        response.ID,
			Title:     response.Title,
			Timestamp: response.SubmittedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
