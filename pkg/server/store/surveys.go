package store

import (
	"errors"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrSurveyNotFound is returned when a survey doesn't exist
var ErrSurveyNotFound = errors.New("survey not found")

// ErrTemplateNotFound is returned when a survey template doesn't exist
var ErrTemplateNotFound = errors.New("survey template not found")

// SurveysStore abstracts survey and template library storage
type SurveysStore interface {
	// ListSurveys returns a page of a company's surveys and the total
	// count. Empty status means all statuses.
	ListSurveys(companyID, status string, limit, offset int) ([]model.Survey, int, error)

	// FetchSurvey retrieves a survey by ID.
	// Returns ErrSurveyNotFound if the survey doesn't exist.
	FetchSurvey(id string) (*model.Survey, error)

	// FetchSurveyQuestions returns a survey's questions in order
	FetchSurveyQuestions(surveyID string) ([]model.SurveyQuestion, error)

	// CreateSurvey persists a survey with its questions atomically
	CreateSurvey(survey *model.Survey, questions []model.SurveyQuestion) error

	// UpdateSurvey persists changes to an existing survey
	UpdateSurvey(survey *model.Survey) error

	// UpdateSurveyStatus transitions a survey's lifecycle status
	UpdateSurveyStatus(id, status string) error

	// DeleteSurvey soft-deletes a survey
	DeleteSurvey(id string) error

	// ListTemplates returns the templates visible to a company: its own
	// plus public ones. A nil companyID returns everything.
	ListTemplates(companyID *string) ([]model.SurveyTemplate, error)

	// FetchTemplate retrieves a template by ID.
	// Returns ErrTemplateNotFound if the template doesn't exist.
	FetchTemplate(id string) (*model.SurveyTemplate, error)

	// FetchTemplateQuestions returns a template's questions
	FetchTemplateQuestions(templateID string) ([]model.TemplateQuestion, error)

	// UpsertTemplate replaces a template (matched by name and company)
	// and its questions
	UpsertTemplate(template model.SurveyTemplate, questions []model.TemplateQuestion) error
}
