package store

import (
	"errors"
	"time"

	"github.com/orgpulse/orgpulse/pkg/model"
)

// ErrMicroclimateNotFound is returned when a microclimate doesn't exist
var ErrMicroclimateNotFound = errors.New("microclimate not found")

// ErrMicroclimateClosed is returned when responding to a closed or
// expired microclimate
var ErrMicroclimateClosed = errors.New("microclimate is not accepting responses")

// WordCount is one entry in a word-frequency list
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// QuestionResult aggregates the answers to one microclimate question
type QuestionResult struct {
	QuestionID    string         `json:"question_id"`
	Text          string         `json:"text"`
	QuestionType  string         `json:"question_type"`
	ResponseCount int            `json:"response_count"`
	AverageRating *float64       `json:"average_rating,omitempty"`
	Counts        map[string]int `json:"counts,omitempty"`
	TopWords      []WordCount    `json:"top_words,omitempty"`
}

// MicroclimateResults is the live aggregation of a microclimate
type MicroclimateResults struct {
	MicroclimateID string           `json:"microclimate_id"`
	Status         string           `json:"status"`
	Participants   int              `json:"participants"`
	Questions      []QuestionResult `json:"questions"`
}

// MicroclimatesStore abstracts microclimate storage and aggregation
type MicroclimatesStore interface {
	// ListMicroclimates returns a page of a company's microclimates and
	// the total count. Empty status means all statuses.
	ListMicroclimates(companyID, status string, limit, offset int) ([]model.Microclimate, int, error)

	// FetchMicroclimate retrieves a microclimate by ID.
	// Returns ErrMicroclimateNotFound if it doesn't exist.
	FetchMicroclimate(id string) (*model.Microclimate, error)

	// FetchMicroclimateQuestions returns the questions in order
	FetchMicroclimateQuestions(microclimateID string) ([]model.MicroclimateQuestion, error)

	// CreateMicroclimate persists a microclimate with its questions
	CreateMicroclimate(microclimate *model.Microclimate, questions []model.MicroclimateQuestion) error

	// UpdateMicroclimateStatus transitions the lifecycle status, setting
	// the expiry when launching
	UpdateMicroclimateStatus(id, status string, expiresAt *time.Time) error

	// SaveMicroclimateAnswers persists a batch of answers atomically
	SaveMicroclimateAnswers(answers []model.MicroclimateAnswer) error

	// Results computes the live aggregation of a microclimate
	Results(microclimateID string) (*MicroclimateResults, error)
}
