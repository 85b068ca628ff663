package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure ResponsesStore implements store.ResponsesStore
var _ store.ResponsesStore = (*ResponsesStore)(nil)

// ResponsesStore implements store.ResponsesStore using GORM
type ResponsesStore struct {
	db *gorm.DB
}

// NewResponsesStore creates a new ResponsesStore
func NewResponsesStore(db *gorm.DB) *ResponsesStore {
	return &ResponsesStore{db: db}
}

// CreateResponse persists a response with its answers atomically
func (s *ResponsesStore) CreateResponse(response *model.Response, answers []model.Answer) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListResponses returns a page of a survey's responses and the total count
func (s *ResponsesStore) ListResponses(surveyID string, limit, offset int) ([]model.Response, int, error) {
	query := s.db.Model(&model.Response{}).Where("survey_id = ?", surveyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var responses []model.Response
	if err := query.Order("submitted_at desc").Find(&responses).Error; err != nil {
		return nil, 0, err
	}

	return responses, int(total), nil
}

// FetchAnswers returns the answers of one response
func (s *ResponsesStore) FetchAnswers(responseID string) ([]model.Answer, error) {
	var answers []model.Answer
	if err := s.db.Where("response_id = ?", responseID).Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// ListSurveyAnswers returns all answers across a survey's responses
func (s *ResponsesStore) ListSurveyAnswers(surveyID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := s.db.
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("responses.survey_id = ?", surveyID).
		Order("responses.submitted_at").
		Find(&answers).Error
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// HasUserResponded reports whether a user already responded to a survey
func (s *ResponsesStore) HasUserResponded(surveyID, userID string) (bool, error) {
	var count int64
	err := s.db.Model(&model.Response{}).
		Where("survey_id = ? AND user_id = ?", surveyID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FetchInvitation retrieves an invitation by token
func (s *ResponsesStore) FetchInvitation(token string) (*model.Invitation, error) {
	var invitation model.Invitation
	tx := s.db.Where("token = ?", token).First(&invitation)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrInvitationNotFound
		}
		return nil, tx.Error
	}
	return &invitation, nil
}

// ConsumeInvitation marks an invitation used and persists the response
// with its answers in one transaction. The conditional update doubles as
// the race guard: a second consumer sees zero affected rows and the
// whole transaction rolls back.
func (s *ResponsesStore) ConsumeInvitation(id string, response *model.Response, answers []model.Answer) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		consume := tx.Model(&model.Invitation{}).
			Where("id = ? AND used_at IS NULL", id).
			Update("used_at", time.Now())
		if consume.Error != nil {
			return consume.Error
		}
		if consume.RowsAffected == 0 {
			return store.ErrInvitationUsed
		}

		if err := tx.Create(response).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateInvitations persists a batch of invitations
func (s *ResponsesStore) CreateInvitations(invitations []model.Invitation) error {
	if len(invitations) == 0 {
		return nil
	}
	return s.db.Create(&invitations).Error
}
