package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

// Ensure SurveysStore implements store.SurveysStore
var _ store.SurveysStore = (*SurveysStore)(nil)

// SurveysStore implements store.SurveysStore using GORM
type SurveysStore struct {
	db *gorm.DB
}

// NewSurveysStore creates a new SurveysStore
func NewSurveysStore(db *gorm.DB) *SurveysStore {
	return &SurveysStore{db: db}
}

// ListSurveys returns a page of a company's surveys and the total count
func (s *SurveysStore) ListSurveys(companyID, status string, limit, offset int) ([]model.Survey, int, error) {
	query := s.db.Model(&model.Survey{}).Where("company_id = ?", companyID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

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

	var surveys []model.Survey
	if err := query.Order("created_at desc").Find(&surveys).Error; err != nil {
		return nil, 0, err
	}

	return surveys, int(total), nil
}

// FetchSurvey retrieves a survey by ID
func (s *SurveysStore) FetchSurvey(id string) (*model.Survey, error) {
	var survey model.Survey
	tx := s.db.Where("id = ?", id).First(&survey)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrSurveyNotFound
		}
		return nil, tx.Error
	}
	return &survey, nil
}

// FetchSurveyQuestions returns a survey's questions in order
func (s *SurveysStore) FetchSurveyQuestions(surveyID string) ([]model.SurveyQuestion, error) {
	var questions []model.SurveyQuestion
	if err := s.db.Where("survey_id = ?", surveyID).Order("order_index").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateSurvey persists a survey with its questions atomically
func (s *SurveysStore) CreateSurvey(survey *model.Survey, questions []model.SurveyQuestion) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(survey).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateSurvey persists changes to an existing survey
func (s *SurveysStore) UpdateSurvey(survey *model.Survey) error {
	return s.db.Save(survey).Error
}

// UpdateSurveyStatus transitions a survey's lifecycle status
func (s *SurveysStore) UpdateSurveyStatus(id, status string) error {
	tx := s.db.Model(&model.Survey{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrSurveyNotFound
	}
	return nil
}

// DeleteSurvey soft-deletes a survey
func (s *SurveysStore) DeleteSurvey(id string) error {
	tx := s.db.Where("id = ?", id).Delete(&model.Survey{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrSurveyNotFound
	}
	return nil
}

// ListTemplates returns the templates visible to a company
func (s *SurveysStore) ListTemplates(companyID *string) ([]model.SurveyTemplate, error) {
	query := s.db.Order("name")
	if companyID != nil {
		query = query.Where("is_public = ? OR company_id = ?", true, *companyID)
	}

	var templates []model.SurveyTemplate
	if err := query.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// FetchTemplate retrieves a template by ID
func (s *SurveysStore) FetchTemplate(id string) (*model.SurveyTemplate, error) {
	var template model.SurveyTemplate
	tx := s.db.Where("id = ?", id).First(&template)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrTemplateNotFound
		}
		return nil, tx.Error
	}
	return &template, nil
}

// FetchTemplateQuestions returns a template's questions
func (s *SurveysStore) FetchTemplateQuestions(templateID string) ([]model.TemplateQuestion, error) {
	var questions []model.TemplateQuestion
	if err := s.db.Where("template_id = ?", templateID).Order("order_index").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// UpsertTemplate replaces a template (matched by name and company) and
// its questions
func (s *SurveysStore) UpsertTemplate(template model.SurveyTemplate, questions []model.TemplateQuestion) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("name = ?", template.Name)
		if template.CompanyID != nil {
			query = query.Where("company_id = ?", *template.CompanyID)
		} else {
			query = query.Where("company_id IS NULL")
		}

		var existing model.SurveyTemplate
		err := query.First(&existing).Error
		switch {
		case err == nil:
			// Replace questions of the existing template, keep its ID
			template.ID = existing.ID
			for i := range questions {
				questions[i].TemplateID = existing.ID
			}
			if err := tx.Where("template_id = ?", existing.ID).Delete(&model.TemplateQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Save(&template).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&template).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
