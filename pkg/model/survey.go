package model

import (
	"time"

	"gorm.io/gorm"
)

// Survey lifecycle states
const (
	SurveyStatusDraft  = "draft"
	SurveyStatusActive = "active"
	SurveyStatusClosed = "closed"
)

// Survey is a longitudinal survey owned by a company
type Survey struct {
	ID          string         `gorm:"column:id;primaryKey"`
	CompanyID   string         `gorm:"column:company_id;not null;index"`
	CreatedBy   string         `gorm:"column:created_by;not null"`
	TemplateID  *string        `gorm:"column:template_id"`
	Title       string         `gorm:"column:title;not null"`
	Description string         `gorm:"column:description"`
	Type        string         `gorm:"column:type;not null"`
	Status      string         `gorm:"column:status;not null"`
	StartsAt    *time.Time     `gorm:"column:starts_at"`
	EndsAt      *time.Time     `gorm:"column:ends_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Survey) TableName() string {
	return "surveys"
}

// SurveyQuestion is a question within a survey, using canonical question
// types (rating, scale, binary, choice, text).
type SurveyQuestion struct {
	ID              string `gorm:"column:id;primaryKey"`
	SurveyID        string `gorm:"column:survey_id;not null;index"`
	Text            string `gorm:"column:text;not null"`
	QuestionType    string `gorm:"column:question_type;not null"`
	Options         string `gorm:"column:options"`
	OrderIndex      int    `gorm:"column:order_index;not null"`
	Required        bool   `gorm:"column:required"`
	CommentEnabled  bool   `gorm:"column:comment_enabled"`
	CommentRequired bool   `gorm:"column:comment_required"`
	CommentMinLen   int    `gorm:"column:comment_min_len"`
	CommentMaxLen   int    `gorm:"column:comment_max_len"`
}

func (SurveyQuestion) TableName() string {
	return "survey_questions"
}
