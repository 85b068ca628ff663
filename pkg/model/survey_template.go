package model

import "time"

// SurveyTemplate is a reusable survey definition from the template
// library. Public templates (CompanyID nil) are visible to every tenant.
type SurveyTemplate struct {
	ID          string    `gorm:"column:id;primaryKey"`
	CompanyID   *string   `gorm:"column:company_id;index"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category;not null"`
	IsPublic    bool      `gorm:"column:is_public"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SurveyTemplate) TableName() string {
	return "survey_templates"
}

// TemplateQuestion is a question within a survey template. QuestionType
// uses the template vocabulary (emoji_rating, likert, ...) which is
// mapped to the canonical survey vocabulary on instantiation.
// OrderIndex is nil when the library file omitted it; instantiation
// backfills sequential indexes.
type TemplateQuestion struct {
	ID              string `gorm:"column:id;primaryKey"`
	TemplateID      string `gorm:"column:template_id;not null;index"`
	Text            string `gorm:"column:text;not null"`
	QuestionType    string `gorm:"column:question_type;not null"`
	Options         string `gorm:"column:options"`
	OrderIndex      *int   `gorm:"column:order_index"`
	Required        bool   `gorm:"column:required"`
	CommentEnabled  bool   `gorm:"column:comment_enabled"`
	CommentRequired bool   `gorm:"column:comment_required"`
	CommentMinLen   int    `gorm:"column:comment_min_len"`
	CommentMaxLen   int    `gorm:"column:comment_max_len"`
}

func (TemplateQuestion) TableName() string {
	return "template_questions"
}
