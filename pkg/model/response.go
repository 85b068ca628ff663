package model

import "time"

// Response is one submission against a survey. UserID is nil for
// anonymous submissions via an invitation token. Flagged marks responses
// whose free text tripped the injection heuristics.
type Response struct {
	ID           string    `gorm:"column:id;primaryKey"`
	SurveyID     string    `gorm:"column:survey_id;not null;index"`
	CompanyID    string    `gorm:"column:company_id;not null;index"`
	UserID       *string   `gorm:"column:user_id"`
	DepartmentID *string   `gorm:"column:department_id"`
	Token        *string   `gorm:"column:token"`
	Flagged      bool      `gorm:"column:flagged"`
	SubmittedAt  time.Time `gorm:"column:submitted_at;autoCreateTime"`
}

func (Response) TableName() string {
	return "responses"
}

// Answer holds one answer within a response. Value is the raw answer
// (sanitized for free text); Rating carries the numeric value for rating
// and scale questions; Comment carries the conditional free-text comment
// on binary questions.
type Answer struct {
	ID         string `gorm:"column:id;primaryKey"`
	ResponseID string `gorm:"column:response_id;not null;index"`
	QuestionID string `gorm:"column:question_id;not null"`
	Value      string `gorm:"column:value"`
	Rating     *int   `gorm:"column:rating"`
	Comment    string `gorm:"column:comment"`
}

func (Answer) TableName() string {
	return "answers"
}
