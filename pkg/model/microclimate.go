package model

import "time"

// Microclimate lifecycle states
const (
	MicroclimateStatusDraft  = "draft"
	MicroclimateStatusActive = "active"
	MicroclimateStatusClosed = "closed"
)

// Microclimate is a short-lived real-time pulse survey. Unlike a Survey
// it has a hard expiry and its results are aggregated live.
type Microclimate struct {
	ID          string     `gorm:"column:id;primaryKey"`
	CompanyID   string     `gorm:"column:company_id;not null;index"`
	CreatedBy   string     `gorm:"column:created_by;not null"`
	Title       string     `gorm:"column:title;not null"`
	Status      string     `gorm:"column:status;not null"`
	ScheduledAt *time.Time `gorm:"column:scheduled_at"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Microclimate) TableName() string {
	return "microclimates"
}

// Expired reports whether the microclimate is past its expiry
func (m Microclimate) Expired() bool {
	return m.ExpiresAt != nil && time.Now().After(*m.ExpiresAt)
}

// MicroclimateQuestion is a question within a microclimate, using the
// canonical question type vocabulary.
type MicroclimateQuestion struct {
	ID             string `gorm:"column:id;primaryKey"`
	MicroclimateID string `gorm:"column:microclimate_id;not null;index"`
	Text           string `gorm:"column:text;not null"`
	QuestionType   string `gorm:"column:question_type;not null"`
	Options        string `gorm:"column:options"`
	OrderIndex     int    `gorm:"column:order_index;not null"`
}

func (MicroclimateQuestion) TableName() string {
	return "microclimate_questions"
}

// MicroclimateAnswer is a single answer to a microclimate question
type MicroclimateAnswer struct {
	ID             string    `gorm:"column:id;primaryKey"`
	MicroclimateID string    `gorm:"column:microclimate_id;not null;index"`
	QuestionID     string    `gorm:"column:question_id;not null;index"`
	UserID         *string   `gorm:"column:user_id"`
	Value          string    `gorm:"column:value"`
	Rating         *int      `gorm:"column:rating"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (MicroclimateAnswer) TableName() string {
	return "microclimate_answers"
}
