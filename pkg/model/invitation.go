package model

import "time"

// Invitation is a single-use survey response token
type Invitation struct {
	ID        string     `gorm:"column:id;primaryKey"`
	SurveyID  string     `gorm:"column:survey_id;not null;index"`
	Token     string     `gorm:"column:token;not null;uniqueIndex"`
	Email     string     `gorm:"column:email"`
	UsedAt    *time.Time `gorm:"column:used_at"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Invitation) TableName() string {
	return "invitations"
}

// Used reports whether the invitation has been consumed
func (i Invitation) Used() bool {
	return i.UsedAt != nil
}

// Expired reports whether the invitation is past its expiry
func (i Invitation) Expired() bool {
	return i.ExpiresAt != nil && time.Now().After(*i.ExpiresAt)
}
