package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubmissionTypeCode = "code"
	SubmissionTypeURL  = "url"
)

// Submission is created once by an approved student against an exercise
// content. Feedback is attached later by an instructor; a null feedback
// means the submission is still pending review.
type Submission struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"content_id"`
	SubmissionType string     `gorm:"not null" json:"submission_type"` // code, url
	Body           string     `gorm:"not null" json:"body"`
	Feedback       *string    `json:"feedback"`
	FeedbackAt     *time.Time `json:"feedback_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (Submission) TableName() string {
	return "submissions"
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
