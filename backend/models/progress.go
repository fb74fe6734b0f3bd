package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProgress holds at most one row per (user, content) pair; writes go
// through an upsert on that composite key.
type UserProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_content" json:"user_id"`
	ContentID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_progress_user_content" json:"content_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

func (up *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if up.ID == uuid.Nil {
		up.ID = uuid.New()
	}
	return nil
}
