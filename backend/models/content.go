package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ContentTypeVideo    = "video"
	ContentTypeText     = "text"
	ContentTypeExercise = "exercise"
)

// Phase is the top of the content hierarchy; each phase holds ordered weeks
// and each week holds ordered contents.
type Phase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	OrderIndex  int       `gorm:"not null;uniqueIndex" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Phase) TableName() string {
	return "phases"
}

func (p *Phase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Week struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PhaseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_weeks_phase_order" json:"phase_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `json:"description"`
	OrderIndex  int       `gorm:"not null;uniqueIndex:idx_weeks_phase_order" json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Week) TableName() string {
	return "weeks"
}

func (w *Week) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// Content is a single lesson item. Only type=exercise accepts submissions;
// for type=video the body holds the video URL.
type Content struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WeekID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_contents_week_order" json:"week_id"`
	Type       string    `gorm:"not null" json:"type"` // video, text, exercise
	Title      string    `gorm:"not null" json:"title"`
	Body       *string   `json:"body"`
	OrderIndex int       `gorm:"not null;uniqueIndex:idx_contents_week_order" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Content) TableName() string {
	return "contents"
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
