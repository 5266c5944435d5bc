package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	QuizID   string `json:"quiz_id" gorm:"type:uuid;not null;uniqueIndex:idx_questions_quiz_position"`
	Body     string `json:"body" gorm:"not null"`
	ImageURL string `json:"image_url,omitempty"`
	// Position is zero-based and unique within a quiz; values need not be
	// contiguous.
	Position  int       `json:"order" gorm:"column:position;not null;uniqueIndex:idx_questions_quiz_position"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Quiz    Quiz     `json:"-" gorm:"foreignKey:QuizID"`
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
