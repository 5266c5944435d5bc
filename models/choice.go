package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Choice is one answer option. The validator guarantees that among the
// choices of a question exactly one row has IsCorrect set.
type Choice struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	QuestionID string    `json:"question_id" gorm:"type:uuid;not null;index"`
	Body       string    `json:"body" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Question Question `json:"-" gorm:"foreignKey:QuestionID"`
}

func (c *Choice) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
