// Package store is the row-level persistence boundary of the authoring core.
// The rest of the service sees only inserts, equality-filtered selects and
// single-row deletes; consistency across rows is the caller's problem.
package store

import (
	"context"

	"quizadmin/models"
)

type Store interface {
	InsertQuiz(ctx context.Context, quiz *models.Quiz) error
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)

	InsertQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id string) error
	// MaxPosition reports the highest question position in a quiz; ok is
	// false when the quiz has no questions yet.
	MaxPosition(ctx context.Context, quizID string) (max int, ok bool, err error)

	InsertChoices(ctx context.Context, choices []models.Choice) error
	ListChoices(ctx context.Context, questionID string) ([]models.Choice, error)

	// Ping issues a cheap read so health checks can tell whether the store
	// is reachable.
	Ping(ctx context.Context) error
}
