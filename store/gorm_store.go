package store

import (
	"context"
	"database/sql"
	"errors"

	"quizadmin/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the postgres SQLSTATE for unique-constraint errors.
const pgUniqueViolation = "23505"

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) InsertQuiz(ctx context.Context, quiz *models.Quiz) error {
	return s.db.WithContext(ctx).Create(quiz).Error
}

func (s *GormStore) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (s *GormStore) InsertQuestion(ctx context.Context, question *models.Question) error {
	return s.db.WithContext(ctx).Create(question).Error
}

func (s *GormStore) DeleteQuestion(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Question{}).Error
}

func (s *GormStore) MaxPosition(ctx context.Context, quizID string) (int, bool, error) {
	var max sql.NullInt64
	err := s.db.WithContext(ctx).
		Model(&models.Question{}).
		Where("quiz_id = ?", quizID).
		Select("MAX(position)").
		Row().Scan(&max)
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

func (s *GormStore) InsertChoices(ctx context.Context, choices []models.Choice) error {
	if len(choices) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&choices).Error
}

func (s *GormStore) ListChoices(ctx context.Context, questionID string) ([]models.Choice, error) {
	var choices []models.Choice
	err := s.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("created_at").
		Find(&choices).Error
	return choices, err
}

func (s *GormStore) Ping(ctx context.Context) error {
	var ids []string
	return s.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Limit(1).
		Pluck("id", &ids).Error
}

// IsConflict reports whether err is a unique-key violation from the store.
func IsConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
