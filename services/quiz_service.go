package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"quizadmin/apperr"
	"quizadmin/logger"
	"quizadmin/models"
	"quizadmin/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	quizListKey = "quizzes:index"
	quizListTTL = 30 * time.Second
)

type QuizService struct {
	store store.Store
	redis *redis.Client
}

func NewQuizService(st store.Store, rdb *redis.Client) *QuizService {
	return &QuizService{store: st, redis: rdb}
}

type CreateQuizRequest struct {
	Title       string `json:"title"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *QuizService) CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		// Older clients send the title under "name".
		title = strings.TrimSpace(req.Name)
	}
	if title == "" {
		return nil, apperr.New(apperr.InvalidInput, "Title is required")
	}

	quiz := &models.Quiz{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.store.InsertQuiz(ctx, quiz); err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "failed to create quiz", err)
	}

	s.invalidateListCache(ctx)
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	if quizzes, ok := s.cachedList(ctx); ok {
		return quizzes, nil
	}

	quizzes, err := s.store.ListQuizzes(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreFailure, "failed to list quizzes", err)
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}

	s.storeListCache(ctx, quizzes)
	return quizzes, nil
}

// The cache is an optimization only; every redis failure is logged and the
// call falls through to the store.

func (s *QuizService) cachedList(ctx context.Context) ([]models.Quiz, bool) {
	if s.redis == nil {
		return nil, false
	}
	data, err := s.redis.Get(ctx, quizListKey).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("redis get failed for quiz list", zap.Error(err))
		}
		return nil, false
	}
	var quizzes []models.Quiz
	if err := json.Unmarshal([]byte(data), &quizzes); err != nil {
		logger.Log.Warn("corrupt quiz list cache entry", zap.Error(err))
		return nil, false
	}
	return quizzes, true
}

func (s *QuizService) storeListCache(ctx context.Context, quizzes []models.Quiz) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(quizzes)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, quizListKey, data, quizListTTL).Err(); err != nil {
		logger.Log.Warn("redis set failed for quiz list", zap.Error(err))
	}
}

func (s *QuizService) invalidateListCache(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, quizListKey).Err(); err != nil {
		logger.Log.Warn("redis del failed for quiz list", zap.Error(err))
	}
}
