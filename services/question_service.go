package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"quizadmin/apperr"
	"quizadmin/logger"
	"quizadmin/models"
	"quizadmin/store"

	"go.uber.org/zap"
)

// compensationAttempts bounds the cleanup retries after a failed choice
// insert. Exhausting them leaves an orphaned question row behind.
const compensationAttempts = 3

type QuestionService struct {
	store store.Store
}

func NewQuestionService(st store.Store) *QuestionService {
	return &QuestionService{store: st}
}

type AddQuestionRequest struct {
	QuizID       string        `json:"quiz_id"`
	Body         string        `json:"body"`
	ImageURL     string        `json:"image_url"`
	Order        *int          `json:"order"`
	Choices      []ChoiceInput `json:"choices"`
	CorrectIndex *int          `json:"correct_index"`
}

// ChoiceInput accepts the two wire shapes for one answer option: a bare
// string (correctness comes from the payload's correct_index) or a record
// with its own is_correct flag.
type ChoiceInput struct {
	Body      string
	IsCorrect *bool

	structured bool
}

func (c *ChoiceInput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Body = s
		c.structured = false
		return nil
	}
	var rec struct {
		Body      string `json:"body"`
		IsCorrect *bool  `json:"is_correct"`
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	c.Body = rec.Body
	c.IsCorrect = rec.IsCorrect
	c.structured = true
	return nil
}

// canonicalChoice is the single internal shape both input variants are
// normalized to before anything else touches the payload.
type canonicalChoice struct {
	Body      string
	IsCorrect bool
}

type questionFields struct {
	QuizID   string
	Body     string
	ImageURL string
	Order    *int
}

// validateQuestion checks the payload rule by rule, first failure wins, and
// normalizes the choices. It is a pure function of the request.
func validateQuestion(req *AddQuestionRequest) (questionFields, []canonicalChoice, error) {
	var fields questionFields

	fields.QuizID = strings.TrimSpace(req.QuizID)
	if fields.QuizID == "" {
		return fields, nil, apperr.New(apperr.InvalidInput, "quiz_id required")
	}

	fields.Body = strings.TrimSpace(req.Body)
	if fields.Body == "" {
		return fields, nil, apperr.New(apperr.InvalidInput, "body required")
	}

	if len(req.Choices) < 2 {
		return fields, nil, apperr.New(apperr.InvalidInput, "choices must have at least 2 items")
	}

	fields.ImageURL = strings.TrimSpace(req.ImageURL)
	fields.Order = req.Order

	// The first element decides which shape the whole list is read as.
	if !req.Choices[0].structured {
		if req.CorrectIndex == nil || *req.CorrectIndex < 0 || *req.CorrectIndex >= len(req.Choices) {
			return fields, nil, apperr.New(apperr.InvalidInput, "correct_index out of range")
		}
		choices := make([]canonicalChoice, len(req.Choices))
		for i, in := range req.Choices {
			choices[i] = canonicalChoice{Body: in.Body, IsCorrect: i == *req.CorrectIndex}
		}
		return fields, choices, nil
	}

	choices := make([]canonicalChoice, len(req.Choices))
	correct := 0
	for i, in := range req.Choices {
		body := strings.TrimSpace(in.Body)
		if body == "" {
			return fields, nil, apperr.New(apperr.InvalidInput, "choice body required")
		}
		isCorrect := in.IsCorrect != nil && *in.IsCorrect
		if isCorrect {
			correct++
		}
		choices[i] = canonicalChoice{Body: body, IsCorrect: isCorrect}
	}
	if correct != 1 {
		return fields, nil, apperr.New(apperr.InvalidInput, "exactly one correct choice required")
	}
	return fields, choices, nil
}

// AddQuestion validates the payload, resolves the question's position and
// performs the two-step write: question row first, then its choice rows,
// with a compensating delete if the second step fails.
func (s *QuestionService) AddQuestion(ctx context.Context, req *AddQuestionRequest) (*models.Question, []models.Choice, error) {
	fields, canonical, err := validateQuestion(req)
	if err != nil {
		return nil, nil, err
	}

	// Once writes start, a client disconnect must not interrupt the
	// sequence: an abandoned half-written question would escape
	// compensation.
	ctx = context.WithoutCancel(ctx)

	position, err := s.resolvePosition(ctx, fields.QuizID, fields.Order)
	if err != nil {
		return nil, nil, err
	}

	question := &models.Question{
		QuizID:   fields.QuizID,
		Body:     fields.Body,
		ImageURL: fields.ImageURL,
		Position: position,
	}
	if err := s.store.InsertQuestion(ctx, question); err != nil {
		if store.IsConflict(err) {
			return nil, nil, apperr.Wrap(apperr.Conflict, "question order already taken", err)
		}
		return nil, nil, apperr.Wrap(apperr.StoreFailure, "failed to insert question", err)
	}

	choices := make([]models.Choice, len(canonical))
	for i, c := range canonical {
		choices[i] = models.Choice{
			QuestionID: question.ID,
			Body:       c.Body,
			IsCorrect:  c.IsCorrect,
		}
	}
	if err := s.store.InsertChoices(ctx, choices); err != nil {
		if compErr := s.compensate(ctx, question.ID); compErr != nil {
			logger.Log.Error("compensation failed, question row left behind",
				zap.String("question_id", question.ID),
				zap.NamedError("insert_error", err),
				zap.NamedError("compensation_error", compErr))
			return nil, nil, apperr.Wrap(apperr.ResidualInconsistency,
				"residual inconsistency: choice insert failed and question cleanup failed",
				errors.Join(err, compErr))
		}
		return nil, nil, apperr.Wrap(apperr.StoreFailure, "failed to insert choices", err)
	}

	return question, choices, nil
}

// resolvePosition implements the sequencing rule: an explicit order is used
// as-is (the store's unique index catches duplicates), otherwise next is
// max+1, or 0 for the quiz's first question.
func (s *QuestionService) resolvePosition(ctx context.Context, quizID string, explicit *int) (int, error) {
	if explicit != nil {
		return *explicit, nil
	}
	max, ok, err := s.store.MaxPosition(ctx, quizID)
	if err != nil {
		return 0, apperr.Wrap(apperr.StoreFailure, "failed to resolve question order", err)
	}
	if !ok {
		return 0, nil
	}
	return max + 1, nil
}

func (s *QuestionService) compensate(ctx context.Context, questionID string) error {
	var err error
	for attempt := 1; attempt <= compensationAttempts; attempt++ {
		if err = s.store.DeleteQuestion(ctx, questionID); err == nil {
			return nil
		}
		logger.Log.Warn("compensating delete failed",
			zap.String("question_id", questionID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return err
}
