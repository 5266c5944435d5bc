package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quizadmin/config"
	"quizadmin/handlers"
	"quizadmin/models"
	"quizadmin/routes"
	"quizadmin/services"

	"github.com/gin-gonic/gin"
)

type memStore struct {
	quizzes   []models.Quiz
	questions []models.Question
	choices   []models.Choice

	insertChoicesErr error
	pingErr          error
}

func (m *memStore) InsertQuiz(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = fmt.Sprintf("quiz-%d", len(m.quizzes)+1)
	m.quizzes = append([]models.Quiz{*quiz}, m.quizzes...)
	return nil
}

func (m *memStore) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return m.quizzes, nil
}

func (m *memStore) InsertQuestion(ctx context.Context, q *models.Question) error {
	q.ID = fmt.Sprintf("question-%d", len(m.questions)+1)
	m.questions = append(m.questions, *q)
	return nil
}

func (m *memStore) DeleteQuestion(ctx context.Context, id string) error {
	kept := m.questions[:0]
	for _, q := range m.questions {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	m.questions = kept
	return nil
}

func (m *memStore) MaxPosition(ctx context.Context, quizID string) (int, bool, error) {
	max, found := 0, false
	for _, q := range m.questions {
		if q.QuizID != quizID {
			continue
		}
		if !found || q.Position > max {
			max = q.Position
		}
		found = true
	}
	return max, found, nil
}

func (m *memStore) InsertChoices(ctx context.Context, choices []models.Choice) error {
	if m.insertChoicesErr != nil {
		return m.insertChoicesErr
	}
	for i := range choices {
		choices[i].ID = fmt.Sprintf("choice-%d", len(m.choices)+1)
		m.choices = append(m.choices, choices[i])
	}
	return nil
}

func (m *memStore) ListChoices(ctx context.Context, questionID string) ([]models.Choice, error) {
	var out []models.Choice
	for _, c := range m.choices {
		if c.QuestionID == questionID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) Ping(ctx context.Context) error { return m.pingErr }

func newTestRouter(st *memStore, adminPass string, pinEcho bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	cfg := &config.Config{AdminPass: adminPass, PinEcho: pinEcho}
	quizHandler := handlers.NewQuizHandler(services.NewQuizService(st, nil))
	questionHandler := handlers.NewQuestionHandler(services.NewQuestionService(st))
	systemHandler := handlers.NewSystemHandler(cfg, st)

	routes.SetupRoutes(router, quizHandler, questionHandler, systemHandler, adminPass)
	return router
}

func doJSON(router *gin.Engine, method, path, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("x-admin-pass", secret)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthoringEndToEnd(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	// Create the quiz.
	w := doJSON(router, http.MethodPost, "/api/admin/quizzes", "abc", `{"title":"Trivia"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Quiz models.Quiz `json:"quiz"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Quiz.Title != "Trivia" || created.Quiz.ID == "" {
		t.Fatalf("quiz = %+v, want a Trivia quiz with an id", created.Quiz)
	}

	// Append the first question using the plain-string choice shape.
	payload := fmt.Sprintf(`{"quiz_id":%q,"body":"2+2?","choices":["3","4","5","6"],"correct_index":1}`, created.Quiz.ID)
	w = doJSON(router, http.MethodPost, "/api/admin/questions", "abc", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("add question status = %d, body = %s", w.Code, w.Body.String())
	}
	var added struct {
		Question models.Question `json:"question"`
		Choices  []models.Choice `json:"choices"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode add-question response: %v", err)
	}
	if added.Question.Position != 0 {
		t.Errorf("first question order = %d, want 0", added.Question.Position)
	}
	if len(added.Choices) != 4 {
		t.Fatalf("response has %d choices, want 4", len(added.Choices))
	}
	for i, c := range added.Choices {
		if c.IsCorrect != (i == 1) {
			t.Errorf("choice %d (%q) is_correct = %v", i, c.Body, c.IsCorrect)
		}
	}

	// A second question sequences after the first.
	payload = fmt.Sprintf(`{"quiz_id":%q,"body":"3+3?","choices":[{"body":"6","is_correct":true},{"body":"9"}]}`, created.Quiz.ID)
	w = doJSON(router, http.MethodPost, "/api/admin/questions", "abc", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("add second question status = %d, body = %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &added); err != nil {
		t.Fatalf("decode second add-question response: %v", err)
	}
	if added.Question.Position != 1 {
		t.Errorf("second question order = %d, want 1", added.Question.Position)
	}

	// The listing includes the quiz; secret comes from the header.
	w = doJSON(router, http.MethodGet, "/api/admin/quizzes", "abc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", w.Code, w.Body.String())
	}
	var listed struct {
		Quizzes []models.Quiz `json:"quizzes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed.Quizzes) != 1 || listed.Quizzes[0].ID != created.Quiz.ID {
		t.Errorf("quizzes = %+v, want the created quiz", listed.Quizzes)
	}
}

func TestAddQuestionUnauthorizedBeforeValidation(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	// Malformed payload and a wrong secret: authorization is answered
	// first, and nothing reaches the store.
	w := doJSON(router, http.MethodPost, "/api/admin/questions", "xyz", `{"quiz_id":""}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if len(st.questions) != 0 {
		t.Error("store written to on an unauthorized request")
	}
}

func TestAddQuestionValidationStatus(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	w := doJSON(router, http.MethodPost, "/api/admin/questions", "abc", `{"quiz_id":"q1","body":"2+2?","choices":["4"],"correct_index":0}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "choices must have at least 2 items") {
		t.Errorf("body = %q, want the rule's message", w.Body.String())
	}
}

func TestAddQuestionPartialFailureIsNotSuccess(t *testing.T) {
	st := &memStore{insertChoicesErr: fmt.Errorf("disk full")}
	router := newTestRouter(st, "abc", false)

	w := doJSON(router, http.MethodPost, "/api/admin/questions", "abc", `{"quiz_id":"q1","body":"2+2?","choices":["3","4"],"correct_index":1}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if len(st.questions) != 0 {
		t.Error("question row survived a failed choice insert")
	}
}

func TestCreateQuizRequiresTitle(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	w := doJSON(router, http.MethodPost, "/api/admin/quizzes", "abc", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Title is required") {
		t.Errorf("body = %q, want title message", w.Body.String())
	}
}

func TestHealthReportsStoreState(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	w := doJSON(router, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var report struct {
		HasAdminPass bool `json:"has_admin_pass"`
		CanQuery     bool `json:"can_query"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode health response: %v", err)
	}
	if !report.HasAdminPass || !report.CanQuery {
		t.Errorf("report = %+v, want both true", report)
	}
}

func TestShowPinDisabledByDefault(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", false)

	w := doJSON(router, http.MethodGet, "/api/admin/show-pin", "", "")
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestShowPinEnabled(t *testing.T) {
	st := &memStore{}
	router := newTestRouter(st, "abc", true)

	w := doJSON(router, http.MethodGet, "/api/admin/show-pin", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"abc"`) {
		t.Errorf("body = %q, want the echoed secret", w.Body.String())
	}
}
