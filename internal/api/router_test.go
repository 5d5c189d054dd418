package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"qa_platform/internal/app/service"
	"qa_platform/internal/common"
	"qa_platform/internal/common/security"
	"qa_platform/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	byEmail map[string]*model.User
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := m.byEmail[user.Email]; ok {
		return fmt.Errorf("duplicate: %w", common.ErrConflict)
	}
	user.CreatedAt = time.Now()
	stored := *user
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := *user
	return &found, nil
}

type memQuestionRepo struct {
	byID  map[string]*model.Question
	order []string
}

func (m *memQuestionRepo) Create(ctx context.Context, q *model.Question) error {
	q.CreatedAt = time.Now()
	stored := *q
	m.byID[q.ID] = &stored
	m.order = append([]string{q.ID}, m.order...)
	return nil
}

func (m *memQuestionRepo) FindByID(ctx context.Context, id string) (*model.Question, error) {
	q, ok := m.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	found := *q
	return &found, nil
}

func (m *memQuestionRepo) ListRecent(ctx context.Context, limit int) ([]model.Question, error) {
	questions := []model.Question{}
	for _, id := range m.order {
		if len(questions) == limit {
			break
		}
		questions = append(questions, *m.byID[id])
	}
	return questions, nil
}

func newTestRouter(t *testing.T) (http.Handler, *security.TokenIssuer, *memQuestionRepo) {
	t.Helper()
	userRepo := &memUserRepo{byEmail: map[string]*model.User{}}
	questionRepo := &memQuestionRepo{byID: map[string]*model.Question{}}
	tokens := security.NewTokenIssuer([]byte("test-secret"), 7*24*time.Hour)

	authService := service.NewAuthService(userRepo, tokens)
	questionService := service.NewQuestionService(questionRepo)

	return NewRouter(authService, questionService, tokens, "http://localhost:3000"), tokens, questionRepo
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	_, err := time.Parse(time.RFC3339, body.Timestamp)
	assert.NoError(t, err)
}

func TestCreateQuestion(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/questions", map[string]interface{}{
		"title": "How?",
		"body":  "Like this.",
		"tags":  "a, b ,c",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success  bool           `json:"success"`
		Question model.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Question.ID)
	assert.Equal(t, "How?", body.Question.Title)
	assert.Equal(t, model.TagList{"a", "b", "c"}, body.Question.Tags)
	assert.Equal(t, model.AnonymousUserID, body.Question.UserID)
	assert.False(t, body.Question.CreatedAt.IsZero())
}

func TestCreateQuestionValidation(t *testing.T) {
	router, _, repo := newTestRouter(t)

	for _, payload := range []map[string]interface{}{
		{"body": "no title"},
		{"title": "no body"},
		{"title": "", "body": ""},
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/questions", payload, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Title and body are required", body.Error)
	}
	assert.Empty(t, repo.byID, "validation failures must not persist anything")
}

func TestCreateQuestionAuthenticatedAuthorWins(t *testing.T) {
	router, tokens, _ := newTestRouter(t)

	token, err := tokens.Generate("user-42")
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/questions", map[string]interface{}{
		"title":  "t",
		"body":   "b",
		"userId": "someone-else",
	}, map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Question model.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-42", body.Question.UserID, "verified identity overrides the body userId")
}

func TestCreateQuestionBodyAuthorWithoutToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/questions", map[string]interface{}{
		"title":  "t",
		"body":   "b",
		"userId": "user-7",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Question model.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user-7", body.Question.UserID)
}

func TestGetQuestionNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/questions/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "Question not found", body.Error)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/questions", map[string]interface{}{
		"title": "t", "body": "b", "tags": []string{"go"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Question model.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doRequest(t, router, http.MethodGet, "/api/questions/"+created.Question.ID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Success  bool           `json:"success"`
		Question model.Question `json:"question"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Success)
	assert.Equal(t, created.Question.Title, got.Question.Title)
	assert.Equal(t, created.Question.Body, got.Question.Body)
	assert.Equal(t, created.Question.Tags, got.Question.Tags)
}

func TestListQuestions(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		rec := doRequest(t, router, http.MethodPost, "/api/questions", map[string]interface{}{
			"title": fmt.Sprintf("q%d", i), "body": "b",
		}, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doRequest(t, router, http.MethodGet, "/api/questions", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success   bool             `json:"success"`
		Questions []model.Question `json:"questions"`
		Total     int              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Questions, 3)
	assert.Equal(t, "q2", body.Questions[0].Title, "newest first")
}

func TestRegisterAndLogin(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.NotEmpty(t, reg.User.ID)
	assert.NotEmpty(t, reg.Token)
	assert.NotContains(t, rec.Body.String(), "password", "no password material in the response")

	rec = doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var login struct {
		User  model.User `json:"user"`
		Token string     `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice", "email": "alice@example.com", "password": "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	wrongPassword := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "nope",
	}, nil)
	unknownEmail := doRequest(t, router, http.MethodPost, "/api/auth/login", map[string]string{
		"email": "nobody@example.com", "password": "pw",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid credentials"}`, wrongPassword.Body.String())
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRegisterDuplicate(t *testing.T) {
	router, _, _ := newTestRouter(t)

	payload := map[string]string{"username": "alice", "email": "alice@example.com", "password": "pw"}
	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", payload, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/auth/register", payload, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
}

func TestInvalidJSONPayload(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Invalid request payload"}`, rec.Body.String())
}
