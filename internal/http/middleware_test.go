package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/service"
)

// tokenOnlyAuth validates tokens and fails everything else.
type tokenOnlyAuth struct {
	service.AuthService
	tokens *auth.Tokens
}

func (a tokenOnlyAuth) ValidateToken(_ context.Context, token string) (int64, error) {
	return a.tokens.Validate(token)
}

// countingTasks records which owner each call was scoped to.
type countingTasks struct {
	calls  int
	owners []int64
}

func (s *countingTasks) ListTasks(_ context.Context, owner int64, _ repository.TaskFilter) ([]domain.Task, error) {
	s.calls++
	s.owners = append(s.owners, owner)
	return nil, nil
}

func (s *countingTasks) GetTask(context.Context, int64, int64) (*domain.Task, error) {
	s.calls++
	return nil, domain.NotFound("task not found")
}

func (s *countingTasks) CreateTask(context.Context, int64, domain.TaskFields) (*domain.Task, error) {
	s.calls++
	return nil, domain.Validation("nope")
}

func (s *countingTasks) UpdateTask(context.Context, int64, int64, domain.TaskFields) (*domain.Task, error) {
	s.calls++
	return nil, domain.NotFound("task not found")
}

func (s *countingTasks) DeleteTask(context.Context, int64, int64) error {
	s.calls++
	return domain.NotFound("task not found")
}

func setupGateRouter(t *testing.T, tasks service.TaskService) (*gin.Engine, *auth.Tokens) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tokens := auth.NewTokens(testSecret, time.Hour)
	handler := NewHandler(tokenOnlyAuth{tokens: tokens}, nil, tasks, nil, logger)
	router := gin.New()
	handler.RegisterRoutes(router)
	return router, tokens
}

func TestGateStopsBeforeServices(t *testing.T) {
	tasks := &countingTasks{}
	router, _ := setupGateRouter(t, tasks)

	expired := auth.NewTokens(testSecret, -time.Minute)
	expiredToken, err := expired.Issue(1)
	require.NoError(t, err)
	foreignToken, err := auth.NewTokens("not-our-secret", time.Hour).Issue(1)
	require.NoError(t, err)

	for _, token := range []string{"", "junk", expiredToken, foreignToken} {
		for _, method := range []string{http.MethodGet, http.MethodPost} {
			w := doJSON(t, router, method, "/tasks", token, gin.H{"title": "x", "category_id": 1})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}
		w := doJSON(t, router, http.MethodDelete, "/tasks/1", token, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	assert.Zero(t, tasks.calls)
}

func TestGateScopesToPrincipal(t *testing.T) {
	tasks := &countingTasks{}
	router, tokens := setupGateRouter(t, tasks)

	token, err := tokens.Issue(77)
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodGet, "/tasks?status=pending", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{77}, tasks.owners)
	assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.Validation("title is required"), http.StatusBadRequest, "title is required"},
		{domain.Conflict("dup"), http.StatusConflict, "dup"},
		{domain.Unauthorized("nope"), http.StatusUnauthorized, "nope"},
		{domain.NotFound("gone"), http.StatusNotFound, "gone"},
		{domain.Infrastructure("query tasks", io.ErrUnexpectedEOF), http.StatusInternalServerError, "internal server error"},
		{domain.Infrastructure("query tasks", context.DeadlineExceeded), http.StatusInternalServerError, "internal server error"},
		{io.EOF, http.StatusInternalServerError, "internal server error"},
		{service.ErrExportsDisabled, http.StatusServiceUnavailable, "exports are not configured"},
	}
	for _, tc := range cases {
		code, msg := statusFor(tc.err)
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.Equal(t, tc.msg, msg)
	}
}

func TestTimeoutAnswersInternalErrorWithRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewHandler(nil, nil, nil, nil, logger)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks", nil)

	h.respondError(c, domain.Infrastructure("query tasks", context.DeadlineExceeded))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/tasks", nil)

	h.respondError(c, domain.Infrastructure("query tasks", io.ErrUnexpectedEOF))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Retry-After"))
}
