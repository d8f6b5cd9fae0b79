package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/todo"
)

type stubProvider struct {
	calls   int
	content string
	err     error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Ping(context.Context) error { return nil }

func (p *stubProvider) Complete(context.Context, *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.content}, nil
}

func newTestServer(t *testing.T, p llm.Provider) (*Server, *todo.Store) {
	t.Helper()
	return newTestServerWithConfig(t, config.DefaultConfig(), p)
}

func newTestServerWithConfig(t *testing.T, cfg *config.Config, p llm.Provider) (*Server, *todo.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := todo.Open(filepath.Join(t.TempDir(), "todos.yaml"))
	require.NoError(t, err)
	s := New(cfg, assist.NewHelper(p, "m"), store, logger.NewLogger(logger.TestConfig()))
	return s, store
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestAIHelpRoute(t *testing.T) {
	t.Run("Should return normalized steps", func(t *testing.T) {
		p := &stubProvider{content: "Okay!\n1. Gather notes\n2. Review flashcards"}
		s, _ := newTestServer(t, p)

		w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"Study for my biology exam"}`)
		require.Equal(t, http.StatusOK, w.Code)

		got := decode[helpResponse](t, w)
		assert.Equal(t, "Step 1. Gather notes\nStep 2. Review flashcards", got.Explanation)
		assert.Equal(t, []string{"Gather notes", "Review flashcards"}, []string(got.Steps))
		assert.Equal(t, 1, p.calls)
	})

	t.Run("Should return 400 for a blank task", func(t *testing.T) {
		p := &stubProvider{}
		s, _ := newTestServer(t, p)

		for _, body := range []string{`{"task":"   "}`, `{}`, `not json`} {
			w := do(t, s, http.MethodPost, "/api/ai/help", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, "task is required", decode[map[string]string](t, w)["error"])
		}
		assert.Zero(t, p.calls)
	})

	t.Run("Should hide backend details behind a generic 500", func(t *testing.T) {
		p := &stubProvider{err: &llm.APIError{Provider: "stub", StatusCode: 500, Body: "secret stack trace"}}
		s, _ := newTestServer(t, p)

		w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"Plan a party"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "AI request failed", decode[map[string]string](t, w)["error"])
		assert.NotContains(t, w.Body.String(), "secret")
	})

	t.Run("Should return an empty step array on fallback", func(t *testing.T) {
		s, _ := newTestServer(t, &stubProvider{content: ""})

		w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"Plan a party"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"steps":[]`)
	})
}

func TestTodoRoutes(t *testing.T) {
	t.Run("Should create, list, toggle and delete", func(t *testing.T) {
		s, _ := newTestServer(t, &stubProvider{})

		w := do(t, s, http.MethodPost, "/api/categories", `{"name":"School"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		cat := decode[todo.Category](t, w)

		w = do(t, s, http.MethodPost, "/api/todos",
			`{"name":"Essay","categoryId":"`+cat.ID+`","dueDate":"2026-11-01"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		created := decode[todo.Todo](t, w)
		assert.Equal(t, todo.StatusPending, created.Status)

		w = do(t, s, http.MethodGet, "/api/todos", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[[]todo.Todo](t, w), 1)

		w = do(t, s, http.MethodDelete, "/api/categories/"+cat.ID, "")
		assert.Equal(t, http.StatusConflict, w.Code)

		w = do(t, s, http.MethodPatch, "/api/todos/"+created.ID+"/toggle", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, todo.StatusDone, decode[todo.Todo](t, w).Status)

		w = do(t, s, http.MethodDelete, "/api/todos/"+created.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, s, http.MethodDelete, "/api/categories/"+cat.ID, "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, s, http.MethodGet, "/api/categories", "")
		assert.Empty(t, decode[[]todo.Category](t, w))
	})

	t.Run("Should map store errors to status codes", func(t *testing.T) {
		s, store := newTestServer(t, &stubProvider{})
		cat, err := store.AddCategory("Work")
		require.NoError(t, err)

		w := do(t, s, http.MethodPost, "/api/categories", `{"name":"work"}`)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = do(t, s, http.MethodPost, "/api/todos",
			`{"name":"Ship","categoryId":"`+cat.ID+`","dueDate":"tomorrow"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "dueDate", decode[map[string]string](t, w)["field"])

		w = do(t, s, http.MethodPatch, "/api/todos/missing/toggle", "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, s, http.MethodPost, "/api/todos", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, &stubProvider{})
	w := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAIHelpRateLimit(t *testing.T) {
	t.Run("Should reject requests over the budget", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Server.AIRate = config.RateConfig{Limit: 2, Period: time.Hour}
		p := &stubProvider{content: "1. a"}
		s, _ := newTestServerWithConfig(t, cfg, p)

		for range 2 {
			w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"x"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}
		w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"x"}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, 2, p.calls)

		// Other routes are not limited.
		w = do(t, s, http.MethodGet, "/api/todos", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should not limit when disabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Server.AIRate = config.RateConfig{}
		p := &stubProvider{content: "1. a"}
		s, _ := newTestServerWithConfig(t, cfg, p)

		for range 40 {
			w := do(t, s, http.MethodPost, "/api/ai/help", `{"task":"x"}`)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t, &stubProvider{content: "1. a"})
	do(t, s, http.MethodPost, "/api/ai/help", `{"task":"x"}`)
	do(t, s, http.MethodPost, "/api/ai/help", `{"task":" "}`)

	w := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `todoai_ai_help_requests_total{outcome="ok"} 1`)
	assert.Contains(t, body, `todoai_ai_help_requests_total{outcome="invalid"} 1`)
	assert.Contains(t, body, "todoai_ai_help_duration_seconds_count 1")
}

func TestListSeesOtherWriters(t *testing.T) {
	s, store := newTestServer(t, &stubProvider{})
	other, err := todo.Open(store.Path())
	require.NoError(t, err)
	_, err = other.AddCategory("From the UI")
	require.NoError(t, err)

	w := do(t, s, http.MethodGet, "/api/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	cats := decode[[]todo.Category](t, w)
	require.Len(t, cats, 1)
	assert.Equal(t, "From the UI", cats[0].Name)
}
