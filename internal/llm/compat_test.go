package llm

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatProviderComplete(t *testing.T) {
	t.Run("Should post a non-streaming chat completion", func(t *testing.T) {
		var got map[string]any
		var gotPath, gotContentType, gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{
				"model": "llama3.2",
				"choices": [{"message": {"role": "assistant", "content": "Step 1. Go"}, "finish_reason": "stop"}],
				"usage": {"prompt_tokens": 10, "completion_tokens": 4, "total_tokens": 14}
			}`))
		}))
		defer srv.Close()

		p := NewCompatProvider("test", srv.URL+"/v1/", "", "llama3.2")
		resp, err := p.Complete(t.Context(), NewRequest("", "sys", "Clean my room"))
		require.NoError(t, err)

		assert.Equal(t, "/v1/chat/completions", gotPath)
		assert.Equal(t, "application/json", gotContentType)
		assert.Empty(t, gotAuth)
		assert.Equal(t, "llama3.2", got["model"])
		assert.Equal(t, false, got["stream"])
		assert.NotContains(t, got, "temperature")
		assert.NotContains(t, got, "max_tokens")
		msgs, ok := got["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)
		assert.Equal(t, map[string]any{"role": "system", "content": "sys"}, msgs[0])
		assert.Equal(t, map[string]any{"role": "user", "content": "Clean my room"}, msgs[1])

		assert.Equal(t, "Step 1. Go", resp.Content)
		assert.Equal(t, "stop", resp.FinishReason)
		assert.Equal(t, 14, resp.Usage.TotalTokens)
	})

	t.Run("Should send bearer token when API key is set", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
		}))
		defer srv.Close()

		p := NewCompatProvider("test", srv.URL, "secret", "m")
		_, err := p.Complete(t.Context(), NewRequest("", "s", "u"))
		require.NoError(t, err)
		assert.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("Should return APIError with body on non-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"model not found"}`))
		}))
		defer srv.Close()

		p := NewCompatProvider("test", srv.URL, "", "missing")
		_, err := p.Complete(t.Context(), NewRequest("", "s", "u"))
		require.Error(t, err)

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, `{"error":"model not found"}`, apiErr.Body)
		assert.Equal(t, "test", apiErr.Provider)
	})

	t.Run("Should return empty content when no choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		p := NewCompatProvider("test", srv.URL, "", "m")
		resp, err := p.Complete(t.Context(), NewRequest("", "s", "u"))
		require.NoError(t, err)
		assert.Empty(t, resp.Content)
		assert.Equal(t, "m", resp.Model)
	})

	t.Run("Should fail on invalid JSON", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		p := NewCompatProvider("test", srv.URL, "", "m")
		_, err := p.Complete(t.Context(), NewRequest("", "s", "u"))
		require.Error(t, err)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestOllamaProvider(t *testing.T) {
	t.Run("Should default to the local endpoint", func(t *testing.T) {
		p := NewOllamaProvider("", "llama3.2")
		assert.Equal(t, DefaultOllamaBaseURL, p.BaseURL())
		assert.Equal(t, "http://localhost:11434", p.host)
		assert.Equal(t, "ollama", p.Name())
	})

	t.Run("Should ping the native tags endpoint", func(t *testing.T) {
		var gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer srv.Close()

		p := NewOllamaProvider(srv.URL+"/v1", "llama3.2")
		require.NoError(t, p.Ping(t.Context()))
		assert.Equal(t, "/api/tags", gotPath)
	})

	t.Run("Should report unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		p := NewOllamaProvider(srv.URL+"/v1", "llama3.2")
		assert.Error(t, p.Ping(t.Context()))
	})
}
