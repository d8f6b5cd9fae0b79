package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expected)

		assert.Equal(t, expected, FromContext(ctx))
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		l := FromContext(t.Context())
		require.NotNil(t, l)
		assert.Equal(t, GetDefault(), l)
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), ctxKey{}, "not a logger")
		assert.Equal(t, GetDefault(), FromContext(ctx))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write JSON with key-value pairs", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

		l.With("component", "test").Error("backend failed", "status", 500)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "backend failed", entry["msg"])
		assert.Equal(t, "test", entry["component"])
		assert.EqualValues(t, 500, entry["status"])
	})

	t.Run("Should drop messages below the level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Info("quiet")
		assert.Empty(t, buf.String())

		l.Warn("loud")
		assert.Contains(t, buf.String(), "loud")
	})
}

func TestLogLevelToCharmlogLevel(t *testing.T) {
	cases := []struct {
		level    LogLevel
		expected int
	}{
		{DebugLevel, -4},
		{InfoLevel, 0},
		{WarnLevel, 4},
		{ErrorLevel, 8},
		{DisabledLevel, 1000},
		{LogLevel("unknown"), 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
	}
}
