package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestLogger_ContextFieldsReachServiceLines(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).Named("ledger").With("tournament", "demo-cup")

	ctx := ContextWith(context.Background(), "request_id", "req-1")
	ctx = ContextWith(ctx, "user_id", "owner-1")
	logger.InfoContext(ctx, "match event recorded", "minute", 12, "error", errors.New("late whistle"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, "match event recorded", entry["msg"])
	assert.Equal(t, "demo-cup", entry["tournament"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "owner-1", entry["user_id"])
	assert.Equal(t, float64(12), entry["minute"])
	assert.Equal(t, "late whistle", entry["error"])
	assert.NotContains(t, entry, "trace_id")
	assert.True(t, strings.HasPrefix(entry["caller"].(string), "logging/logger_test.go"), entry["caller"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelWarn)

	logger.Info("dropped")
	logger.Debug("dropped too")
	logger.Warn("kept", "odd")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
	assert.Contains(t, lines[0], "odd")
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var l *Logger
	l.Info("goes to the nop default")
	l.With("k", "v").Named("x").ErrorContext(context.Background(), "still fine")
	assert.NoError(t, l.Sync())
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"verbose": LevelInfo,
		"":        LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Fatalf("unexpected level for %q got=%v want=%v", in, got, want)
		}
	}
}
