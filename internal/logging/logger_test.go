package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, `unknown log level "loud"`)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("vapecenter", Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("review added", "id", "r1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "vapecenter", line["app"])
	assert.Equal(t, "review added", line["msg"])
	assert.Equal(t, "r1", line["id"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("vapecenter", Config{Level: "debug", Format: "text", Output: &buf})
	require.NoError(t, err)

	logger.Debug("starting")
	assert.Contains(t, buf.String(), "msg=starting")
	assert.Contains(t, buf.String(), "app=vapecenter")
}
