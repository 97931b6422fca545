package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icco/cinevault/lib/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestNewLoggerFormats(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		tty      bool
		wantJSON bool
	}{
		{"auto on terminal", "auto", true, false},
		{"auto off terminal", "auto", false, true},
		{"forced json", "json", true, true},
		{"forced text", "text", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.format, slog.LevelInfo, tt.tty)
			l.Info("Loaded shelves", slog.Int("categories", 3))

			line := strings.TrimSpace(buf.String())
			var decoded map[string]any
			isJSON := json.Unmarshal([]byte(line), &decoded) == nil
			assert.Equal(t, tt.wantJSON, isJSON, line)
			assert.Contains(t, line, "Loaded shelves")
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "text", slog.LevelWarn, false)
	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cinevault.log")
	l := New(config.LoggingConfig{Level: "info", Format: "auto", File: path})
	l.Info("Server starting", slog.String("port", "8080"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &decoded))
	assert.Equal(t, "Server starting", decoded["msg"])
	assert.Equal(t, "8080", decoded["port"])
}
