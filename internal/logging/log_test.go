package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"error", log.ErrorLevel},
		{"WARN", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{" debug ", log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := GetLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := GetLevel("verbose")
	assert.ErrorIs(t, err, ErrUnknownLogLevel)
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "term", "abba")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "abba")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, closer, err := NewFile(path, "info")
	require.NoError(t, err)
	logger.Info("fetched albums", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fetched albums")
	assert.Contains(t, string(data), "count=3")
}

func TestNewFile_BadLevel(t *testing.T) {
	_, _, err := NewFile(filepath.Join(t.TempDir(), "app.log"), "loud")
	assert.ErrorIs(t, err, ErrUnknownLogLevel)
}
