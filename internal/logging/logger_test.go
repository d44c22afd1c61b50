package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level Level
		ok    bool
	}{
		{"error", LevelError, true},
		{"WARN", LevelWarn, true},
		{"", LevelInfo, true},
		{"Debug", LevelDebug, true},
		{"loud", LevelInfo, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo).With("Loader")

	log.Debug("hidden %d", 1)
	log.Info("loaded %s", "book.xlsx")
	log.Error("boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] [Loader] loaded book.xlsx")
	assert.Contains(t, out, "[ERROR] [Loader] boom")
}
