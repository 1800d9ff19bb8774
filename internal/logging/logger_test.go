package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"verbose", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, ParseFormatter(""))
}

func TestNew(t *testing.T) {
	t.Setenv("TM_DEBUG", "")

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "error", Format: "logfmt"})

		logger.Warn("hidden")
		logger.Error("sync failed", "action", "deleteTodo")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "sync failed")
		assert.Contains(t, out, "action=deleteTodo")
		assert.Contains(t, out, Prefix)
	})

	t.Run("TM_DEBUG forces debug level", func(t *testing.T) {
		t.Setenv("TM_DEBUG", "1")
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "error"})

		logger.Debug("visible")

		assert.Contains(t, buf.String(), "visible")
	})
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")
	assert.Equal(t, log.FatalLevel, logger.GetLevel())
}
