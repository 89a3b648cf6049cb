package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithOutput(t *testing.T) {
	t.Run("should honor the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithOutput("warn", &buf)

		logger.Debug().Msg("hidden")
		logger.Warn().Msg("shown")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Error("debug message logged at warn level")
		}
		if !strings.Contains(out, "shown") {
			t.Error("warn message missing")
		}
	})

	t.Run("should fall back to info on unknown level", func(t *testing.T) {
		logger := NewWithOutput("bogus", &bytes.Buffer{})
		if logger.GetLevel() != zerolog.InfoLevel {
			t.Errorf("level = %s, want info", logger.GetLevel())
		}
	})
}
