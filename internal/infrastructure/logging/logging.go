// Package logging configures the process-wide zerolog logger. User-facing
// output goes through the UserInterface port; the logger carries diagnostic
// traces (model round trips, tool dispatches) on stderr so they never
// interleave with the conversation.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-writer logger at the given level. Unknown level
// strings fall back to "info".
func New(level string) zerolog.Logger {
	return NewWithOutput(level, os.Stderr)
}

// NewWithOutput is New with an explicit output, used by tests.
func NewWithOutput(level string, out io.Writer) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
