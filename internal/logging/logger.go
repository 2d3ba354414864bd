package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger. It writes to Stderr so log lines never
// interleave with the table grid on Stdout, and standardizes the "error"
// attribute key to "err".
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
