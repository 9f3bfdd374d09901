package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// SlogConfig describes the application logger.
type SlogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
	Output io.Writer
}

// NewSlog builds the application logger. Output defaults to stdout.
func NewSlog(cfg SlogConfig) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return slog.New(newHandler(out, cfg.Format, parseLevel(cfg.Level)))
}

// NewFileSlog appends JSON lines to path. The returned closer releases the file.
func NewFileSlog(path string) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return slog.New(newHandler(f, "json", slog.LevelInfo)), f, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(out io.Writer, format string, lvl slog.Level) slog.Handler {
	if format == "text" {
		return slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})
	}
	return slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: lvl,
		// human-readable timestamp
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	})
}
