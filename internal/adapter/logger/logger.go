package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

type LoggerAdapter struct {
	logger *slog.Logger
}

// NewLoggerAdapter writes JSON lines to stdout. Source locations are
// attached outside production.
func NewLoggerAdapter(env, level string) *LoggerAdapter {
	return New(os.Stdout, env, level)
}

func New(w io.Writer, env, level string) *LoggerAdapter {
	opts := &slog.HandlerOptions{
		Level:     levelFromString(level),
		AddSource: env != "production",
	}
	return &LoggerAdapter{logger: slog.New(slog.NewJSONHandler(w, opts))}
}

// Discard drops everything. Used by tests.
func Discard() *LoggerAdapter {
	return New(io.Discard, "test", "error")
}

func levelFromString(level string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *LoggerAdapter) log(level slog.Level, msg string, fields map[string]interface{}) {
	ctx := context.Background()
	if !l.logger.Enabled(ctx, level) {
		return
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}
