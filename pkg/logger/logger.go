package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Logger is the diagnostic logging interface used across the module.
// obj is either nil, a map of fields, or any value logged under "obj".
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type slogLogger struct {
	l *slog.Logger
}

func (l slogLogger) write(level slog.Level, msg string, obj any) {
	ctx := context.Background()
	if !l.l.Enabled(ctx, level) {
		return
	}
	l.l.Log(ctx, level, msg, attrs(obj)...)
}

func attrs(obj any) []any {
	switch v := obj.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, slog.Any(k, v[k]))
		}
		return out
	case error:
		return []any{slog.String("error", v.Error())}
	default:
		return []any{slog.Any("obj", v)}
	}
}

// New builds a tint-backed logger writing to w at the given level name.
// Color is only used when w is a terminal.
func New(w io.Writer, level string) Logger {
	if w == nil {
		return NopLogger{}
	}
	h := tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	})
	return slogLogger{l: slog.New(h)}
}

// ParseLevel maps debug|info|warn|error to a slog level. Unknown names are warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (l slogLogger) Info(msg string, obj any)  { l.write(slog.LevelInfo, msg, obj) }
func (l slogLogger) Warn(msg string, obj any)  { l.write(slog.LevelWarn, msg, obj) }
func (l slogLogger) Debug(msg string, obj any) { l.write(slog.LevelDebug, msg, obj) }
func (l slogLogger) Error(msg string, obj any) { l.write(slog.LevelError, msg, obj) }

// Debug writes a debug log when logger is non-nil.
func Debug(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
