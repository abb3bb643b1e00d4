package strata

import (
	"context"
	"io"
	"log/slog"
)

// Logger is the diagnostic sink consumed by the machine. Implementations
// accept slog-style alternating key/value arguments after the message. The
// debug-enabled flag lets callers skip building arguments for debug lines
// that would be discarded anyway.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugEnabled() bool
	SetDebugEnabled(enabled bool)
}

// SlogLogger adapts a log/slog logger to the Logger contract.
type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
	debug  bool
}

// NewLogger builds a slog-backed Logger writing text lines to w. The
// debug-enabled flag moves the handler level between Info and Debug.
func NewLogger(w io.Writer, debug bool) *SlogLogger {
	level := new(slog.LevelVar)
	if debug {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &SlogLogger{logger: slog.New(handler), level: level, debug: debug}
}

// NewSlogLogger wraps an existing slog.Logger. The initial debug-enabled
// flag is sampled from the wrapped handler; SetDebugEnabled then gates debug
// lines in the wrapper, it cannot lower the handler's own threshold.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{
		logger: logger,
		debug:  logger.Enabled(context.Background(), slog.LevelDebug),
	}
}

// Debug logs a debug-level line when debug output is enabled
func (l *SlogLogger) Debug(msg string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.logger.Debug(msg, args...)
}

// Info logs an info-level line
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning-level line
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error-level line
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// DebugEnabled reports whether debug lines are emitted
func (l *SlogLogger) DebugEnabled() bool {
	if l.level != nil {
		return l.level.Level() <= slog.LevelDebug
	}
	return l.debug
}

// SetDebugEnabled toggles debug output
func (l *SlogLogger) SetDebugEnabled(enabled bool) {
	if l.level != nil {
		if enabled {
			l.level.Set(slog.LevelDebug)
		} else {
			l.level.Set(slog.LevelInfo)
		}
	}
	l.debug = enabled
}

// NopLogger discards everything. Useful when embedding a machine that should
// stay silent.
type NopLogger struct{}

func (NopLogger) Debug(msg string, args ...any) {}
func (NopLogger) Info(msg string, args ...any)  {}
func (NopLogger) Warn(msg string, args ...any)  {}
func (NopLogger) Error(msg string, args ...any) {}
func (NopLogger) DebugEnabled() bool            { return false }
func (NopLogger) SetDebugEnabled(enabled bool)  {}
