package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Logger interface for dependency injection
type Logger interface {
	Printf(format string, args ...interface{})
}

// nopHandler discards every record; Enabled returns false so formatting is skipped.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// SlogLogger adapts a *slog.Logger to the Printf-style Logger
type SlogLogger struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogLogger logs every Printf call at info level on l. A nil l discards output.
func NewSlogLogger(l *slog.Logger) *SlogLogger {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	return &SlogLogger{logger: l, level: slog.LevelInfo}
}

// NewTextLogger writes slog text records to w, dropping records below minLevel
func NewTextLogger(w io.Writer, minLevel slog.Level) *SlogLogger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: minLevel})))
}

// NopLogger returns a logger that discards all output
func NopLogger() *SlogLogger {
	return NewSlogLogger(nil)
}

// Printf formats the message and emits it as a single record
func (s *SlogLogger) Printf(format string, args ...interface{}) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, s.level) {
		return
	}
	s.logger.Log(ctx, s.level, fmt.Sprintf(format, args...))
}

// Debug returns a logger for the same destination at debug level
func (s *SlogLogger) Debug() *SlogLogger {
	return &SlogLogger{logger: s.logger, level: slog.LevelDebug}
}

// Warn returns a logger for the same destination at warn level
func (s *SlogLogger) Warn() *SlogLogger {
	return &SlogLogger{logger: s.logger, level: slog.LevelWarn}
}
