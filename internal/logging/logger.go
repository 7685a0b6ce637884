// Package logging defines a minimal structured-logging interface used across
// the project, with adapters for slog, zap and logrus.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "card drawn", "user", name, "rarity", rarity)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs unusual but non-fatal conditions, such as a stored value
	// that could not be decoded and was replaced by its default.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported values for New.
const (
	KindSlog     = "slog"
	KindSlogJSON = "slog-json"
	KindZap      = "zap"
	KindLogrus   = "logrus"
)

// New builds a Logger of the given kind writing to w. An empty kind selects
// the slog text handler. Debug output is enabled when debug is true.
func New(kind string, w io.Writer, debug bool) (Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(kind) {
	case "", KindSlog:
		return newSlogLogger(w, debug, false), nil
	case KindSlogJSON:
		return newSlogLogger(w, debug, true), nil
	case KindZap:
		return newZapLogger(w, debug), nil
	case KindLogrus:
		return newLogrusLogger(w, debug), nil
	default:
		return nil, fmt.Errorf("unknown logger kind %q", kind)
	}
}

// Nop returns a logger that discards everything. Handy in tests.
func Nop() Logger {
	return newSlogLogger(io.Discard, false, false)
}
