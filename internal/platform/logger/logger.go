package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New returns a structured JSON logger using slog.
func New() *slog.Logger {
	return NewWithWriter(os.Stdout, slog.LevelInfo)
}

// NewWithWriter returns a JSON logger writing to w. Sink failures are
// swallowed so a broken diagnostics target never disturbs the caller.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(NewSafeHandler(slog.NewJSONHandler(w, opts)))
}

// Open creates or appends to the file at path and returns a logger bound to
// it. An unusable path is returned as an error so startup can fail fast.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log sink %s: %w", path, err)
	}
	return NewWithWriter(f, level), f, nil
}

// NewForPath returns the process logger: the file sink at path, or stdout
// when path is empty. The closer is always non-nil.
func NewForPath(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return New(), nopCloser{}, nil
	}
	return Open(path, slog.LevelInfo)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// SafeHandler drops write errors and recovers panics raised by the wrapped
// handler.
type SafeHandler struct {
	inner slog.Handler
}

// NewSafeHandler wraps inner.
func NewSafeHandler(inner slog.Handler) *SafeHandler {
	return &SafeHandler{inner: inner}
}

func (h *SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *SafeHandler) Handle(ctx context.Context, r slog.Record) (err error) {
	defer func() {
		if recover() != nil {
			err = nil
		}
	}()
	_ = h.inner.Handle(ctx, r)
	return nil
}

func (h *SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SafeHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *SafeHandler) WithGroup(name string) slog.Handler {
	return &SafeHandler{inner: h.inner.WithGroup(name)}
}
