// Package logger builds the slog handlers used for diagnostics.
package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/phsym/console-slog"
)

type Options struct {
	// JSON selects one JSON object per record instead of console output.
	JSON bool

	// Level defaults to Info.
	Level slog.Leveler
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	return slog.New(NewHandler(w, opts))
}

func NewHandler(w io.Writer, opts Options) slog.Handler {
	if opts.JSON {
		return NewJSONHandler(w, opts.Level)
	}
	return console.NewHandler(w, &console.HandlerOptions{
		Level: opts.Level,
	})
}

// NewJSONHandler writes records as JSON with the time under "ts".
func NewJSONHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = "ts"
			}
			return a
		},
	})
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type tee []slog.Handler

// Tee sends every record to all handlers.
func Tee(handlers ...slog.Handler) slog.Handler {
	return tee(handlers)
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	res := make(tee, len(t))
	for i, h := range t {
		res[i] = h.WithAttrs(attrs)
	}
	return res
}

func (t tee) WithGroup(name string) slog.Handler {
	res := make(tee, len(t))
	for i, h := range t {
		res[i] = h.WithGroup(name)
	}
	return res
}
