// Package logging builds the service's slog loggers and carries them through
// request contexts.
//
//	logger := logging.New(os.Stderr,
//	    logging.WithLevel("info"),
//	    logging.WithFormat("json"),
//	    logging.WithAttrs(slog.String("service", "portfolio-service")),
//	)
//
//	ctx = logging.WithLogger(ctx, logger)
//	logger = logging.FromContext(ctx)
//
// Failures are logged with the operation name, the entity key and the error:
//
//	logger.ErrorContext(ctx, "failed to update project",
//	    slog.String("operation", "UpdateProject"),
//	    slog.Int64("id", id),
//	    slog.Any("error", err),
//	)
//
// Credentials are masked by the handler regardless of the call site.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Output formats accepted by WithFormat.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type contextKey struct{}

type options struct {
	level  slog.Level
	format string
	attrs  []slog.Attr
}

// Option configures New.
type Option func(*options)

// WithLevel sets the minimum level from its name (debug, info, warn, error,
// any case). Unknown names leave the level at info.
func WithLevel(name string) Option {
	return func(o *options) {
		o.level = ParseLevel(name)
	}
}

// WithFormat selects FormatText or FormatJSON. Anything else means JSON.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

// WithAttrs adds attributes to every record, typically the service name.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// New returns a logger writing to w. Debug loggers include the source
// location.
func New(w io.Writer, opts ...Option) *slog.Logger {
	o := options{level: slog.LevelInfo, format: FormatJSON}
	for _, opt := range opts {
		opt(&o)
	}

	hopts := &slog.HandlerOptions{
		Level:       o.level,
		AddSource:   o.level <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	var handler slog.Handler
	if o.format == FormatText {
		handler = slog.NewTextHandler(w, hopts)
	} else {
		handler = slog.NewJSONHandler(w, hopts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(handler)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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
