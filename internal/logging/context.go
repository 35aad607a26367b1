package logging

import (
	"context"
	"log/slog"

	"tonearm/internal/services"
)

// Canonical attribute keys shared across handlers and callers.
const (
	FieldComponent     = "component"
	FieldCommand       = "command"
	FieldCorrelationID = "correlation_id"
)

// ContextFields extracts the standard request-scoped attributes from ctx.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var attrs []Attr
	if command, ok := services.CommandFromContext(ctx); ok {
		attrs = append(attrs, String(FieldCommand, command))
	}
	if id, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldCorrelationID, id))
	}
	return attrs
}

// WithContext returns logger augmented with any request-scoped attributes
// carried on ctx. The logger is returned unchanged when ctx carries none.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	attrs := ContextFields(ctx)
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(attrs)...)
}
