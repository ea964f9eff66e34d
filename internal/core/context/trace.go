// Package context provides run-scoped values extraction.
package context

import (
	"context"

	"github.com/google/uuid"

	"perishables/internal/core/id"
)

// TraceContext identifies one report run.
type TraceContext struct {
	RunID   id.ID
	TraceID string
	Input   string
}

type traceContextKey struct{}

// WithTrace adds TraceContext to context.
func WithTrace(ctx context.Context, trace *TraceContext) context.Context {
	return context.WithValue(ctx, traceContextKey{}, trace)
}

// GetTrace returns TraceContext from context.
func GetTrace(ctx context.Context) *TraceContext {
	if v, ok := ctx.Value(traceContextKey{}).(*TraceContext); ok {
		return v
	}
	return nil
}

// GetTraceID returns trace ID from context or generates new one.
func GetTraceID(ctx context.Context) string {
	if t := GetTrace(ctx); t != nil {
		return t.TraceID
	}
	return uuid.New().String()
}

// GetRunID returns the run ID from context or the nil ID.
func GetRunID(ctx context.Context) id.ID {
	if t := GetTrace(ctx); t != nil {
		return t.RunID
	}
	return id.Nil()
}

// NewTraceContext creates a new TraceContext for a run over the given input.
func NewTraceContext(input string) *TraceContext {
	return &TraceContext{
		RunID:   id.New(),
		TraceID: uuid.New().String(),
		Input:   input,
	}
}
