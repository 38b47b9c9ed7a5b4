package port

import (
	"context"
	"time"
)

// Span is the tracing surface the core depends on, so services and repositories
// stay free of OpenTelemetry types.
type Span interface {
	End()
	SetAttributes(attrs map[string]interface{})
	SetStatus(code string, message string)
	RecordError(err error)
}

type Telemetry interface {
	// Tracing - Span creation
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, Span)
	StartServiceSpan(ctx context.Context, service string, operation string, userID int, attrs map[string]interface{}) (context.Context, Span)

	// Repository operations
	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{})

	// Service operations
	RecordServiceOperation(ctx context.Context, service string, operation string, userID int, duration time.Duration, err error)

	// Business events
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID int, metadata map[string]interface{})

	// Errors
	RecordError(ctx context.Context, operation string, err error, metadata map[string]interface{})
}
