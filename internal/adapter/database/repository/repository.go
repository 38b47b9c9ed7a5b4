package repository

import (
	"context"
	"time"

	"activityapp/internal/adapter/database"
	"activityapp/internal/core/port"
	tel "activityapp/internal/core/telemetry"
)

// instrumentation wraps every repository call in a span and records its outcome.
type instrumentation struct {
	telemetry port.Telemetry
	entity    string
	system    string
}

func newInstrumentation(db *database.DB, telemetry port.Telemetry, entity string) instrumentation {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return instrumentation{
		telemetry: telemetry,
		entity:    entity,
		system:    string(db.Dialect),
	}
}

// start opens a span; the returned func must be deferred with the address of
// the named error result.
func (i instrumentation) start(ctx context.Context, operation string, attrs map[string]interface{}) (context.Context, func(*error)) {
	if attrs == nil {
		attrs = map[string]interface{}{}
	}

	attrs["db.system"] = i.system

	ctx, span := i.telemetry.StartRepositorySpan(ctx, operation, i.entity, attrs)
	startTime := time.Now()

	return ctx, func(errp *error) {
		var err error

		if errp != nil {
			err = *errp
		}

		if err != nil {
			span.SetStatus("error", err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus("ok", "")
		}

		i.telemetry.RecordRepositoryOperation(ctx, operation, i.entity, time.Since(startTime), err)
		span.End()
	}
}

func (i instrumentation) query(ctx context.Context, operation, query string, args []interface{}) {
	i.telemetry.RecordRepositoryQuery(ctx, operation, i.entity, query, args)
}
