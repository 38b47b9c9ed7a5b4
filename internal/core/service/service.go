package service

import (
	"context"
	"time"

	"activityapp/internal/core/port"
	tel "activityapp/internal/core/telemetry"
)

type tracer struct {
	telemetry port.Telemetry
	name      string
}

func newTracer(telemetry port.Telemetry, name string) tracer {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return tracer{telemetry: telemetry, name: name}
}

// trace opens a service span. Defer the returned func with the address of the
// named error result.
func (t tracer) trace(ctx context.Context, operation string, userID int) (context.Context, func(*error)) {
	ctx, span := t.telemetry.StartServiceSpan(ctx, t.name, operation, userID, nil)
	startTime := time.Now()

	return ctx, func(errp *error) {
		var err error

		if errp != nil {
			err = *errp
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus("error", err.Error())
		} else {
			span.SetStatus("ok", "")
		}

		t.telemetry.RecordServiceOperation(ctx, t.name, operation, userID, time.Since(startTime), err)
		span.End()
	}
}

func (t tracer) event(ctx context.Context, event, entity, entityID string, userID int, metadata map[string]interface{}) {
	t.telemetry.RecordBusinessEvent(ctx, event, entity, entityID, userID, metadata)
}
