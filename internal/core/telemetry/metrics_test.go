package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAppMetrics_DomainEvents(t *testing.T) {
	metrics := NewAppMetrics(prometheus.NewRegistry())
	probe := NewOTELProbe(slog.Default(), metrics)
	ctx := context.Background()

	probe.RecordBusinessEvent(ctx, "checked_in", "participation", "abc", 1, nil)
	probe.RecordBusinessEvent(ctx, "checked_in", "participation", "def", 2, nil)
	probe.RecordBusinessEvent(ctx, "created", "activity", "ghi", 1, nil)
	probe.RecordBusinessEvent(ctx, "registered", "user", "jkl", 3, nil)
	probe.RecordBusinessEvent(ctx, "xp_awarded", "user", "jkl", 3, map[string]interface{}{"xp": 50})
	probe.RecordBusinessEvent(ctx, "xp_awarded", "user", "jkl", 3, map[string]interface{}{"xp": 25})

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.participationEvents.WithLabelValues("checked_in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.activityEvents.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.userEvents.WithLabelValues("registered")))
	assert.Equal(t, 75.0, testutil.ToFloat64(metrics.xpAwarded))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.userEvents))
}

func TestAppMetrics_Requests(t *testing.T) {
	metrics := NewAppMetrics(prometheus.NewRegistry())
	ctx := context.Background()

	metrics.RequestStarted(ctx)
	metrics.RecordRequest(ctx, "GET", "/activities", "200", 0)
	metrics.RequestFinished(ctx)

	metrics.RecordCacheHit(ctx, "/activities")
	metrics.RecordCacheMiss(ctx, "/activities")
	metrics.RecordRateLimitHit(ctx, "POST /auth/sign-in", "ip")

	assert.Equal(t, 1, testutil.CollectAndCount(metrics.requestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.requestsInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.responseCacheLookups.WithLabelValues("/activities", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.responseCacheLookups.WithLabelValues("/activities", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rateLimitDecisions.WithLabelValues("POST /auth/sign-in", "ip", "rejected")))
}

func TestAppMetrics_RepositoryOutcome(t *testing.T) {
	metrics := NewAppMetrics(prometheus.NewRegistry())
	probe := NewOTELProbe(slog.Default(), metrics)

	probe.RecordRepositoryOperation(context.Background(), "GetByID", "activity", 0, nil)
	probe.RecordRepositoryOperation(context.Background(), "GetByID", "activity", 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.repositoryOperations.WithLabelValues("GetByID", "activity", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.repositoryOperations.WithLabelValues("GetByID", "activity", "error")))
}
