package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "activityapp"

// AppMetrics holds the Prometheus series of the API. Go runtime and process
// series come from the collectors registered next to it.
type AppMetrics struct {
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge

	activityEvents      *prometheus.CounterVec
	participationEvents *prometheus.CounterVec
	userEvents          *prometheus.CounterVec
	xpAwarded           prometheus.Counter

	repositoryOperations *prometheus.CounterVec
	rateLimitDecisions   *prometheus.CounterVec
	responseCacheLookups *prometheus.CounterVec
}

func NewAppMetrics(registry prometheus.Registerer) *AppMetrics {
	metrics := &AppMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests by route and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		requestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Requests currently being served",
			},
		),
		activityEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "activity_events_total",
				Help:      "Activities created, concluded and deleted",
			},
			[]string{"event"},
		),
		participationEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "participation_events_total",
				Help:      "Subscriptions, decisions, check-ins and cancellations",
			},
			[]string{"event"},
		),
		userEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "user_events_total",
				Help:      "Registrations, deactivations and unlocked achievements",
			},
			[]string{"event"},
		),
		xpAwarded: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "xp_awarded_total",
				Help:      "Experience points granted to users",
			},
		),
		repositoryOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "repository_operations_total",
				Help:      "Repository calls by entity and outcome",
			},
			[]string{"operation", "entity", "outcome"},
		),
		rateLimitDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_decisions_total",
				Help:      "Rate limiter decisions per route",
			},
			[]string{"route", "key_type", "decision"},
		),
		responseCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "response_cache_lookups_total",
				Help:      "Listing cache lookups per route",
			},
			[]string{"route", "result"},
		),
	}

	registry.MustRegister(
		metrics.requestDuration,
		metrics.requestsInFlight,
		metrics.activityEvents,
		metrics.participationEvents,
		metrics.userEvents,
		metrics.xpAwarded,
		metrics.repositoryOperations,
		metrics.rateLimitDecisions,
		metrics.responseCacheLookups,
	)

	return metrics
}

func (m *AppMetrics) RecordRequest(ctx context.Context, method, route, status string, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func (m *AppMetrics) RequestStarted(ctx context.Context) {
	m.requestsInFlight.Inc()
}

func (m *AppMetrics) RequestFinished(ctx context.Context) {
	m.requestsInFlight.Dec()
}

// RecordDomainEvent counts an event of an activity, participation or user.
// The xp_awarded user event also adds its amount to xp_awarded_total.
func (m *AppMetrics) RecordDomainEvent(ctx context.Context, entity, event string, metadata map[string]interface{}) {
	switch entity {
	case "activity":
		m.activityEvents.WithLabelValues(event).Inc()
	case "participation":
		m.participationEvents.WithLabelValues(event).Inc()
	case "user":
		if event == "xp_awarded" {
			if xp, ok := metadata["xp"].(int); ok && xp > 0 {
				m.xpAwarded.Add(float64(xp))
			}

			return
		}

		m.userEvents.WithLabelValues(event).Inc()
	}
}

func (m *AppMetrics) RecordRepositoryOperation(ctx context.Context, operation, entity string, err error) {
	outcome := "ok"

	if err != nil {
		outcome = "error"
	}

	m.repositoryOperations.WithLabelValues(operation, entity, outcome).Inc()
}

func (m *AppMetrics) RecordRateLimitHit(ctx context.Context, route, keyType string) {
	m.rateLimitDecisions.WithLabelValues(route, keyType, "rejected").Inc()
}

func (m *AppMetrics) RecordRateLimitAllowed(ctx context.Context, route, keyType string) {
	m.rateLimitDecisions.WithLabelValues(route, keyType, "allowed").Inc()
}

func (m *AppMetrics) RecordCacheHit(ctx context.Context, route string) {
	m.responseCacheLookups.WithLabelValues(route, "hit").Inc()
}

func (m *AppMetrics) RecordCacheMiss(ctx context.Context, route string) {
	m.responseCacheLookups.WithLabelValues(route, "miss").Inc()
}
