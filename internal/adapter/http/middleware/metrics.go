package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"activityapp/internal/core/telemetry"
	"activityapp/pkg/tracing"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		metrics.RequestStarted(ctx)
		defer metrics.RequestFinished(ctx)

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = "unmatched"
		}

		status := c.Writer.Status()

		tracing.AddHTTPAttributes(trace.SpanFromContext(ctx), c.Request.Method, path, status)
		metrics.RecordRequest(ctx, c.Request.Method, path, strconv.Itoa(status), time.Since(start))
	}
}
