package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"activityapp/pkg/config"
	ct "activityapp/pkg/context"
	"activityapp/pkg/tracing"
)

func LoggingMiddleware(logger *config.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		ctx := c.Request.Context()
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("request_id", ct.RequestID(ctx)),
		}

		if traceID := tracing.GetTraceID(ctx); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		if userID, ok := c.Get(UserIDKey); ok {
			fields = append(fields, zap.Any("user_id", userID))
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if status >= 500 {
			logger.ErrorWithTrace(ctx, "HTTP Request", fields...)
			return
		}

		logger.InfoWithTrace(ctx, "HTTP Request", fields...)
	}
}
