package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"activityapp/internal/core/port"
	"activityapp/internal/core/telemetry"
	"activityapp/pkg/config"
	"activityapp/pkg/response"
)

func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *config.Logger, cfg *config.AppConfig) {
	router.Use(gin.Recovery())
	router.Use(config.NewHTTPSEnforcer(logger.Zap(), cfg.EnforceHTTPS).HTTPSMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.TelemetryEnabled {
		router.Use(otelgin.Middleware(serviceName))
	}

	router.Use(CurrentMiddleware())
	router.Use(LoggingMiddleware(logger))

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	if cfg.RateLimitEnabled {
		rateLimiter := config.NewRateLimiter(logger.Zap(), metrics, cfg.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}
}

// ResponseCache is mounted on the authenticated group so entries are keyed by user.
func ResponseCache(store port.CacheRepository, logger *config.Logger, metrics *telemetry.AppMetrics, cfg *config.AppConfig) gin.HandlerFunc {
	if !cfg.CacheEnabled || store == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return response.NewResponseCache(store, logger.Zap(), metrics, cfg.CacheConfigs).CacheMiddleware()
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader, "X-Cache", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cfg
}
