package response

import (
	"bytes"
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"activityapp/internal/core/port"
	"activityapp/internal/core/telemetry"
	"activityapp/internal/core/util"
	. "activityapp/pkg"
	"activityapp/pkg/config"
	. "activityapp/pkg/tracing"
)

// ResponseCache replays successful GET responses for a short TTL. Entries are
// keyed per user, and a successful mutation by that user drops them. The
// store is shared, so with Redis every instance sees the invalidation.
type ResponseCache struct {
	store   port.CacheRepository
	config  map[string]config.CacheConfig
	logger  *zap.Logger
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Timestamp   time.Time
}

const keyPrefix = "response:"

func NewResponseCache(store port.CacheRepository, logger *zap.Logger, metrics *telemetry.AppMetrics, configs map[string]config.CacheConfig) *ResponseCache {
	rc := &ResponseCache{
		store: store,
		config: map[string]config.CacheConfig{
			"default": {Enabled: false},
		},
		logger:  logger,
		metrics: metrics,
	}

	for path, cfg := range configs {
		rc.config[path] = cfg
	}

	return rc
}

func (rc *ResponseCache) CacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()

			if c.Writer.Status() < http.StatusBadRequest {
				rc.invalidate(c)
			}

			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rc.config[path]

		if !exists {
			cfg = rc.config["default"]
		}

		if !cfg.Enabled {
			c.Next()
			return
		}

		cacheKey := rc.generateCacheKey(c, path)

		if cached, found := rc.lookup(c.Request.Context(), cacheKey); found {
			age := time.Since(cached.Timestamp)

			_, span := CreateChildSpan(c.Request.Context(), "cache.response.hit", []attribute.KeyValue{
				attribute.String("cache.path", path),
				attribute.String("cache.age", age.String()),
			})
			span.End()

			if rc.metrics != nil {
				rc.metrics.RecordCacheHit(c.Request.Context(), path)
			}

			c.Header("X-Cache", "HIT")
			c.Header("X-Cache-Age", fmt.Sprintf("%.0f", age.Seconds()))
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer
		c.Header("X-Cache", "MISS")

		c.Next()

		if status := writer.Status(); status >= 200 && status < 300 {
			rc.save(c.Request.Context(), cacheKey, CachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
				Timestamp:   time.Now(),
			}, cfg.TTL)
		}
	}
}

func (rc *ResponseCache) lookup(ctx context.Context, key string) (CachedResponse, bool) {
	data, err := rc.store.Get(ctx, key)

	if err != nil {
		if !errors.Is(err, port.ErrCacheMiss) {
			rc.logger.Warn("Response cache read failed", zap.String("key", key), zap.Error(err))
		}

		return CachedResponse{}, false
	}

	cached, err := util.Deserialize[CachedResponse](data)

	if err != nil {
		rc.logger.Warn("Dropping unreadable cached response", zap.String("key", key), zap.Error(err))

		if err := rc.store.Delete(ctx, key); err != nil {
			rc.logger.Warn("Response cache delete failed", zap.String("key", key), zap.Error(err))
		}

		return CachedResponse{}, false
	}

	return cached, true
}

func (rc *ResponseCache) save(ctx context.Context, key string, cached CachedResponse, ttl time.Duration) {
	data, err := util.Serialize(cached)

	if err == nil {
		err = rc.store.Set(ctx, key, data, ttl)
	}

	if err != nil {
		rc.logger.Warn("Response cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func identity(c *gin.Context) string {
	if userID, exists := c.Get("x-user-id"); exists {
		return fmt.Sprintf("user_%v", userID)
	}

	return "ip_" + GetClientIP(c)
}

func (rc *ResponseCache) generateCacheKey(c *gin.Context, path string) string {
	keyString := strings.Join([]string{path, c.Request.URL.RawQuery}, "|")
	hash := md5.Sum([]byte(keyString))

	return fmt.Sprintf("%s%s:%s:%x", keyPrefix, identity(c), path, hash)
}

func (rc *ResponseCache) invalidate(c *gin.Context) {
	if _, exists := c.Get("x-user-id"); !exists {
		return
	}

	prefix := keyPrefix + identity(c) + ":"

	if err := rc.store.DeleteByPrefix(c.Request.Context(), prefix); err != nil {
		rc.logger.Warn("Cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}

	rc.logger.Debug("Cache invalidated", zap.String("prefix", prefix))
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
