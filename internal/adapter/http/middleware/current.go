package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ct "activityapp/pkg/context"
)

const (
	currentKey      = "current"
	requestIDHeader = "X-Request-ID"
)

func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := ct.NewCurrent()

		requestID := c.GetHeader(requestIDHeader)

		if requestID == "" {
			requestID = uuid.New().String()
		}

		current.Set(ct.RequestIDKey, requestID)
		current.Set(ct.UserAgentKey, c.Request.UserAgent())
		current.Set(ct.IPAddressKey, c.ClientIP())

		c.Header(requestIDHeader, requestID)
		c.Set(currentKey, current)
		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))

		c.Next()
	}
}

func GetCurrent(c *gin.Context) *ct.Current {
	if current, ok := c.Get(currentKey); ok {
		if curr, ok := current.(*ct.Current); ok {
			return curr
		}
	}

	return ct.GetCurrent(c.Request.Context())
}
