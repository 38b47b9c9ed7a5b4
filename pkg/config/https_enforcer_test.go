package config

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHTTPSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	enforcer := NewHTTPSEnforcer(zap.NewNop(), true)

	router := gin.New()
	router.Use(enforcer.HTTPSMiddleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(host string, prepare func(*http.Request)) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Host = host

		if prepare != nil {
			prepare(req)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		return w
	}

	w := send("api.example.com", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://api.example.com/health", w.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, send("api.example.com", func(r *http.Request) {
		r.Header.Set("X-Forwarded-Proto", "https")
	}).Code)

	assert.Equal(t, http.StatusOK, send("api.example.com", func(r *http.Request) {
		r.TLS = &tls.ConnectionState{}
	}).Code)

	assert.Equal(t, http.StatusOK, send("localhost:8080", nil).Code)

	enforcer.SetEnabled(false)
	assert.False(t, enforcer.IsEnabled())
	assert.Equal(t, http.StatusOK, send("api.example.com", nil).Code)
}
