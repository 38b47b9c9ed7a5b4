package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	. "activityapp/internal/adapter/http/helper"
	. "activityapp/pkg/tracing"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := SpanWrapper(ctx, "health.database", nil, h.db.PingContext); err != nil {
		c.Error(err)
		SendError(c, http.StatusServiceUnavailable, "Banco de dados indisponível")
		return
	}

	SendSuccess(c, http.StatusOK, gin.H{"status": "ok"})
}
