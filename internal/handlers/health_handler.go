package handlers

import (
	"context"
	"net/http"
	"time"

	"disccount_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports whether the database answers.
type HealthHandler struct {
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check godoc
// @Summary      Liveness and database check
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      503 {object} map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.CtxWithError(c.Request.Context(), "Health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
