package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quiz-app/internal/response"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is a backend that can confirm it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the question store and the session store respond.
type HealthHandler struct {
	database     Pinger
	sessionStore Pinger
	log          zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(database, sessionStore Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		database:     database,
		sessionStore: sessionStore,
		log:          log.With().Str("component", "health_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Round-trips to both stores. 200 when both answer, 500 with the first error otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		h.unhealthy(c, "database", err)
		return
	}
	if err := h.sessionStore.Ping(ctx); err != nil {
		h.unhealthy(c, "session_store", err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":        "healthy",
		"database":      "connected",
		"session_store": "connected",
	})
}

func (h *HealthHandler) unhealthy(c *gin.Context, backend string, err error) {
	h.log.Error().Err(err).Str("backend", backend).Msg("health check failed")
	response.FailWithData(c, http.StatusInternalServerError, response.ErrUnhealthy, gin.H{
		"status": "unhealthy",
		"error":  err.Error(),
	})
}
