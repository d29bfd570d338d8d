package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Pinger checks that a dependency is reachable
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the service can reach its database
type HealthHandler struct {
	BaseHandler
	db Pinger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
}

// Health handles GET /health
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}
