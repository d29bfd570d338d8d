package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for directory lookups.
type UserService interface {
	// Method GetUsers returns "<user principal name>, <job title>" for each enabled member with a mailbox.
	//
	// A blank query lists every such user.
	GetUsers(ctx context.Context, query string) ([]string, error)
	CountUsers(ctx context.Context) (int, error)
}

// UserHandler handles HTTP requests for directory users
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/search", h.GetUsers)
		r.Get("/count", h.CountUsers)
	})
}

// GetUsers handles GET /users/search
// @Summary Search directory users
// @Tags users
// @Produce json
// @Param query query string false "Matched against display name, mail and user principal name"
// @Success 200 {array} string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /users/search [get]
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.respondServiceError(w, err, "failed to search users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// CountUsers handles GET /users/count
// @Summary Count enabled directory members
// @Tags users
// @Produce json
// @Success 200 {integer} int
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /users/count [get]
func (h *UserHandler) CountUsers(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountUsers(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "failed to count users")
		return
	}

	h.respondJSON(w, http.StatusOK, count)
}
