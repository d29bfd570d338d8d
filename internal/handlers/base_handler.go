package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/probationsupervision/appointments-api/internal/errs"
	"go.uber.org/zap"
)

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// respondServiceError maps a service error onto a status code.
// Errors of unknown kind are logged and reported as fallback with a 500.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var notFound *errs.NotFoundError
	switch {
	case errors.As(err, &notFound):
		h.respondError(w, http.StatusNotFound, "Not found: "+notFound.Error())
	case errors.Is(err, errs.ErrValidation):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(fallback, zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON reads the request body into dst, writing a 400 or 413 response when it cannot
func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		h.logger.Debug("failed to decode request body", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
