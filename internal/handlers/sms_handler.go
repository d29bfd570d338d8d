package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// SmsPreviewService is the interface that wraps rendering of appointment reminders.
type SmsPreviewService interface {
	// Method GeneratePreview renders the English reminder and, if requested, the Welsh one.
	//
	// An unconfigured template yields a NotFoundError.
	GeneratePreview(ctx context.Context, req *models.SmsPreviewRequest) (*models.SmsPreviewResponse, error)
}

// SmsHandler handles HTTP requests for SMS reminders
type SmsHandler struct {
	BaseHandler
	service SmsPreviewService
}

// NewSmsHandler creates a new SMS handler
func NewSmsHandler(svc SmsPreviewService, logger *zap.Logger) *SmsHandler {
	return &SmsHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all SMS handler routes
func (h *SmsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sms/preview", h.Preview)
}

// Preview handles POST /sms/preview
// @Summary Preview the appointment reminder text
// @Tags sms
// @Accept json
// @Produce json
// @Param request body models.SmsPreviewRequest true "Preview request"
// @Success 200 {object} models.SmsPreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /sms/preview [post]
func (h *SmsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.SmsPreviewRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.GeneratePreview(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "failed to generate sms preview")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}
