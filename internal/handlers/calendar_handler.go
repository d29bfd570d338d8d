package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/probationsupervision/appointments-api/internal/middleware"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// CalendarService is the interface that wraps methods for scheduling supervision appointments.
type CalendarService interface {
	// Method SendEvent creates the Outlook event for an appointment.
	//
	// Appointments in the past are not created; the response then has a nil ID.
	// A nil response with a nil error means the provider did not return an event id.
	SendEvent(ctx context.Context, req *models.EventRequest) (*models.EventResponse, error)
	// Method RescheduleEvent removes the upcoming event of the old appointment and creates the new one.
	RescheduleEvent(ctx context.Context, req *models.RescheduleEventRequest) (*models.EventResponse, error)
	// Method GetEventDetails fetches the live event of an appointment.
	//
	// An unmapped URN yields a NotFoundError; a nil response means the event was removed in Outlook.
	GetEventDetails(ctx context.Context, urn string) (*models.EventResponse, error)
	// Method GetEventDetailsMappings returns the stored mapping for an appointment URN.
	GetEventDetailsMappings(ctx context.Context, urn string) (*models.DeliusOutlookMappingResponse, error)
	// Method GetEventDetailsMappingsByOutlookID returns the stored mapping for an Outlook event id.
	GetEventDetailsMappingsByOutlookID(ctx context.Context, outlookID string) (*models.DeliusOutlookMappingResponse, error)
}

// CalendarHandler handles HTTP requests for calendar events
type CalendarHandler struct {
	BaseHandler
	service CalendarService
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(svc CalendarService, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service:     svc,
		BaseHandler: BaseHandler{logger: logger},
	}
}

// RegisterRoutes registers all calendar handler routes
func (h *CalendarHandler) RegisterRoutes(r chi.Router) {
	r.Route("/calendar", func(r chi.Router) {
		r.Post("/event", h.SendEvent)
		r.Get("/event", h.GetEventDetails)
		r.Post("/event/reschedule", h.RescheduleEvent)
		r.Get("/event/by-outlook-id", h.GetEventMappingByOutlookID)
		r.Get("/event-mapping", h.GetEventMapping)
	})
}

// SendEvent handles POST /calendar/event
// @Summary Create an Outlook event for a supervision appointment
// @Description Appointments starting in the past are not created and are returned with a null id
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body models.EventRequest true "Appointment"
// @Success 201 {object} models.EventResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/event [post]
func (h *CalendarHandler) SendEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.SendEvent(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "failed to create calendar event")
		return
	}

	h.logEvent(r, "calendar event requested", req.SupervisionAppointmentURN, resp)
	h.respondJSON(w, http.StatusCreated, resp)
}

// RescheduleEvent handles POST /calendar/event/reschedule
// @Summary Reschedule a supervision appointment
// @Description Deletes the Outlook event of the old appointment if it has not started yet, then creates the new one
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body models.RescheduleEventRequest true "Reschedule request"
// @Success 200 {object} models.EventResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/event/reschedule [post]
func (h *CalendarHandler) RescheduleEvent(w http.ResponseWriter, r *http.Request) {
	var req models.RescheduleEventRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.RescheduleEvent(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "failed to reschedule calendar event")
		return
	}

	h.logEvent(r, "calendar event rescheduled", req.RescheduledEventRequest.SupervisionAppointmentURN, resp)
	h.respondJSON(w, http.StatusOK, resp)
}

// GetEventDetails handles GET /calendar/event
// @Summary Get the live Outlook event of a supervision appointment
// @Tags calendar
// @Produce json
// @Param supervisionAppointmentUrn query string true "Supervision appointment URN"
// @Success 200 {object} models.EventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/event [get]
func (h *CalendarHandler) GetEventDetails(w http.ResponseWriter, r *http.Request) {
	urn := r.URL.Query().Get("supervisionAppointmentUrn")

	resp, err := h.service.GetEventDetails(r.Context(), urn)
	if err != nil {
		h.respondServiceError(w, err, "failed to get calendar event")
		return
	}
	if resp == nil {
		h.respondError(w, http.StatusNotFound, "Not found: Outlook event for supervisionAppointmentUrn "+urn+" no longer exists")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetEventMapping handles GET /calendar/event-mapping
// @Summary Get the Outlook event id stored for a supervision appointment
// @Tags calendar
// @Produce json
// @Param supervisionAppointmentUrn query string true "Supervision appointment URN"
// @Success 200 {object} models.DeliusOutlookMappingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/event-mapping [get]
func (h *CalendarHandler) GetEventMapping(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetEventDetailsMappings(r.Context(), r.URL.Query().Get("supervisionAppointmentUrn"))
	if err != nil {
		h.respondServiceError(w, err, "failed to get event mapping")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// GetEventMappingByOutlookID handles GET /calendar/event/by-outlook-id
// @Summary Get the supervision appointment stored for an Outlook event id
// @Tags calendar
// @Produce json
// @Param outlookId query string true "Outlook event id"
// @Success 200 {object} models.DeliusOutlookMappingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /calendar/event/by-outlook-id [get]
func (h *CalendarHandler) GetEventMappingByOutlookID(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetEventDetailsMappingsByOutlookID(r.Context(), r.URL.Query().Get("outlookId"))
	if err != nil {
		h.respondServiceError(w, err, "failed to get event mapping")
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

func (h *CalendarHandler) logEvent(r *http.Request, msg, urn string, resp *models.EventResponse) {
	fields := []zap.Field{
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.String("supervision_appointment_urn", urn),
	}
	if principal, ok := middleware.GetPrincipal(r.Context()); ok {
		fields = append(fields, zap.String("client", principal.Subject))
	}
	switch {
	case resp == nil:
		fields = append(fields, zap.String("outcome", "no event id returned"))
	case resp.ID == nil:
		fields = append(fields, zap.String("outcome", "not created, start in the past"))
	default:
		fields = append(fields, zap.String("outlook_id", *resp.ID))
	}
	h.logger.Info(msg, fields...)
}
