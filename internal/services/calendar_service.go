package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// graphLocalLayout is the wall-clock form Graph uses for DateTimeTimeZone values
const graphLocalLayout = "2006-01-02T15:04:05"

// CalendarProvider is the interface that wraps event operations on the shared calendar
type CalendarProvider interface {
	// CreateEvent creates event in the calendar of userEmail and returns it with its provider id.
	CreateEvent(ctx context.Context, userEmail string, event *models.OutlookEvent) (*models.OutlookEvent, error)
	// GetEvent fetches a live event. An event removed at the provider yields errs.ErrProviderNotFound.
	GetEvent(ctx context.Context, userEmail, eventID string) (*models.OutlookEvent, error)
	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, userEmail, eventID string) error
}

// MappingRepository is the interface that wraps access to the delius_outlook_mappings table
type MappingRepository interface {
	// Upsert stores the Outlook id for a URN, replacing any previous one.
	Upsert(ctx context.Context, supervisionAppointmentURN, outlookID string) error
	// FindBySupervisionAppointmentURN returns nil without error when the URN is unmapped.
	FindBySupervisionAppointmentURN(ctx context.Context, supervisionAppointmentURN string) (*models.DeliusOutlookMapping, error)
	// FindByOutlookID returns nil without error when the event id is unmapped.
	FindByOutlookID(ctx context.Context, outlookID string) (*models.DeliusOutlookMapping, error)
}

// ReminderNotifier is the interface that wraps the optional SMS reminder for a scheduled appointment
type ReminderNotifier interface {
	// Notify never fails; send problems are recorded by the notifier itself.
	Notify(ctx context.Context, req *models.EventRequest)
}

type calendarService struct {
	provider  CalendarProvider
	repo      MappingRepository
	notifier  ReminderNotifier
	telemetry Telemetry
	fromEmail string
	location  *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewCalendarService creates the service scheduling supervision appointments in the calendar of fromEmail.
//
// Events are written in the "location" time zone.
func NewCalendarService(provider CalendarProvider, repo MappingRepository, notifier ReminderNotifier, telemetry Telemetry, fromEmail string, location *time.Location, logger *zap.Logger) *calendarService {
	if location == nil {
		location = time.UTC
	}
	return &calendarService{
		provider:  provider,
		repo:      repo,
		notifier:  notifier,
		telemetry: telemetry,
		fromEmail: fromEmail,
		location:  location,
		now:       time.Now,
		logger:    logger,
	}
}

// SendEvent creates the calendar event for an appointment and records its Outlook id.
//
// Appointments starting before now are not sent to the provider; the returned response has a nil ID
// so the caller knows to handle the appointment manually. A nil response with no error means the
// provider accepted the request but returned no event id.
func (s *calendarService) SendEvent(ctx context.Context, req *models.EventRequest) (*models.EventResponse, error) {
	if err := validateEventRequest(req); err != nil {
		return nil, err
	}

	if req.Start.Before(s.now()) {
		s.telemetry.TrackEvent(EventAppointmentInPastNotCreated, map[string]string{
			"supervisionAppointmentUrn": req.SupervisionAppointmentURN,
			"start":                     req.Start.Format(time.RFC3339),
		})
		return &models.EventResponse{
			ID:        nil,
			Subject:   req.Subject,
			StartDate: req.Start.Format(time.RFC3339),
			EndDate:   req.End().Format(time.RFC3339),
			Attendees: req.RecipientEmails(),
		}, nil
	}

	created, err := s.provider.CreateEvent(ctx, s.fromEmail, s.BuildEvent(req))
	if err != nil {
		s.logger.Error("failed to create outlook event",
			zap.String("supervision_appointment_urn", req.SupervisionAppointmentURN),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}
	if created == nil || created.ID == "" {
		s.telemetry.TrackEvent(EventOutlookEventCreationFailure, map[string]string{
			"supervisionAppointmentUrn": req.SupervisionAppointmentURN,
		})
		return nil, nil
	}

	if err := s.repo.Upsert(ctx, req.SupervisionAppointmentURN, created.ID); err != nil {
		return nil, fmt.Errorf("failed to save event mapping: %w", err)
	}

	s.notifier.Notify(ctx, req)

	return toEventResponse(created, created.ID), nil
}

// RescheduleEvent removes the event of the old appointment, if it is still upcoming, and sends the new one
func (s *calendarService) RescheduleEvent(ctx context.Context, req *models.RescheduleEventRequest) (*models.EventResponse, error) {
	if strings.TrimSpace(req.OldSupervisionAppointmentURN) == "" {
		return nil, errs.Validation("oldSupervisionAppointmentUrn is required")
	}
	if err := validateEventRequest(&req.RescheduledEventRequest); err != nil {
		return nil, err
	}

	if err := s.deleteUpcomingEvent(ctx, req.OldSupervisionAppointmentURN); err != nil {
		return nil, err
	}

	return s.SendEvent(ctx, &req.RescheduledEventRequest)
}

// deleteUpcomingEvent deletes the event mapped to urn unless it is missing, already removed
// at the provider, or already started.
func (s *calendarService) deleteUpcomingEvent(ctx context.Context, urn string) error {
	mapping, event, err := s.findLiveEvent(ctx, urn)
	if err != nil {
		return err
	}
	if mapping == nil || event == nil {
		s.logger.Info("no live event to remove before reschedule", zap.String("supervision_appointment_urn", urn))
		return nil
	}

	start, err := parseEventTime(event.Start, s.location)
	if err != nil {
		return fmt.Errorf("failed to read start of event %s: %w", mapping.OutlookID, err)
	}
	if start.Before(s.now()) {
		return nil
	}

	if err := s.provider.DeleteEvent(ctx, s.fromEmail, mapping.OutlookID); err != nil {
		s.logger.Error("failed to delete outlook event",
			zap.String("supervision_appointment_urn", urn),
			zap.String("outlook_id", mapping.OutlookID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to delete previous calendar event: %w", err)
	}
	return nil
}

// BuildEvent maps an appointment onto the Outlook event schema
func (s *calendarService) BuildEvent(req *models.EventRequest) *models.OutlookEvent {
	zone := s.location.String()
	return &models.OutlookEvent{
		Subject: req.Subject,
		Body: &models.ItemBody{
			ContentType: models.BodyTypeHTML,
			Content:     req.Message,
		},
		Start: &models.DateTimeTimeZone{
			DateTime: req.Start.In(s.location).Format(graphLocalLayout),
			TimeZone: zone,
		},
		End: &models.DateTimeTimeZone{
			DateTime: req.End().In(s.location).Format(graphLocalLayout),
			TimeZone: zone,
		},
		Attendees: s.GetAttendees(req.Recipients),
	}
}

// GetAttendees maps recipients to required attendees
func (s *calendarService) GetAttendees(recipients []models.Recipient) []models.Attendee {
	attendees := make([]models.Attendee, 0, len(recipients))
	for _, r := range recipients {
		attendees = append(attendees, models.Attendee{
			EmailAddress: models.EmailAddress{Address: r.EmailAddress, Name: r.Name},
			Type:         models.AttendeeTypeRequired,
		})
	}
	return attendees
}

// GetEventDetailsMappings returns the mapping stored for a URN
func (s *calendarService) GetEventDetailsMappings(ctx context.Context, urn string) (*models.DeliusOutlookMappingResponse, error) {
	if strings.TrimSpace(urn) == "" {
		return nil, errs.Validation("supervisionAppointmentUrn is required")
	}

	mapping, err := s.repo.FindBySupervisionAppointmentURN(ctx, urn)
	if err != nil {
		return nil, fmt.Errorf("failed to get event mapping: %w", err)
	}
	if mapping == nil {
		return nil, errs.NewNotFound("DeliusOutlookMapping", "supervisionAppointmentUrn", urn)
	}
	return mapping.ToResponse(), nil
}

// GetEventDetailsMappingsByOutlookID returns the mapping stored for an Outlook event id
func (s *calendarService) GetEventDetailsMappingsByOutlookID(ctx context.Context, outlookID string) (*models.DeliusOutlookMappingResponse, error) {
	if strings.TrimSpace(outlookID) == "" {
		return nil, errs.Validation("outlookId is required")
	}

	mapping, err := s.repo.FindByOutlookID(ctx, outlookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event mapping: %w", err)
	}
	if mapping == nil {
		return nil, errs.NewNotFound("DeliusOutlookMapping", "outlookId", outlookID)
	}
	return mapping.ToResponse(), nil
}

// GetEventDetails fetches the live event for a URN.
//
// An unmapped URN is a NotFoundError. A nil response with no error means the event was removed at the provider.
func (s *calendarService) GetEventDetails(ctx context.Context, urn string) (*models.EventResponse, error) {
	if strings.TrimSpace(urn) == "" {
		return nil, errs.Validation("supervisionAppointmentUrn is required")
	}

	mapping, event, err := s.findLiveEvent(ctx, urn)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, errs.NewNotFound("DeliusOutlookMapping", "supervisionAppointmentUrn", urn)
	}
	if event == nil {
		return nil, nil
	}
	return toEventResponse(event, mapping.OutlookID), nil
}

// FindEventDetails is GetEventDetails for callers that treat an unmapped URN like a removed event
func (s *calendarService) FindEventDetails(ctx context.Context, urn string) (*models.EventResponse, error) {
	mapping, event, err := s.findLiveEvent(ctx, urn)
	if err != nil || mapping == nil || event == nil {
		return nil, err
	}
	return toEventResponse(event, mapping.OutlookID), nil
}

// findLiveEvent resolves urn to its mapping and fetches the event. Either result is nil when missing.
func (s *calendarService) findLiveEvent(ctx context.Context, urn string) (*models.DeliusOutlookMapping, *models.OutlookEvent, error) {
	mapping, err := s.repo.FindBySupervisionAppointmentURN(ctx, urn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get event mapping: %w", err)
	}
	if mapping == nil {
		return nil, nil, nil
	}

	event, err := s.provider.GetEvent(ctx, s.fromEmail, mapping.OutlookID)
	if err != nil {
		// the event may have been deleted in Outlook
		if errors.Is(err, errs.ErrProviderNotFound) {
			return mapping, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to get calendar event: %w", err)
	}
	return mapping, event, nil
}

func toEventResponse(event *models.OutlookEvent, fallbackID string) *models.EventResponse {
	id := event.ID
	if id == "" {
		id = fallbackID
	}

	resp := &models.EventResponse{
		ID:        &id,
		Subject:   event.Subject,
		Attendees: make([]string, 0, len(event.Attendees)),
	}
	if event.Start != nil {
		resp.StartDate = event.Start.DateTime
	}
	if event.End != nil {
		resp.EndDate = event.End.DateTime
	}
	for _, a := range event.Attendees {
		if a.EmailAddress.Address != "" {
			resp.Attendees = append(resp.Attendees, a.EmailAddress.Address)
		}
	}
	return resp
}

// parseEventTime reads a Graph date-time, which is either RFC 3339 or a wall-clock time in dt.TimeZone
func parseEventTime(dt *models.DateTimeTimeZone, fallback *time.Location) (time.Time, error) {
	if dt == nil || dt.DateTime == "" {
		return time.Time{}, errors.New("event has no date-time")
	}
	if t, err := time.Parse(time.RFC3339Nano, dt.DateTime); err == nil {
		return t, nil
	}

	loc := fallback
	if dt.TimeZone != "" {
		if l, err := time.LoadLocation(dt.TimeZone); err == nil {
			loc = l
		}
	}
	// fractional seconds after the seconds field are accepted without appearing in the layout
	t, err := time.ParseInLocation(graphLocalLayout, dt.DateTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date-time %q: %w", dt.DateTime, err)
	}
	return t, nil
}

func validateEventRequest(req *models.EventRequest) error {
	if len(req.Recipients) == 0 {
		return errs.Validation("at least one recipient is required")
	}
	for i, r := range req.Recipients {
		if strings.TrimSpace(r.EmailAddress) == "" {
			return errs.Validation("recipients[%d].emailAddress is required", i)
		}
	}
	if strings.TrimSpace(req.Subject) == "" {
		return errs.Validation("subject is required")
	}
	if req.Start.IsZero() {
		return errs.Validation("start is required")
	}
	if req.DurationInMinutes < 0 {
		return errs.Validation("durationInMinutes must not be negative")
	}
	if strings.TrimSpace(req.SupervisionAppointmentURN) == "" {
		return errs.Validation("supervisionAppointmentUrn is required")
	}

	if sms := req.SmsEventRequest; sms != nil {
		if strings.TrimSpace(sms.FirstName) == "" {
			return errs.Validation("smsEventRequest.firstName is required")
		}
		if _, err := models.ParseSmsLanguage(string(sms.SmsLanguage)); err != nil {
			return errs.Validation("smsEventRequest.smsLanguage: %v", err)
		}
	}
	return nil
}
