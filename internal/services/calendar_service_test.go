package services

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/probationsupervision/appointments-api/internal/errs"
	"github.com/probationsupervision/appointments-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testFromEmail = "MPoP-Digital-Team@justice.gov.uk"

var testNow = time.Date(2040, 6, 1, 12, 0, 0, 0, time.UTC)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

// setupCalendarService creates a service whose clock is fixed at testNow
func setupCalendarService(t *testing.T, provider *mockCalendarProvider, repo *mockMappingRepository, notifier *mockNotifier, telemetry *mockTelemetry) *calendarService {
	t.Helper()
	svc := NewCalendarService(provider, repo, notifier, telemetry, testFromEmail, london(t), zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func newEventRequest(start time.Time) *models.EventRequest {
	return &models.EventRequest{
		Recipients:                []models.Recipient{{EmailAddress: "officer@example.com", Name: "Officer"}},
		Message:                   "<p>Supervision appointment</p>",
		Subject:                   "3 Way Meeting (NS)",
		Start:                     start,
		DurationInMinutes:         30,
		SupervisionAppointmentURN: "urn:uk:gov:hmpps:manage-supervision-service:appointment:1",
	}
}

func TestNewCalendarService(t *testing.T) {
	logger := zap.NewNop()
	provider := &mockCalendarProvider{}
	repo := &mockMappingRepository{}
	notifier := &mockNotifier{}
	telemetry := &mockTelemetry{}

	svc := NewCalendarService(provider, repo, notifier, telemetry, testFromEmail, nil, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, provider, svc.provider)
	assert.Equal(t, repo, svc.repo)
	assert.Equal(t, testFromEmail, svc.fromEmail)
	assert.Equal(t, time.UTC, svc.location)
	assert.NotNil(t, svc.now)
	assert.Equal(t, logger, svc.logger)
}

func TestCalendarService_SendEvent(t *testing.T) {
	future := testNow.Add(24 * time.Hour)
	createdEvent := &models.OutlookEvent{
		ID:      "outlook-1",
		Subject: "3 Way Meeting (NS)",
		Start:   &models.DateTimeTimeZone{DateTime: "2040-06-02T13:00:00.0000000", TimeZone: "Europe/London"},
		End:     &models.DateTimeTimeZone{DateTime: "2040-06-02T13:30:00.0000000", TimeZone: "Europe/London"},
		Attendees: []models.Attendee{
			{EmailAddress: models.EmailAddress{Address: "officer@example.com"}},
		},
	}

	t.Run("future appointment creates one event and one mapping", func(t *testing.T) {
		provider := &mockCalendarProvider{created: createdEvent}
		repo := &mockMappingRepository{}
		notifier := &mockNotifier{}
		telemetry := &mockTelemetry{}
		svc := setupCalendarService(t, provider, repo, notifier, telemetry)
		req := newEventRequest(future)

		resp, err := svc.SendEvent(context.Background(), req)

		require.NoError(t, err)
		require.NotNil(t, resp)
		require.NotNil(t, resp.ID)
		assert.Equal(t, "outlook-1", *resp.ID)
		assert.Equal(t, "2040-06-02T13:00:00.0000000", resp.StartDate)
		assert.Equal(t, []string{"officer@example.com"}, resp.Attendees)
		assert.Equal(t, 1, provider.createCalls)
		assert.Equal(t, map[string]string{req.SupervisionAppointmentURN: "outlook-1"}, repo.upserts)
		assert.Len(t, notifier.notified, 1)
		assert.Empty(t, telemetry.events)
	})

	t.Run("start exactly now counts as future", func(t *testing.T) {
		provider := &mockCalendarProvider{created: createdEvent}
		repo := &mockMappingRepository{}
		svc := setupCalendarService(t, provider, repo, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.SendEvent(context.Background(), newEventRequest(testNow))

		require.NoError(t, err)
		require.NotNil(t, resp.ID)
		assert.Equal(t, 1, provider.createCalls)
		assert.Len(t, repo.upserts, 1)
	})

	t.Run("past appointment never reaches the provider", func(t *testing.T) {
		provider := &mockCalendarProvider{created: createdEvent}
		repo := &mockMappingRepository{}
		notifier := &mockNotifier{}
		telemetry := &mockTelemetry{}
		svc := setupCalendarService(t, provider, repo, notifier, telemetry)
		start := testNow.Add(-time.Nanosecond)

		resp, err := svc.SendEvent(context.Background(), newEventRequest(start))

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Nil(t, resp.ID)
		assert.Equal(t, "3 Way Meeting (NS)", resp.Subject)
		assert.Equal(t, start.Format(time.RFC3339), resp.StartDate)
		assert.Equal(t, start.Add(30*time.Minute).Format(time.RFC3339), resp.EndDate)
		assert.Equal(t, []string{"officer@example.com"}, resp.Attendees)
		assert.Equal(t, 0, provider.createCalls)
		assert.Empty(t, repo.upserts)
		assert.Empty(t, notifier.notified)
		assert.Equal(t, []string{EventAppointmentInPastNotCreated}, telemetry.events)
	})

	t.Run("provider returns no id", func(t *testing.T) {
		provider := &mockCalendarProvider{created: &models.OutlookEvent{}}
		repo := &mockMappingRepository{}
		notifier := &mockNotifier{}
		telemetry := &mockTelemetry{}
		svc := setupCalendarService(t, provider, repo, notifier, telemetry)

		resp, err := svc.SendEvent(context.Background(), newEventRequest(future))

		assert.NoError(t, err)
		assert.Nil(t, resp)
		assert.Empty(t, repo.upserts)
		assert.Empty(t, notifier.notified)
		assert.Equal(t, []string{EventOutlookEventCreationFailure}, telemetry.events)
	})

	t.Run("provider error propagates", func(t *testing.T) {
		provider := &mockCalendarProvider{createErr: errors.New("graph returned status 503")}
		repo := &mockMappingRepository{}
		svc := setupCalendarService(t, provider, repo, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.SendEvent(context.Background(), newEventRequest(future))

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Empty(t, repo.upserts)
	})

	t.Run("mapping save error skips reminder", func(t *testing.T) {
		provider := &mockCalendarProvider{created: createdEvent}
		repo := &mockMappingRepository{upsertErr: errors.New("database error")}
		notifier := &mockNotifier{}
		svc := setupCalendarService(t, provider, repo, notifier, &mockTelemetry{})

		resp, err := svc.SendEvent(context.Background(), newEventRequest(future))

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Empty(t, notifier.notified)
	})
}

func TestCalendarService_SendEvent_Validation(t *testing.T) {
	future := testNow.Add(time.Hour)

	tests := []struct {
		name   string
		mutate func(*models.EventRequest)
	}{
		{name: "no recipients", mutate: func(r *models.EventRequest) { r.Recipients = nil }},
		{name: "blank recipient email", mutate: func(r *models.EventRequest) { r.Recipients[0].EmailAddress = " " }},
		{name: "blank subject", mutate: func(r *models.EventRequest) { r.Subject = "" }},
		{name: "missing start", mutate: func(r *models.EventRequest) { r.Start = time.Time{} }},
		{name: "negative duration", mutate: func(r *models.EventRequest) { r.DurationInMinutes = -1 }},
		{name: "blank urn", mutate: func(r *models.EventRequest) { r.SupervisionAppointmentURN = "  " }},
		{name: "sms without first name", mutate: func(r *models.EventRequest) {
			r.SmsEventRequest = &models.SmsEventRequest{SmsOptIn: true, MobileNumber: "07700900000"}
		}},
		{name: "sms with unknown language", mutate: func(r *models.EventRequest) {
			r.SmsEventRequest = &models.SmsEventRequest{FirstName: "John", SmsLanguage: "FRENCH"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockCalendarProvider{}
			svc := setupCalendarService(t, provider, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})
			req := newEventRequest(future)
			tt.mutate(req)

			resp, err := svc.SendEvent(context.Background(), req)

			assert.ErrorIs(t, err, errs.ErrValidation)
			assert.Nil(t, resp)
			assert.Equal(t, 0, provider.createCalls)
		})
	}
}

func TestCalendarService_RescheduleEvent(t *testing.T) {
	const oldURN = "urn:old"
	oldMapping := &models.DeliusOutlookMapping{SupervisionAppointmentURN: oldURN, OutlookID: "outlook-old"}
	created := &models.OutlookEvent{ID: "outlook-new"}

	liveEvent := func(start string) *models.OutlookEvent {
		return &models.OutlookEvent{
			ID:    "outlook-old",
			Start: &models.DateTimeTimeZone{DateTime: start, TimeZone: "Europe/London"},
		}
	}

	newRequest := func() *models.RescheduleEventRequest {
		return &models.RescheduleEventRequest{
			RescheduledEventRequest:      *newEventRequest(testNow.Add(48 * time.Hour)),
			OldSupervisionAppointmentURN: oldURN,
		}
	}

	tests := []struct {
		name            string
		mapping         *models.DeliusOutlookMapping
		event           *models.OutlookEvent
		getErr          error
		deleteErr       error
		expectedCalls   []string
		expectedError   bool
		expectedDeleted string
	}{
		{
			name:            "future old event is deleted before the new one is created",
			mapping:         oldMapping,
			event:           liveEvent("2040-06-02T09:00:00.0000000"),
			expectedCalls:   []string{"find", "get", "delete", "create", "upsert", "notify"},
			expectedDeleted: "outlook-old",
		},
		{
			// 13:00 in London during BST is 12:00 UTC, which is testNow
			name:            "old event starting exactly now is deleted",
			mapping:         oldMapping,
			event:           liveEvent("2040-06-01T13:00:00.0000000"),
			expectedCalls:   []string{"find", "get", "delete", "create", "upsert", "notify"},
			expectedDeleted: "outlook-old",
		},
		{
			name:          "no previous mapping skips delete",
			expectedCalls: []string{"find", "create", "upsert", "notify"},
		},
		{
			name:          "past old event is kept",
			mapping:       oldMapping,
			event:         liveEvent("2040-06-01T12:59:59.0000000"),
			expectedCalls: []string{"find", "get", "create", "upsert", "notify"},
		},
		{
			name:          "old event already removed in outlook",
			mapping:       oldMapping,
			getErr:        errs.ErrProviderNotFound,
			expectedCalls: []string{"find", "get", "create", "upsert", "notify"},
		},
		{
			name:          "failed delete aborts before create",
			mapping:       oldMapping,
			event:         liveEvent("2040-06-02T09:00:00.0000000"),
			deleteErr:     errors.New("graph returned status 500"),
			expectedCalls: []string{"find", "get", "delete"},
			expectedError: true,
		},
		{
			name:          "failed lookup aborts before create",
			mapping:       oldMapping,
			getErr:        errors.New("graph returned status 500"),
			expectedCalls: []string{"find", "get"},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			provider := &mockCalendarProvider{log: log, created: created, event: tt.event, getErr: tt.getErr, deleteErr: tt.deleteErr}
			repo := &mockMappingRepository{log: log, mapping: tt.mapping}
			notifier := &mockNotifier{log: log}
			svc := setupCalendarService(t, provider, repo, notifier, &mockTelemetry{})

			resp, err := svc.RescheduleEvent(context.Background(), newRequest())

			assert.Equal(t, tt.expectedCalls, log.calls)
			assert.Equal(t, tt.expectedDeleted, provider.deletedID)
			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp.ID)
			assert.Equal(t, "outlook-new", *resp.ID)
		})
	}
}

func TestCalendarService_RescheduleEvent_Validation(t *testing.T) {
	t.Run("blank old urn", func(t *testing.T) {
		repo := &mockMappingRepository{}
		svc := setupCalendarService(t, &mockCalendarProvider{}, repo, &mockNotifier{}, &mockTelemetry{})

		_, err := svc.RescheduleEvent(context.Background(), &models.RescheduleEventRequest{
			RescheduledEventRequest: *newEventRequest(testNow.Add(time.Hour)),
		})

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, 0, repo.findCalls)
	})

	t.Run("invalid new request leaves old event alone", func(t *testing.T) {
		provider := &mockCalendarProvider{}
		repo := &mockMappingRepository{}
		svc := setupCalendarService(t, provider, repo, &mockNotifier{}, &mockTelemetry{})
		req := newEventRequest(testNow.Add(time.Hour))
		req.Subject = ""

		_, err := svc.RescheduleEvent(context.Background(), &models.RescheduleEventRequest{
			RescheduledEventRequest:      *req,
			OldSupervisionAppointmentURN: "urn:old",
		})

		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, 0, repo.findCalls)
		assert.Equal(t, 0, provider.deleteCalls)
	})

	t.Run("past new appointment still removes the old event", func(t *testing.T) {
		provider := &mockCalendarProvider{event: &models.OutlookEvent{
			Start: &models.DateTimeTimeZone{DateTime: "2040-06-03T09:00:00", TimeZone: "Europe/London"},
		}}
		repo := &mockMappingRepository{mapping: &models.DeliusOutlookMapping{OutlookID: "outlook-old"}}
		telemetry := &mockTelemetry{}
		svc := setupCalendarService(t, provider, repo, &mockNotifier{}, telemetry)

		resp, err := svc.RescheduleEvent(context.Background(), &models.RescheduleEventRequest{
			RescheduledEventRequest:      *newEventRequest(testNow.Add(-time.Hour)),
			OldSupervisionAppointmentURN: "urn:old",
		})

		require.NoError(t, err)
		assert.Nil(t, resp.ID)
		assert.Equal(t, 1, provider.deleteCalls)
		assert.Equal(t, 0, provider.createCalls)
		assert.Equal(t, []string{EventAppointmentInPastNotCreated}, telemetry.events)
	})
}

func TestCalendarService_BuildEvent(t *testing.T) {
	svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})
	req := newEventRequest(time.Date(2050, 7, 1, 9, 0, 0, 0, time.UTC))
	req.Recipients = append(req.Recipients, models.Recipient{EmailAddress: "second@example.com", Name: "Second"})

	event := svc.BuildEvent(req)

	assert.Equal(t, "3 Way Meeting (NS)", event.Subject)
	require.NotNil(t, event.Body)
	assert.Equal(t, "html", event.Body.ContentType)
	assert.Equal(t, "<p>Supervision appointment</p>", event.Body.Content)
	// BST is UTC+1
	assert.Equal(t, models.DateTimeTimeZone{DateTime: "2050-07-01T10:00:00", TimeZone: "Europe/London"}, *event.Start)
	assert.Equal(t, models.DateTimeTimeZone{DateTime: "2050-07-01T10:30:00", TimeZone: "Europe/London"}, *event.End)
	require.Len(t, event.Attendees, 2)
	assert.Equal(t, "second@example.com", event.Attendees[1].EmailAddress.Address)
	assert.Equal(t, "Second", event.Attendees[1].EmailAddress.Name)
	assert.Equal(t, "required", event.Attendees[1].Type)
}

func TestCalendarService_GetAttendees(t *testing.T) {
	svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

	assert.Empty(t, svc.GetAttendees(nil))

	attendees := svc.GetAttendees([]models.Recipient{{EmailAddress: "a@example.com", Name: "A"}})
	assert.Equal(t, []models.Attendee{{
		EmailAddress: models.EmailAddress{Address: "a@example.com", Name: "A"},
		Type:         models.AttendeeTypeRequired,
	}}, attendees)
}

func TestCalendarService_GetEventDetailsMappings(t *testing.T) {
	created := time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo := &mockMappingRepository{mapping: &models.DeliusOutlookMapping{
			SupervisionAppointmentURN: "urn:1", OutlookID: "outlook-1", CreatedAt: created, UpdatedAt: created,
		}}
		svc := setupCalendarService(t, &mockCalendarProvider{}, repo, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.GetEventDetailsMappings(context.Background(), "urn:1")

		require.NoError(t, err)
		assert.Equal(t, "outlook-1", resp.OutlookID)
		assert.Equal(t, "2025-09-16T10:00:00Z", resp.CreatedAt)
	})

	t.Run("unknown urn is not found", func(t *testing.T) {
		svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.GetEventDetailsMappings(context.Background(), "unknown-urn")

		assert.Nil(t, resp)
		assert.True(t, errs.IsNotFound(err))
		assert.EqualError(t, err, "DeliusOutlookMapping with supervisionAppointmentUrn of unknown-urn not found")
	})

	t.Run("blank urn", func(t *testing.T) {
		svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

		_, err := svc.GetEventDetailsMappings(context.Background(), "")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockMappingRepository{findErr: errors.New("database error")}
		svc := setupCalendarService(t, &mockCalendarProvider{}, repo, &mockNotifier{}, &mockTelemetry{})

		_, err := svc.GetEventDetailsMappings(context.Background(), "urn:1")

		assert.Error(t, err)
		assert.False(t, errs.IsNotFound(err))
	})
}

func TestCalendarService_GetEventDetailsMappingsByOutlookID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := &mockMappingRepository{mapping: &models.DeliusOutlookMapping{SupervisionAppointmentURN: "urn:1", OutlookID: "outlook-1"}}
		svc := setupCalendarService(t, &mockCalendarProvider{}, repo, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.GetEventDetailsMappingsByOutlookID(context.Background(), "outlook-1")

		require.NoError(t, err)
		assert.Equal(t, "urn:1", resp.SupervisionAppointmentURN)
	})

	t.Run("not found", func(t *testing.T) {
		svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

		_, err := svc.GetEventDetailsMappingsByOutlookID(context.Background(), "outlook-x")

		assert.EqualError(t, err, "DeliusOutlookMapping with outlookId of outlook-x not found")
	})

	t.Run("blank id", func(t *testing.T) {
		svc := setupCalendarService(t, &mockCalendarProvider{}, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

		_, err := svc.GetEventDetailsMappingsByOutlookID(context.Background(), " ")

		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestCalendarService_GetEventDetails(t *testing.T) {
	mapping := &models.DeliusOutlookMapping{SupervisionAppointmentURN: "urn:1", OutlookID: "outlook-1"}
	event := &models.OutlookEvent{
		Subject: "Appointment",
		Start:   &models.DateTimeTimeZone{DateTime: "2040-06-02T09:00:00.0000000", TimeZone: "Europe/London"},
		End:     &models.DateTimeTimeZone{DateTime: "2040-06-02T09:30:00.0000000", TimeZone: "Europe/London"},
		Attendees: []models.Attendee{
			{EmailAddress: models.EmailAddress{Address: "a@example.com"}},
			{EmailAddress: models.EmailAddress{}},
		},
	}

	tests := []struct {
		name           string
		mapping        *models.DeliusOutlookMapping
		event          *models.OutlookEvent
		getErr         error
		expectNil      bool
		expectNotFound bool
		expectedError  bool
	}{
		{name: "live event", mapping: mapping, event: event},
		{name: "unmapped urn", expectNil: true, expectNotFound: true, expectedError: true},
		{name: "removed in outlook", mapping: mapping, getErr: errs.ErrProviderNotFound, expectNil: true},
		{name: "provider failure", mapping: mapping, getErr: errors.New("graph returned status 500"), expectNil: true, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockCalendarProvider{event: tt.event, getErr: tt.getErr}
			repo := &mockMappingRepository{mapping: tt.mapping}
			svc := setupCalendarService(t, provider, repo, &mockNotifier{}, &mockTelemetry{})

			resp, err := svc.GetEventDetails(context.Background(), "urn:1")

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectNotFound, errs.IsNotFound(err))
			if tt.expectNil {
				assert.Nil(t, resp)
				return
			}
			require.NotNil(t, resp)
			// the id is not selected from Graph, so it comes from the mapping
			assert.Equal(t, "outlook-1", *resp.ID)
			assert.Equal(t, "Appointment", resp.Subject)
			assert.Equal(t, "2040-06-02T09:30:00.0000000", resp.EndDate)
			assert.Equal(t, []string{"a@example.com"}, resp.Attendees)
		})
	}
}

func TestCalendarService_FindEventDetails(t *testing.T) {
	t.Run("unmapped urn is nil", func(t *testing.T) {
		provider := &mockCalendarProvider{}
		svc := setupCalendarService(t, provider, &mockMappingRepository{}, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.FindEventDetails(context.Background(), "urn:none")

		assert.NoError(t, err)
		assert.Nil(t, resp)
		assert.Equal(t, 0, provider.getCalls)
	})

	t.Run("live event", func(t *testing.T) {
		provider := &mockCalendarProvider{event: &models.OutlookEvent{ID: "outlook-1", Subject: "Appointment"}}
		repo := &mockMappingRepository{mapping: &models.DeliusOutlookMapping{OutlookID: "outlook-1"}}
		svc := setupCalendarService(t, provider, repo, &mockNotifier{}, &mockTelemetry{})

		resp, err := svc.FindEventDetails(context.Background(), "urn:1")

		require.NoError(t, err)
		assert.Equal(t, "outlook-1", *resp.ID)
		assert.Empty(t, resp.Attendees)
	})
}

func TestParseEventTime(t *testing.T) {
	loc := london(t)

	tests := []struct {
		name          string
		input         *models.DateTimeTimeZone
		expected      time.Time
		expectedError bool
	}{
		{
			name:     "graph wall clock in london summer time",
			input:    &models.DateTimeTimeZone{DateTime: "2040-06-01T13:00:00.0000000", TimeZone: "Europe/London"},
			expected: time.Date(2040, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "utc wall clock",
			input:    &models.DateTimeTimeZone{DateTime: "2040-01-01T09:00:00", TimeZone: "UTC"},
			expected: time.Date(2040, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339",
			input:    &models.DateTimeTimeZone{DateTime: "2040-01-01T09:00:00Z"},
			expected: time.Date(2040, 1, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "unknown zone falls back",
			input:    &models.DateTimeTimeZone{DateTime: "2040-06-01T13:00:00", TimeZone: "GMT Standard Time"},
			expected: time.Date(2040, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{name: "missing", input: nil, expectedError: true},
		{name: "garbage", input: &models.DateTimeTimeZone{DateTime: "tomorrow"}, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseEventTime(tt.input, loc)
			if tt.expectedError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(parsed), "expected %s, got %s", tt.expected, parsed)
		})
	}
}
