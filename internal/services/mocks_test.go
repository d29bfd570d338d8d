package services

import (
	"context"

	"github.com/probationsupervision/appointments-api/internal/models"
)

// callLog records calls across mocks so tests can assert their order
type callLog struct {
	calls []string
}

func (l *callLog) record(call string) {
	if l != nil {
		l.calls = append(l.calls, call)
	}
}

// mockCalendarProvider is a mock implementation of CalendarProvider
type mockCalendarProvider struct {
	log       *callLog
	created   *models.OutlookEvent
	createErr error
	event     *models.OutlookEvent
	getErr    error
	deleteErr error

	createCalls int
	getCalls    int
	deleteCalls int
	sentEvent   *models.OutlookEvent
	deletedID   string
}

func (m *mockCalendarProvider) CreateEvent(ctx context.Context, userEmail string, event *models.OutlookEvent) (*models.OutlookEvent, error) {
	m.log.record("create")
	m.createCalls++
	m.sentEvent = event
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.created, nil
}

func (m *mockCalendarProvider) GetEvent(ctx context.Context, userEmail, eventID string) (*models.OutlookEvent, error) {
	m.log.record("get")
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.event, nil
}

func (m *mockCalendarProvider) DeleteEvent(ctx context.Context, userEmail, eventID string) error {
	m.log.record("delete")
	m.deleteCalls++
	m.deletedID = eventID
	return m.deleteErr
}

// mockMappingRepository is a mock implementation of MappingRepository
type mockMappingRepository struct {
	log       *callLog
	mapping   *models.DeliusOutlookMapping
	findErr   error
	upsertErr error

	upserts   map[string]string
	findCalls int
}

func (m *mockMappingRepository) Upsert(ctx context.Context, supervisionAppointmentURN, outlookID string) error {
	m.log.record("upsert")
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.upserts == nil {
		m.upserts = map[string]string{}
	}
	m.upserts[supervisionAppointmentURN] = outlookID
	return nil
}

func (m *mockMappingRepository) FindBySupervisionAppointmentURN(ctx context.Context, supervisionAppointmentURN string) (*models.DeliusOutlookMapping, error) {
	m.log.record("find")
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.mapping, nil
}

func (m *mockMappingRepository) FindByOutlookID(ctx context.Context, outlookID string) (*models.DeliusOutlookMapping, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.mapping, nil
}

// mockNotifier is a mock implementation of ReminderNotifier
type mockNotifier struct {
	log      *callLog
	notified []*models.EventRequest
}

func (m *mockNotifier) Notify(ctx context.Context, req *models.EventRequest) {
	m.log.record("notify")
	m.notified = append(m.notified, req)
}

// mockTelemetry is a mock implementation of Telemetry
type mockTelemetry struct {
	events     []string
	properties []map[string]string
	exceptions []error
}

func (m *mockTelemetry) TrackEvent(name string, properties map[string]string) {
	m.events = append(m.events, name)
	m.properties = append(m.properties, properties)
}

func (m *mockTelemetry) TrackException(err error, properties map[string]string) {
	m.exceptions = append(m.exceptions, err)
}

// mockTemplateClient is a mock implementation of TemplateClient
type mockTemplateClient struct {
	templates map[string]*models.NotifyTemplate
	err       error
	requested []string
}

func (m *mockTemplateClient) GetTemplateByID(ctx context.Context, templateID string) (*models.NotifyTemplate, error) {
	m.requested = append(m.requested, templateID)
	if m.err != nil {
		return nil, m.err
	}
	return m.templates[templateID], nil
}

// mockSmsSender is a mock implementation of SmsSender
type mockSmsSender struct {
	err   error
	calls int

	templateID      string
	phoneNumber     string
	personalisation map[string]string
	reference       string
}

func (m *mockSmsSender) SendSms(ctx context.Context, templateID, phoneNumber string, personalisation map[string]string, reference string) (*models.SmsNotification, error) {
	m.calls++
	m.templateID = templateID
	m.phoneNumber = phoneNumber
	m.personalisation = personalisation
	m.reference = reference
	if m.err != nil {
		return nil, m.err
	}
	return &models.SmsNotification{ID: "notification-1", Reference: reference}, nil
}

// mockFeatureGate is a mock implementation of FeatureGate
type mockFeatureGate struct {
	enabled bool
	keys    []string
}

func (m *mockFeatureGate) Enabled(ctx context.Context, key string) bool {
	m.keys = append(m.keys, key)
	return m.enabled
}

// mockFlagEvaluator is a mock implementation of FlagEvaluator
type mockFlagEvaluator struct {
	enabled bool
	err     error
}

func (m *mockFlagEvaluator) EvaluateBoolean(ctx context.Context, flagKey string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.enabled, nil
}

// mockDirectory is a mock implementation of DirectoryProvider
type mockDirectory struct {
	users []models.DirectoryUser
	count int
	err   error
	query string
}

func (m *mockDirectory) SearchUsers(ctx context.Context, search string) ([]models.DirectoryUser, error) {
	m.query = search
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockDirectory) CountUsers(ctx context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.count, nil
}

// testTemplateIDs is a complete template configuration
var testTemplateIDs = map[string]string{
	"english-with-name-date":          "en-1",
	"english-with-name-date-location": "en-loc-1",
	"welsh-with-name-date":            "cy-1",
	"welsh-with-name-date-location":   "cy-loc-1",
}

func strPtr(s string) *string {
	return &s
}
