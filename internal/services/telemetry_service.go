package services

import (
	"go.uber.org/zap"
)

// Telemetry event names
const (
	EventAppointmentInPastNotCreated = "AppointmentInPastNotCreated"
	EventOutlookEventCreationFailure = "OutlookEventCreationFailure"
	EventAppointmentReminderSent     = "AppointmentReminderSent"
	EventAppointmentReminderFailure  = "AppointmentReminderFailure"
)

type telemetryService struct {
	logger *zap.Logger
}

// NewTelemetryService creates a telemetry service that records custom events as structured log entries
func NewTelemetryService(logger *zap.Logger) *telemetryService {
	return &telemetryService{
		logger: logger.Named("telemetry"),
	}
}

// TrackEvent records a named business event
func (s *telemetryService) TrackEvent(name string, properties map[string]string) {
	s.logger.Info("custom event",
		zap.String("event", name),
		zap.Any("properties", properties),
	)
}

// TrackException records an error together with the properties of the operation that raised it
func (s *telemetryService) TrackException(err error, properties map[string]string) {
	s.logger.Error("exception",
		zap.Error(err),
		zap.Any("properties", properties),
	)
}
