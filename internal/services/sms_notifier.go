package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/probationsupervision/appointments-api/internal/models"
	"go.uber.org/zap"
)

// SmsSender is the interface that wraps sending a templated SMS
type SmsSender interface {
	// SendSms sends templateID to phoneNumber. "reference" is stored by the provider against the message.
	SendSms(ctx context.Context, templateID, phoneNumber string, personalisation map[string]string, reference string) (*models.SmsNotification, error)
}

// FeatureGate is the interface that wraps feature flag checks
type FeatureGate interface {
	Enabled(ctx context.Context, key string) bool
}

// Telemetry is the interface that wraps recording of business events
type Telemetry interface {
	TrackEvent(name string, properties map[string]string)
	TrackException(err error, properties map[string]string)
}

type smsNotifier struct {
	resolver  TemplateResolver
	sender    SmsSender
	flags     FeatureGate
	telemetry Telemetry
	values    *templateValues
	logger    *zap.Logger
}

// NewSmsNotifier creates the appointment reminder sender. A nil sender disables sending.
func NewSmsNotifier(resolver TemplateResolver, sender SmsSender, flags FeatureGate, telemetry Telemetry, translator Translator, logger *zap.Logger) *smsNotifier {
	return &smsNotifier{
		resolver:  resolver,
		sender:    sender,
		flags:     flags,
		telemetry: telemetry,
		values:    newTemplateValues(translator),
		logger:    logger,
	}
}

// Notify sends the reminder for an appointment when the person opted in, has a mobile number
// and reminders are switched on. Failures are recorded and never returned.
func (n *smsNotifier) Notify(ctx context.Context, req *models.EventRequest) {
	sms := req.SmsEventRequest
	if sms == nil || !sms.SmsOptIn || strings.TrimSpace(sms.MobileNumber) == "" {
		return
	}
	if !n.flags.Enabled(ctx, SmsNotificationFlag) {
		return
	}

	properties := map[string]string{
		"crn":                       sms.CRN,
		"supervisionAppointmentUrn": req.SupervisionAppointmentURN,
	}

	notification, err := n.send(ctx, req, sms)
	if err != nil {
		n.telemetry.TrackEvent(EventAppointmentReminderFailure, properties)
		n.telemetry.TrackException(err, properties)
		return
	}

	properties["notificationId"] = notification.ID
	n.telemetry.TrackEvent(EventAppointmentReminderSent, properties)
}

func (n *smsNotifier) send(ctx context.Context, req *models.EventRequest, sms *models.SmsEventRequest) (*models.SmsNotification, error) {
	if n.sender == nil {
		return nil, ErrNotifyNotConfigured
	}

	language, err := models.ParseSmsLanguage(string(sms.SmsLanguage))
	if err != nil {
		return nil, err
	}

	templateID, err := n.resolver.TemplateID(language, sms.AppointmentLocation)
	if err != nil {
		return nil, err
	}

	values := n.values.Build(language, sms.FirstName, req.Start, sms.AppointmentLocation, sms.AppointmentTypeCode)
	notification, err := n.sender.SendSms(ctx, templateID, sms.MobileNumber, values, sms.CRN)
	if err != nil {
		return nil, fmt.Errorf("failed to send appointment reminder: %w", err)
	}

	n.logger.Info("appointment reminder sent",
		zap.String("crn", sms.CRN),
		zap.String("notification_id", notification.ID),
	)
	return notification, nil
}
