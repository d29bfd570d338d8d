package models

import (
	"fmt"
	"strings"
	"time"
)

// SmsLanguage is the language an SMS is written in
type SmsLanguage string

const (
	SmsLanguageEnglish SmsLanguage = "ENGLISH"
	SmsLanguageWelsh   SmsLanguage = "WELSH"
)

// ParseSmsLanguage parses a language name case-insensitively; empty means English
func ParseSmsLanguage(s string) (SmsLanguage, error) {
	switch SmsLanguage(strings.ToUpper(strings.TrimSpace(s))) {
	case "", SmsLanguageEnglish:
		return SmsLanguageEnglish, nil
	case SmsLanguageWelsh:
		return SmsLanguageWelsh, nil
	default:
		return "", fmt.Errorf("unsupported sms language: %s", s)
	}
}

// Key returns the lower-case form used in template keys
func (l SmsLanguage) Key() string {
	return strings.ToLower(string(l))
}

// TemplateVariant selects the wording of an SMS template
type TemplateVariant string

const (
	TemplateVariantWithNameDate         TemplateVariant = "WITH_NAME_DATE"
	TemplateVariantWithNameDateLocation TemplateVariant = "WITH_NAME_DATE_LOCATION"
)

// Key returns the kebab-case form used in template keys
func (v TemplateVariant) Key() string {
	return strings.ReplaceAll(strings.ToLower(string(v)), "_", "-")
}

// Personalisation placeholders understood by the SMS templates
const (
	PlaceholderFirstName           = "FIRST_NAME"
	PlaceholderAppointmentDate     = "APPOINTMENT_DATE"
	PlaceholderAppointmentTime     = "APPOINTMENT_TIME"
	PlaceholderAppointmentLocation = "APPOINTMENT_LOCATION"
	PlaceholderAppointmentType     = "APPOINTMENT_TYPE"
)

// NotifyTemplate is a template held by the notification provider
type NotifyTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Version int    `json:"version"`
	Body    string `json:"body"`
}

// SmsPreviewRequest asks for the text of the reminder a person would receive
type SmsPreviewRequest struct {
	FirstName                string    `json:"firstName"`
	DateAndTimeOfAppointment time.Time `json:"dateAndTimeOfAppointment"`
	AppointmentLocation      string    `json:"appointmentLocation,omitempty"`
	AppointmentTypeCode      string    `json:"appointmentTypeCode,omitempty"`
	IncludeWelshPreview      bool      `json:"includeWelshPreview"`
}

// SmsPreviewResponse holds the rendered reminder text
type SmsPreviewResponse struct {
	EnglishSmsPreview string  `json:"englishSmsPreview"`
	WelshSmsPreview   *string `json:"welshSmsPreview"`
}

// SmsNotification is the provider's acknowledgement of an accepted SMS
type SmsNotification struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
}
