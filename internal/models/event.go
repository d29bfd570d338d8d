package models

import "time"

// Recipient is an attendee of a supervision appointment
type Recipient struct {
	EmailAddress string `json:"emailAddress"`
	Name         string `json:"name"`
}

// EventRequest describes a supervision appointment to be placed in the practitioner's calendar
type EventRequest struct {
	Recipients                []Recipient      `json:"recipients"`
	Message                   string           `json:"message"`
	Subject                   string           `json:"subject"`
	Start                     time.Time        `json:"start"`
	DurationInMinutes         int64            `json:"durationInMinutes"`
	SupervisionAppointmentURN string           `json:"supervisionAppointmentUrn"`
	SmsEventRequest           *SmsEventRequest `json:"smsEventRequest,omitempty"`
}

// End returns the start of the appointment plus its duration
func (r *EventRequest) End() time.Time {
	return r.Start.Add(time.Duration(r.DurationInMinutes) * time.Minute)
}

// RecipientEmails returns the e-mail address of every recipient, in order
func (r *EventRequest) RecipientEmails() []string {
	emails := make([]string, 0, len(r.Recipients))
	for _, recipient := range r.Recipients {
		emails = append(emails, recipient.EmailAddress)
	}
	return emails
}

// SmsEventRequest carries the details needed to send an appointment reminder by SMS
type SmsEventRequest struct {
	FirstName           string      `json:"firstName"`
	MobileNumber        string      `json:"mobileNumber,omitempty"`
	CRN                 string      `json:"crn"`
	SmsOptIn            bool        `json:"smsOptIn"`
	SmsLanguage         SmsLanguage `json:"smsLanguage,omitempty"`
	AppointmentLocation string      `json:"appointmentLocation,omitempty"`
	AppointmentTypeCode string      `json:"appointmentTypeCode,omitempty"`
}

// RescheduleEventRequest replaces the appointment identified by OldSupervisionAppointmentURN
type RescheduleEventRequest struct {
	RescheduledEventRequest      EventRequest `json:"rescheduledEventRequest"`
	OldSupervisionAppointmentURN string       `json:"oldSupervisionAppointmentUrn"`
}

// EventResponse is the calendar event as returned to callers.
//
// ID is nil when no Outlook event was created and the appointment must be handled manually.
type EventResponse struct {
	ID        *string  `json:"id"`
	Subject   string   `json:"subject"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Attendees []string `json:"attendees"`
}
