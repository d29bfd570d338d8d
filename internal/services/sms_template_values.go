package services

import (
	"strings"
	"time"

	"github.com/probationsupervision/appointments-api/internal/models"
)

const (
	notifyDateLayout = "Monday 2 January"
	notifyTimeLayout = "3PM"
)

// Translator is the interface that wraps English to Welsh translation of date words
type Translator interface {
	// TranslateWords translates each space-separated word, leaving unknown words unchanged.
	TranslateWords(text string) string
}

// templateValues renders appointment details into SMS personalisation values.
//
// Date and time are written in the offset the appointment time carries.
type templateValues struct {
	translator Translator
}

func newTemplateValues(translator Translator) *templateValues {
	return &templateValues{translator: translator}
}

// Build returns the personalisation for one language, e.g. FIRST_NAME → "John", APPOINTMENT_TIME → "10am"
func (v *templateValues) Build(language models.SmsLanguage, firstName string, at time.Time, appointmentLocation, appointmentTypeCode string) map[string]string {
	date := at.Format(notifyDateLayout)
	if language == models.SmsLanguageWelsh {
		date = v.translator.TranslateWords(date)
	}

	return map[string]string{
		models.PlaceholderFirstName:           firstName,
		models.PlaceholderAppointmentDate:     date,
		models.PlaceholderAppointmentTime:     strings.ToLower(at.Format(notifyTimeLayout)),
		models.PlaceholderAppointmentLocation: appointmentLocation,
		models.PlaceholderAppointmentType:     models.AppointmentDisplayText(appointmentTypeCode, language),
	}
}

// substitute replaces every "((KEY))" in body with its value in a single pass, so values are
// never themselves substituted. Unknown placeholders are left as they are.
func substitute(body string, values map[string]string) string {
	pairs := make([]string, 0, 2*len(values))
	for key, value := range values {
		pairs = append(pairs, "(("+key+"))", value)
	}
	return strings.NewReplacer(pairs...).Replace(body)
}
