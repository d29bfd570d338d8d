package models

// AppointmentType maps a Delius contact type code to the wording used in reminders
type AppointmentType struct {
	Code    string
	English string
	Welsh   string
}

var appointmentTypes = map[string]AppointmentType{
	"COAP": {Code: "COAP", English: "office visit", Welsh: "ymweliad swyddfa"},
	"COPT": {Code: "COPT", English: "telephone appointment", Welsh: "apwyntiad dros y ffôn"},
	"COVC": {Code: "COVC", English: "video link appointment", Welsh: "apwyntiad dolen fideo"},
	"COOO": {Code: "COOO", English: "appointment", Welsh: "apwyntiad"},
	"COAI": {Code: "COAI", English: "office visit", Welsh: "ymweliad swyddfa"},
	"CHVS": {Code: "CHVS", English: "home visit", Welsh: "ymweliad cartref"},
	"C084": {Code: "C084", English: "appointment", Welsh: "apwyntiad"},
	"CODC": {Code: "CODC", English: "doorstep visit", Welsh: "ymweliad carreg y drws"},
	"COSR": {Code: "COSR", English: "appointment", Welsh: "apwyntiad"},
}

// AppointmentTypeFromCode looks up an appointment type by its code
func AppointmentTypeFromCode(code string) (AppointmentType, bool) {
	t, ok := appointmentTypes[code]
	return t, ok
}

// AppointmentDisplayText returns the appointment type wording for a language, or "" for an unknown code
func AppointmentDisplayText(code string, language SmsLanguage) string {
	t, ok := AppointmentTypeFromCode(code)
	if !ok {
		return ""
	}
	if language == SmsLanguageWelsh {
		return t.Welsh
	}
	return t.English
}
