package models

// Values used by the Outlook event schema
const (
	BodyTypeHTML         = "html"
	AttendeeTypeRequired = "required"
)

// OutlookEvent is the subset of the Microsoft Graph event resource used by this service
type OutlookEvent struct {
	ID        string            `json:"id,omitempty"`
	Subject   string            `json:"subject,omitempty"`
	Body      *ItemBody         `json:"body,omitempty"`
	Start     *DateTimeTimeZone `json:"start,omitempty"`
	End       *DateTimeTimeZone `json:"end,omitempty"`
	Attendees []Attendee        `json:"attendees,omitempty"`
	Organizer *Organizer        `json:"organizer,omitempty"`
}

// DateTimeTimeZone is a wall-clock time qualified by an IANA or Windows time zone name
type DateTimeTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// ItemBody is the content of an event
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Attendee is an event participant
type Attendee struct {
	EmailAddress EmailAddress `json:"emailAddress"`
	Type         string       `json:"type,omitempty"`
}

// Organizer is the owner of an event
type Organizer struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// EmailAddress is a named mailbox
type EmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// DirectoryUser is a member of the organisation directory
type DirectoryUser struct {
	ID                string  `json:"id"`
	DisplayName       string  `json:"displayName"`
	Mail              *string `json:"mail"`
	UserPrincipalName string  `json:"userPrincipalName"`
	JobTitle          *string `json:"jobTitle"`
}
