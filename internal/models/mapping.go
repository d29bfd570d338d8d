package models

import "time"

// DeliusOutlookMapping links a supervision appointment to the Outlook event created for it
type DeliusOutlookMapping struct {
	ID                        int64
	SupervisionAppointmentURN string
	OutlookID                 string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// DeliusOutlookMappingResponse is the JSON form of a mapping
type DeliusOutlookMappingResponse struct {
	SupervisionAppointmentURN string `json:"supervisionAppointmentUrn"`
	OutlookID                 string `json:"outlookId"`
	CreatedAt                 string `json:"createdAt"`
	UpdatedAt                 string `json:"updatedAt"`
}

// ToResponse converts the mapping to its JSON form
func (m *DeliusOutlookMapping) ToResponse() *DeliusOutlookMappingResponse {
	return &DeliusOutlookMappingResponse{
		SupervisionAppointmentURN: m.SupervisionAppointmentURN,
		OutlookID:                 m.OutlookID,
		CreatedAt:                 m.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:                 m.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}
