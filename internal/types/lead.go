package types

import "time"

// Lead types accepted by the conversion endpoint.
const (
	LeadTypeEmail  = "email"
	LeadTypeExpert = "expert"
	LeadTypeQuote  = "quote"
)

// Lead statuses.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead is a captured conversion contact.
type Lead struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email"`
	Phone         string            `json:"phone,omitempty"`
	LeadType      string            `json:"lead_type"`
	AttractionIDs []int             `json:"attraction_ids,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	EmailSent     bool              `json:"email_sent"`
	EmailSentAt   *time.Time        `json:"email_sent_at,omitempty"`
}

// ConversionRequest is the body of POST /conversion/request.
type ConversionRequest struct {
	Type          string            `json:"type"`
	UserData      map[string]string `json:"user_data"`
	AttractionIDs []int             `json:"attraction_ids,omitempty"`
}

// ConversionOutcome records a single delivery attempt for a lead.
type ConversionOutcome struct {
	ID           int        `json:"id"`
	LeadID       int        `json:"lead_id"`
	RequestType  string     `json:"request_type"`
	EmailTo      string     `json:"email_to"`
	Status       string     `json:"status"` // pending, sent, failed
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}
