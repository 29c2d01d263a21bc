package domain

import "time"

// Event types
const (
	EventTypeMatchApproved = "match.approved"
	EventTypeMatchRejected = "match.rejected"
)

// Aggregate types
const (
	AggregateTypeSuggestion = "suggestion"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// MatchApprovedEvent payload
type MatchApprovedEvent struct {
	SuggestionID  string `json:"suggestion_id"`
	TransactionID string `json:"transaction_id"`
	InvoiceID     string `json:"invoice_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
}

// MatchRejectedEvent payload
type MatchRejectedEvent struct {
	SuggestionID  string `json:"suggestion_id"`
	TransactionID string `json:"transaction_id"`
	InvoiceID     string `json:"invoice_id"`
}
