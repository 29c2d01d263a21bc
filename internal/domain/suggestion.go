package domain

import (
	"fmt"
	"strings"
	"time"
)

// SuggestionStatus is the lifecycle state of a match suggestion.
type SuggestionStatus string

const (
	SuggestionPending  SuggestionStatus = "pending"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionRejected SuggestionStatus = "rejected"
)

// MatchSuggestion is a persisted candidate pairing of a transaction and an
// invoice. Rows are append-only: status changes, but suggestions are never
// deleted, so the full history of proposals survives as an audit trail.
// At most one suggestion may exist per (TransactionID, InvoiceID) pair.
type MatchSuggestion struct {
	ID            string
	TransactionID string
	InvoiceID     string
	Confidence    float64
	Reasons       []string
	Status        SuggestionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks structural invariants before persistence.
func (s *MatchSuggestion) Validate() error {
	if s.TransactionID == "" {
		return fmt.Errorf("%w: suggestion %s has no transaction", ErrTransactionNotFound, s.ID)
	}

	if s.InvoiceID == "" {
		return fmt.Errorf("%w: suggestion %s has no invoice", ErrInvoiceNotFound, s.ID)
	}

	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidConfidence, s.Confidence)
	}

	return nil
}

// Reason returns the reasons joined into a single display string.
func (s *MatchSuggestion) Reason() string {
	return strings.Join(s.Reasons, "; ")
}

// IsPending reports whether the suggestion still awaits an operator decision.
func (s *MatchSuggestion) IsPending() bool {
	return s.Status == SuggestionPending
}
