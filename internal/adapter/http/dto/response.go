package dto

import (
	"time"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase"
)

// SuggestionResponse represents a match suggestion in API responses.
type SuggestionResponse struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id"`
	InvoiceID     string    `json:"invoice_id"`
	Confidence    float64   `json:"confidence"`
	Reasons       []string  `json:"reasons"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SuggestionFromDomain converts a domain suggestion to a response.
func SuggestionFromDomain(s *domain.MatchSuggestion) *SuggestionResponse {
	return &SuggestionResponse{
		ID:            s.ID,
		TransactionID: s.TransactionID,
		InvoiceID:     s.InvoiceID,
		Confidence:    s.Confidence,
		Reasons:       s.Reasons,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// SuggestionsFromDomain converts domain suggestions to responses.
func SuggestionsFromDomain(suggestions []*domain.MatchSuggestion) []*SuggestionResponse {
	result := make([]*SuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		result[i] = SuggestionFromDomain(s)
	}
	return result
}

// MatchProposalResponse represents one proposed pairing from a match run.
type MatchProposalResponse struct {
	SuggestionID  string  `json:"suggestion_id"`
	TransactionID string  `json:"transaction_id"`
	InvoiceID     string  `json:"invoice_id"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
}

// MatchRunResponse represents the outcome of a match run.
type MatchRunResponse struct {
	Count   int                      `json:"count"`
	Matches []*MatchProposalResponse `json:"matches"`
}

// MatchRunFromUseCase converts a usecase match run result to a response.
func MatchRunFromUseCase(result *usecase.MatchRunResult) *MatchRunResponse {
	matches := make([]*MatchProposalResponse, len(result.Matches))
	for i, m := range result.Matches {
		matches[i] = &MatchProposalResponse{
			SuggestionID:  m.SuggestionID,
			TransactionID: m.TransactionID,
			InvoiceID:     m.InvoiceID,
			Confidence:    m.Confidence,
			Reason:        m.Reason,
		}
	}

	return &MatchRunResponse{
		Count:   result.Count,
		Matches: matches,
	}
}

// BulkOutcomeResponse represents one item of a bulk decision.
type BulkOutcomeResponse struct {
	SuggestionID string `json:"suggestion_id"`
	OK           bool   `json:"ok"`
	Error        string `json:"error,omitempty"`
}

// BulkOutcomesFromUseCase converts usecase bulk outcomes to responses.
func BulkOutcomesFromUseCase(outcomes []usecase.BulkOutcome) []*BulkOutcomeResponse {
	result := make([]*BulkOutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		result[i] = &BulkOutcomeResponse{
			SuggestionID: o.SuggestionID,
			OK:           o.OK,
			Error:        o.Error,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
