package domain_test

import (
	"errors"
	"testing"

	"github.com/paymatch/paymatch/internal/domain"
)

func TestMatchSuggestion_Validate(t *testing.T) {
	tests := []struct {
		name       string
		suggestion domain.MatchSuggestion
		wantErr    error
	}{
		{
			name: "valid suggestion",
			suggestion: domain.MatchSuggestion{
				ID:            "sg-1",
				TransactionID: "tx-1",
				InvoiceID:     "482",
				Confidence:    0.95,
				Status:        domain.SuggestionPending,
			},
		},
		{
			name: "missing transaction",
			suggestion: domain.MatchSuggestion{
				ID:        "sg-1",
				InvoiceID: "482",
			},
			wantErr: domain.ErrTransactionNotFound,
		},
		{
			name: "missing invoice",
			suggestion: domain.MatchSuggestion{
				ID:            "sg-1",
				TransactionID: "tx-1",
			},
			wantErr: domain.ErrInvoiceNotFound,
		},
		{
			name: "confidence above one",
			suggestion: domain.MatchSuggestion{
				ID:            "sg-1",
				TransactionID: "tx-1",
				InvoiceID:     "482",
				Confidence:    1.2,
			},
			wantErr: domain.ErrInvalidConfidence,
		},
		{
			name: "negative confidence",
			suggestion: domain.MatchSuggestion{
				ID:            "sg-1",
				TransactionID: "tx-1",
				InvoiceID:     "482",
				Confidence:    -0.1,
			},
			wantErr: domain.ErrInvalidConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.suggestion.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMatchSuggestion_Reason(t *testing.T) {
	s := domain.MatchSuggestion{Reasons: []string{"reference match", "exact"}}

	if got := s.Reason(); got != "reference match; exact" {
		t.Errorf("expected joined reason, got %q", got)
	}
}
