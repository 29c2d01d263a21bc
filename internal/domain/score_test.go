package domain_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
)

var epsilon = decimal.RequireFromString(domain.DefaultAmountEpsilon)

func TestScoreAmount(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		balance        string
		wantMatched    bool
		wantConfidence float64
		wantReason     string
	}{
		{
			name:           "exact amount",
			amount:         "100.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 1.0,
			wantReason:     "exact",
		},
		{
			name:           "exact within epsilon",
			amount:         "100.005",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 1.0,
			wantReason:     "exact",
		},
		{
			name:           "half payment",
			amount:         "50.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.85,
			wantReason:     "partial 50%",
		},
		{
			name:           "quarter payment",
			amount:         "25.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.8,
			wantReason:     "partial 25%",
		},
		{
			name:           "three quarter payment",
			amount:         "75.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.8,
			wantReason:     "partial 75%",
		},
		{
			name:           "near half within one percent",
			amount:         "50.90",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.85,
			wantReason:     "partial 51%",
		},
		{
			name:           "generic partial",
			amount:         "60.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.7,
			wantReason:     "partial 60%",
		},
		{
			name:           "overpayment within fee tolerance",
			amount:         "104.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.9,
			wantReason:     "fees",
		},
		{
			name:           "overpayment at fee boundary",
			amount:         "105.00",
			balance:        "100.00",
			wantMatched:    true,
			wantConfidence: 0.9,
			wantReason:     "fees",
		},
		{
			name:           "overpayment beyond fee tolerance",
			amount:         "106.00",
			balance:        "100.00",
			wantMatched:    false,
			wantConfidence: 0.2,
			wantReason:     "mismatch",
		},
		{
			name:           "cross currency value mismatch",
			amount:         "100.00",
			balance:        "40.00",
			wantMatched:    false,
			wantConfidence: 0.2,
			wantReason:     "mismatch",
		},
		{
			name:           "zero balance",
			amount:         "10.00",
			balance:        "0.00",
			wantMatched:    false,
			wantConfidence: 0.2,
			wantReason:     "mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			balance := decimal.RequireFromString(tt.balance)

			score := domain.ScoreAmount(amount, balance, epsilon)

			if score.Matched != tt.wantMatched {
				t.Errorf("expected matched=%v, got %v", tt.wantMatched, score.Matched)
			}

			if score.Confidence != tt.wantConfidence {
				t.Errorf("expected confidence %v, got %v", tt.wantConfidence, score.Confidence)
			}

			if score.Reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, score.Reason)
			}
		})
	}
}

func TestScoreAmount_ConfidenceBounds(t *testing.T) {
	amounts := []string{"0.01", "1", "33.33", "50", "99.99", "100", "104.99", "250"}

	for _, a := range amounts {
		score := domain.ScoreAmount(decimal.RequireFromString(a), decimal.RequireFromString("100"), epsilon)
		if score.Confidence < 0 || score.Confidence > 1 {
			t.Errorf("amount %s: confidence %v out of [0,1]", a, score.Confidence)
		}
	}
}

func TestScoreAmount_PartialReasonCarriesPercent(t *testing.T) {
	score := domain.ScoreAmount(decimal.RequireFromString("30"), decimal.RequireFromString("100"), epsilon)

	if !score.Matched {
		t.Fatal("expected partial payment to match")
	}

	if !strings.Contains(score.Reason, "30%") {
		t.Errorf("expected reason to carry the percentage, got %q", score.Reason)
	}
}
