package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultAmountEpsilon is the tolerance under which two amounts are equal.
const DefaultAmountEpsilon = "0.01"

// Partial-payment percentages that get a confidence boost over the generic
// partial score. Operators routinely see 50% deposits and 25%/75% installments.
var partialTiers = []struct {
	percent    float64
	confidence float64
}{
	{50, 0.85},
	{25, 0.80},
	{75, 0.80},
}

// Overpayments up to 5% above the balance are assumed to include bank fees.
var feeTolerance = decimal.RequireFromString("1.05")

// AmountScore is the result of scoring a transaction amount against an
// invoice balance. When Matched is false the candidate must be discarded
// regardless of which generator proposed it.
type AmountScore struct {
	Matched    bool
	Confidence float64
	Reason     string
}

// ScoreAmount scores how well a transaction amount covers an invoice balance.
// Both values are assumed to be in the same currency; rules are evaluated in
// order and the first match wins.
func ScoreAmount(amount, balance, epsilon decimal.Decimal) AmountScore {
	if balance.LessThanOrEqual(decimal.Zero) {
		return AmountScore{Matched: false, Confidence: 0.2, Reason: "mismatch"}
	}

	if amount.Sub(balance).Abs().LessThan(epsilon) {
		return AmountScore{Matched: true, Confidence: 1.0, Reason: "exact"}
	}

	if amount.LessThan(balance) {
		percent, _ := amount.Div(balance).Mul(decimal.NewFromInt(100)).Float64()
		reason := fmt.Sprintf("partial %.0f%%", percent)

		for _, tier := range partialTiers {
			if percent >= tier.percent-1 && percent <= tier.percent+1 {
				return AmountScore{Matched: true, Confidence: tier.confidence, Reason: reason}
			}
		}

		return AmountScore{Matched: true, Confidence: 0.7, Reason: reason}
	}

	if amount.LessThanOrEqual(balance.Mul(feeTolerance)) {
		return AmountScore{Matched: true, Confidence: 0.9, Reason: "fees"}
	}

	return AmountScore{Matched: false, Confidence: 0.2, Reason: "mismatch"}
}
