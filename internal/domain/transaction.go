package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the reconciliation state of a bank transaction.
type TransactionStatus string

const (
	TransactionUnmatched TransactionStatus = "unmatched"
	TransactionMatched   TransactionStatus = "matched"
)

// Transaction represents an inbound bank-feed record pending reconciliation.
// Transactions are created by the ingestion pipeline; this engine only reads
// them, except for Status and InvoiceID which are set when a match is approved.
type Transaction struct {
	ID          string
	ExternalID  string
	Amount      decimal.Decimal
	Currency    string
	Description string
	Reference   string
	Source      string
	Date        time.Time
	Status      TransactionStatus
	InvoiceID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsMatched reports whether the transaction has been reconciled to an invoice.
func (t *Transaction) IsMatched() bool {
	return t.Status == TransactionMatched
}
