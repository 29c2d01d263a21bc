package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses as reported by the billing platform.
const (
	InvoiceStatusPaid = "paid"
)

// Invoice is a read-only view of a billing-platform invoice. The billing API
// returns loosely-typed records; the gateway adapter validates them into this
// type before they reach any scoring logic.
type Invoice struct {
	ID         string
	BalanceDue decimal.Decimal
	Currency   string
	Date       time.Time
	ClientID   string
	ClientName string
	Status     string
}

// Unpaid reports whether the invoice still carries an outstanding balance.
func (i *Invoice) Unpaid() bool {
	return i.Status != InvoiceStatusPaid
}

// Validate checks the fields the matching engine depends on.
func (i *Invoice) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: invoice id is empty", ErrInvoiceNotFound)
	}

	if i.Currency == "" {
		return fmt.Errorf("%w: invoice %s", ErrMissingCurrency, i.ID)
	}

	return nil
}

// PaymentResult is the billing gateway's answer to a payment application.
type PaymentResult struct {
	Accepted bool
	Message  string
}
