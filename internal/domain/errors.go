package domain

import "errors"

var (
	// Not-found errors
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrSuggestionNotFound  = errors.New("match suggestion not found")

	// Gateway errors
	ErrGatewayUnavailable = errors.New("billing gateway unavailable")
	ErrPaymentRejected    = errors.New("payment application rejected by billing gateway")

	// Workflow errors
	ErrSuggestionNotPending = errors.New("match suggestion is not pending")
	ErrInvalidDecision      = errors.New("decision must be approve or reject")

	// Validation errors
	ErrMissingCurrency   = errors.New("currency code is missing")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
