package usecase

import (
	"context"
	"time"

	"github.com/paymatch/paymatch/internal/domain"
)

// TransactionRepository defines data access for bank transactions.
type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// ListUnmatchedSince returns unmatched transactions with a positive amount
	// dated at or after since, oldest first.
	ListUnmatchedSince(ctx context.Context, since time.Time) ([]*domain.Transaction, error)
	MarkMatched(ctx context.Context, tx Transaction, id, invoiceID string, updatedAt time.Time) error
}

// SuggestionRepository defines data access for match suggestions.
type SuggestionRepository interface {
	// Insert persists a new suggestion. It returns false without error when a
	// suggestion for the same (transaction, invoice) pair already exists.
	Insert(ctx context.Context, suggestion *domain.MatchSuggestion) (bool, error)
	Exists(ctx context.Context, transactionID, invoiceID string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.MatchSuggestion, error)
	GetByPair(ctx context.Context, transactionID, invoiceID string) (*domain.MatchSuggestion, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.SuggestionStatus, updatedAt time.Time) error
	ListByStatus(ctx context.Context, status domain.SuggestionStatus, limit, offset int) ([]*domain.MatchSuggestion, error)
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.MatchSuggestion, error)
}

// InvoiceGateway is the read-and-pay surface of the billing platform. Every
// call may fail with a wrapped domain.ErrGatewayUnavailable; callers treat
// such failures as "unavailable for this candidate", never as fatal.
type InvoiceGateway interface {
	GetOutstandingInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListOutstandingInvoices(ctx context.Context, limit int) ([]*domain.Invoice, error)
	ListClientInvoices(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	ListClients(ctx context.Context) (map[string]string, error)
	ApplyPayment(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient persistence errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Reporter receives structured engine events. Implementations must be cheap
// and must never fail the operation that emits the event.
type Reporter interface {
	CandidateGenerated(ctx context.Context, transactionID, invoiceID, generator string, confidence float64)
	CandidateDiscarded(ctx context.Context, transactionID, invoiceID, reason string)
	SuggestionPersisted(ctx context.Context, suggestion *domain.MatchSuggestion)
	ApprovalCommitted(ctx context.Context, suggestion *domain.MatchSuggestion)
	SuggestionRejected(ctx context.Context, suggestion *domain.MatchSuggestion)
	GatewayUnavailable(ctx context.Context, operation string, err error)
}
