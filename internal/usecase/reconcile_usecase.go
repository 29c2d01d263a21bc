package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/paymatch/paymatch/internal/domain"
)

// ReconcileUseCase handles the operator approve/reject lifecycle.
type ReconcileUseCase struct {
	txManager  TransactionManager
	txnRepo    TransactionRepository
	suggRepo   SuggestionRepository
	outboxRepo OutboxRepository
	gateway    InvoiceGateway
	idGen      IDGenerator
	retrier    Retrier
	reporter   Reporter
}

// NewReconcileUseCase creates a new ReconcileUseCase.
func NewReconcileUseCase(
	txManager TransactionManager,
	txnRepo TransactionRepository,
	suggRepo SuggestionRepository,
	outboxRepo OutboxRepository,
	gateway InvoiceGateway,
	idGen IDGenerator,
	retrier Retrier,
	reporter Reporter,
) *ReconcileUseCase {
	if retrier == nil {
		retrier = nopRetrier{}
	}

	if reporter == nil {
		reporter = NopReporter{}
	}

	return &ReconcileUseCase{
		txManager:  txManager,
		txnRepo:    txnRepo,
		suggRepo:   suggRepo,
		outboxRepo: outboxRepo,
		gateway:    gateway,
		idGen:      idGen,
		retrier:    retrier,
		reporter:   reporter,
	}
}

// Approve applies the suggested payment through the billing gateway and then
// commits the local state transition as a single unit: suggestion approved,
// transaction matched. If the gateway call fails the suggestion stays pending
// and nothing local changes. The gateway applies payments idempotently keyed
// by transaction id, so re-running Approve after a crash between the external
// call and the local commit converges to the consistent state.
func (uc *ReconcileUseCase) Approve(ctx context.Context, matchID string) (*domain.MatchSuggestion, error) {
	suggestion, err := uc.suggRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load suggestion %s: %w", matchID, err)
	}

	if !suggestion.IsPending() {
		return nil, fmt.Errorf("%w: suggestion %s is %s", domain.ErrSuggestionNotPending, matchID, suggestion.Status)
	}

	txn, err := uc.txnRepo.GetByID(ctx, suggestion.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("load transaction %s: %w", suggestion.TransactionID, err)
	}

	if _, err := uc.gateway.GetOutstandingInvoice(ctx, suggestion.InvoiceID); err != nil {
		return nil, fmt.Errorf("load invoice %s: %w", suggestion.InvoiceID, err)
	}

	payment, err := uc.gateway.ApplyPayment(ctx, suggestion.InvoiceID, txn)
	if err != nil {
		uc.reporter.GatewayUnavailable(ctx, "apply_payment", err)
		return nil, fmt.Errorf("%w: apply payment: %v", domain.ErrGatewayUnavailable, err)
	}

	if !payment.Accepted {
		return nil, fmt.Errorf("%w: %s", domain.ErrPaymentRejected, payment.Message)
	}

	now := time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		return uc.commitApproval(ctx, suggestion, txn, now)
	})
	if err != nil {
		return nil, fmt.Errorf("commit approval %s: %w", matchID, err)
	}

	suggestion.Status = domain.SuggestionApproved
	suggestion.UpdatedAt = now
	uc.reporter.ApprovalCommitted(ctx, suggestion)

	return suggestion, nil
}

func (uc *ReconcileUseCase) commitApproval(ctx context.Context, suggestion *domain.MatchSuggestion, txn *domain.Transaction, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.suggRepo.UpdateStatus(ctx, tx, suggestion.ID, domain.SuggestionApproved, now); err != nil {
		return err
	}

	if err := uc.txnRepo.MarkMatched(ctx, tx, txn.ID, suggestion.InvoiceID, now); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   suggestion.ID,
		AggregateType: domain.AggregateTypeSuggestion,
		EventType:     domain.EventTypeMatchApproved,
		Payload: map[string]any{
			"suggestion_id":  suggestion.ID,
			"transaction_id": txn.ID,
			"invoice_id":     suggestion.InvoiceID,
			"amount":         txn.Amount.String(),
			"currency":       txn.Currency,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Reject marks a pending suggestion rejected. The transaction is never
// touched: a transaction may accumulate any number of rejected suggestions
// and still match a different invoice later.
func (uc *ReconcileUseCase) Reject(ctx context.Context, matchID string) (*domain.MatchSuggestion, error) {
	suggestion, err := uc.suggRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("load suggestion %s: %w", matchID, err)
	}

	if !suggestion.IsPending() {
		return nil, fmt.Errorf("%w: suggestion %s is %s", domain.ErrSuggestionNotPending, matchID, suggestion.Status)
	}

	now := time.Now().UTC()

	err = uc.retrier.Retry(ctx, func() error {
		return uc.commitRejection(ctx, suggestion, now)
	})
	if err != nil {
		return nil, fmt.Errorf("commit rejection %s: %w", matchID, err)
	}

	suggestion.Status = domain.SuggestionRejected
	suggestion.UpdatedAt = now
	uc.reporter.SuggestionRejected(ctx, suggestion)

	return suggestion, nil
}

func (uc *ReconcileUseCase) commitRejection(ctx context.Context, suggestion *domain.MatchSuggestion, now time.Time) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := uc.suggRepo.UpdateStatus(ctx, tx, suggestion.ID, domain.SuggestionRejected, now); err != nil {
		return err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   suggestion.ID,
		AggregateType: domain.AggregateTypeSuggestion,
		EventType:     domain.EventTypeMatchRejected,
		Payload: map[string]any{
			"suggestion_id":  suggestion.ID,
			"transaction_id": suggestion.TransactionID,
			"invoice_id":     suggestion.InvoiceID,
		},
		CreatedAt: now,
	}

	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// BulkAction is an operator decision applied to a set of suggestions.
type BulkAction string

const (
	BulkActionApprove BulkAction = "approve"
	BulkActionReject  BulkAction = "reject"
)

// BulkDecideInput selects the suggestions to decide on: explicit ids, or a
// page of pending suggestions when no ids are given.
type BulkDecideInput struct {
	Action BulkAction
	IDs    []string
	Limit  int
	Offset int
}

// BulkOutcome is the per-item result of a bulk decision.
type BulkOutcome struct {
	SuggestionID string
	OK           bool
	Error        string
}

// BulkDecide applies an approve/reject decision to each selected suggestion
// independently. One item's failure never blocks the rest.
func (uc *ReconcileUseCase) BulkDecide(ctx context.Context, input BulkDecideInput) ([]BulkOutcome, error) {
	if input.Action != BulkActionApprove && input.Action != BulkActionReject {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDecision, input.Action)
	}

	ids := input.IDs
	if len(ids) == 0 {
		limit := input.Limit
		if limit <= 0 {
			limit = DefaultBulkPageSize
		}
		limit, offset := domain.ValidatePagination(limit, input.Offset)

		pending, err := uc.suggRepo.ListByStatus(ctx, domain.SuggestionPending, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("list pending suggestions: %w", err)
		}

		for _, suggestion := range pending {
			ids = append(ids, suggestion.ID)
		}
	}

	outcomes := make([]BulkOutcome, 0, len(ids))
	for _, id := range ids {
		var err error
		if input.Action == BulkActionApprove {
			_, err = uc.Approve(ctx, id)
		} else {
			_, err = uc.Reject(ctx, id)
		}

		outcome := BulkOutcome{SuggestionID: id, OK: err == nil}
		if err != nil {
			outcome.Error = err.Error()
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// GetSuggestion retrieves a suggestion by id.
func (uc *ReconcileUseCase) GetSuggestion(ctx context.Context, id string) (*domain.MatchSuggestion, error) {
	return uc.suggRepo.GetByID(ctx, id)
}

// ListSuggestionsInput filters a suggestion listing.
type ListSuggestionsInput struct {
	Status domain.SuggestionStatus
	Limit  int
	Offset int
}

// ListSuggestions lists suggestions by status with pagination.
func (uc *ReconcileUseCase) ListSuggestions(ctx context.Context, input ListSuggestionsInput) ([]*domain.MatchSuggestion, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.suggRepo.ListByStatus(ctx, input.Status, limit, offset)
}

// ListSuggestionsByTransaction lists every suggestion ever proposed for a
// transaction, the audit view.
func (uc *ReconcileUseCase) ListSuggestionsByTransaction(ctx context.Context, transactionID string) ([]*domain.MatchSuggestion, error) {
	return uc.suggRepo.ListByTransaction(ctx, transactionID)
}

type nopRetrier struct{}

func (nopRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}
