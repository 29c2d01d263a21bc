package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/infrastructure/postgres/generated"
	"github.com/paymatch/paymatch/internal/usecase"
)

// SuggestionRepository implements usecase.SuggestionRepository.
type SuggestionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewSuggestionRepository creates a new SuggestionRepository.
func NewSuggestionRepository(pool *pgxpool.Pool) *SuggestionRepository {
	return &SuggestionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Insert persists a pending suggestion. The unique index on
// (transaction_id, invoice_id) turns a duplicate into a no-op; the returned
// bool reports whether this call actually inserted the row.
func (r *SuggestionRepository) Insert(ctx context.Context, suggestion *domain.MatchSuggestion) (bool, error) {
	affected, err := r.queries.InsertMatchSuggestion(ctx, generated.InsertMatchSuggestionParams{
		ID:            suggestion.ID,
		TransactionID: suggestion.TransactionID,
		InvoiceID:     suggestion.InvoiceID,
		Confidence:    suggestion.Confidence,
		Reasons:       suggestion.Reasons,
		Status:        string(suggestion.Status),
		CreatedAt:     timeToPgTimestamptz(suggestion.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(suggestion.UpdatedAt),
	})
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// Exists reports whether any suggestion exists for the pair.
func (r *SuggestionRepository) Exists(ctx context.Context, transactionID, invoiceID string) (bool, error) {
	return r.queries.MatchSuggestionExists(ctx, generated.MatchSuggestionExistsParams{
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
	})
}

// GetByID retrieves a suggestion by ID.
func (r *SuggestionRepository) GetByID(ctx context.Context, id string) (*domain.MatchSuggestion, error) {
	row, err := r.queries.GetMatchSuggestionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}

		return nil, err
	}

	return rowToSuggestion(row), nil
}

// GetByPair retrieves the suggestion for a (transaction, invoice) pair.
func (r *SuggestionRepository) GetByPair(ctx context.Context, transactionID, invoiceID string) (*domain.MatchSuggestion, error) {
	row, err := r.queries.GetMatchSuggestionByPair(ctx, generated.GetMatchSuggestionByPairParams{
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}

		return nil, err
	}

	return rowToSuggestion(row), nil
}

// UpdateStatus transitions a suggestion within the caller's transaction.
func (r *SuggestionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SuggestionStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateMatchSuggestionStatus(ctx, generated.UpdateMatchSuggestionStatusParams{
		ID:        id,
		Status:    string(status),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

// ListByStatus lists suggestions in a status, oldest first.
func (r *SuggestionRepository) ListByStatus(ctx context.Context, status domain.SuggestionStatus, limit, offset int) ([]*domain.MatchSuggestion, error) {
	rows, err := r.queries.ListMatchSuggestionsByStatus(ctx, generated.ListMatchSuggestionsByStatusParams{
		Status: string(status),
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	suggestions := make([]*domain.MatchSuggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, rowToSuggestion(row))
	}

	return suggestions, nil
}

// ListByTransaction lists every suggestion for a transaction, oldest first.
func (r *SuggestionRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.MatchSuggestion, error) {
	rows, err := r.queries.ListMatchSuggestionsByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	suggestions := make([]*domain.MatchSuggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, rowToSuggestion(row))
	}

	return suggestions, nil
}

func rowToSuggestion(row generated.MatchSuggestion) *domain.MatchSuggestion {
	return &domain.MatchSuggestion{
		ID:            row.ID,
		TransactionID: row.TransactionID,
		InvoiceID:     row.InvoiceID,
		Confidence:    row.Confidence,
		Reasons:       row.Reasons,
		Status:        domain.SuggestionStatus(row.Status),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
