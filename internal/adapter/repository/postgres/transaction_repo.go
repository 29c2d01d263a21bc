package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/infrastructure/postgres/generated"
	"github.com/paymatch/paymatch/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// ListUnmatchedSince returns unmatched positive-amount transactions dated at
// or after since, oldest first.
func (r *TransactionRepository) ListUnmatchedSince(ctx context.Context, since time.Time) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListUnmatchedTransactionsSince(ctx, timeToPgTimestamptz(since))
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToTransaction(row))
	}

	return transactions, nil
}

// MarkMatched flips the transaction to matched and links the invoice, within
// the caller's transaction.
func (r *TransactionRepository) MarkMatched(ctx context.Context, tx usecase.Transaction, id, invoiceID string, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.MarkTransactionMatched(ctx, generated.MarkTransactionMatchedParams{
		ID:        id,
		InvoiceID: pgtype.Text{String: invoiceID, Valid: true},
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	var invoiceID *string
	if row.InvoiceID.Valid {
		v := row.InvoiceID.String
		invoiceID = &v
	}

	return &domain.Transaction{
		ID:          row.ID,
		ExternalID:  row.ExternalID,
		Amount:      numericToDecimal(row.Amount),
		Currency:    row.Currency,
		Description: row.Description,
		Reference:   row.Reference,
		Source:      row.Source,
		Date:        row.Date.Time,
		Status:      domain.TransactionStatus(row.Status),
		InvoiceID:   invoiceID,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
