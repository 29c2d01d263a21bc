package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/adapter/gateway/billing"
	postgresRepo "github.com/paymatch/paymatch/internal/adapter/repository/postgres"
	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase"
	"github.com/paymatch/paymatch/tests/testutil"
)

func newMatchUseCase(t *testing.T, testDB *testutil.TestDB, server *testutil.BillingServer) (*usecase.MatchUseCase, *postgresRepo.SuggestionRepository) {
	t.Helper()

	txnRepo := postgresRepo.NewTransactionRepository(testDB.Pool)
	suggRepo := postgresRepo.NewSuggestionRepository(testDB.Pool)
	gateway := billing.NewClient(server.URL, 5*time.Second, zerolog.Nop())
	idGen := postgresRepo.NewULIDGenerator()

	cfg := usecase.DefaultMatchConfig()
	generators := usecase.DefaultGenerators(gateway, cfg)

	return usecase.NewMatchUseCase(cfg, txnRepo, suggRepo, gateway, generators, idGen, nil), suggRepo
}

func TestFindMatchesPersistsSuggestion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	server := testutil.NewBillingServer([]testutil.BillingInvoice{
		{
			ID:         "482",
			BalanceDue: "250.00",
			Currency:   "USD",
			Date:       time.Now().UTC().AddDate(0, 0, -2),
			ClientID:   "client-1",
			ClientName: "Acme Corp",
			Status:     "outstanding",
		},
	})
	defer server.Close()

	matchUC, suggRepo := newMatchUseCase(t, testDB, server)

	txn := testDB.CreateTestTransaction(ctx, decimal.NewFromInt(250), "USD", "INV-482", "PAYMENT ACME CORP", time.Now().UTC())

	result, err := matchUC.FindMatches(ctx, txn.ID)
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}

	if result.Count != 1 {
		t.Fatalf("expected one match, got %d", result.Count)
	}

	suggestion, err := suggRepo.GetByPair(ctx, txn.ID, "482")
	if err != nil {
		t.Fatalf("expected persisted suggestion: %v", err)
	}

	if suggestion.Status != domain.SuggestionPending {
		t.Fatalf("expected pending suggestion, got %s", suggestion.Status)
	}

	if suggestion.Confidence != 0.95 {
		t.Fatalf("expected confidence 0.95 for reference + exact amount, got %v", suggestion.Confidence)
	}

	// A second run must return the same suggestion, not a duplicate.
	again, err := matchUC.FindMatches(ctx, txn.ID)
	if err != nil {
		t.Fatalf("repeated FindMatches failed: %v", err)
	}

	if again.Count != 1 || again.Matches[0].SuggestionID != suggestion.ID {
		t.Fatalf("expected repeated run to surface suggestion %s, got %+v", suggestion.ID, again.Matches)
	}
}

func TestProcessNewInvoiceMatchesRecentTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	server := testutil.NewBillingServer([]testutil.BillingInvoice{
		{
			ID:         "900",
			BalanceDue: "75.50",
			Currency:   "EUR",
			Date:       time.Now().UTC(),
			ClientID:   "client-2",
			ClientName: "Globex",
			Status:     "outstanding",
		},
	})
	defer server.Close()

	matchUC, suggRepo := newMatchUseCase(t, testDB, server)

	txn := testDB.CreateTestTransaction(ctx, decimal.RequireFromString("75.50"), "EUR", "", "WIRE TRANSFER", time.Now().UTC().AddDate(0, 0, -2))

	result, err := matchUC.ProcessNewInvoice(ctx, "900")
	if err != nil {
		t.Fatalf("ProcessNewInvoice failed: %v", err)
	}

	if result.Count != 1 {
		t.Fatalf("expected one match, got %d", result.Count)
	}

	suggestion, err := suggRepo.GetByPair(ctx, txn.ID, "900")
	if err != nil {
		t.Fatalf("expected persisted suggestion: %v", err)
	}

	// Exact amount (1.0) boosted by date proximity, clamped to 1.
	if suggestion.Confidence != 1.0 {
		t.Fatalf("expected clamped confidence 1.0, got %v", suggestion.Confidence)
	}
}
