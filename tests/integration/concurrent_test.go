package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/tests/testutil"
)

// Concurrent match runs over the same transaction race on the insert; the
// unique pair constraint must collapse them to a single suggestion row.
func TestConcurrentMatchRunsCreateOneSuggestion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	server := testutil.NewBillingServer([]testutil.BillingInvoice{
		{
			ID:         "555",
			BalanceDue: "40.00",
			Currency:   "USD",
			Date:       time.Now().UTC(),
			Status:     "outstanding",
		},
	})
	defer server.Close()

	matchUC, suggRepo := newMatchUseCase(t, testDB, server)

	txn := testDB.CreateTestTransaction(ctx, decimal.NewFromInt(40), "USD", "INV-555", "", time.Now().UTC())

	const runs = 5

	var wg sync.WaitGroup
	errs := make(chan error, runs)
	for i := 0; i < runs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := matchUC.FindMatches(ctx, txn.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent FindMatches failed: %v", err)
		}
	}

	suggestions, err := suggRepo.ListByTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("failed to list suggestions: %v", err)
	}

	if len(suggestions) != 1 {
		t.Fatalf("expected exactly one suggestion row, got %d", len(suggestions))
	}

	if suggestions[0].Status != domain.SuggestionPending {
		t.Fatalf("expected pending suggestion, got %s", suggestions[0].Status)
	}
}
