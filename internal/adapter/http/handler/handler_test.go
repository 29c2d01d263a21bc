package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymatch/paymatch/internal/adapter/http/dto"
	"github.com/paymatch/paymatch/internal/adapter/http/handler"
	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase"
	"github.com/paymatch/paymatch/internal/usecase/mocks"
)

type testEnv struct {
	router   http.Handler
	txnRepo  *mocks.MockTransactionRepository
	suggRepo *mocks.MockSuggestionRepository
	gateway  *mocks.MockInvoiceGateway
	outbox   *mocks.MockOutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	txnRepo := mocks.NewMockTransactionRepository()
	suggRepo := mocks.NewMockSuggestionRepository()
	gateway := mocks.NewMockInvoiceGateway()
	outbox := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTransactionManager()
	idGen := mocks.NewMockIDGenerator()

	cfg := usecase.DefaultMatchConfig()
	generators := usecase.DefaultGenerators(gateway, cfg)
	matchUC := usecase.NewMatchUseCase(cfg, txnRepo, suggRepo, gateway, generators, idGen, nil)
	reconcileUC := usecase.NewReconcileUseCase(txManager, txnRepo, suggRepo, outbox, gateway, idGen, nil, nil)

	matchHandler := handler.NewMatchHandler(matchUC)
	suggestionHandler := handler.NewSuggestionHandler(reconcileUC)

	r := chi.NewRouter()
	r.Post("/api/v1/transactions/{id}/matches", matchHandler.FindMatches)
	r.Post("/api/v1/invoices/{id}/matches", matchHandler.ProcessInvoice)
	r.Get("/api/v1/transactions/{id}/suggestions", suggestionHandler.ListByTransaction)
	r.Get("/api/v1/suggestions", suggestionHandler.List)
	r.Post("/api/v1/suggestions/bulk", suggestionHandler.BulkDecide)
	r.Get("/api/v1/suggestions/{id}", suggestionHandler.Get)
	r.Post("/api/v1/suggestions/{id}/approve", suggestionHandler.Approve)
	r.Post("/api/v1/suggestions/{id}/reject", suggestionHandler.Reject)

	return &testEnv{
		router:   r,
		txnRepo:  txnRepo,
		suggRepo: suggRepo,
		gateway:  gateway,
		outbox:   outbox,
	}
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func seedTransaction(env *testEnv, id, reference string, amount decimal.Decimal) *domain.Transaction {
	txn := &domain.Transaction{
		ID:        id,
		Amount:    amount,
		Currency:  "USD",
		Reference: reference,
		Date:      time.Now().UTC(),
		Status:    domain.TransactionUnmatched,
	}
	env.txnRepo.Add(txn)
	return txn
}

func seedPending(env *testEnv, id, txnID, invoiceID string) *domain.MatchSuggestion {
	s := &domain.MatchSuggestion{
		ID:            id,
		TransactionID: txnID,
		InvoiceID:     invoiceID,
		Confidence:    0.9,
		Reasons:       []string{"reference match"},
		Status:        domain.SuggestionPending,
	}
	_, _ = env.suggRepo.Insert(context.Background(), s)
	return s
}

func TestFindMatchesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	seedTransaction(env, "txn-1", "INV-482", decimal.NewFromInt(250))
	env.gateway.AddInvoice(&domain.Invoice{
		ID:         "482",
		BalanceDue: decimal.NewFromInt(250),
		Currency:   "USD",
		Date:       time.Now().UTC(),
		Status:     "outstanding",
	})

	rec := env.do(t, http.MethodPost, "/api/v1/transactions/txn-1/matches", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.MatchRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Equal(t, 1, result.Count)
	assert.Equal(t, "482", result.Matches[0].InvoiceID)
	assert.InDelta(t, 0.95, result.Matches[0].Confidence, 1e-9)
}

func TestFindMatchesUnknownTransaction(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/transactions/missing/matches", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessInvoiceUnknownInvoice(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/invoices/missing/matches", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSuggestion(t *testing.T) {
	env := newTestEnv(t)
	seedPending(env, "sug-1", "txn-1", "inv-1")

	rec := env.do(t, http.MethodGet, "/api/v1/suggestions/sug-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "sug-1", result.ID)
	assert.Equal(t, "pending", result.Status)

	rec = env.do(t, http.MethodGet, "/api/v1/suggestions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListSuggestionsDefaultsToPending(t *testing.T) {
	env := newTestEnv(t)
	seedPending(env, "sug-1", "txn-1", "inv-1")

	approved := seedPending(env, "sug-2", "txn-2", "inv-2")
	_ = env.suggRepo.UpdateStatus(context.Background(), nil, approved.ID, domain.SuggestionApproved, time.Now())

	rec := env.do(t, http.MethodGet, "/api/v1/suggestions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result []*dto.SuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	require.Len(t, result, 1)
	assert.Equal(t, "sug-1", result[0].ID)
}

func TestListByTransaction(t *testing.T) {
	env := newTestEnv(t)
	seedPending(env, "sug-1", "txn-1", "inv-1")
	seedPending(env, "sug-2", "txn-1", "inv-2")
	seedPending(env, "sug-3", "txn-2", "inv-3")

	rec := env.do(t, http.MethodGet, "/api/v1/transactions/txn-1/suggestions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result []*dto.SuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 2)
}

func TestApproveSuggestion(t *testing.T) {
	env := newTestEnv(t)

	txn := seedTransaction(env, "txn-1", "INV-9", decimal.NewFromInt(75))
	env.gateway.AddInvoice(&domain.Invoice{
		ID:         "inv-9",
		BalanceDue: decimal.NewFromInt(75),
		Currency:   "USD",
		Date:       time.Now().UTC(),
		Status:     "outstanding",
	})
	seedPending(env, "sug-1", txn.ID, "inv-9")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/sug-1/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "approved", result.Status)

	// The decision event is queued for publication.
	events := env.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeMatchApproved, events[0].EventType)

	// Approving again conflicts.
	rec = env.do(t, http.MethodPost, "/api/v1/suggestions/sug-1/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApprovePaymentRejected(t *testing.T) {
	env := newTestEnv(t)

	txn := seedTransaction(env, "txn-1", "", decimal.NewFromInt(75))
	env.gateway.AddInvoice(&domain.Invoice{
		ID:         "inv-9",
		BalanceDue: decimal.NewFromInt(75),
		Currency:   "USD",
		Date:       time.Now().UTC(),
		Status:     "outstanding",
	})
	env.gateway.ApplyPaymentFunc = func(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error) {
		return &domain.PaymentResult{Accepted: false, Message: "already settled"}, nil
	}
	seedPending(env, "sug-1", txn.ID, "inv-9")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/sug-1/approve", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestApproveGatewayDown(t *testing.T) {
	env := newTestEnv(t)

	txn := seedTransaction(env, "txn-1", "", decimal.NewFromInt(75))
	env.gateway.AddInvoice(&domain.Invoice{
		ID:         "inv-9",
		BalanceDue: decimal.NewFromInt(75),
		Currency:   "USD",
		Date:       time.Now().UTC(),
		Status:     "outstanding",
	})
	env.gateway.ApplyPaymentFunc = func(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error) {
		return nil, errors.New("connection refused")
	}
	seedPending(env, "sug-1", txn.ID, "inv-9")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/sug-1/approve", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRejectSuggestion(t *testing.T) {
	env := newTestEnv(t)

	txn := seedTransaction(env, "txn-1", "", decimal.NewFromInt(75))
	seedPending(env, "sug-1", txn.ID, "inv-9")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/sug-1/reject", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result dto.SuggestionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "rejected", result.Status)

	events := env.outbox.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeMatchRejected, events[0].EventType)
}

func TestBulkDecide(t *testing.T) {
	env := newTestEnv(t)

	txn := seedTransaction(env, "txn-1", "", decimal.NewFromInt(75))
	seedPending(env, "sug-1", txn.ID, "inv-1")
	seedPending(env, "sug-2", txn.ID, "inv-2")

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/bulk", map[string]any{
		"action": "reject",
		"ids":    []string{"sug-1", "sug-2", "missing"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var outcomes []*dto.BulkOutcomeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcomes))
	require.Len(t, outcomes, 3)

	assert.True(t, outcomes[0].OK)
	assert.True(t, outcomes[1].OK)
	assert.False(t, outcomes[2].OK)
}

func TestBulkDecideInvalidAction(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/suggestions/bulk", map[string]any{
		"action": "escalate",
		"ids":    []string{"sug-1"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
