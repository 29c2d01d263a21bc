package billing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paymatch/paymatch/internal/adapter/gateway/billing"
	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase/mocks"

	"github.com/shopspring/decimal"
)

func newTestClient(t *testing.T, handler http.Handler) *billing.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return billing.NewClient(server.URL, 5*time.Second, zerolog.Nop())
}

func TestClient_GetOutstandingInvoice(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/482", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":          "482",
			"balance_due": "100.00",
			"currency":    "GBP",
			"date":        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			"client_id":   "client-1",
			"client_name": "Acme Ltd",
			"status":      "sent",
		})
	}))

	invoice, err := client.GetOutstandingInvoice(context.Background(), "482")
	require.NoError(t, err)

	assert.Equal(t, "482", invoice.ID)
	assert.True(t, invoice.BalanceDue.Equal(decimal.RequireFromString("100.00")))
	assert.Equal(t, "GBP", invoice.Currency)
	assert.True(t, invoice.Unpaid())
}

func TestClient_GetOutstandingInvoice_NumericBalance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Some billing deployments send the balance as a JSON number.
		_, _ = w.Write([]byte(`{"id":"9","balance_due":42.5,"currency":"EUR","status":"sent"}`))
	}))

	invoice, err := client.GetOutstandingInvoice(context.Background(), "9")
	require.NoError(t, err)
	assert.True(t, invoice.BalanceDue.Equal(decimal.RequireFromString("42.5")))
}

func TestClient_GetOutstandingInvoice_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetOutstandingInvoice(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestClient_GetOutstandingInvoice_ServerError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.GetOutstandingInvoice(context.Background(), "482")
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestClient_GetOutstandingInvoice_MissingCurrency(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"7","balance_due":"10.00","status":"sent"}`))
	}))

	_, err := client.GetOutstandingInvoice(context.Background(), "7")
	assert.ErrorIs(t, err, domain.ErrMissingCurrency)
}

func TestClient_ListOutstandingInvoices_SkipsMalformedRecords(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "outstanding", r.URL.Query().Get("status"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`[
			{"id":"1","balance_due":"10.00","currency":"GBP","status":"sent"},
			{"id":"2","balance_due":"not-a-number","currency":"GBP","status":"sent"},
			{"id":"3","balance_due":"30.00","status":"sent"}
		]`))
	}))

	invoices, err := client.ListOutstandingInvoices(context.Background(), 100)
	require.NoError(t, err)

	require.Len(t, invoices, 1)
	assert.Equal(t, "1", invoices[0].ID)
}

func TestClient_ListClients(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/clients", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"id":"c1","name":"Acme Ltd"},
			{"id":"c2","name":"Globex"},
			{"id":"","name":"orphan"}
		]`))
	}))

	clients, err := client.ListClients(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"c1": "Acme Ltd", "c2": "Globex"}, clients)
}

func TestClient_ApplyPayment(t *testing.T) {
	txn := &domain.Transaction{
		ID:       "txn-1",
		Amount:   decimal.RequireFromString("100.00"),
		Currency: "GBP",
		Date:     time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC),
	}

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/invoices/482/payments", r.URL.Path)
		assert.Equal(t, "txn-1", r.Header.Get("Idempotency-Key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "txn-1", body["transaction_id"])
		assert.Equal(t, "100", body["amount"])
		assert.Equal(t, "GBP", body["currency"])

		_, _ = w.Write([]byte(`{"accepted":true,"message":"applied"}`))
	}))

	result, err := client.ApplyPayment(context.Background(), "482", txn)
	require.NoError(t, err)

	assert.True(t, result.Accepted)
	assert.Equal(t, "applied", result.Message)
}

func TestClient_ApplyPayment_Rejected(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"accepted":false,"message":"invoice already settled"}`))
	}))

	result, err := client.ApplyPayment(context.Background(), "482", &domain.Transaction{ID: "txn-1"})
	require.NoError(t, err)

	assert.False(t, result.Accepted)
	assert.Equal(t, "invoice already settled", result.Message)
}

func TestClient_ApplyPayment_GatewayDown(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := client.ApplyPayment(context.Background(), "482", &domain.Transaction{ID: "txn-1"})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestCachedGateway_ListClients(t *testing.T) {
	calls := 0
	inner := mocks.NewMockInvoiceGateway()
	inner.ListClientsFunc = func(ctx context.Context) (map[string]string, error) {
		calls++
		return map[string]string{"c1": "Acme Ltd"}, nil
	}

	cached := billing.NewCachedGateway(inner, mocks.NewMockCache(), time.Minute)

	first, err := cached.ListClients(context.Background())
	require.NoError(t, err)

	second, err := cached.ListClients(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call must be served from cache")
}
