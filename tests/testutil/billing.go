package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// BillingInvoice is the wire shape served by the stub billing API.
type BillingInvoice struct {
	ID         string    `json:"id"`
	BalanceDue string    `json:"balance_due"`
	Currency   string    `json:"currency"`
	Date       time.Time `json:"date"`
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Status     string    `json:"status"`
}

// PaymentCall records one payment application received by the stub.
type PaymentCall struct {
	InvoiceID      string
	IdempotencyKey string
	Body           map[string]any
}

// BillingServer is an in-memory stand-in for the billing platform API.
type BillingServer struct {
	*httptest.Server

	mu             sync.Mutex
	invoices       map[string]BillingInvoice
	clients        map[string]string
	payments       []PaymentCall
	rejectPayments bool
}

// NewBillingServer starts a stub billing API serving the given invoices.
func NewBillingServer(invoices []BillingInvoice) *BillingServer {
	s := &BillingServer{
		invoices: make(map[string]BillingInvoice),
		clients:  make(map[string]string),
	}
	for _, inv := range invoices {
		s.invoices[inv.ID] = inv
		if inv.ClientID != "" {
			s.clients[inv.ClientID] = inv.ClientName
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/invoices", s.handleList)
	mux.HandleFunc("/api/v1/invoices/", s.handleInvoice)
	mux.HandleFunc("/api/v1/clients", s.handleClients)
	mux.HandleFunc("/api/v1/clients/", s.handleClientInvoices)

	s.Server = httptest.NewServer(mux)
	return s
}

// RejectPayments makes every subsequent payment application fail with 422.
func (s *BillingServer) RejectPayments() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectPayments = true
}

// Payments returns a copy of the received payment calls.
func (s *BillingServer) Payments() []PaymentCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PaymentCall(nil), s.payments...)
}

func (s *BillingServer) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BillingInvoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if inv.Status == "paid" {
			continue
		}
		out = append(out, inv)
	}

	writeJSON(w, out)
}

func (s *BillingServer) handleInvoice(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/invoices/")

	if strings.HasSuffix(rest, "/payments") && r.Method == http.MethodPost {
		s.handlePayment(w, r, strings.TrimSuffix(rest, "/payments"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invoices[rest]
	if !ok {
		http.NotFound(w, r)
		return
	}

	writeJSON(w, inv)
}

func (s *BillingServer) handlePayment(w http.ResponseWriter, r *http.Request, invoiceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[invoiceID]; !ok {
		http.NotFound(w, r)
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.payments = append(s.payments, PaymentCall{
		InvoiceID:      invoiceID,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
		Body:           body,
	})

	if s.rejectPayments {
		w.WriteHeader(http.StatusUnprocessableEntity)
		writeJSON(w, map[string]any{"accepted": false, "message": "invoice already settled"})
		return
	}

	writeJSON(w, map[string]any{"accepted": true, "message": "payment applied"})
}

func (s *BillingServer) handleClients(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	type clientRecord struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	out := make([]clientRecord, 0, len(s.clients))
	for id, name := range s.clients {
		out = append(out, clientRecord{ID: id, Name: name})
	}

	writeJSON(w, out)
}

func (s *BillingServer) handleClientInvoices(w http.ResponseWriter, r *http.Request) {
	clientID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/clients/"), "/invoices")

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]BillingInvoice, 0)
	for _, inv := range s.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}

	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
