package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/usecase"
)

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	GetByIDFunc            func(ctx context.Context, id string) (*domain.Transaction, error)
	ListUnmatchedSinceFunc func(ctx context.Context, since time.Time) ([]*domain.Transaction, error)
	MarkMatchedFunc        func(ctx context.Context, tx usecase.Transaction, id, invoiceID string, updatedAt time.Time) error
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Add(txn *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = txn
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if txn, ok := m.transactions[id]; ok {
		return txn, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListUnmatchedSince(ctx context.Context, since time.Time) ([]*domain.Transaction, error) {
	if m.ListUnmatchedSinceFunc != nil {
		return m.ListUnmatchedSinceFunc(ctx, since)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.transactions {
		if txn.Status == domain.TransactionUnmatched && txn.Amount.IsPositive() && !txn.Date.Before(since) {
			txns = append(txns, txn)
		}
	}
	return txns, nil
}

func (m *MockTransactionRepository) MarkMatched(ctx context.Context, tx usecase.Transaction, id, invoiceID string, updatedAt time.Time) error {
	if m.MarkMatchedFunc != nil {
		return m.MarkMatchedFunc(ctx, tx, id, invoiceID, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if txn, ok := m.transactions[id]; ok {
		txn.Status = domain.TransactionMatched
		txn.InvoiceID = &invoiceID
		txn.UpdatedAt = updatedAt
	}
	return nil
}

// MockSuggestionRepository is a mock implementation of SuggestionRepository.
// Its default behavior enforces the (transaction, invoice) uniqueness the
// real store guarantees with a unique index.
type MockSuggestionRepository struct {
	mu          sync.RWMutex
	suggestions map[string]*domain.MatchSuggestion
	pairs       map[string]string // "txID|invID" -> suggestion id

	InsertFunc            func(ctx context.Context, s *domain.MatchSuggestion) (bool, error)
	ExistsFunc            func(ctx context.Context, transactionID, invoiceID string) (bool, error)
	GetByIDFunc           func(ctx context.Context, id string) (*domain.MatchSuggestion, error)
	GetByPairFunc         func(ctx context.Context, transactionID, invoiceID string) (*domain.MatchSuggestion, error)
	UpdateStatusFunc      func(ctx context.Context, tx usecase.Transaction, id string, status domain.SuggestionStatus, updatedAt time.Time) error
	ListByStatusFunc      func(ctx context.Context, status domain.SuggestionStatus, limit, offset int) ([]*domain.MatchSuggestion, error)
	ListByTransactionFunc func(ctx context.Context, transactionID string) ([]*domain.MatchSuggestion, error)
}

func NewMockSuggestionRepository() *MockSuggestionRepository {
	return &MockSuggestionRepository{
		suggestions: make(map[string]*domain.MatchSuggestion),
		pairs:       make(map[string]string),
	}
}

func pairKey(transactionID, invoiceID string) string {
	return transactionID + "|" + invoiceID
}

func (m *MockSuggestionRepository) Insert(ctx context.Context, s *domain.MatchSuggestion) (bool, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := pairKey(s.TransactionID, s.InvoiceID)
	if _, ok := m.pairs[key]; ok {
		return false, nil
	}
	copied := *s
	m.suggestions[s.ID] = &copied
	m.pairs[key] = s.ID
	return true, nil
}

func (m *MockSuggestionRepository) Exists(ctx context.Context, transactionID, invoiceID string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, transactionID, invoiceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.pairs[pairKey(transactionID, invoiceID)]
	return ok, nil
}

func (m *MockSuggestionRepository) GetByID(ctx context.Context, id string) (*domain.MatchSuggestion, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.suggestions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, domain.ErrSuggestionNotFound
}

func (m *MockSuggestionRepository) GetByPair(ctx context.Context, transactionID, invoiceID string) (*domain.MatchSuggestion, error) {
	if m.GetByPairFunc != nil {
		return m.GetByPairFunc(ctx, transactionID, invoiceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.pairs[pairKey(transactionID, invoiceID)]; ok {
		copied := *m.suggestions[id]
		return &copied, nil
	}
	return nil, domain.ErrSuggestionNotFound
}

func (m *MockSuggestionRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.SuggestionStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.suggestions[id]; ok {
		s.Status = status
		s.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrSuggestionNotFound
}

func (m *MockSuggestionRepository) ListByStatus(ctx context.Context, status domain.SuggestionStatus, limit, offset int) ([]*domain.MatchSuggestion, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.MatchSuggestion
	for _, s := range m.suggestions {
		if s.Status == status {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *MockSuggestionRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.MatchSuggestion, error) {
	if m.ListByTransactionFunc != nil {
		return m.ListByTransactionFunc(ctx, transactionID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.MatchSuggestion
	for _, s := range m.suggestions {
		if s.TransactionID == transactionID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Count returns the number of stored suggestions.
func (m *MockSuggestionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.suggestions)
}

// MockInvoiceGateway is a mock implementation of InvoiceGateway.
type MockInvoiceGateway struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice
	clients  map[string]string

	GetOutstandingInvoiceFunc   func(ctx context.Context, id string) (*domain.Invoice, error)
	ListOutstandingInvoicesFunc func(ctx context.Context, limit int) ([]*domain.Invoice, error)
	ListClientInvoicesFunc      func(ctx context.Context, clientID string) ([]*domain.Invoice, error)
	ListClientsFunc             func(ctx context.Context) (map[string]string, error)
	ApplyPaymentFunc            func(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error)
}

func NewMockInvoiceGateway() *MockInvoiceGateway {
	return &MockInvoiceGateway{
		invoices: make(map[string]*domain.Invoice),
		clients:  make(map[string]string),
	}
}

func (m *MockInvoiceGateway) AddInvoice(inv *domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[inv.ID] = inv
}

func (m *MockInvoiceGateway) AddClient(id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[id] = name
}

func (m *MockInvoiceGateway) GetOutstandingInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetOutstandingInvoiceFunc != nil {
		return m.GetOutstandingInvoiceFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

func (m *MockInvoiceGateway) ListOutstandingInvoices(ctx context.Context, limit int) ([]*domain.Invoice, error) {
	if m.ListOutstandingInvoicesFunc != nil {
		return m.ListOutstandingInvoicesFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Invoice
	for _, inv := range m.invoices {
		if inv.Unpaid() {
			out = append(out, inv)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockInvoiceGateway) ListClientInvoices(ctx context.Context, clientID string) ([]*domain.Invoice, error) {
	if m.ListClientInvoicesFunc != nil {
		return m.ListClientInvoicesFunc(ctx, clientID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Invoice
	for _, inv := range m.invoices {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (m *MockInvoiceGateway) ListClients(ctx context.Context) (map[string]string, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	clients := make(map[string]string, len(m.clients))
	for id, name := range m.clients {
		clients[id] = name
	}
	return clients, nil
}

func (m *MockInvoiceGateway) ApplyPayment(ctx context.Context, invoiceID string, txn *domain.Transaction) (*domain.PaymentResult, error) {
	if m.ApplyPaymentFunc != nil {
		return m.ApplyPaymentFunc(ctx, invoiceID, txn)
	}
	return &domain.PaymentResult{Accepted: true, Message: "applied"}, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

// Events returns the recorded outbox events.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.OutboxEvent(nil), m.events...)
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// RecordingReporter records every reporter event for assertions.
type RecordingReporter struct {
	mu sync.Mutex

	Generated []string // "txID/invID/generator"
	Discarded []string // "txID/invID/reason"
	Persisted []*domain.MatchSuggestion
	Approved  []*domain.MatchSuggestion
	Rejected  []*domain.MatchSuggestion
	Failures  []string // operation
}

func NewRecordingReporter() *RecordingReporter {
	return &RecordingReporter{}
}

func (r *RecordingReporter) CandidateGenerated(ctx context.Context, transactionID, invoiceID, generator string, confidence float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Generated = append(r.Generated, transactionID+"/"+invoiceID+"/"+generator)
}

func (r *RecordingReporter) CandidateDiscarded(ctx context.Context, transactionID, invoiceID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Discarded = append(r.Discarded, transactionID+"/"+invoiceID+"/"+reason)
}

func (r *RecordingReporter) SuggestionPersisted(ctx context.Context, s *domain.MatchSuggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Persisted = append(r.Persisted, s)
}

func (r *RecordingReporter) ApprovalCommitted(ctx context.Context, s *domain.MatchSuggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Approved = append(r.Approved, s)
}

func (r *RecordingReporter) SuggestionRejected(ctx context.Context, s *domain.MatchSuggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rejected = append(r.Rejected, s)
}

func (r *RecordingReporter) GatewayUnavailable(ctx context.Context, operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, operation)
}

// MockCache is an in-memory implementation of Cache.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

var errCacheMiss = errors.New("cache miss")

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
