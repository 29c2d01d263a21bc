package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
)

// MatchConfig carries every tunable of the matching engine. It is passed
// explicitly at construction; the engine holds no ambient configuration.
type MatchConfig struct {
	MinConfidence       float64
	AmountEpsilon       decimal.Decimal
	OutstandingPageSize int
	LookbackDays        int
}

// DefaultMatchConfig returns the production defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MinConfidence:       DefaultMinConfidence,
		AmountEpsilon:       decimal.RequireFromString(domain.DefaultAmountEpsilon),
		OutstandingPageSize: DefaultOutstandingPageSize,
		LookbackDays:        DefaultLookbackDays,
	}
}

// MatchUseCase runs candidate generation and suggestion persistence for both
// trigger directions: transaction-arrival and invoice-arrival.
type MatchUseCase struct {
	cfg        MatchConfig
	txnRepo    TransactionRepository
	suggRepo   SuggestionRepository
	gateway    InvoiceGateway
	generators []CandidateGenerator
	idGen      IDGenerator
	reporter   Reporter
}

// NewMatchUseCase creates a new MatchUseCase.
func NewMatchUseCase(
	cfg MatchConfig,
	txnRepo TransactionRepository,
	suggRepo SuggestionRepository,
	gateway InvoiceGateway,
	generators []CandidateGenerator,
	idGen IDGenerator,
	reporter Reporter,
) *MatchUseCase {
	if reporter == nil {
		reporter = NopReporter{}
	}

	return &MatchUseCase{
		cfg:        cfg,
		txnRepo:    txnRepo,
		suggRepo:   suggRepo,
		gateway:    gateway,
		generators: generators,
		idGen:      idGen,
		reporter:   reporter,
	}
}

// MatchProposal is one suggested pairing returned from a match run.
type MatchProposal struct {
	SuggestionID  string
	TransactionID string
	InvoiceID     string
	Confidence    float64
	Reason        string
}

// MatchRunResult is the outcome of a single match run.
type MatchRunResult struct {
	Count   int
	Matches []MatchProposal
}

// FindMatches proposes, scores, and persists invoice pairings for a
// transaction. Per-candidate failures are swallowed and excluded from the
// result; only a missing root transaction aborts the run, returned as an
// error the caller can inspect.
func (uc *MatchUseCase) FindMatches(ctx context.Context, transactionID string) (*MatchRunResult, error) {
	txn, err := uc.txnRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("load transaction %s: %w", transactionID, err)
	}

	candidates := uc.collectCandidates(ctx, txn)

	result := &MatchRunResult{}
	for _, candidate := range candidates {
		proposal, ok := uc.evaluateCandidate(ctx, txn, candidate)
		if !ok {
			continue
		}

		result.Matches = append(result.Matches, proposal)
	}

	result.Count = len(result.Matches)

	return result, nil
}

// collectCandidates runs every generator and dedups by invoice id, keeping
// the first-seen candidate per invoice. Generator failures contribute an
// empty list.
func (uc *MatchUseCase) collectCandidates(ctx context.Context, txn *domain.Transaction) []Candidate {
	seen := make(map[string]bool)

	var candidates []Candidate
	for _, generator := range uc.generators {
		generated, err := generator.Generate(ctx, txn)
		if err != nil {
			uc.reporter.GatewayUnavailable(ctx, generator.Name(), err)
			continue
		}

		for _, candidate := range generated {
			uc.reporter.CandidateGenerated(ctx, txn.ID, candidate.InvoiceID, generator.Name(), candidate.Confidence)

			if seen[candidate.InvoiceID] {
				continue
			}

			seen[candidate.InvoiceID] = true
			candidates = append(candidates, candidate)
		}
	}

	return candidates
}

// evaluateCandidate scores one candidate and persists it as a pending
// suggestion when it clears the threshold. When the pair already has a
// suggestion, the existing one is returned so repeated runs are idempotent.
func (uc *MatchUseCase) evaluateCandidate(ctx context.Context, txn *domain.Transaction, candidate Candidate) (MatchProposal, bool) {
	invoice, err := uc.gateway.GetOutstandingInvoice(ctx, candidate.InvoiceID)
	if err != nil {
		uc.reporter.CandidateDiscarded(ctx, txn.ID, candidate.InvoiceID, "invoice lookup failed")
		return MatchProposal{}, false
	}

	score := domain.ScoreAmount(txn.Amount, invoice.BalanceDue, uc.cfg.AmountEpsilon)
	if !score.Matched {
		uc.reporter.CandidateDiscarded(ctx, txn.ID, candidate.InvoiceID, score.Reason)
		return MatchProposal{}, false
	}

	combined := (candidate.Confidence + score.Confidence) / 2
	if combined < uc.cfg.MinConfidence {
		uc.reporter.CandidateDiscarded(ctx, txn.ID, candidate.InvoiceID, "below threshold")
		return MatchProposal{}, false
	}

	suggestion, err := uc.persistSuggestion(ctx, txn.ID, candidate.InvoiceID, combined, []string{candidate.Reason, score.Reason})
	if err != nil {
		uc.reporter.CandidateDiscarded(ctx, txn.ID, candidate.InvoiceID, "persistence failed")
		return MatchProposal{}, false
	}

	return MatchProposal{
		SuggestionID:  suggestion.ID,
		TransactionID: suggestion.TransactionID,
		InvoiceID:     suggestion.InvoiceID,
		Confidence:    suggestion.Confidence,
		Reason:        suggestion.Reason(),
	}, true
}

// persistSuggestion inserts a pending suggestion for the pair, or returns the
// existing one. The unique constraint on (transaction_id, invoice_id) makes
// concurrent runs degrade to a harmless lost insert.
func (uc *MatchUseCase) persistSuggestion(ctx context.Context, transactionID, invoiceID string, confidence float64, reasons []string) (*domain.MatchSuggestion, error) {
	existing, err := uc.suggRepo.GetByPair(ctx, transactionID, invoiceID)
	if err == nil {
		return existing, nil
	}

	now := time.Now().UTC()
	suggestion := &domain.MatchSuggestion{
		ID:            uc.idGen.Generate(),
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
		Confidence:    confidence,
		Reasons:       reasons,
		Status:        domain.SuggestionPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := suggestion.Validate(); err != nil {
		return nil, err
	}

	inserted, err := uc.suggRepo.Insert(ctx, suggestion)
	if err != nil {
		return nil, err
	}

	if !inserted {
		// A concurrent run won the insert; surface its row.
		return uc.suggRepo.GetByPair(ctx, transactionID, invoiceID)
	}

	uc.reporter.SuggestionPersisted(ctx, suggestion)

	return suggestion, nil
}

// ProcessNewInvoice is the reverse trigger: a freshly synced invoice is
// scored against recent unmatched inbound transactions.
func (uc *MatchUseCase) ProcessNewInvoice(ctx context.Context, invoiceID string) (*MatchRunResult, error) {
	invoice, err := uc.gateway.GetOutstandingInvoice(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice %s: %w", invoiceID, err)
	}

	since := time.Now().UTC().AddDate(0, 0, -uc.cfg.LookbackDays)

	transactions, err := uc.txnRepo.ListUnmatchedSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("scan unmatched transactions: %w", err)
	}

	result := &MatchRunResult{}
	for _, txn := range transactions {
		if !txn.Amount.IsPositive() {
			continue
		}

		score := domain.ScoreAmount(txn.Amount, invoice.BalanceDue, uc.cfg.AmountEpsilon)
		if !score.Matched {
			continue
		}

		confidence := adjustForDateProximity(score.Confidence, dayDifference(txn.Date, invoice.Date))
		if confidence < uc.cfg.MinConfidence {
			uc.reporter.CandidateDiscarded(ctx, txn.ID, invoice.ID, "below threshold")
			continue
		}

		exists, err := uc.suggRepo.Exists(ctx, txn.ID, invoice.ID)
		if err != nil || exists {
			continue
		}

		suggestion, err := uc.persistSuggestion(ctx, txn.ID, invoice.ID, confidence, []string{score.Reason + " (from new invoice)"})
		if err != nil {
			uc.reporter.CandidateDiscarded(ctx, txn.ID, invoice.ID, "persistence failed")
			continue
		}

		result.Matches = append(result.Matches, MatchProposal{
			SuggestionID:  suggestion.ID,
			TransactionID: suggestion.TransactionID,
			InvoiceID:     suggestion.InvoiceID,
			Confidence:    suggestion.Confidence,
			Reason:        suggestion.Reason(),
		})
	}

	result.Count = len(result.Matches)

	return result, nil
}

// adjustForDateProximity nudges an amount score by how close the transaction
// and invoice dates are, clamped to [0,1].
func adjustForDateProximity(confidence float64, days int) float64 {
	switch {
	case days <= 3:
		confidence += 0.1
	case days > 14:
		confidence -= 0.1
	}

	if confidence > 1 {
		return 1
	}

	if confidence < 0 {
		return 0
	}

	return confidence
}

// NopReporter discards all events.
type NopReporter struct{}

func (NopReporter) CandidateGenerated(context.Context, string, string, string, float64) {}
func (NopReporter) CandidateDiscarded(context.Context, string, string, string)          {}
func (NopReporter) SuggestionPersisted(context.Context, *domain.MatchSuggestion)        {}
func (NopReporter) ApprovalCommitted(context.Context, *domain.MatchSuggestion)          {}
func (NopReporter) SuggestionRejected(context.Context, *domain.MatchSuggestion)         {}
func (NopReporter) GatewayUnavailable(context.Context, string, error)                   {}
