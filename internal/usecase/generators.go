package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paymatch/paymatch/internal/domain"
)

// Generator names, used in reporter events and candidate provenance.
const (
	GeneratorReference     = "reference"
	GeneratorAmount        = "amount"
	GeneratorDescription   = "description"
	GeneratorDateProximity = "date_proximity"
)

// Candidate is a single invoice proposed for a transaction by one generator.
type Candidate struct {
	InvoiceID  string
	Confidence float64
	Reason     string
	Generator  string
}

// CandidateGenerator proposes invoice candidates for a transaction using one
// matching signal. A failed lookup yields an empty list, never an abort: the
// orchestrator treats generator errors as "no candidates from this signal".
type CandidateGenerator interface {
	Name() string
	Generate(ctx context.Context, txn *domain.Transaction) ([]Candidate, error)
}

// DefaultGenerators returns the four production generators in their fixed
// evaluation order. The order matters: when two generators propose the same
// invoice, the first-seen reason wins.
func DefaultGenerators(gateway InvoiceGateway, cfg MatchConfig) []CandidateGenerator {
	return []CandidateGenerator{
		&ReferenceGenerator{Gateway: gateway},
		&AmountGenerator{Gateway: gateway, PageSize: cfg.OutstandingPageSize, Epsilon: cfg.AmountEpsilon},
		&DescriptionGenerator{Gateway: gateway},
		&DateProximityGenerator{Gateway: gateway, PageSize: cfg.OutstandingPageSize},
	}
}

// ReferenceGenerator probes numeric fragments of the transaction reference as
// invoice ids. A reference like "INV-482" resolves to invoice 482; a fully
// numeric reference is probed as-is. Multiple numeric fragments may surface
// multiple unrelated candidates; the downstream amount check bounds the
// resulting false positives.
type ReferenceGenerator struct {
	Gateway InvoiceGateway
}

func (g *ReferenceGenerator) Name() string { return GeneratorReference }

func (g *ReferenceGenerator) Generate(ctx context.Context, txn *domain.Transaction) ([]Candidate, error) {
	cleaned := stripNonAlphanumeric(txn.Reference)
	if cleaned == "" {
		return nil, nil
	}

	var probes []string
	if isNumeric(cleaned) {
		probes = []string{cleaned}
	} else {
		probes = numericRuns(cleaned)
	}

	var candidates []Candidate
	for _, id := range probes {
		invoice, err := g.Gateway.GetOutstandingInvoice(ctx, id)
		if err != nil {
			continue
		}

		if !invoice.Unpaid() {
			continue
		}

		candidates = append(candidates, Candidate{
			InvoiceID:  invoice.ID,
			Confidence: 0.9,
			Reason:     "reference match",
			Generator:  g.Name(),
		})
	}

	return candidates, nil
}

// AmountGenerator proposes outstanding invoices whose balance equals the
// transaction amount within epsilon. Currency mismatch is an absolute
// exclusion here.
type AmountGenerator struct {
	Gateway  InvoiceGateway
	PageSize int
	Epsilon  decimal.Decimal
}

func (g *AmountGenerator) Name() string { return GeneratorAmount }

func (g *AmountGenerator) Generate(ctx context.Context, txn *domain.Transaction) ([]Candidate, error) {
	invoices, err := g.Gateway.ListOutstandingInvoices(ctx, g.PageSize)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, invoice := range invoices {
		if invoice.Currency != txn.Currency {
			continue
		}

		// Strict: a difference of exactly epsilon is not an amount match,
		// mirroring the exactness rule of the amount scorer.
		if invoice.BalanceDue.Sub(txn.Amount).Abs().GreaterThanOrEqual(g.Epsilon) {
			continue
		}

		candidates = append(candidates, Candidate{
			InvoiceID:  invoice.ID,
			Confidence: 0.8,
			Reason:     "amount match",
			Generator:  g.Name(),
		})
	}

	return candidates, nil
}

// DescriptionGenerator looks for client names inside the transaction
// description. A client matches when any name token longer than two
// characters appears as a substring of the lower-cased description; more
// matching tokens raise the confidence, capped at 0.8.
type DescriptionGenerator struct {
	Gateway InvoiceGateway
}

func (g *DescriptionGenerator) Name() string { return GeneratorDescription }

func (g *DescriptionGenerator) Generate(ctx context.Context, txn *domain.Transaction) ([]Candidate, error) {
	clients, err := g.Gateway.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	description := strings.ToLower(txn.Description)

	// Stable iteration keeps candidate order, and therefore first-seen
	// dedup, deterministic across runs.
	clientIDs := make([]string, 0, len(clients))
	for id := range clients {
		clientIDs = append(clientIDs, id)
	}
	sort.Strings(clientIDs)

	var candidates []Candidate
	for _, clientID := range clientIDs {
		name := clients[clientID]

		matched := 0
		for _, token := range strings.Fields(strings.ToLower(name)) {
			if len(token) > 2 && strings.Contains(description, token) {
				matched++
			}
		}

		if matched == 0 {
			continue
		}

		confidence := math.Min(0.5+0.1*float64(matched), 0.8)

		invoices, err := g.Gateway.ListClientInvoices(ctx, clientID)
		if err != nil {
			continue
		}

		for _, invoice := range invoices {
			if !invoice.Unpaid() {
				continue
			}

			candidates = append(candidates, Candidate{
				InvoiceID:  invoice.ID,
				Confidence: confidence,
				Reason:     "client name in description",
				Generator:  g.Name(),
			})
		}
	}

	return candidates, nil
}

// DateProximityGenerator proposes recent outstanding invoices dated close to
// the transaction. Invoices more than 14 days apart are excluded.
type DateProximityGenerator struct {
	Gateway  InvoiceGateway
	PageSize int
}

func (g *DateProximityGenerator) Name() string { return GeneratorDateProximity }

func (g *DateProximityGenerator) Generate(ctx context.Context, txn *domain.Transaction) ([]Candidate, error) {
	invoices, err := g.Gateway.ListOutstandingInvoices(ctx, g.PageSize)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, invoice := range invoices {
		days := dayDifference(txn.Date, invoice.Date)

		var confidence float64
		switch {
		case days <= 3:
			confidence = 0.7
		case days <= 7:
			confidence = 0.6
		case days <= 14:
			confidence = 0.5
		default:
			continue
		}

		candidates = append(candidates, Candidate{
			InvoiceID:  invoice.ID,
			Confidence: confidence,
			Reason:     fmt.Sprintf("invoice dated %d days from transaction", days),
			Generator:  g.Name(),
		})
	}

	return candidates, nil
}

// dayDifference returns the absolute whole-day distance between two dates.
func dayDifference(a, b time.Time) int {
	return int(math.Abs(a.Sub(b).Hours()) / 24)
}

func stripNonAlphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s != ""
}

// numericRuns extracts every maximal run of digits from s.
func numericRuns(s string) []string {
	var runs []string

	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			runs = append(runs, s[start:i])
			start = -1
		}
	}

	if start >= 0 {
		runs = append(runs, s[start:])
	}

	return runs
}
