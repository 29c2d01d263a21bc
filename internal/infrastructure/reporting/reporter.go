package reporting

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/paymatch/paymatch/internal/domain"
	"github.com/paymatch/paymatch/internal/infrastructure/metrics"
	"github.com/paymatch/paymatch/internal/usecase"
)

// Reporter emits structured log events and Prometheus counters for the
// matching engine. It is the single sink for engine observability.
type Reporter struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewReporter creates a Reporter. A nil metrics value disables counters and
// keeps logging only.
func NewReporter(logger zerolog.Logger, m *metrics.Metrics) *Reporter {
	return &Reporter{
		logger:  logger.With().Str("component", "matcher").Logger(),
		metrics: m,
	}
}

var _ usecase.Reporter = (*Reporter)(nil)

func (r *Reporter) CandidateGenerated(_ context.Context, transactionID, invoiceID, generator string, confidence float64) {
	r.logger.Debug().
		Str("transaction_id", transactionID).
		Str("invoice_id", invoiceID).
		Str("generator", generator).
		Float64("confidence", confidence).
		Msg("candidate generated")

	if r.metrics != nil {
		r.metrics.CandidatesGenerated.WithLabelValues(generator).Inc()
	}
}

func (r *Reporter) CandidateDiscarded(_ context.Context, transactionID, invoiceID, reason string) {
	r.logger.Debug().
		Str("transaction_id", transactionID).
		Str("invoice_id", invoiceID).
		Str("reason", reason).
		Msg("candidate discarded")

	if r.metrics != nil {
		r.metrics.CandidatesDiscarded.WithLabelValues(reason).Inc()
	}
}

func (r *Reporter) SuggestionPersisted(_ context.Context, suggestion *domain.MatchSuggestion) {
	r.logger.Info().
		Str("suggestion_id", suggestion.ID).
		Str("transaction_id", suggestion.TransactionID).
		Str("invoice_id", suggestion.InvoiceID).
		Float64("confidence", suggestion.Confidence).
		Msg("suggestion persisted")

	if r.metrics != nil {
		r.metrics.SuggestionsCreated.Inc()
		r.metrics.MatchConfidence.Observe(suggestion.Confidence)
	}
}

func (r *Reporter) ApprovalCommitted(_ context.Context, suggestion *domain.MatchSuggestion) {
	r.logger.Info().
		Str("suggestion_id", suggestion.ID).
		Str("transaction_id", suggestion.TransactionID).
		Str("invoice_id", suggestion.InvoiceID).
		Msg("suggestion approved")

	if r.metrics != nil {
		r.metrics.SuggestionsApproved.Inc()
	}
}

func (r *Reporter) SuggestionRejected(_ context.Context, suggestion *domain.MatchSuggestion) {
	r.logger.Info().
		Str("suggestion_id", suggestion.ID).
		Str("transaction_id", suggestion.TransactionID).
		Str("invoice_id", suggestion.InvoiceID).
		Msg("suggestion rejected")

	if r.metrics != nil {
		r.metrics.SuggestionsRejected.Inc()
	}
}

func (r *Reporter) GatewayUnavailable(_ context.Context, source string, err error) {
	r.logger.Warn().
		Err(err).
		Str("source", source).
		Msg("billing gateway unavailable")

	if r.metrics != nil {
		r.metrics.GatewayFailures.WithLabelValues(source).Inc()
	}
}
