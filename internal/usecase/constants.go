package usecase

// Matching defaults. All of them can be overridden through MatchConfig.
const (
	// DefaultMinConfidence is the combined-confidence threshold below which a
	// candidate pairing is not persisted.
	DefaultMinConfidence = 0.5

	// DefaultOutstandingPageSize bounds how many outstanding invoices the
	// Amount and DateProximity generators fetch per run.
	DefaultOutstandingPageSize = 100

	// DefaultLookbackDays is the trailing window of unmatched transactions
	// scanned when a new invoice arrives.
	DefaultLookbackDays = 30

	// DefaultBulkPageSize bounds a bulk approve/reject page when the operator
	// does not name explicit suggestions.
	DefaultBulkPageSize = 50
)
