package competitive

import "errors"

// Fatal analysis errors. These abort an analysis before any dimension runs
// and are returned to the caller as typed values, never swallowed.
var (
	// ErrGroupNotFound indicates the competitive group does not exist or
	// has been deleted.
	ErrGroupNotFound = errors.New("competitive group not found")

	// ErrMainMetricsUnavailable indicates the main product has no metrics
	// snapshot. No partial analysis is possible without a main product.
	ErrMainMetricsUnavailable = errors.New("main product metrics unavailable")

	// ErrInsufficientCompetitors indicates no competitor had fetchable
	// metrics after per-competitor failures were filtered out.
	ErrInsufficientCompetitors = errors.New("no competitor data available")

	// ErrMetricsNotFound is the not-found signal a MetricsProvider returns
	// when a product has no snapshot.
	ErrMetricsNotFound = errors.New("no metrics snapshot for product")
)
