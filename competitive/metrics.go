// Package competitive implements the multi-dimensional competitive analysis
// engine: metrics aggregation for a competitive group, the four dimension
// analyzers (price, rating/popularity, category rank, features), and the
// blended competitive summary.
//
// All analysis functions in this package are pure: given the same
// ProductMetrics inputs they produce the same outputs, with no internal
// state and no I/O. External collaborators (group repository, metrics
// provider) are injected through interfaces so the engine can be tested
// with in-memory doubles.
package competitive

// ProductMetrics is an immutable snapshot of one listing's tracked metrics,
// produced once per analysis run and never mutated afterward.
//
// Pointer fields are nullable: a nil price/rating/review count means the
// metric was not observed. A zero review count is present data, not missing.
type ProductMetrics struct {
	ProductID     string              `json:"product_id"`
	Title         string              `json:"title"`
	Price         *float64            `json:"price"`
	Rating        *float64            `json:"rating"`
	ReviewCount   *int                `json:"review_count"`
	CategoryRanks map[string]int      `json:"category_ranks,omitempty"`
	Features      map[string][]string `json:"features,omitempty"`
	Availability  string              `json:"availability,omitempty"`

	// Set only on competitor entries, from group membership.
	CompetitorName string `json:"competitor_name,omitempty"`
	Priority       int    `json:"priority,omitempty"`
}

// FeatureCount returns the total number of feature tags across all
// feature categories.
func (m *ProductMetrics) FeatureCount() int {
	total := 0
	for _, features := range m.Features {
		total += len(features)
	}
	return total
}

// BestRank returns the best (lowest) category rank across all categories,
// and false if the product reports no category ranks.
func (m *ProductMetrics) BestRank() (int, bool) {
	if len(m.CategoryRanks) == 0 {
		return 0, false
	}

	best := 0
	first := true
	for _, rank := range m.CategoryRanks {
		if first || rank < best {
			best = rank
			first = false
		}
	}
	return best, true
}
