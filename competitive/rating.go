package competitive

// CompetitorRating describes one competitor's rating and review metrics
// relative to the main product. Difference fields are nil when either side
// lacks the metric.
type CompetitorRating struct {
	ProductID       string   `json:"product_id"`
	Title           string   `json:"title"`
	Rating          *float64 `json:"rating"`
	ReviewCount     *int     `json:"review_count"`
	RatingDiff      *float64 `json:"rating_difference,omitempty"`
	ReviewCountDiff *int     `json:"review_count_difference,omitempty"`
}

// MetricStats holds min/max/average over one metric's comparison set plus
// the main product's position within it. Position is empty when the main
// product does not report the metric.
type MetricStats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Average  float64 `json:"average"`
	Position string  `json:"main_product_position,omitempty"`
}

// RatingAnalysis is the rating/popularity dimension payload. Rating and
// review-count sets are built independently; a competitor may contribute to
// one without the other.
type RatingAnalysis struct {
	MainRating          *float64           `json:"main_rating"`
	MainReviewCount     *int               `json:"main_review_count"`
	Competitors         []CompetitorRating `json:"competitors"`
	RatingStats         *MetricStats       `json:"rating_statistics,omitempty"`
	ReviewStats         *MetricStats       `json:"review_statistics,omitempty"`
	QualityAdvantage    *bool              `json:"quality_advantage"`
	PopularityAdvantage *bool              `json:"popularity_advantage"`

	score *float64
}

// AnalyzeRatings computes rating and review-count positioning. Returns an
// unavailable dimension only when no party reports either metric.
func AnalyzeRatings(main *ProductMetrics, competitors []ProductMetrics) Dimension[RatingAnalysis] {
	var allRatings, allReviewCounts []float64

	if main.Rating != nil {
		allRatings = append(allRatings, *main.Rating)
	}
	if main.ReviewCount != nil {
		allReviewCounts = append(allReviewCounts, float64(*main.ReviewCount))
	}

	var entries []CompetitorRating
	for _, comp := range competitors {
		entry := CompetitorRating{
			ProductID:   comp.ProductID,
			Title:       truncateTitle(comp.Title),
			Rating:      comp.Rating,
			ReviewCount: comp.ReviewCount,
		}

		if comp.Rating != nil {
			allRatings = append(allRatings, *comp.Rating)
			if main.Rating != nil {
				entry.RatingDiff = floatPtr(round2(*comp.Rating - *main.Rating))
			}
		}
		if comp.ReviewCount != nil {
			allReviewCounts = append(allReviewCounts, float64(*comp.ReviewCount))
			if main.ReviewCount != nil {
				entry.ReviewCountDiff = intPtr(*comp.ReviewCount - *main.ReviewCount)
			}
		}

		entries = append(entries, entry)
	}

	if len(allRatings) == 0 && len(allReviewCounts) == 0 {
		return NotAvailable[RatingAnalysis]("no rating or review data available")
	}

	analysis := RatingAnalysis{
		MainRating:      main.Rating,
		MainReviewCount: main.ReviewCount,
		Competitors:     entries,
	}

	if len(allRatings) > 0 {
		lo, hi := minMax(allRatings)
		avg := mean(allRatings)
		stats := &MetricStats{Min: lo, Max: hi, Average: round2(avg)}
		if main.Rating != nil {
			stats.Position = extremePosition(*main.Rating, lo, hi, PositionLowest, PositionHighest)
			analysis.QualityAdvantage = boolPtr(*main.Rating >= avg)
		}
		analysis.RatingStats = stats
	}

	if len(allReviewCounts) > 0 {
		lo, hi := minMax(allReviewCounts)
		avg := mean(allReviewCounts)
		stats := &MetricStats{Min: lo, Max: hi, Average: round2(avg)}
		if main.ReviewCount != nil {
			stats.Position = extremePosition(float64(*main.ReviewCount), lo, hi, PositionLowest, PositionHighest)
			analysis.PopularityAdvantage = boolPtr(float64(*main.ReviewCount) >= avg)
		}
		analysis.ReviewStats = stats
	}

	// Quality sub-score: the main rating scaled to 0-100 against the
	// 5-star ceiling. Undefined without a main rating.
	if main.Rating != nil {
		analysis.score = floatPtr(clampScore(*main.Rating / 5.0 * 100))
	}

	return Available(analysis)
}
