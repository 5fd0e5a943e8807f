package competitive

// CompetitiveScores holds the per-dimension 0-100 scores. A nil field means
// the dimension could not be scored from the available data.
type CompetitiveScores struct {
	Price      *float64 `json:"price_score,omitempty"`
	Quality    *float64 `json:"quality_score,omitempty"`
	Popularity *float64 `json:"popularity_score,omitempty"`
	Overall    *float64 `json:"overall_score,omitempty"`
}

// PositionSummary carries the human-readable label per scored dimension.
type PositionSummary struct {
	Price      string `json:"price_position,omitempty"`
	Quality    string `json:"quality_position,omitempty"`
	Popularity string `json:"popularity_position,omitempty"`
	Overall    string `json:"overall_position,omitempty"`
}

// CompetitiveSummary is the roll-up over all scored dimensions.
type CompetitiveSummary struct {
	Scores           CompetitiveScores `json:"scores"`
	Positions        PositionSummary   `json:"positions"`
	TotalCompetitors int               `json:"total_competitors"`
	Confidence       string            `json:"confidence"`
}

// Summarize rolls the scored dimensions up into an overall summary. The
// overall score is the mean of whichever sub-scores are present, rounded
// to one decimal; with no scored dimensions it stays nil and no overall
// label is assigned.
func Summarize(
	price Dimension[PriceAnalysis],
	ratings Dimension[RatingAnalysis],
	ranks Dimension[RankAnalysis],
	competitorCount int,
) CompetitiveSummary {
	summary := CompetitiveSummary{TotalCompetitors: competitorCount}

	var present []float64

	if price.OK() && price.Data.score != nil {
		s := round1(*price.Data.score)
		summary.Scores.Price = &s
		present = append(present, *price.Data.score)
		if *price.Data.score > 50 {
			summary.Positions.Price = "competitive"
		} else {
			summary.Positions.Price = "expensive"
		}
	}

	if ratings.OK() && ratings.Data.score != nil {
		s := round1(*ratings.Data.score)
		summary.Scores.Quality = &s
		present = append(present, *ratings.Data.score)
		if *ratings.Data.score > 70 {
			summary.Positions.Quality = "superior"
		} else {
			summary.Positions.Quality = "average"
		}
	}

	if ranks.OK() && ranks.Data.score != nil {
		s := round1(*ranks.Data.score)
		summary.Scores.Popularity = &s
		present = append(present, *ranks.Data.score)
		if *ranks.Data.score > 60 {
			summary.Positions.Popularity = "leading"
		} else {
			summary.Positions.Popularity = "following"
		}
	}

	if len(present) > 0 {
		overall := round1(mean(present))
		summary.Scores.Overall = &overall
		if overall > 60 {
			summary.Positions.Overall = "strong"
		} else {
			summary.Positions.Overall = "weak"
		}
	}

	if competitorCount >= 3 {
		summary.Confidence = "high"
	} else {
		summary.Confidence = "medium"
	}

	return summary
}
