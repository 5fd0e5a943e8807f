package competitive

// TrendSeries groups the per-dimension time series of a trend report.
// Populated once historical snapshots accumulate; empty maps otherwise.
type TrendSeries struct {
	Price  map[string][]float64 `json:"price_trends"`
	Rank   map[string][]int     `json:"rank_trends"`
	Rating map[string][]float64 `json:"rating_trends"`
}

// TrendAnalysis describes how a group's competitive position moved over a
// window of days.
type TrendAnalysis struct {
	GroupID    int64       `json:"group_id"`
	PeriodDays int         `json:"trend_period_days"`
	Trends     TrendSeries `json:"trends"`
	Note       string      `json:"note,omitempty"`
}

// Trends reports the competitive movement for a group over the given
// number of days. Historical series are not yet collected, so the result
// carries empty series and an explanatory note.
func (a *Analyzer) Trends(groupID int64, days int) *TrendAnalysis {
	return &TrendAnalysis{
		GroupID:    groupID,
		PeriodDays: days,
		Trends: TrendSeries{
			Price:  map[string][]float64{},
			Rank:   map[string][]int{},
			Rating: map[string][]float64{},
		},
		Note: "Trend analysis requires historical data collection over time",
	}
}
