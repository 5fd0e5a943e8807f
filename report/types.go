// Package report turns a finished competitive analysis into a positioning
// report. The deterministic path is always available; an optional text
// generator can augment individual sections, with per-section fallback.
package report

import (
	"errors"
	"time"
)

// ErrReportGeneration covers catastrophic synthesis failures, such as a
// nil analysis. Augmentation failures never surface through it.
var ErrReportGeneration = errors.New("report generation failed")

// Recommendation is one structured strategic action item.
type Recommendation struct {
	Category  string `json:"category"` // pricing, quality, features, strategy, strategic
	Priority  string `json:"priority"` // high, medium
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	Impact    string `json:"expected_impact"`
}

// SWOT buckets the rule-derived strengths, weaknesses, opportunities and
// threats.
type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// FeatureDifferentiation scores how distinct the main product's feature
// set is. Score is omitted when no features were classified at all.
type FeatureDifferentiation struct {
	Score              *float64            `json:"differentiation_score,omitempty"`
	UniqueCount        int                 `json:"unique_features_count"`
	CommonCount        int                 `json:"common_features_count"`
	MissingCount       int                 `json:"missing_features_count"`
	Level              string              `json:"differentiation_level"`
	KeyDifferentiators map[string][]string `json:"key_differentiators,omitempty"`
	FeatureGaps        map[string][]string `json:"feature_gaps,omitempty"`
}

// PricePositioning summarizes the pricing stance.
type PricePositioning struct {
	Position      string `json:"position"`
	Advantage     bool   `json:"advantage"`
	MarketContext string `json:"market_context"`
}

// QualityPositioning summarizes the rating stance.
type QualityPositioning struct {
	Rating    *float64 `json:"rating,omitempty"`
	Position  string   `json:"position"`
	Advantage bool     `json:"advantage"`
}

// PopularityPositioning names the category where the main product ranks
// best, if any.
type PopularityPositioning struct {
	BestCategory string `json:"best_category,omitempty"`
	BestRank     *int   `json:"best_rank,omitempty"`
	Performance  string `json:"overall_performance,omitempty"`
}

// Positioning collects the per-dimension stances plus short advisory notes.
type Positioning struct {
	Price      PricePositioning      `json:"price_positioning"`
	Quality    QualityPositioning    `json:"quality_positioning"`
	Popularity PopularityPositioning `json:"popularity_positioning"`
	Notes      []string              `json:"recommendations"`
}

// MarketInsights captures market dynamics and landscape flags.
type MarketInsights struct {
	PriceVolatility           string   `json:"price_volatility,omitempty"`
	MarketMaturity            string   `json:"market_maturity,omitempty"`
	PriceCompetitionIntensity string   `json:"price_competition_intensity,omitempty"`
	MarketLeadership          bool     `json:"market_leadership"`
	QualityDifferentiation    bool     `json:"quality_differentiation"`
	PriceLeadership           bool     `json:"price_leadership"`
	OverallPosition           string   `json:"overall_market_position"`
	Trends                    []string `json:"trends,omitempty"`
}

// Metadata records how and from what a report was produced.
type Metadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Mode        string    `json:"mode"` // deterministic or externally-augmented
	Confidence  string    `json:"analysis_confidence"`
	AnalysisID  string    `json:"analysis_id"`
	DataPoints  int       `json:"data_points_analyzed"`
}

// PositioningReport is the full competitive positioning report.
type PositioningReport struct {
	ExecutiveSummary string                 `json:"executive_summary"`
	Positioning      Positioning            `json:"competitive_positioning"`
	SWOT             SWOT                   `json:"strengths_weaknesses"`
	Differentiation  FeatureDifferentiation `json:"feature_differentiation"`
	Recommendations  []Recommendation       `json:"strategic_recommendations"`
	Insights         MarketInsights         `json:"market_insights"`
	DetailedAnalysis string                 `json:"detailed_analysis,omitempty"`
	Metadata         Metadata               `json:"report_metadata"`
}
