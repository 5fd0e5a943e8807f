package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"compete-radar/competitive"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// buildAnalysis assembles a full analysis result from raw metrics by
// running the real dimension analyzers.
func buildAnalysis(main competitive.ProductMetrics, competitors []competitive.ProductMetrics) *competitive.AnalysisResult {
	price := competitive.AnalyzePrice(&main, competitors)
	ratings := competitive.AnalyzeRatings(&main, competitors)
	ranks := competitive.AnalyzeCategoryRanks(&main, competitors)
	features := competitive.AnalyzeFeatures(&main, competitors)

	return &competitive.AnalysisResult{
		AnalysisID: "test-analysis",
		Group: competitive.GroupInfo{
			ID: 1, Name: "Test Group", MainProductID: main.ProductID,
			CompetitorCount: len(competitors),
		},
		MainProduct:   main,
		Competitors:   competitors,
		Price:         price,
		Ratings:       ratings,
		CategoryRanks: ranks,
		Features:      features,
		Summary:       competitive.Summarize(price, ratings, ranks, len(competitors)),
		AnalyzedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func strongAnalysis() *competitive.AnalysisResult {
	main := competitive.ProductMetrics{
		ProductID: "MAIN01", Title: "Aurora Wireless Headphones",
		Price: floatPtr(20), Rating: floatPtr(4.8), ReviewCount: intPtr(5000),
		CategoryRanks: map[string]int{"Electronics": 10},
		Features:      map[string][]string{"audio": {"anc", "spatial"}},
	}
	competitors := []competitive.ProductMetrics{
		{ProductID: "COMP01", Title: "Rival A", Price: floatPtr(45), Rating: floatPtr(4.0),
			ReviewCount: intPtr(900), CategoryRanks: map[string]int{"Electronics": 120},
			Features: map[string][]string{"audio": {"eq"}}},
		{ProductID: "COMP02", Title: "Rival B", Price: floatPtr(50), Rating: floatPtr(3.8),
			ReviewCount: intPtr(700), CategoryRanks: map[string]int{"Electronics": 200},
			Features: map[string][]string{"audio": {"eq"}}},
		{ProductID: "COMP03", Title: "Rival C", Price: floatPtr(40), Rating: floatPtr(4.1),
			ReviewCount: intPtr(1200), CategoryRanks: map[string]int{"Electronics": 90},
			Features: map[string][]string{"audio": {"eq"}}},
	}
	return buildAnalysis(main, competitors)
}

func weakAnalysis() *competitive.AnalysisResult {
	main := competitive.ProductMetrics{
		ProductID: "MAIN01", Title: "Laggard Speaker",
		Price: floatPtr(90), Rating: floatPtr(1.5), ReviewCount: intPtr(3),
		CategoryRanks: map[string]int{"Electronics": 900},
	}
	competitors := []competitive.ProductMetrics{
		{ProductID: "COMP01", Title: "Rival A", Price: floatPtr(30), Rating: floatPtr(4.6),
			ReviewCount: intPtr(8000), CategoryRanks: map[string]int{"Electronics": 15},
			Features: map[string][]string{"audio": {"anc", "bass boost"}}},
		{ProductID: "COMP02", Title: "Rival B", Price: floatPtr(35), Rating: floatPtr(4.5),
			ReviewCount: intPtr(6000), CategoryRanks: map[string]int{"Electronics": 25},
			Features: map[string][]string{"audio": {"anc"}}},
	}
	return buildAnalysis(main, competitors)
}

func TestSynthesizeNilAnalysis(t *testing.T) {
	synth := NewSynthesizer(nil, 0)
	if _, err := synth.Synthesize(context.Background(), nil, false); err == nil {
		t.Fatal("expected an error for a nil analysis")
	}
}

func TestDeterministicReportStrongProduct(t *testing.T) {
	rpt := deterministic(strongAnalysis())

	if !strings.Contains(rpt.ExecutiveSummary, "Aurora Wireless Headphones") {
		t.Error("expected the product title in the executive summary")
	}
	if !strings.Contains(rpt.ExecutiveSummary, "3 analyzed competitors") {
		t.Errorf("expected competitor count in summary: %s", rpt.ExecutiveSummary)
	}

	if len(rpt.SWOT.Strengths) == 0 {
		t.Fatal("expected strengths for a dominant product")
	}
	joined := strings.Join(rpt.SWOT.Strengths, "|")
	if !strings.Contains(joined, "pricing advantage") {
		t.Errorf("expected a pricing strength, got %v", rpt.SWOT.Strengths)
	}
	if !strings.Contains(joined, "satisfaction ratings") {
		t.Errorf("expected a quality strength, got %v", rpt.SWOT.Strengths)
	}
	if !strings.Contains(joined, "Unique product features") {
		t.Errorf("expected a unique-feature strength, got %v", rpt.SWOT.Strengths)
	}
	if len(rpt.SWOT.Threats) != 0 {
		t.Errorf("expected no threats, got %v", rpt.SWOT.Threats)
	}

	if rpt.Insights.OverallPosition != "strong" {
		t.Errorf("expected strong overall position, got %s", rpt.Insights.OverallPosition)
	}
	if rpt.Metadata.Mode != "deterministic" {
		t.Errorf("expected deterministic mode, got %s", rpt.Metadata.Mode)
	}
	if rpt.Metadata.DataPoints != 4 {
		t.Errorf("expected 4 data points, got %d", rpt.Metadata.DataPoints)
	}
	if !rpt.Metadata.GeneratedAt.Equal(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)) {
		t.Error("report timestamp must come from the analysis, not the clock")
	}
}

func TestDeterministicReportWeakProduct(t *testing.T) {
	rpt := deterministic(weakAnalysis())

	if !strings.Contains(rpt.ExecutiveSummary, "challenging") {
		t.Errorf("expected challenging wording, got: %s", rpt.ExecutiveSummary)
	}

	if len(rpt.SWOT.Weaknesses) == 0 {
		t.Error("expected a premium-pricing weakness for the priciest product")
	}
	if len(rpt.SWOT.Threats) == 0 {
		t.Error("expected a threat for an overall score under 40")
	}
	if len(rpt.SWOT.Opportunities) == 0 {
		t.Error("expected quality and feature opportunities")
	}

	var categories []string
	for _, rec := range rpt.Recommendations {
		categories = append(categories, rec.Category)
	}
	joined := strings.Join(categories, "|")
	for _, want := range []string{"pricing", "quality", "features", "strategy"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected a %s recommendation, got %v", want, categories)
		}
	}
}

func TestDeterministicReportUnscoredAnalysis(t *testing.T) {
	main := competitive.ProductMetrics{ProductID: "MAIN01", Title: "Mystery Gadget",
		Features: map[string][]string{"misc": {"thing"}}}
	competitors := []competitive.ProductMetrics{
		{ProductID: "COMP01", Features: map[string][]string{"misc": {"other"}}},
	}
	rpt := deterministic(buildAnalysis(main, competitors))

	if strings.Contains(rpt.ExecutiveSummary, "challenging") {
		t.Error("an unscored analysis must not read as a low score")
	}
	if !strings.Contains(rpt.ExecutiveSummary, "could not be scored") {
		t.Errorf("expected unscored wording, got: %s", rpt.ExecutiveSummary)
	}
	for _, threat := range rpt.SWOT.Threats {
		if strings.Contains(threat, "Weak competitive position") {
			t.Error("the low-score threat rule must not fire without a score")
		}
	}
	for _, rec := range rpt.Recommendations {
		if rec.Category == "strategy" {
			t.Error("the strategy recommendation must not fire without a score")
		}
	}
}

func TestFeatureDifferentiationScore(t *testing.T) {
	rpt := deterministic(strongAnalysis())
	diff := rpt.Differentiation

	// unique=2 (anc, spatial), common=1 (eq threshold ceil(2.1)=3... eq in
	// all 3 competitors), missing=0.
	if diff.UniqueCount != 2 {
		t.Errorf("expected 2 unique features, got %d", diff.UniqueCount)
	}
	if diff.Score == nil {
		t.Fatal("expected a differentiation score")
	}
	// (2*2 + 1 - 0) / 3 * 50 = 83.3
	if *diff.Score != 83.3 {
		t.Errorf("expected score 83.3, got %v", *diff.Score)
	}
	if diff.Level != "high" {
		t.Errorf("expected high differentiation, got %s", diff.Level)
	}
}

func TestFeatureDifferentiationZeroDenominator(t *testing.T) {
	main := competitive.ProductMetrics{ProductID: "MAIN01", Title: "Plain"}
	competitors := []competitive.ProductMetrics{{ProductID: "COMP01", Price: floatPtr(10)}}
	rpt := deterministic(buildAnalysis(main, competitors))

	if rpt.Differentiation.Score != nil {
		t.Errorf("expected omitted score with no classified features, got %v", *rpt.Differentiation.Score)
	}
	if rpt.Differentiation.Level != "low" {
		t.Errorf("expected low level, got %s", rpt.Differentiation.Level)
	}
}

func TestSynthesizeDeterministicIdempotent(t *testing.T) {
	analysis := strongAnalysis()
	synth := NewSynthesizer(nil, 0)

	first, err := synth.Synthesize(context.Background(), analysis, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := synth.Synthesize(context.Background(), analysis, false)
	if err != nil {
		t.Fatal(err)
	}

	if first.ExecutiveSummary != second.ExecutiveSummary {
		t.Error("executive summaries differ between runs")
	}
	if !first.Metadata.GeneratedAt.Equal(second.Metadata.GeneratedAt) {
		t.Error("metadata timestamps differ between runs")
	}
	if len(first.Recommendations) != len(second.Recommendations) {
		t.Error("recommendation lists differ between runs")
	}
}

func TestMarketInsightsVolatility(t *testing.T) {
	main := competitive.ProductMetrics{ProductID: "MAIN01", Title: "P", Price: floatPtr(30)}

	tests := []struct {
		name       string
		prices     []float64
		volatility string
		maturity   string
	}{
		{"wide spread", []float64{10, 100}, "high", "fragmented"},
		{"tight spread", []float64{29, 31}, "low", "consolidated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var competitors []competitive.ProductMetrics
			for i, p := range tt.prices {
				price := p
				competitors = append(competitors, competitive.ProductMetrics{
					ProductID: "COMP0" + string(rune('1'+i)), Price: &price,
				})
			}
			rpt := deterministic(buildAnalysis(main, competitors))

			if rpt.Insights.PriceVolatility != tt.volatility {
				t.Errorf("expected %s volatility, got %s", tt.volatility, rpt.Insights.PriceVolatility)
			}
			if rpt.Insights.MarketMaturity != tt.maturity {
				t.Errorf("expected %s maturity, got %s", tt.maturity, rpt.Insights.MarketMaturity)
			}
		})
	}
}
