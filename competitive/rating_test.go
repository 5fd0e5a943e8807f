package competitive

import "testing"

func rated(id string, rating float64, reviews int) ProductMetrics {
	return ProductMetrics{
		ProductID:   id,
		Title:       "Product " + id,
		Rating:      floatPtr(rating),
		ReviewCount: intPtr(reviews),
	}
}

func TestAnalyzeRatingsQualityScore(t *testing.T) {
	main := rated("MAIN01", 4.5, 1200)
	competitors := []ProductMetrics{
		rated("COMP01", 4.2, 800),
		rated("COMP02", 4.7, 3000),
	}

	dim := AnalyzeRatings(&main, competitors)
	if !dim.OK() {
		t.Fatalf("expected rating dimension to be available: %s", dim.Unavailable)
	}
	analysis := dim.Data

	// Quality score is exactly (rating/5)*100, independent of competitors.
	if analysis.score == nil || *analysis.score != 90.0 {
		t.Fatalf("expected quality score 90.0, got %v", analysis.score)
	}

	if analysis.RatingStats == nil {
		t.Fatal("expected rating statistics")
	}
	if analysis.RatingStats.Min != 4.2 || analysis.RatingStats.Max != 4.7 {
		t.Errorf("expected rating range [4.2, 4.7], got [%v, %v]",
			analysis.RatingStats.Min, analysis.RatingStats.Max)
	}
	if analysis.RatingStats.Position != PositionMiddle {
		t.Errorf("expected middle rating position, got %s", analysis.RatingStats.Position)
	}

	// 4.5 vs average 4.47: at or above average counts as advantage.
	if analysis.QualityAdvantage == nil || !*analysis.QualityAdvantage {
		t.Error("expected quality advantage")
	}
	// 1200 reviews vs average 1666.67.
	if analysis.PopularityAdvantage == nil || *analysis.PopularityAdvantage {
		t.Error("expected no popularity advantage")
	}
}

func TestAnalyzeRatingsEqualRatingsResolveToLowest(t *testing.T) {
	main := rated("MAIN01", 4.0, 10)
	competitors := []ProductMetrics{rated("COMP01", 4.0, 20), rated("COMP02", 4.0, 30)}

	dim := AnalyzeRatings(&main, competitors)
	if dim.Data.RatingStats.Position != PositionLowest {
		t.Errorf("expected equal ratings to resolve to lowest, got %s", dim.Data.RatingStats.Position)
	}
}

func TestAnalyzeRatingsZeroReviewCountIsPresent(t *testing.T) {
	main := ProductMetrics{ProductID: "MAIN01", ReviewCount: intPtr(0)}
	competitors := []ProductMetrics{
		{ProductID: "COMP01", ReviewCount: intPtr(500)},
	}

	dim := AnalyzeRatings(&main, competitors)
	if !dim.OK() {
		t.Fatal("a zero review count is data, the dimension must stay available")
	}
	analysis := dim.Data

	if analysis.ReviewStats == nil {
		t.Fatal("expected review statistics")
	}
	if analysis.ReviewStats.Position != PositionLowest {
		t.Errorf("expected lowest review position, got %s", analysis.ReviewStats.Position)
	}
	if analysis.PopularityAdvantage == nil {
		t.Fatal("expected popularity advantage to be computed for a zero count")
	}
	if *analysis.PopularityAdvantage {
		t.Error("zero reviews against 500 should not be an advantage")
	}

	// No ratings anywhere means no quality score, but not unavailability.
	if analysis.score != nil {
		t.Error("expected no quality score without a main rating")
	}
}

func TestAnalyzeRatingsNoData(t *testing.T) {
	main := ProductMetrics{ProductID: "MAIN01"}
	competitors := []ProductMetrics{{ProductID: "COMP01"}}

	dim := AnalyzeRatings(&main, competitors)
	if dim.OK() {
		t.Fatal("expected unavailable dimension with no ratings or reviews anywhere")
	}
}
