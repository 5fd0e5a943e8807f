package competitive

import "testing"

func dimWithPriceScore(score float64) Dimension[PriceAnalysis] {
	return Available(PriceAnalysis{score: &score})
}

func dimWithQualityScore(score float64) Dimension[RatingAnalysis] {
	return Available(RatingAnalysis{score: &score})
}

func dimWithRankScore(score float64) Dimension[RankAnalysis] {
	return Available(RankAnalysis{score: &score})
}

func TestSummarizeAllDimensions(t *testing.T) {
	summary := Summarize(
		dimWithPriceScore(60),
		dimWithQualityScore(90),
		dimWithRankScore(45),
		4,
	)

	if summary.Scores.Overall == nil || *summary.Scores.Overall != 65.0 {
		t.Fatalf("expected overall 65.0, got %v", summary.Scores.Overall)
	}
	if summary.Positions.Price != "competitive" {
		t.Errorf("expected competitive price position, got %s", summary.Positions.Price)
	}
	if summary.Positions.Quality != "superior" {
		t.Errorf("expected superior quality position, got %s", summary.Positions.Quality)
	}
	if summary.Positions.Popularity != "following" {
		t.Errorf("expected following popularity position, got %s", summary.Positions.Popularity)
	}
	if summary.Positions.Overall != "strong" {
		t.Errorf("expected strong overall position, got %s", summary.Positions.Overall)
	}
	if summary.Confidence != "high" {
		t.Errorf("expected high confidence with 4 competitors, got %s", summary.Confidence)
	}
	if summary.TotalCompetitors != 4 {
		t.Errorf("expected 4 competitors recorded, got %d", summary.TotalCompetitors)
	}
}

func TestSummarizeThresholdsAreStrict(t *testing.T) {
	// Scores exactly at the threshold take the lower label.
	summary := Summarize(
		dimWithPriceScore(50),
		dimWithQualityScore(70),
		dimWithRankScore(60),
		2,
	)

	if summary.Positions.Price != "expensive" {
		t.Errorf("expected expensive at exactly 50, got %s", summary.Positions.Price)
	}
	if summary.Positions.Quality != "average" {
		t.Errorf("expected average at exactly 70, got %s", summary.Positions.Quality)
	}
	if summary.Positions.Popularity != "following" {
		t.Errorf("expected following at exactly 60, got %s", summary.Positions.Popularity)
	}
	if summary.Positions.Overall != "weak" {
		t.Errorf("expected weak overall at exactly 60, got %s", summary.Positions.Overall)
	}
	if summary.Confidence != "medium" {
		t.Errorf("expected medium confidence with 2 competitors, got %s", summary.Confidence)
	}
}

func TestSummarizePartialScores(t *testing.T) {
	summary := Summarize(
		dimWithPriceScore(80),
		NotAvailable[RatingAnalysis]("no rating or review data available"),
		Available(RankAnalysis{}), // available but unscored
		1,
	)

	if summary.Scores.Quality != nil || summary.Scores.Popularity != nil {
		t.Error("expected only the price sub-score to be present")
	}
	if summary.Positions.Quality != "" || summary.Positions.Popularity != "" {
		t.Error("expected no labels for absent sub-scores")
	}
	if summary.Scores.Overall == nil || *summary.Scores.Overall != 80.0 {
		t.Fatalf("expected overall 80.0 from a single sub-score, got %v", summary.Scores.Overall)
	}
}

func TestSummarizeNoScores(t *testing.T) {
	summary := Summarize(
		NotAvailable[PriceAnalysis]("no price data available"),
		NotAvailable[RatingAnalysis]("no rating or review data available"),
		NotAvailable[RankAnalysis]("no category rank data for main product"),
		3,
	)

	if summary.Scores.Overall != nil {
		t.Error("expected no overall score for an unscored analysis")
	}
	if summary.Positions.Overall != "" {
		t.Errorf("expected no overall label, got %s", summary.Positions.Overall)
	}
	if summary.Confidence != "high" {
		t.Errorf("confidence tracks competitor count regardless of scores, got %s", summary.Confidence)
	}
}
