package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"compete-radar/competitive"
)

// deterministic builds a full report from analysis data alone, no external
// calls. Every section here is also the fallback for a failed augmented
// section.
func deterministic(analysis *competitive.AnalysisResult) *PositioningReport {
	return &PositioningReport{
		ExecutiveSummary: executiveSummary(analysis),
		Positioning:      positioning(analysis),
		SWOT:             swot(analysis),
		Differentiation:  featureDifferentiation(analysis),
		Recommendations:  recommendations(analysis),
		Insights:         marketInsights(analysis),
		Metadata:         metadata(analysis, "deterministic"),
	}
}

func metadata(analysis *competitive.AnalysisResult, mode string) Metadata {
	return Metadata{
		GeneratedAt: analysis.AnalyzedAt,
		Mode:        mode,
		Confidence:  analysis.Summary.Confidence,
		AnalysisID:  analysis.AnalysisID,
		DataPoints:  len(analysis.Competitors) + 1,
	}
}

func executiveSummary(analysis *competitive.AnalysisResult) string {
	title := truncate(analysis.MainProduct.Title, 50)
	positions := analysis.Summary.Positions
	overall := analysis.Summary.Scores.Overall

	if overall == nil {
		return fmt.Sprintf(
			"%s could not be scored against its competitors: no price, rating or rank data was comparable across the group of %d competitors.",
			title, analysis.Summary.TotalCompetitors)
	}

	var performance string
	switch {
	case *overall >= 80:
		performance = "exceptionally strong"
	case *overall >= 60:
		performance = "competitive"
	case *overall >= 40:
		performance = "moderate"
	default:
		performance = "challenging"
	}

	return fmt.Sprintf(
		"%s shows %s market positioning with an overall competitiveness score of %.1f/100. "+
			"The product is positioned as %s in pricing, %s in quality metrics, and %s in market popularity. "+
			"Key competitive stance: %s market position among %d analyzed competitors.",
		title, performance, *overall,
		orUnknown(positions.Price), orUnknown(positions.Quality), orUnknown(positions.Popularity),
		orUnknown(positions.Overall), analysis.Summary.TotalCompetitors)
}

func positioning(analysis *competitive.AnalysisResult) Positioning {
	var pos Positioning
	pos.Price.Position = "unknown"
	pos.Quality.Position = "unknown"

	if analysis.Price.OK() {
		price := analysis.Price.Data
		pos.Price.Position = price.Position
		if price.PriceAdvantage != nil {
			pos.Price.Advantage = *price.PriceAdvantage
		}
	}
	pos.Price.MarketContext = fmt.Sprintf("Positioned in %s price tier", pos.Price.Position)

	if analysis.Ratings.OK() {
		ratings := analysis.Ratings.Data
		pos.Quality.Rating = ratings.MainRating
		if ratings.RatingStats != nil && ratings.RatingStats.Position != "" {
			pos.Quality.Position = ratings.RatingStats.Position
		}
		if ratings.QualityAdvantage != nil {
			pos.Quality.Advantage = *ratings.QualityAdvantage
		}
	}

	if analysis.CategoryRanks.OK() {
		// Deterministic pick: the best-position category with the lowest
		// name wins when several qualify.
		var bestCategory string
		var bestRank int
		categories := make([]string, 0, len(analysis.CategoryRanks.Data.Categories))
		for name := range analysis.CategoryRanks.Data.Categories {
			categories = append(categories, name)
		}
		sort.Strings(categories)
		for _, name := range categories {
			cat := analysis.CategoryRanks.Data.Categories[name]
			if cat.Position == competitive.PositionBest {
				bestCategory = name
				bestRank = cat.MainRank
				break
			}
		}
		if bestCategory != "" {
			rank := bestRank
			pos.Popularity = PopularityPositioning{
				BestCategory: bestCategory,
				BestRank:     &rank,
				Performance:  "strong",
			}
		} else {
			pos.Popularity.Performance = "moderate"
		}
	}

	if pos.Price.Position == competitive.PositionHighest {
		pos.Notes = append(pos.Notes, "Consider price optimization to improve competitiveness")
	}
	if analysis.Ratings.OK() {
		adv := analysis.Ratings.Data.QualityAdvantage
		if adv != nil && !*adv {
			pos.Notes = append(pos.Notes, "Focus on product quality improvements and customer satisfaction")
		}
	}

	return pos
}

func swot(analysis *competitive.AnalysisResult) SWOT {
	s := SWOT{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}

	if analysis.Price.OK() {
		price := analysis.Price.Data
		if price.PriceAdvantage != nil && *price.PriceAdvantage {
			s.Strengths = append(s.Strengths, "Competitive pricing advantage")
		} else if price.Position == competitive.PositionHighest {
			s.Weaknesses = append(s.Weaknesses, "Premium pricing may limit market reach")
		}
	}

	if analysis.Ratings.OK() {
		adv := analysis.Ratings.Data.QualityAdvantage
		if adv != nil && *adv {
			s.Strengths = append(s.Strengths, "Superior customer satisfaction ratings")
		} else {
			s.Opportunities = append(s.Opportunities, "Potential for quality improvement initiatives")
		}
	}

	if analysis.Features.OK() {
		features := analysis.Features.Data
		if hasAnyFeature(features.UniqueToMain) {
			s.Strengths = append(s.Strengths, "Unique product features not found in competitors")
		}
		if hasAnyFeature(features.MissingFromMain) {
			s.Opportunities = append(s.Opportunities, "Feature gaps present opportunities for product enhancement")
		}
	}

	// An unscored analysis contributes nothing here in either direction.
	if overall := analysis.Summary.Scores.Overall; overall != nil {
		if *overall > 70 {
			s.Strengths = append(s.Strengths, "Strong overall market positioning")
		} else if *overall < 40 {
			s.Threats = append(s.Threats, "Weak competitive position requires strategic intervention")
		}
	}

	return s
}

func featureDifferentiation(analysis *competitive.AnalysisResult) FeatureDifferentiation {
	diff := FeatureDifferentiation{Level: "low"}
	if !analysis.Features.OK() {
		return diff
	}
	features := analysis.Features.Data

	diff.UniqueCount = countFeatures(features.UniqueToMain)
	diff.CommonCount = countFeatures(features.CommonFeatures)
	diff.MissingCount = countFeatures(features.MissingFromMain)
	diff.KeyDifferentiators = features.UniqueToMain
	diff.FeatureGaps = features.MissingFromMain

	total := diff.UniqueCount + diff.CommonCount + diff.MissingCount
	if total == 0 {
		return diff
	}

	score := float64(diff.UniqueCount*2+diff.CommonCount-diff.MissingCount) / float64(total) * 50
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	score = round1(score)
	diff.Score = &score

	switch {
	case score > 70:
		diff.Level = "high"
	case score > 40:
		diff.Level = "moderate"
	}
	return diff
}

func recommendations(analysis *competitive.AnalysisResult) []Recommendation {
	var recs []Recommendation

	if analysis.Price.OK() && analysis.Price.Data.Position == competitive.PositionHighest {
		recs = append(recs, Recommendation{
			Category: "pricing",
			Priority: "high",
			Action:   "Consider price adjustment",
			Rationale: fmt.Sprintf("%d of %d competitors are priced lower",
				analysis.Price.Data.CheaperCompetitors, len(analysis.Price.Data.Competitors)),
			Impact: "Increased market competitiveness",
		})
	}

	if analysis.Ratings.OK() {
		adv := analysis.Ratings.Data.QualityAdvantage
		if adv == nil || !*adv {
			recs = append(recs, Recommendation{
				Category:  "quality",
				Priority:  "medium",
				Action:    "Improve product quality and customer experience",
				Rationale: "Competitor ratings suggest room for improvement",
				Impact:    "Enhanced customer satisfaction and reviews",
			})
		}
	}

	if analysis.Features.OK() && hasAnyFeature(analysis.Features.Data.MissingFromMain) {
		recs = append(recs, Recommendation{
			Category:  "features",
			Priority:  "medium",
			Action:    "Evaluate adding missing features",
			Rationale: "Competitors offer features not present in main product",
			Impact:    "Improved feature parity and customer appeal",
		})
	}

	if overall := analysis.Summary.Scores.Overall; overall != nil && *overall < 50 {
		recs = append(recs, Recommendation{
			Category:  "strategy",
			Priority:  "high",
			Action:    "Comprehensive competitive strategy review",
			Rationale: fmt.Sprintf("Overall competitiveness score of %.1f indicates strategic challenges", *overall),
			Impact:    "Improved market positioning and competitive advantage",
		})
	}

	return recs
}

func marketInsights(analysis *competitive.AnalysisResult) MarketInsights {
	insights := MarketInsights{OverallPosition: orUnknown(analysis.Summary.Positions.Overall)}

	if analysis.Price.OK() && len(analysis.Price.Data.Competitors) > 0 {
		spread := analysis.Price.Data.MarketRange.Spread
		avg := analysis.Price.Data.MarketRange.Average

		switch {
		case spread > avg*0.5:
			insights.PriceVolatility = "high"
		case spread > avg*0.2:
			insights.PriceVolatility = "moderate"
		default:
			insights.PriceVolatility = "low"
		}

		if spread > avg*0.3 {
			insights.MarketMaturity = "fragmented"
		} else {
			insights.MarketMaturity = "consolidated"
		}

		if len(analysis.Competitors) > 5 {
			insights.PriceCompetitionIntensity = "high"
		} else {
			insights.PriceCompetitionIntensity = "moderate"
		}
	}

	scores := analysis.Summary.Scores
	insights.MarketLeadership = scores.Popularity != nil && *scores.Popularity > 70
	insights.QualityDifferentiation = scores.Quality != nil && *scores.Quality > 80
	insights.PriceLeadership = scores.Price != nil && *scores.Price > 80

	return insights
}

func hasAnyFeature(buckets map[string][]string) bool {
	for _, features := range buckets {
		if len(features) > 0 {
			return true
		}
	}
	return false
}

func countFeatures(buckets map[string][]string) int {
	total := 0
	for _, features := range buckets {
		total += len(features)
	}
	return total
}

func orUnknown(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit]) + "..."
}
