package competitive

import (
	"math"
	"sort"
)

// FeatureDiversity compares the main product's total feature count against
// the competitor average.
type FeatureDiversity struct {
	MainFeatureCount  int     `json:"main_product_features"`
	CompetitorAverage float64 `json:"average_competitor_features"`
	Richness          string  `json:"feature_richness"` // above_average / below_average
	CountComparison   float64 `json:"feature_count_comparison"`
}

// FeatureAnalysis is the feature dimension payload. The three buckets are
// disjoint for any (category, feature) pair, but do not partition the full
// pair set: a feature present in main and in some-but-under-70% of
// competitors lands in no bucket. That gap is deliberate.
type FeatureAnalysis struct {
	Categories      []string            `json:"feature_categories"`
	UniqueToMain    map[string][]string `json:"unique_to_main"`
	CommonFeatures  map[string][]string `json:"common_features"`
	MissingFromMain map[string][]string `json:"missing_from_main"`
	Diversity       FeatureDiversity    `json:"feature_diversity_score"`
}

// featurePresence tracks where one (category, feature) pair was seen.
type featurePresence struct {
	inMain          bool
	competitorCount int
}

// AnalyzeFeatures classifies every (category, feature) pair appearing in
// the main product or any competitor into at most one bucket, evaluated in
// precedence order:
//
//  1. unique_to_main: present in main, in zero competitors
//  2. common: present in at least 70% of competitors (rounded up),
//     whether or not main has it
//  3. missing_from_main: absent from main, present in at least one
//     competitor, and not common
func AnalyzeFeatures(main *ProductMetrics, competitors []ProductMetrics) Dimension[FeatureAnalysis] {
	presence := map[string]map[string]*featurePresence{}

	record := func(category, feature string) *featurePresence {
		if presence[category] == nil {
			presence[category] = map[string]*featurePresence{}
		}
		if presence[category][feature] == nil {
			presence[category][feature] = &featurePresence{}
		}
		return presence[category][feature]
	}

	for category, features := range main.Features {
		for _, feature := range features {
			record(category, feature).inMain = true
		}
	}
	for _, comp := range competitors {
		for category, features := range comp.Features {
			for _, feature := range features {
				record(category, feature).competitorCount++
			}
		}
	}

	commonThreshold := int(math.Ceil(0.7 * float64(len(competitors))))

	analysis := FeatureAnalysis{
		UniqueToMain:    map[string][]string{},
		CommonFeatures:  map[string][]string{},
		MissingFromMain: map[string][]string{},
	}

	for category, features := range presence {
		analysis.Categories = append(analysis.Categories, category)
		analysis.UniqueToMain[category] = []string{}
		analysis.CommonFeatures[category] = []string{}
		analysis.MissingFromMain[category] = []string{}

		for feature, seen := range features {
			switch {
			case seen.inMain && seen.competitorCount == 0:
				analysis.UniqueToMain[category] = append(analysis.UniqueToMain[category], feature)
			case seen.competitorCount >= commonThreshold:
				analysis.CommonFeatures[category] = append(analysis.CommonFeatures[category], feature)
			case !seen.inMain && seen.competitorCount > 0:
				analysis.MissingFromMain[category] = append(analysis.MissingFromMain[category], feature)
			}
			// Pairs in main but shared by under 70% of competitors stay
			// unclassified; do not invent a fourth bucket.
		}

		sort.Strings(analysis.UniqueToMain[category])
		sort.Strings(analysis.CommonFeatures[category])
		sort.Strings(analysis.MissingFromMain[category])
	}
	sort.Strings(analysis.Categories)

	analysis.Diversity = featureDiversity(main, competitors)
	return Available(analysis)
}

func featureDiversity(main *ProductMetrics, competitors []ProductMetrics) FeatureDiversity {
	mainCount := main.FeatureCount()

	var counts []float64
	for _, comp := range competitors {
		counts = append(counts, float64(comp.FeatureCount()))
	}
	avg := mean(counts)

	richness := "below_average"
	if float64(mainCount) > avg {
		richness = "above_average"
	}

	return FeatureDiversity{
		MainFeatureCount:  mainCount,
		CompetitorAverage: round1(avg),
		Richness:          richness,
		CountComparison:   float64(mainCount) - avg,
	}
}
