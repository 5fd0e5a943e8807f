package competitive

import "math"

// CompetitorRank describes one competitor's rank in a shared category.
// Lower rank is better.
type CompetitorRank struct {
	ProductID      string `json:"product_id"`
	Title          string `json:"title"`
	Rank           int    `json:"rank"`
	RankDifference int    `json:"rank_difference"`
	BetterRank     bool   `json:"better_rank"`
}

// RankStatistics summarizes one category's rank comparison set.
type RankStatistics struct {
	BestRank    int     `json:"best_rank"`
	WorstRank   int     `json:"worst_rank"`
	AverageRank float64 `json:"average_rank"`
	BetterCount int     `json:"competitors_with_better_rank"`
	WorseCount  int     `json:"competitors_with_worse_rank"`
}

// CategoryRankAnalysis compares the main product's rank in one category
// against the competitors that also report that category. Position stays
// "unknown" and Statistics nil when no competitor shares the category.
type CategoryRankAnalysis struct {
	MainRank    int              `json:"main_product_rank"`
	Competitors []CompetitorRank `json:"competitors"`
	Position    string           `json:"position"`
	Statistics  *RankStatistics  `json:"rank_statistics,omitempty"`
}

// RankAnalysis is the category-rank dimension payload, keyed by the main
// product's category names.
type RankAnalysis struct {
	Categories map[string]CategoryRankAnalysis `json:"categories"`

	score *float64
}

// AnalyzeCategoryRanks compares ranks per category. Only categories the
// main product reports are analyzed; competitors missing a category are
// excluded from that category's comparison set, never substituted. Returns
// an unavailable dimension when the main product reports no categories.
func AnalyzeCategoryRanks(main *ProductMetrics, competitors []ProductMetrics) Dimension[RankAnalysis] {
	if len(main.CategoryRanks) == 0 {
		return NotAvailable[RankAnalysis]("no category rank data for main product")
	}

	analysis := RankAnalysis{Categories: make(map[string]CategoryRankAnalysis, len(main.CategoryRanks))}

	for category, mainRank := range main.CategoryRanks {
		entry := CategoryRankAnalysis{
			MainRank: mainRank,
			Position: PositionUnknown,
		}

		var competitorRanks []int
		for _, comp := range competitors {
			rank, ok := comp.CategoryRanks[category]
			if !ok {
				continue
			}
			competitorRanks = append(competitorRanks, rank)
			entry.Competitors = append(entry.Competitors, CompetitorRank{
				ProductID:      comp.ProductID,
				Title:          truncateTitle(comp.Title),
				Rank:           rank,
				RankDifference: rank - mainRank,
				BetterRank:     rank < mainRank, // lower rank is better
			})
		}

		if len(competitorRanks) > 0 {
			allRanks := []float64{float64(mainRank)}
			stats := RankStatistics{BestRank: mainRank, WorstRank: mainRank}
			for _, rank := range competitorRanks {
				allRanks = append(allRanks, float64(rank))
				if rank < stats.BestRank {
					stats.BestRank = rank
				}
				if rank > stats.WorstRank {
					stats.WorstRank = rank
				}
				if rank < mainRank {
					stats.BetterCount++
				} else if rank > mainRank {
					stats.WorseCount++
				}
			}
			stats.AverageRank = math.Round(mean(allRanks))

			entry.Position = extremePosition(float64(mainRank), float64(stats.BestRank), float64(stats.WorstRank), PositionBest, PositionWorst)
			entry.Statistics = &stats
		}

		analysis.Categories[category] = entry
	}

	analysis.score = rankScore(main, competitors)
	return Available(analysis)
}

// rankScore compares the main product's single best rank against the
// average of each competitor's own best rank. A better (lower) rank scores
// the relative gap on a 0-100 scale; a worse rank is penalized below 50.
// Undefined without competitor ranks or with a zero average.
func rankScore(main *ProductMetrics, competitors []ProductMetrics) *float64 {
	mainBest, ok := main.BestRank()
	if !ok {
		return nil
	}

	var competitorBests []float64
	for _, comp := range competitors {
		if best, ok := comp.BestRank(); ok {
			competitorBests = append(competitorBests, float64(best))
		}
	}
	avg := mean(competitorBests)
	if len(competitorBests) == 0 || avg == 0 {
		return nil
	}

	best := float64(mainBest)
	if best < avg {
		return floatPtr(math.Min(100, (avg-best)/avg*100))
	}
	return floatPtr(math.Max(0, 50-(best-avg)/avg*50))
}
