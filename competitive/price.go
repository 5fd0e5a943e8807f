package competitive

// CompetitorPrice describes one priced competitor relative to the main
// product. Difference fields are nil when the main product has no price.
type CompetitorPrice struct {
	ProductID     string   `json:"product_id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	Difference    *float64 `json:"price_difference,omitempty"`
	DifferencePct *float64 `json:"price_difference_percent,omitempty"`
}

// PriceRange holds aggregate statistics over all present prices,
// main product included when priced.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Spread  float64 `json:"spread"`
}

// PriceAnalysis is the price dimension payload.
type PriceAnalysis struct {
	MainPrice          *float64          `json:"main_product_price"`
	Position           string            `json:"price_position"`
	MarketRange        PriceRange        `json:"market_price_range"`
	Competitors        []CompetitorPrice `json:"competitors"`
	PriceAdvantage     *bool             `json:"price_advantage"`
	CheaperCompetitors int               `json:"cheaper_competitors"`
	PricierCompetitors int               `json:"more_expensive_competitors"`

	// Competitiveness sub-score for the summarizer; intentionally not
	// part of the serialized dimension payload.
	score *float64
}

// AnalyzePrice computes the price positioning of the main product against
// its competitors. The comparison set is every present price; the main
// price joins the set only when non-nil. Returns an unavailable dimension
// when nobody reports a price.
func AnalyzePrice(main *ProductMetrics, competitors []ProductMetrics) Dimension[PriceAnalysis] {
	var allPrices []float64
	if main.Price != nil {
		allPrices = append(allPrices, *main.Price)
	}

	var entries []CompetitorPrice
	var competitorPrices []float64
	for _, comp := range competitors {
		if comp.Price == nil {
			continue
		}
		price := *comp.Price
		allPrices = append(allPrices, price)
		competitorPrices = append(competitorPrices, price)

		entry := CompetitorPrice{
			ProductID: comp.ProductID,
			Title:     truncateTitle(comp.Title),
			Price:     price,
		}
		if main.Price != nil {
			entry.Difference = floatPtr(round2(price - *main.Price))
			entry.DifferencePct = floatPtr(round2((price - *main.Price) / *main.Price * 100))
		}
		entries = append(entries, entry)
	}

	if len(allPrices) == 0 {
		return NotAvailable[PriceAnalysis]("no price data available")
	}

	lo, hi := minMax(allPrices)
	avg := mean(allPrices)

	analysis := PriceAnalysis{
		MainPrice:   main.Price,
		Position:    PositionUnknown,
		Competitors: entries,
		MarketRange: PriceRange{
			Min:     lo,
			Max:     hi,
			Average: round2(avg),
			Spread:  round2(hi - lo),
		},
	}

	if main.Price != nil {
		mainPrice := *main.Price
		analysis.Position = extremePosition(mainPrice, lo, hi, PositionLowest, PositionHighest)
		analysis.PriceAdvantage = boolPtr(mainPrice <= avg)

		for _, price := range competitorPrices {
			if price < mainPrice {
				analysis.CheaperCompetitors++
			} else if price > mainPrice {
				analysis.PricierCompetitors++
			}
		}

		// Sub-score against the competitor-only average: 100 at half the
		// average price, 0 at double. Undefined without competitor prices.
		if avgComp := mean(competitorPrices); len(competitorPrices) > 0 && avgComp > 0 {
			ratio := mainPrice / avgComp
			analysis.score = floatPtr(clampScore((2 - ratio) * 50))
		}
	}

	return Available(analysis)
}

// truncateTitle shortens long listing titles for embedding in payloads.
func truncateTitle(title string) string {
	const limit = 50
	if len(title) <= limit {
		return title
	}
	return title[:limit] + "..."
}
