package report

import (
	"fmt"
	"sort"
	"strings"

	"compete-radar/competitive"
)

// promptCompetitorLimit bounds prompt size on large groups.
const promptCompetitorLimit = 5

// BuildAnalysisPrompt serializes an analysis into the natural-language
// prompt handed to the text generator.
func BuildAnalysisPrompt(analysis *competitive.AnalysisResult) string {
	var b strings.Builder

	main := analysis.MainProduct
	b.WriteString("Analyze the following e-commerce product competitive landscape:\n\n")
	b.WriteString("MAIN PRODUCT:\n")
	fmt.Fprintf(&b, "- Product ID: %s\n", main.ProductID)
	fmt.Fprintf(&b, "- Title: %s\n", main.Title)
	fmt.Fprintf(&b, "- Price: %s\n", formatPrice(main.Price))
	fmt.Fprintf(&b, "- Rating: %s/5.0\n", formatFloat(main.Rating))
	fmt.Fprintf(&b, "- Reviews: %s\n", formatInt(main.ReviewCount))
	fmt.Fprintf(&b, "- Features: %s\n", formatFeatures(main.Features))

	fmt.Fprintf(&b, "\nCOMPETITORS (%d products):\n", len(analysis.Competitors))
	for i, comp := range analysis.Competitors {
		if i >= promptCompetitorLimit {
			break
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, truncate(comp.Title, 50))
		fmt.Fprintf(&b, "   - Product ID: %s\n", comp.ProductID)
		fmt.Fprintf(&b, "   - Price: %s\n", formatPrice(comp.Price))
		fmt.Fprintf(&b, "   - Rating: %s/5.0\n", formatFloat(comp.Rating))
		fmt.Fprintf(&b, "   - Reviews: %s\n", formatInt(comp.ReviewCount))
	}

	b.WriteString("\nPRICE ANALYSIS:\n")
	if analysis.Price.OK() {
		price := analysis.Price.Data
		fmt.Fprintf(&b, "- Main product position: %s\n", price.Position)
		fmt.Fprintf(&b, "- Market average: $%.2f\n", price.MarketRange.Average)
		if price.PriceAdvantage != nil {
			fmt.Fprintf(&b, "- Price advantage: %t\n", *price.PriceAdvantage)
		}
	} else {
		b.WriteString("- No comparable price data\n")
	}

	b.WriteString("\nFEATURE ANALYSIS:\n")
	if analysis.Features.OK() {
		features := analysis.Features.Data
		fmt.Fprintf(&b, "- Unique features: %s\n", formatFeatures(features.UniqueToMain))
		fmt.Fprintf(&b, "- Missing features: %s\n", formatFeatures(features.MissingFromMain))
	} else {
		b.WriteString("- No feature data\n")
	}

	b.WriteString(`
Please provide a comprehensive competitive analysis including:
1. Executive summary of market position
2. SWOT analysis (Strengths, Weaknesses, Opportunities, Threats)
3. Key competitive advantages and disadvantages
4. Strategic recommendations for improvement
5. Market insights and trends
6. Feature differentiation assessment

Focus on actionable business insights for the main product seller.
`)

	return b.String()
}

func formatPrice(p *float64) string {
	if p == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *p)
}

func formatFloat(f *float64) string {
	if f == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *f)
}

func formatInt(n *int) string {
	if n == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *n)
}

// formatFeatures flattens a category map into "category: a, b; ..." with
// stable ordering.
func formatFeatures(buckets map[string][]string) string {
	if len(buckets) == 0 {
		return "none"
	}
	categories := make([]string, 0, len(buckets))
	for name := range buckets {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var parts []string
	for _, name := range categories {
		if len(buckets[name]) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(buckets[name], ", ")))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}
