package report

import "strings"

// Line-scanning extraction over free-form generated text. Each extractor
// returns the zero value when its section cannot be found; the caller
// falls back to the deterministic computation for that section alone.

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•") || strings.HasPrefix(line, "*")
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•* "))
}

// extractExecutiveSummary collects the prose under an "executive summary"
// header, stopping at the next numbered section or the SWOT header.
func extractExecutiveSummary(text string) string {
	var collected []string
	started := false

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "executive") && strings.Contains(lower, "summary"):
			started = true
		case started && (strings.Contains(line, "2.") || strings.Contains(lower, "swot")):
			return strings.Join(collected, " ")
		case started && strings.TrimSpace(line) != "":
			collected = append(collected, strings.TrimSpace(line))
		}
	}
	return strings.Join(collected, " ")
}

// extractSWOT assigns bullet lines to whichever SWOT bucket's header was
// seen most recently. Header matching is case-insensitive; bullet text
// keeps its original casing. Returns ok=false when no bullet landed in any
// bucket.
func extractSWOT(text string) (SWOT, bool) {
	swot := SWOT{
		Strengths:     []string{},
		Weaknesses:    []string{},
		Opportunities: []string{},
		Threats:       []string{},
	}

	var current *[]string
	found := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "strengths"):
			current = &swot.Strengths
		case strings.Contains(lower, "weaknesses"):
			current = &swot.Weaknesses
		case strings.Contains(lower, "opportunities"):
			current = &swot.Opportunities
		case strings.Contains(lower, "threats"):
			current = &swot.Threats
		case strings.Contains(lower, "recommendation") || strings.Contains(lower, "strategic") ||
			(strings.Contains(lower, "market") && (strings.Contains(lower, "insight") || strings.Contains(lower, "trend"))):
			// A later section header ends SWOT collection.
			current = nil
		case current != nil && isBullet(trimmed):
			*current = append(*current, stripBullet(trimmed))
			found = true
		}
	}
	return swot, found
}

// extractRecommendations collects bullets following a "recommendation" or
// "strategic" header into generic strategic action records.
func extractRecommendations(text string) []Recommendation {
	var recs []Recommendation
	started := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "recommendation") || strings.Contains(lower, "strategic"):
			started = true
		case started && isBullet(trimmed):
			recs = append(recs, Recommendation{
				Category:  "strategic",
				Priority:  "medium",
				Action:    stripBullet(trimmed),
				Rationale: "Based on competitive analysis",
				Impact:    "Market position improvement",
			})
		}
	}
	return recs
}

// extractInsightTrends collects bullets following a market insight or
// market trend header.
func extractInsightTrends(text string) []string {
	var trends []string
	started := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		switch {
		case strings.Contains(lower, "market") && (strings.Contains(lower, "insight") || strings.Contains(lower, "trend")):
			started = true
		case started && isBullet(trimmed):
			trends = append(trends, stripBullet(trimmed))
		}
	}
	return trends
}
