package competitive

import "math"

// Position labels shared by the dimension analyzers. Tie-break rule
// everywhere: equality with the minimum wins before the maximum is checked,
// so a single distinct value across all parties resolves to the minimum
// label ("lowest" / "best").
const (
	PositionLowest  = "lowest"
	PositionHighest = "highest"
	PositionMiddle  = "middle"
	PositionBest    = "best"
	PositionWorst   = "worst"
	PositionUnknown = "unknown"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// extremePosition resolves a value's position against the min/max of its
// comparison set. The minimum check comes first so equal extremes
// deterministically resolve to atMin.
func extremePosition(value, lo, hi float64, atMin, atMax string) string {
	switch {
	case value == lo:
		return atMin
	case value == hi:
		return atMax
	default:
		return PositionMiddle
	}
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func intPtr(v int) *int { return &v }
