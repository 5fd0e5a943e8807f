package report

import (
	"context"
	"log"
	"time"

	"compete-radar/competitive"
)

// TextGenerator produces free text for a prompt. Implementations should
// honor ctx cancellation.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Synthesizer builds positioning reports. With a nil generator only the
// deterministic path runs.
type Synthesizer struct {
	generator TextGenerator
	timeout   time.Duration
}

func NewSynthesizer(generator TextGenerator, timeout time.Duration) *Synthesizer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Synthesizer{generator: generator, timeout: timeout}
}

// Synthesize produces a positioning report for a finished analysis. When
// augmentation is requested and a generator is configured, the generated
// text is mined per section; any section that yields nothing falls back to
// its deterministic counterpart. Generator failures never fail the report.
func (s *Synthesizer) Synthesize(ctx context.Context, analysis *competitive.AnalysisResult, useAugmentation bool) (*PositioningReport, error) {
	if analysis == nil {
		return nil, ErrReportGeneration
	}

	rpt := deterministic(analysis)

	if !useAugmentation || s.generator == nil {
		return rpt, nil
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.generator.Complete(genCtx, BuildAnalysisPrompt(analysis))
	if err != nil {
		log.Printf("⚠️ Text generation failed, using deterministic report: %v", err)
		return rpt, nil
	}

	augmented := false

	if summary := extractExecutiveSummary(text); summary != "" {
		rpt.ExecutiveSummary = summary
		augmented = true
	}
	if swot, ok := extractSWOT(text); ok {
		rpt.SWOT = swot
		augmented = true
	}
	if recs := extractRecommendations(text); len(recs) > 0 {
		rpt.Recommendations = recs
		augmented = true
	}
	if trends := extractInsightTrends(text); len(trends) > 0 {
		rpt.Insights.Trends = trends
		augmented = true
	}

	if augmented {
		rpt.DetailedAnalysis = text
		rpt.Metadata.Mode = "externally-augmented"
	}
	return rpt, nil
}
