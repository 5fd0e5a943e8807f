package competitive

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Group is the analyzer's view of a competitive group.
type Group struct {
	ID            int64
	Name          string
	Description   string
	MainProductID string
}

// GroupCompetitor is one active tracked rival within a group.
type GroupCompetitor struct {
	ProductID string
	Name      string
	Priority  int
}

// GroupSource resolves groups and their active competitor rosters.
type GroupSource interface {
	Group(ctx context.Context, groupID int64) (*Group, error)
	ActiveCompetitors(ctx context.Context, groupID int64) ([]GroupCompetitor, error)
}

// MetricsProvider returns the freshest metrics snapshot for a product.
type MetricsProvider interface {
	LatestMetrics(ctx context.Context, productID string) (*ProductMetrics, error)
}

// GroupInfo identifies the analyzed group inside a result.
type GroupInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	MainProductID   string `json:"main_product_id"`
	CompetitorCount int    `json:"competitor_count"`
}

// AnalysisResult is the complete output of one analysis run.
type AnalysisResult struct {
	AnalysisID    string                     `json:"analysis_id"`
	Group         GroupInfo                  `json:"group"`
	MainProduct   ProductMetrics             `json:"main_product"`
	Competitors   []ProductMetrics           `json:"competitors"`
	Price         Dimension[PriceAnalysis]   `json:"price_analysis"`
	Ratings       Dimension[RatingAnalysis]  `json:"rating_analysis"`
	CategoryRanks Dimension[RankAnalysis]    `json:"category_rank_analysis"`
	Features      Dimension[FeatureAnalysis] `json:"feature_analysis"`
	Summary       CompetitiveSummary         `json:"competitive_summary"`
	AnalyzedAt    time.Time                  `json:"analysis_timestamp"`
}

// Analyzer runs the full four-dimension analysis for a group.
type Analyzer struct {
	groups  GroupSource
	metrics MetricsProvider
}

func NewAnalyzer(groups GroupSource, metrics MetricsProvider) *Analyzer {
	return &Analyzer{groups: groups, metrics: metrics}
}

// Aggregate gathers the metrics for a group's main product and its active
// competitors. Missing main-product metrics are fatal. Competitors with no
// metrics are logged and skipped; an analysis needs at least one usable
// competitor. The returned competitor slice is ordered by ascending
// priority, then product ID, so repeated runs over the same data are
// stable.
func (a *Analyzer) Aggregate(ctx context.Context, groupID int64) (*Group, *ProductMetrics, []ProductMetrics, error) {
	group, err := a.groups.Group(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	main, err := a.metrics.LatestMetrics(ctx, group.MainProductID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: product %s: %v", ErrMainMetricsUnavailable, group.MainProductID, err)
	}

	roster, err := a.groups.ActiveCompetitors(ctx, groupID)
	if err != nil {
		return nil, nil, nil, err
	}

	sort.SliceStable(roster, func(i, j int) bool {
		if roster[i].Priority != roster[j].Priority {
			return roster[i].Priority < roster[j].Priority
		}
		return roster[i].ProductID < roster[j].ProductID
	})

	var competitors []ProductMetrics
	for _, c := range roster {
		m, err := a.metrics.LatestMetrics(ctx, c.ProductID)
		if err != nil {
			log.Printf("⚠️ Skipping competitor %s in group %d: %v", c.ProductID, groupID, err)
			continue
		}
		m.CompetitorName = c.Name
		m.Priority = c.Priority
		competitors = append(competitors, *m)
	}

	if len(competitors) == 0 {
		return nil, nil, nil, ErrInsufficientCompetitors
	}

	return group, main, competitors, nil
}

// Analyze runs every dimension analyzer over the aggregated metrics and
// rolls them up into a summary.
func (a *Analyzer) Analyze(ctx context.Context, groupID int64) (*AnalysisResult, error) {
	group, main, competitors, err := a.Aggregate(ctx, groupID)
	if err != nil {
		return nil, err
	}

	price := AnalyzePrice(main, competitors)
	ratings := AnalyzeRatings(main, competitors)
	ranks := AnalyzeCategoryRanks(main, competitors)
	features := AnalyzeFeatures(main, competitors)

	result := &AnalysisResult{
		AnalysisID: uuid.NewString(),
		Group: GroupInfo{
			ID:              group.ID,
			Name:            group.Name,
			Description:     group.Description,
			MainProductID:   group.MainProductID,
			CompetitorCount: len(competitors),
		},
		MainProduct:   *main,
		Competitors:   competitors,
		Price:         price,
		Ratings:       ratings,
		CategoryRanks: ranks,
		Features:      features,
		Summary:       Summarize(price, ratings, ranks, len(competitors)),
		AnalyzedAt:    time.Now().UTC(),
	}

	log.Printf("✅ Competitive analysis completed for group %q (%d competitors)", group.Name, len(competitors))
	return result, nil
}
