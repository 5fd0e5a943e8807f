package competitive

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type fakeGroupSource struct {
	group  *Group
	roster []GroupCompetitor
}

func (f *fakeGroupSource) Group(_ context.Context, groupID int64) (*Group, error) {
	if f.group == nil || f.group.ID != groupID {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, groupID)
	}
	return f.group, nil
}

func (f *fakeGroupSource) ActiveCompetitors(_ context.Context, _ int64) ([]GroupCompetitor, error) {
	return f.roster, nil
}

type fakeMetricsProvider struct {
	metrics map[string]*ProductMetrics
}

func (f *fakeMetricsProvider) LatestMetrics(_ context.Context, productID string) (*ProductMetrics, error) {
	m, ok := f.metrics[productID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMetricsNotFound, productID)
	}
	copied := *m
	return &copied, nil
}

func testGroup() *Group {
	return &Group{ID: 1, Name: "Headphones", MainProductID: "MAIN01"}
}

func TestAnalyzeGroupNotFound(t *testing.T) {
	analyzer := NewAnalyzer(&fakeGroupSource{}, &fakeMetricsProvider{})

	_, err := analyzer.Analyze(context.Background(), 99)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}

func TestAnalyzeMainMetricsUnavailable(t *testing.T) {
	groups := &fakeGroupSource{
		group:  testGroup(),
		roster: []GroupCompetitor{{ProductID: "COMP01"}},
	}
	metrics := &fakeMetricsProvider{metrics: map[string]*ProductMetrics{
		"COMP01": {ProductID: "COMP01", Price: floatPtr(20)},
	}}

	_, err := NewAnalyzer(groups, metrics).Analyze(context.Background(), 1)
	if !errors.Is(err, ErrMainMetricsUnavailable) {
		t.Fatalf("expected ErrMainMetricsUnavailable, got %v", err)
	}
}

func TestAnalyzeInsufficientCompetitors(t *testing.T) {
	groups := &fakeGroupSource{
		group:  testGroup(),
		roster: []GroupCompetitor{{ProductID: "COMP01"}, {ProductID: "COMP02"}},
	}
	// Main has metrics; no competitor does.
	metrics := &fakeMetricsProvider{metrics: map[string]*ProductMetrics{
		"MAIN01": {ProductID: "MAIN01", Price: floatPtr(30)},
	}}

	_, err := NewAnalyzer(groups, metrics).Analyze(context.Background(), 1)
	if !errors.Is(err, ErrInsufficientCompetitors) {
		t.Fatalf("expected ErrInsufficientCompetitors, got %v", err)
	}
}

func TestAnalyzeSkipsUnfetchableCompetitors(t *testing.T) {
	groups := &fakeGroupSource{
		group: testGroup(),
		roster: []GroupCompetitor{
			{ProductID: "COMP01", Name: "Rival A", Priority: 1},
			{ProductID: "GONE01", Name: "Rival B", Priority: 2},
		},
	}
	metrics := &fakeMetricsProvider{metrics: map[string]*ProductMetrics{
		"MAIN01": {ProductID: "MAIN01", Price: floatPtr(30)},
		"COMP01": {ProductID: "COMP01", Price: floatPtr(20)},
	}}

	result, err := NewAnalyzer(groups, metrics).Analyze(context.Background(), 1)
	if err != nil {
		t.Fatalf("one fetchable competitor should suffice: %v", err)
	}
	if len(result.Competitors) != 1 {
		t.Fatalf("expected 1 competitor after skipping, got %d", len(result.Competitors))
	}
	if result.Competitors[0].CompetitorName != "Rival A" {
		t.Errorf("expected membership name attached, got %q", result.Competitors[0].CompetitorName)
	}
	if result.Group.CompetitorCount != 1 {
		t.Errorf("competitor count must reflect usable competitors, got %d", result.Group.CompetitorCount)
	}
}

func TestAggregateOrdering(t *testing.T) {
	groups := &fakeGroupSource{
		group: testGroup(),
		roster: []GroupCompetitor{
			{ProductID: "COMP03", Priority: 2},
			{ProductID: "COMP02", Priority: 1},
			{ProductID: "COMP01", Priority: 1},
		},
	}
	metrics := &fakeMetricsProvider{metrics: map[string]*ProductMetrics{
		"MAIN01": {ProductID: "MAIN01", Price: floatPtr(30)},
		"COMP01": {ProductID: "COMP01", Price: floatPtr(10)},
		"COMP02": {ProductID: "COMP02", Price: floatPtr(20)},
		"COMP03": {ProductID: "COMP03", Price: floatPtr(40)},
	}}

	_, _, competitors, err := NewAnalyzer(groups, metrics).Aggregate(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"COMP01", "COMP02", "COMP03"}
	for i, id := range want {
		if competitors[i].ProductID != id {
			t.Fatalf("expected order %v, got %s at index %d", want, competitors[i].ProductID, i)
		}
	}
}

func TestAnalyzeFeatureOnlyData(t *testing.T) {
	groups := &fakeGroupSource{
		group:  testGroup(),
		roster: []GroupCompetitor{{ProductID: "COMP01"}},
	}
	metrics := &fakeMetricsProvider{metrics: map[string]*ProductMetrics{
		"MAIN01": {ProductID: "MAIN01", Features: map[string][]string{"audio": {"anc"}}},
		"COMP01": {ProductID: "COMP01", Features: map[string][]string{"audio": {"anc", "eq"}}},
	}}

	result, err := NewAnalyzer(groups, metrics).Analyze(context.Background(), 1)
	if err != nil {
		t.Fatalf("feature tags count as data, analysis must succeed: %v", err)
	}

	if result.Price.OK() || result.Ratings.OK() || result.CategoryRanks.OK() {
		t.Error("expected price, rating and rank dimensions to be unavailable")
	}
	if !result.Features.OK() {
		t.Fatal("expected feature dimension to compute")
	}
	if result.Summary.Scores.Overall != nil {
		t.Error("expected an unscored summary")
	}
	if result.AnalysisID == "" {
		t.Error("expected an analysis id")
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("expected an analysis timestamp")
	}
}
