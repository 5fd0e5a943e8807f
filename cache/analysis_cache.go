package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"compete-radar/competitive"
	"compete-radar/report"
)

// AnalysisCache caches analysis results and positioning reports per group.
// A nil underlying redis client degrades every operation to a miss.
type AnalysisCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewAnalysisCache creates an analysis cache with the given entry TTL.
func NewAnalysisCache(redis *RedisClient, ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AnalysisCache{redis: redis, ttl: ttl}
}

func analysisKey(groupID int64) string {
	return fmt.Sprintf("competitive:analysis:%d", groupID)
}

// reportKey ties a report to the exact analysis content it was built
// from, so a fresh analysis never serves a stale report.
func reportKey(groupID int64, analysis *competitive.AnalysisResult, augmented bool) string {
	return fmt.Sprintf("competitive:report:%d:%s:%t", groupID, GenerateDataHash(analysis), augmented)
}

// GetAnalysis returns the cached analysis for a group, or false on a miss.
func (c *AnalysisCache) GetAnalysis(ctx context.Context, groupID int64) (*competitive.AnalysisResult, bool) {
	if c.redis == nil {
		return nil, false
	}

	var result competitive.AnalysisResult
	if err := c.redis.Get(ctx, analysisKey(groupID), &result); err != nil {
		return nil, false
	}
	return &result, true
}

// SetAnalysis caches an analysis result for a group.
func (c *AnalysisCache) SetAnalysis(ctx context.Context, groupID int64, result *competitive.AnalysisResult) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, analysisKey(groupID), result, c.ttl)
}

// GetReport returns the cached report matching this exact analysis and
// augmentation flag, or false on a miss.
func (c *AnalysisCache) GetReport(ctx context.Context, groupID int64, analysis *competitive.AnalysisResult, augmented bool) (*report.PositioningReport, bool) {
	if c.redis == nil {
		return nil, false
	}

	var rpt report.PositioningReport
	if err := c.redis.Get(ctx, reportKey(groupID, analysis, augmented), &rpt); err != nil {
		return nil, false
	}
	return &rpt, true
}

// SetReport caches a report keyed to its source analysis.
func (c *AnalysisCache) SetReport(ctx context.Context, groupID int64, analysis *competitive.AnalysisResult, augmented bool, rpt *report.PositioningReport) error {
	if c.redis == nil {
		return fmt.Errorf("redis client not available")
	}
	return c.redis.Set(ctx, reportKey(groupID, analysis, augmented), rpt, c.ttl)
}

// InvalidateGroup drops every cached analysis and report for a group.
// Called on any group membership mutation.
func (c *AnalysisCache) InvalidateGroup(ctx context.Context, groupID int64) error {
	if c.redis == nil {
		return nil
	}

	if err := c.redis.Delete(ctx, analysisKey(groupID)); err != nil {
		return err
	}
	return c.redis.DeletePattern(ctx, fmt.Sprintf("competitive:report:%d:*", groupID))
}

// GenerateDataHash creates a short content hash to detect whether the
// underlying analysis data changed
func GenerateDataHash(data interface{}) string {
	jsonData, _ := json.Marshal(data)
	hash := md5.Sum(jsonData)
	return fmt.Sprintf("%x", hash[:8]) // Use first 8 bytes for shorter hash
}
