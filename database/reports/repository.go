// Package reports archives synthesized positioning reports per group.
package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"

	"compete-radar/competitive"
	"compete-radar/database"
	"compete-radar/report"
)

// Repository handles database operations for archived analysis reports
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reports repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Archive appends one analysis/report pair to the group's history.
func (r *Repository) Archive(ctx context.Context, analysis *competitive.AnalysisResult, rpt *report.PositioningReport) (*database.AnalysisReportRecord, error) {
	if analysis == nil || rpt == nil {
		return nil, &database.ValidationError{Field: "report", Reason: "analysis and report are required"}
	}

	analysisDoc, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}
	reportDoc, err := json.Marshal(rpt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	record := database.AnalysisReportRecord{
		GroupID:     analysis.Group.ID,
		AnalysisID:  analysis.AnalysisID,
		Analysis:    analysisDoc,
		Report:      reportDoc,
		Mode:        rpt.Metadata.Mode,
		GeneratedAt: rpt.Metadata.GeneratedAt,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, &database.DBError{Operation: "archive report", Err: err}
	}

	log.Printf("🗄️ Archived %s report %s for group %d", record.Mode, record.AnalysisID, record.GroupID)
	return &record, nil
}

// History returns the newest archived reports for a group, newest first.
func (r *Repository) History(ctx context.Context, groupID int64, limit int) ([]database.AnalysisReportRecord, error) {
	var records []database.AnalysisReportRecord
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("generated_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, &database.DBError{Operation: "load report history", Err: err}
	}
	return records, nil
}
