package api

import (
	"fmt"
	"log"
	"net/http"

	"compete-radar/competitive"
	"compete-radar/report"
)

// Analysis Handlers

// AnalysisResponse pairs an analysis with its optional positioning report
type AnalysisResponse struct {
	*competitive.AnalysisResult
	PositioningReport *report.PositioningReport `json:"positioning_report,omitempty"`
	Cached            bool                      `json:"cached"`
}

func (s *Server) handleAnalyzeGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}
	includeReport := getBoolParam(r, "include_report", false)
	augment := getBoolParam(r, "augment", false)

	analysis, cached := s.cachedAnalysis(r, groupID)
	if analysis == nil {
		analysis, err = s.analyzer.Analyze(r.Context(), groupID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		if s.cache != nil {
			_ = s.cache.SetAnalysis(r.Context(), groupID, analysis)
		}
	}

	resp := AnalysisResponse{AnalysisResult: analysis, Cached: cached}
	if includeReport {
		rpt, err := s.synthesizeReport(r, groupID, analysis, augment)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		resp.PositioningReport = rpt
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}
	augment := getBoolParam(r, "augment", true)

	analysis, _ := s.cachedAnalysis(r, groupID)
	if analysis == nil {
		analysis, err = s.analyzer.Analyze(r.Context(), groupID)
		if err != nil {
			respondWithDomainError(w, err)
			return
		}
		if s.cache != nil {
			_ = s.cache.SetAnalysis(r.Context(), groupID, analysis)
		}
	}

	rpt, err := s.synthesizeReport(r, groupID, analysis, augment)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rpt)
}

func (s *Server) handleGetTrends(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	minDays, maxDays := 1, 365
	days := getIntParam(r, "days", 30, &minDays, &maxDays)

	// Group must exist even though the trend payload is a placeholder.
	if _, err := s.groups.GetGroup(r.Context(), groupID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.analyzer.Trends(groupID, days))
}

// TrackingStatus reports which of a group's products the scraper covers
type TrackingStatus struct {
	GroupID  int64           `json:"group_id"`
	Products map[string]bool `json:"tracking_status"`
	Summary  TrackingSummary `json:"summary"`
}

// TrackingSummary aggregates the per-product tracking flags
type TrackingSummary struct {
	TrackedProducts int      `json:"tracked_products"`
	TotalProducts   int      `json:"total_products"`
	AllTracked      bool     `json:"all_tracked"`
	Recommendations []string `json:"recommendations"`
}

func (s *Server) handleTrackingStatus(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	status, err := s.trackingStatus(r, groupID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// trackingStatus checks every product id a group touches against the
// configured scrape list.
func (s *Server) trackingStatus(r *http.Request, groupID int64) (*TrackingStatus, error) {
	ids, err := s.groups.ProductIDs(r.Context(), groupID)
	if err != nil {
		return nil, err
	}

	trackedSet := map[string]bool{}
	for _, id := range s.tracked {
		trackedSet[id] = true
	}

	status := &TrackingStatus{
		GroupID:  groupID,
		Products: map[string]bool{},
		Summary:  TrackingSummary{Recommendations: []string{}},
	}
	for _, id := range ids.All {
		tracked := trackedSet[id]
		status.Products[id] = tracked
		status.Summary.TotalProducts++
		if tracked {
			status.Summary.TrackedProducts++
		} else {
			status.Summary.Recommendations = append(status.Summary.Recommendations,
				fmt.Sprintf("Add %s to TRACKED_PRODUCTS", id))
		}
	}
	status.Summary.AllTracked = status.Summary.TrackedProducts == status.Summary.TotalProducts
	return status, nil
}

// BatchAnalysisEntry is one group's outcome within a batch run
type BatchAnalysisEntry struct {
	GroupID   int64                       `json:"group_id"`
	GroupName string                      `json:"group_name"`
	Status    string                      `json:"status"`
	Analysis  *competitive.AnalysisResult `json:"analysis,omitempty"`
	Error     string                      `json:"error,omitempty"`
}

func (s *Server) handleBatchAnalysis(w http.ResponseWriter, r *http.Request) {
	list, err := s.groups.ListGroups(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	results := make([]BatchAnalysisEntry, 0, len(list))
	successful := 0
	for _, group := range list {
		entry := BatchAnalysisEntry{GroupID: group.ID, GroupName: group.Name}
		analysis, err := s.analyzer.Analyze(r.Context(), group.ID)
		if err != nil {
			entry.Status = "failed"
			entry.Error = err.Error()
		} else {
			entry.Status = "success"
			entry.Analysis = analysis
			successful++
			if s.cache != nil {
				_ = s.cache.SetAnalysis(r.Context(), group.ID, analysis)
			}
		}
		results = append(results, entry)
	}

	successRate := "0%"
	if len(results) > 0 {
		successRate = fmt.Sprintf("%.1f%%", float64(successful)/float64(len(results))*100)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": map[string]interface{}{
			"total_groups":        len(results),
			"successful_analyses": successful,
			"failed_analyses":     len(results) - successful,
			"success_rate":        successRate,
		},
		"results": results,
	})
}

func (s *Server) handleCompetitiveSummary(w http.ResponseWriter, r *http.Request) {
	list, err := s.groups.ListGroups(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	totalCompetitors := 0
	tracked, notTracked := 0, 0
	for _, group := range list {
		totalCompetitors += len(group.Competitors)
		status, err := s.trackingStatus(r, group.ID)
		if err != nil {
			continue
		}
		tracked += status.Summary.TrackedProducts
		notTracked += status.Summary.TotalProducts - status.Summary.TrackedProducts
	}

	coverage := "0%"
	if tracked+notTracked > 0 {
		coverage = fmt.Sprintf("%.1f%%", float64(tracked)/float64(tracked+notTracked)*100)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"competitive_groups": map[string]int{
			"active": len(list),
		},
		"competitors": map[string]int{
			"total_tracked": totalCompetitors,
		},
		"tracking_status": map[string]int{
			"tracked":     tracked,
			"not_tracked": notTracked,
		},
		"system_health": map[string]interface{}{
			"tracking_coverage": coverage,
		},
	})
}

// cachedAnalysis returns the cached analysis for a group, if any.
func (s *Server) cachedAnalysis(r *http.Request, groupID int64) (*competitive.AnalysisResult, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.GetAnalysis(r.Context(), groupID)
}

// synthesizeReport builds (or fetches) the positioning report for an
// analysis, consulting the report cache when available.
func (s *Server) synthesizeReport(r *http.Request, groupID int64, analysis *competitive.AnalysisResult, augment bool) (*report.PositioningReport, error) {
	if s.cache != nil {
		if rpt, ok := s.cache.GetReport(r.Context(), groupID, analysis, augment); ok {
			return rpt, nil
		}
	}

	rpt, err := s.synthesizer.Synthesize(r.Context(), analysis, augment)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetReport(r.Context(), groupID, analysis, augment, rpt)
	}
	if s.reports != nil {
		if _, err := s.reports.Archive(r.Context(), analysis, rpt); err != nil {
			log.Printf("⚠️ Failed to archive report for group %d: %v", groupID, err)
		}
	}
	return rpt, nil
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	minLimit, maxLimit := 1, 50
	limit := getIntParam(r, "limit", 10, &minLimit, &maxLimit)

	// Group must exist; an empty history on a real group is a 200.
	if _, err := s.groups.GetGroup(r.Context(), groupID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	records, err := s.reports.History(r.Context(), groupID, limit)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"group_id": groupID,
		"count":    len(records),
		"reports":  records,
	})
}
