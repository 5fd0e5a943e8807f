package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"compete-radar/database"
	"compete-radar/database/groups"
)

// Group Management Handlers

// CreateGroupRequest is the payload for creating a competitive group
type CreateGroupRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	MainProductID string `json:"main_product_id"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), groups.CreateGroupParams{
		Name:          req.Name,
		Description:   req.Description,
		MainProductID: req.MainProductID,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	list, err := s.groups.ListGroups(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	group, err := s.groups.GetGroup(r.Context(), groupID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

// UpdateGroupRequest carries optional group updates; omitted fields stay
// unchanged
type UpdateGroupRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	MainProductID *string `json:"main_product_id"`
}

func (s *Server) handleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	group, err := s.groups.UpdateGroup(r.Context(), groupID, groups.UpdateGroupParams{
		Name:          req.Name,
		Description:   req.Description,
		MainProductID: req.MainProductID,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	s.invalidateCache(r, groupID)
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	if err := s.groups.DeleteGroup(r.Context(), groupID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	s.invalidateCache(r, groupID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Competitive group %d deleted successfully", groupID),
	})
}

// AddCompetitorRequest is the payload for adding a competitor to a group
type AddCompetitorRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Priority  int    `json:"priority"`
}

func (s *Server) handleAddCompetitor(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}

	var req AddCompetitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	competitor, err := s.groups.AddCompetitor(r.Context(), groupID, req.ProductID, req.Name, req.Priority)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	s.invalidateCache(r, groupID)
	writeJSON(w, http.StatusCreated, competitor)
}

func (s *Server) handleRemoveCompetitor(w http.ResponseWriter, r *http.Request) {
	groupID, err := getGroupID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", err)
		return
	}
	productID := r.PathValue("productID")

	if err := s.groups.RemoveCompetitor(r.Context(), groupID, productID); err != nil {
		respondWithDomainError(w, err)
		return
	}

	s.invalidateCache(r, groupID)
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Competitor %s removed from group %d", productID, groupID),
	})
}

// QuickSetupRequest creates a group and its full roster in one call
type QuickSetupRequest struct {
	MainProductID string   `json:"main_product_id"`
	CompetitorIDs []string `json:"competitor_ids"`
	GroupName     string   `json:"group_name"`
	Description   string   `json:"description"`
}

func (s *Server) handleQuickSetup(w http.ResponseWriter, r *http.Request) {
	var req QuickSetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	groupName := req.GroupName
	if groupName == "" {
		groupName = fmt.Sprintf("Competitive Analysis for %s", req.MainProductID)
	}
	description := req.Description
	if description == "" {
		description = "Auto-generated competitive analysis group"
	}

	group, err := s.groups.CreateGroup(r.Context(), groups.CreateGroupParams{
		Name:          groupName,
		Description:   description,
		MainProductID: req.MainProductID,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	var competitors []database.Competitor
	for i, productID := range req.CompetitorIDs {
		competitor, err := s.groups.AddCompetitor(r.Context(), group.ID, productID,
			fmt.Sprintf("Competitor %d", i+1), i+1)
		if err != nil {
			log.Printf("⚠️ Failed to add competitor %s: %v", productID, err)
			continue
		}
		competitors = append(competitors, *competitor)
	}
	group.Competitors = competitors

	tracking, err := s.trackingStatus(r, group.ID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"group":           group,
		"tracking_status": tracking.Summary,
		"next_steps": []string{
			fmt.Sprintf("Run analysis: POST /api/competitive/groups/%d/analyze", group.ID),
			fmt.Sprintf("Get report: GET /api/competitive/groups/%d/report", group.ID),
		},
	})
}

func (s *Server) invalidateCache(r *http.Request, groupID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateGroup(r.Context(), groupID); err != nil {
		log.Printf("⚠️ Failed to invalidate cache for group %d: %v", groupID, err)
	}
}
