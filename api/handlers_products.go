package api

import (
	"encoding/json"
	"net/http"
	"time"

	"compete-radar/database"
)

// Product Snapshot Handlers

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.products.ListProducts(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// SnapshotRequest is the ingestion payload for one scrape of a listing
type SnapshotRequest struct {
	Title         string              `json:"title"`
	Price         *float64            `json:"price"`
	BuyboxPrice   *float64            `json:"buybox_price"`
	Rating        *float64            `json:"rating"`
	ReviewCount   *int                `json:"review_count"`
	CategoryRanks map[string]int      `json:"category_ranks"`
	KeyFeatures   map[string][]string `json:"key_features"`
	Availability  string              `json:"availability"`
	ScrapedAt     *time.Time          `json:"scraped_at"`
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	snapshot := &database.ProductSnapshot{
		ProductID:     productID,
		Title:         req.Title,
		Price:         req.Price,
		BuyboxPrice:   req.BuyboxPrice,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		CategoryRanks: req.CategoryRanks,
		KeyFeatures:   req.KeyFeatures,
		Availability:  req.Availability,
	}
	if req.ScrapedAt != nil {
		snapshot.ScrapedAt = *req.ScrapedAt
	}

	if err := s.products.SaveSnapshot(r.Context(), snapshot); err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snapshot)
}

func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	snapshot, err := s.products.LatestSnapshot(r.Context(), productID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// handleHealth returns the health status of the API
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
