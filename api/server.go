package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"compete-radar/cache"
	"compete-radar/competitive"
	"compete-radar/database/groups"
	"compete-radar/database/products"
	"compete-radar/database/reports"
	"compete-radar/report"
)

// Server handles HTTP API requests
type Server struct {
	groups      *groups.Repository
	products    *products.Repository
	reports     *reports.Repository
	analyzer    *competitive.Analyzer
	synthesizer *report.Synthesizer
	cache       *cache.AnalysisCache
	tracked     []string // product ids covered by the scrape schedule
}

// NewServer creates a new API server instance
func NewServer(groupsRepo *groups.Repository, productsRepo *products.Repository, reportsRepo *reports.Repository, analyzer *competitive.Analyzer, synthesizer *report.Synthesizer, analysisCache *cache.AnalysisCache, tracked []string) *Server {
	return &Server{
		groups:      groupsRepo,
		products:    productsRepo,
		reports:     reportsRepo,
		analyzer:    analyzer,
		synthesizer: synthesizer,
		cache:       analysisCache,
		tracked:     tracked,
	}
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	// Group management routes
	mux.HandleFunc("POST /api/competitive/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /api/competitive/groups", s.handleListGroups)
	mux.HandleFunc("GET /api/competitive/groups/{id}", s.handleGetGroup)
	mux.HandleFunc("PUT /api/competitive/groups/{id}", s.handleUpdateGroup)
	mux.HandleFunc("DELETE /api/competitive/groups/{id}", s.handleDeleteGroup)
	mux.HandleFunc("POST /api/competitive/groups/{id}/competitors", s.handleAddCompetitor)
	mux.HandleFunc("DELETE /api/competitive/groups/{id}/competitors/{productID}", s.handleRemoveCompetitor)
	mux.HandleFunc("POST /api/competitive/quick-setup", s.handleQuickSetup)

	// Analysis routes
	mux.HandleFunc("POST /api/competitive/groups/{id}/analyze", s.handleAnalyzeGroup)
	mux.HandleFunc("GET /api/competitive/groups/{id}/report", s.handleGetReport)
	mux.HandleFunc("GET /api/competitive/groups/{id}/report/history", s.handleReportHistory)
	mux.HandleFunc("GET /api/competitive/groups/{id}/trends", s.handleGetTrends)
	mux.HandleFunc("GET /api/competitive/groups/{id}/tracking-status", s.handleTrackingStatus)
	mux.HandleFunc("POST /api/competitive/batch-analysis", s.handleBatchAnalysis)
	mux.HandleFunc("GET /api/competitive/summary", s.handleCompetitiveSummary)

	// Product snapshot routes
	mux.HandleFunc("GET /api/products", s.handleListProducts)
	mux.HandleFunc("POST /api/products/{productID}/snapshots", s.handleSaveSnapshot)
	mux.HandleFunc("GET /api/products/{productID}/snapshots/latest", s.handleLatestSnapshot)

	mux.HandleFunc("GET /health", s.handleHealth)

	// Add middleware
	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	log.Printf("🚀 API Server starting on %s", serverAddr)
	return http.ListenAndServe(serverAddr, handler)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// Handlers are distributed across multiple files:
// - handlers_groups.go: Group and competitor management
// - handlers_analysis.go: Analysis, reports, trends, tracking status
// - handlers_products.go: Snapshot ingestion, health check
