package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"compete-radar/competitive"
	"compete-radar/database"
)

// writeJSON serializes a payload with the given status code
func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondWithError logs the error and sends a JSON error response
// Use this to avoid exposing internal errors while still logging them
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		log.Printf("API Error [%d]: %s - %v", code, message, err)
	} else {
		log.Printf("API Error [%d]: %s", code, message)
	}
	writeJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError maps repository and analysis errors onto HTTP
// status codes: missing resources are 404, bad inputs and unanalyzable
// groups are 400, everything else is 500.
func respondWithDomainError(w http.ResponseWriter, err error) {
	var notFound *database.NotFoundError
	var validation *database.ValidationError

	switch {
	case errors.Is(err, competitive.ErrGroupNotFound), errors.As(err, &notFound):
		respondWithError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, competitive.ErrMainMetricsUnavailable),
		errors.Is(err, competitive.ErrInsufficientCompetitors),
		errors.As(err, &validation):
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", err)
	}
}

// getGroupID parses the {id} path segment
func getGroupID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// getIntParam retrieves an integer query parameter with default value and optional range validation
func getIntParam(r *http.Request, key string, defaultVal int, minVal, maxVal *int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}

	if minVal != nil && val < *minVal {
		return defaultVal
	}
	if maxVal != nil && val > *maxVal {
		return defaultVal
	}

	return val
}

// getBoolParam retrieves a boolean query parameter with default value
func getBoolParam(r *http.Request, key string, defaultVal bool) bool {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
