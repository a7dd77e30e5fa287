package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Tech/lingua/internal/bulk"
	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/detector"
	"github.com/MeKo-Tech/lingua/internal/version"
)

// healthHandler returns server health status, including whether the
// external detector binary is usable.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:   "healthy",
		Detector: "available",
		Version:  version.Version,
		Time:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.gateway.Health(); err != nil {
		response.Status = "degraded"
		response.Detector = "unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding health response: %v\n", err)
	}
}

// detectHandler classifies a single text.
func (s *Server) detectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		s.writeErrorResponse(w, "No text provided", http.StatusBadRequest)
		return
	}

	start := time.Now()
	info, err := s.engine.Detect(r.Context(), req.Text, req.Locale)
	if err != nil {
		s.handleDetectionError(w, "single", err)
		return
	}

	detectionRequestsTotal.WithLabelValues("single", "success").Inc()
	detectionDuration.WithLabelValues("single").Observe(time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DetectResponse{Success: true, Result: info}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding detect response: %v\n", err)
	}
}

// bulkDetectHandler classifies a batch of texts.
func (s *Server) bulkDetectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BulkDetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}
	if len(req.Texts) == 0 {
		s.writeErrorResponse(w, "No texts provided", http.StatusBadRequest)
		return
	}
	if len(req.Texts) > s.maxTexts {
		s.writeErrorResponse(w,
			fmt.Sprintf("Too many texts: %d exceeds limit of %d", len(req.Texts), s.maxTexts),
			http.StatusRequestEntityTooLarge)
		return
	}

	start := time.Now()
	results, err := s.engine.DetectMany(r.Context(), req.Texts, req.Locale)
	if err != nil {
		s.handleDetectionError(w, "bulk", err)
		return
	}

	detectionRequestsTotal.WithLabelValues("bulk", "success").Inc()
	detectionDuration.WithLabelValues("bulk").Observe(time.Since(start).Seconds())
	detectionBatchSize.Observe(float64(len(req.Texts)))

	if results == nil {
		results = []bulk.LanguageInformation{}
	}
	w.Header().Set("Content-Type", "application/json")
	response := BulkDetectResponse{Success: true, Results: results, Count: len(results)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding bulk detect response: %v\n", err)
	}
}

// mentionsHandler finds languages a text talks about.
func (s *Server) mentionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MentionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON request body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		s.writeErrorResponse(w, "No text provided", http.StatusBadRequest)
		return
	}
	if req.SearchLocale == "" {
		s.writeErrorResponse(w, "No search_locale provided", http.StatusBadRequest)
		return
	}

	mentioned, err := s.matcher.FindMentioned(req.Text, req.SearchLocale, req.DisplayLocale)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Mention matching failed: %v", err), http.StatusInternalServerError)
		return
	}

	mentionsFound.Observe(float64(len(mentioned)))

	if mentioned == nil {
		mentioned = []string{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(MentionsResponse{Success: true, Mentioned: mentioned}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding mentions response: %v\n", err)
	}
}

// languagesHandler returns the language name table for a locale.
func (s *Server) languagesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locale := r.URL.Query().Get("locale")
	if locale == "" {
		s.writeErrorResponse(w, "No locale provided", http.StatusBadRequest)
		return
	}

	languages, err := s.catalog.NamesForLocale(locale)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Failed to load language table: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := LanguagesResponse{Locale: locale, Languages: languages, Count: len(languages)}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding languages response: %v\n", err)
	}
}

// handleDetectionError maps engine failures to HTTP status codes. A missing
// detector binary is an environment problem, not a caller mistake.
func (s *Server) handleDetectionError(w http.ResponseWriter, kind string, err error) {
	detectionRequestsTotal.WithLabelValues(kind, "error").Inc()

	status := http.StatusInternalServerError
	if errors.Is(err, detector.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	if errors.Is(err, catalog.ErrNameNotFound) || errors.Is(err, catalog.ErrCodeNotFound) {
		status = http.StatusUnprocessableEntity
	}
	s.writeErrorResponse(w, fmt.Sprintf("Detection failed: %v", err), status)
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing error response: %v\n", err)
	}
}
