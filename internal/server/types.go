package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MeKo-Tech/lingua/internal/bulk"
	"github.com/MeKo-Tech/lingua/internal/catalog"
	"github.com/MeKo-Tech/lingua/internal/config"
	"github.com/MeKo-Tech/lingua/internal/detector"
	"github.com/MeKo-Tech/lingua/internal/mention"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	engine     *bulk.Engine
	gateway    *detector.Gateway
	catalog    *catalog.Catalog
	matcher    *mention.Matcher
	corsOrigin string
	timeoutSec int
	maxTexts   int
}

// Response types for API endpoints.
type HealthResponse struct {
	Status   string `json:"status"`
	Detector string `json:"detector"`
	Version  string `json:"version,omitempty"`
	Time     string `json:"time"`
}

type DetectRequest struct {
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

type DetectResponse struct {
	Success bool                      `json:"success"`
	Result  *bulk.LanguageInformation `json:"result,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

type BulkDetectRequest struct {
	Texts  []string `json:"texts"`
	Locale string   `json:"locale,omitempty"`
}

type BulkDetectResponse struct {
	Success bool                       `json:"success"`
	Results []bulk.LanguageInformation `json:"results"`
	Count   int                        `json:"count"`
	Error   string                     `json:"error,omitempty"`
}

type MentionsRequest struct {
	Text          string `json:"text"`
	SearchLocale  string `json:"search_locale"`
	DisplayLocale string `json:"display_locale,omitempty"`
}

type MentionsResponse struct {
	Success   bool     `json:"success"`
	Mentioned []string `json:"mentioned"`
	Error     string   `json:"error,omitempty"`
}

type LanguagesResponse struct {
	Locale    string            `json:"locale"`
	Languages map[string]string `json:"languages"`
	Count     int               `json:"count"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer creates a new detection server instance.
func NewServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cat := catalog.New(catalog.ResolveDataDir(cfg.CatalogDir))
	matcher := mention.New(cat, cfg.MentionSettings())
	gateway := detector.New(cfg.DetectorSettings())

	return &Server{
		engine:     bulk.NewEngine(gateway, cat, matcher),
		gateway:    gateway,
		catalog:    cat,
		matcher:    matcher,
		corsOrigin: cfg.Server.CORSOrigin,
		timeoutSec: cfg.Server.TimeoutSec,
		maxTexts:   cfg.Server.MaxTextsPerCall,
	}, nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/detect", s.corsMiddleware(s.detectHandler))
	mux.HandleFunc("/detect/bulk", s.corsMiddleware(s.bulkDetectHandler))
	mux.HandleFunc("/mentions", s.corsMiddleware(s.mentionsHandler))
	mux.HandleFunc("/languages", s.corsMiddleware(s.languagesHandler))
	mux.HandleFunc("/ws", s.detectWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
