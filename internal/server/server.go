// Package server provides the HTTP server for the Hastarekha palm scanner.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/server/api"
	"github.com/ayusman/hastarekha/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Camera     capture.Camera
	Capturer   api.Capturer
	Calibrator api.Calibrator
}

// Server represents the HTTP server for the Hastarekha application.
type Server struct {
	config      Config
	mux         *http.ServeMux
	assessments *AssessmentHandler
	start       time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config:      config,
		mux:         http.NewServeMux(),
		assessments: NewAssessmentHandler(),
		start:       time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register capture API handler if Store is configured
	if s.config.Store != nil {
		capturesHandler := api.NewCapturesHandler(s.config.Store, s.config.Capturer)
		s.mux.Handle("/api/captures", capturesHandler)
		s.mux.Handle("/api/captures/", capturesHandler)
	}

	// Register calibration endpoint if a Calibrator is configured
	if s.config.Calibrator != nil {
		s.mux.Handle("/api/calibration", api.NewCalibrationHandler(s.config.Calibrator))
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Live pose assessment feed; the scan pipeline publishes into it
	s.mux.Handle("/api/assessment", s.assessments)

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// Assessments returns the WebSocket broadcast handler so the scan pipeline
// can push per-frame assessments.
func (s *Server) Assessments() *AssessmentHandler {
	return s.assessments
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
