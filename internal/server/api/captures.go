// Package api provides HTTP API handlers for the Hastarekha palm scanner.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/hastarekha/internal/pose"
	"github.com/ayusman/hastarekha/internal/store"
)

// Capturer triggers an on-demand capture of the current pose. It bypasses the
// hold timer but not the pose validation itself.
type Capturer interface {
	CaptureNow() ([]*store.Capture, error)
}

// CapturesHandler handles HTTP requests for capture resources.
type CapturesHandler struct {
	store    *store.Store
	capturer Capturer
}

// NewCapturesHandler creates a new CapturesHandler. The capturer may be nil,
// in which case manual capture requests are rejected.
func NewCapturesHandler(s *store.Store, c Capturer) *CapturesHandler {
	return &CapturesHandler{store: s, capturer: c}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *CapturesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/captures, /api/captures/{id}, /api/captures/{id}/image
	path := strings.TrimPrefix(r.URL.Path, "/api/captures")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.captureNow(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	if id, ok := strings.CutSuffix(path, "/image"); ok {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.image(w, r, id)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type captureResponse struct {
	ID               string `json:"id"`
	CapturedAt       string `json:"captured_at"`
	Kind             string `json:"kind"`
	DistanceCm       int    `json:"distance_cm"`
	AlignmentPercent int    `json:"alignment_percent"`
	PairedID         string `json:"paired_id,omitempty"`
}

type listCapturesResponse struct {
	Captures []captureResponse `json:"captures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Capture to a captureResponse.
func toResponse(c *store.Capture) captureResponse {
	return captureResponse{
		ID:               c.ID,
		CapturedAt:       c.CapturedAt.Format("2006-01-02T15:04:05Z07:00"),
		Kind:             c.Kind,
		DistanceCm:       c.DistanceCm,
		AlignmentPercent: c.AlignmentPercent,
		PairedID:         c.PairedID,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/captures and returns all stored captures, newest first.
func (h *CapturesHandler) list(w http.ResponseWriter, r *http.Request) {
	captures, err := h.store.Captures().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list captures")
		return
	}

	response := listCapturesResponse{
		Captures: make([]captureResponse, 0, len(captures)),
	}
	for _, c := range captures {
		response.Captures = append(response.Captures, toResponse(c))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/captures/{id} and returns a single capture.
func (h *CapturesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.store.Captures().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get capture")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(c))
}

// image handles GET /api/captures/{id}/image and returns the stored JPEG frame.
func (h *CapturesHandler) image(w http.ResponseWriter, r *http.Request, id string) {
	image, err := h.store.Captures().GetImage(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get capture image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Write(image)
}

// captureNow handles POST /api/captures and triggers an immediate capture of
// the current pose, skipping the hold timer.
func (h *CapturesHandler) captureNow(w http.ResponseWriter, r *http.Request) {
	if h.capturer == nil {
		writeError(w, http.StatusServiceUnavailable, "Scanner is not running")
		return
	}

	captures, err := h.capturer.CaptureNow()
	if err != nil {
		switch {
		case errors.Is(err, pose.ErrNoHand):
			writeError(w, http.StatusConflict, "No hand detected")
		case errors.Is(err, pose.ErrStaleHand):
			writeError(w, http.StatusConflict, "Hand pose is not capture-ready")
		default:
			writeError(w, http.StatusInternalServerError, "Failed to capture")
		}
		return
	}

	response := listCapturesResponse{
		Captures: make([]captureResponse, 0, len(captures)),
	}
	for _, c := range captures {
		response.Captures = append(response.Captures, toResponse(c))
	}

	writeJSON(w, http.StatusCreated, response)
}

// delete handles DELETE /api/captures/{id} and removes a capture.
func (h *CapturesHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Captures().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Capture not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete capture")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
