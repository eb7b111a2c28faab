package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/hastarekha/internal/pose"
)

// Calibrator exposes the live pose thresholds for reading and tuning.
type Calibrator interface {
	Calibration() pose.Config
	SetCalibration(pose.Config) error
}

// CalibrationHandler handles HTTP requests for the scanner calibration.
type CalibrationHandler struct {
	calibrator Calibrator
}

// NewCalibrationHandler creates a new CalibrationHandler.
func NewCalibrationHandler(c Calibrator) *CalibrationHandler {
	return &CalibrationHandler{calibrator: c}
}

// ServeHTTP implements the http.Handler interface.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// calibrationBody is the wire form of the tunable thresholds. Durations are
// carried as milliseconds.
type calibrationBody struct {
	MinDistanceCm           float64 `json:"min_distance_cm"`
	MaxDistanceCm           float64 `json:"max_distance_cm"`
	MinAlignment            float64 `json:"min_alignment"`
	MaxRotationDeg          float64 `json:"max_rotation_deg"`
	RequiredExtendedFingers int     `json:"required_extended_fingers"`
	HoldMs                  int     `json:"hold_ms"`
	CooldownMs              int     `json:"cooldown_ms"`
	MaxStoredCaptures       int     `json:"max_stored_captures"`
}

func toBody(cfg pose.Config) calibrationBody {
	return calibrationBody{
		MinDistanceCm:           cfg.MinDistanceCm,
		MaxDistanceCm:           cfg.MaxDistanceCm,
		MinAlignment:            cfg.MinAlignment,
		MaxRotationDeg:          cfg.MaxRotationDeg,
		RequiredExtendedFingers: cfg.RequiredExtendedFingers,
		HoldMs:                  int(cfg.Hold / time.Millisecond),
		CooldownMs:              int(cfg.Cooldown / time.Millisecond),
		MaxStoredCaptures:       cfg.MaxStoredCaptures,
	}
}

// get handles GET /api/calibration and returns the current thresholds.
func (h *CalibrationHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toBody(h.calibrator.Calibration()))
}

// update handles PUT /api/calibration. Zero-valued fields keep their current
// values, so clients can send only the thresholds they want to change.
func (h *CalibrationHandler) update(w http.ResponseWriter, r *http.Request) {
	var req calibrationBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cfg := h.calibrator.Calibration()
	if req.MinDistanceCm != 0 {
		cfg.MinDistanceCm = req.MinDistanceCm
	}
	if req.MaxDistanceCm != 0 {
		cfg.MaxDistanceCm = req.MaxDistanceCm
	}
	if req.MinAlignment != 0 {
		cfg.MinAlignment = req.MinAlignment
	}
	if req.MaxRotationDeg != 0 {
		cfg.MaxRotationDeg = req.MaxRotationDeg
	}
	if req.RequiredExtendedFingers != 0 {
		cfg.RequiredExtendedFingers = req.RequiredExtendedFingers
	}
	if req.HoldMs != 0 {
		cfg.Hold = time.Duration(req.HoldMs) * time.Millisecond
	}
	if req.CooldownMs != 0 {
		cfg.Cooldown = time.Duration(req.CooldownMs) * time.Millisecond
	}
	if req.MaxStoredCaptures != 0 {
		cfg.MaxStoredCaptures = req.MaxStoredCaptures
	}

	if cfg.MinDistanceCm >= cfg.MaxDistanceCm {
		writeError(w, http.StatusBadRequest, "min_distance_cm must be below max_distance_cm")
		return
	}
	if cfg.MinAlignment < 0 || cfg.MinAlignment > 1 {
		writeError(w, http.StatusBadRequest, "min_alignment must be within [0, 1]")
		return
	}
	if cfg.RequiredExtendedFingers < 0 || cfg.RequiredExtendedFingers > 4 {
		writeError(w, http.StatusBadRequest, "required_extended_fingers must be within [0, 4]")
		return
	}

	if err := h.calibrator.SetCalibration(cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save calibration")
		return
	}

	writeJSON(w, http.StatusOK, toBody(cfg))
}
