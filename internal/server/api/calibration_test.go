package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayusman/hastarekha/internal/pose"
)

// fakeCalibrator keeps the config in memory.
type fakeCalibrator struct {
	cfg pose.Config
	err error
}

func (f *fakeCalibrator) Calibration() pose.Config { return f.cfg }

func (f *fakeCalibrator) SetCalibration(cfg pose.Config) error {
	if f.err != nil {
		return f.err
	}
	f.cfg = cfg
	return nil
}

func TestCalibrationHandler_Get(t *testing.T) {
	h := NewCalibrationHandler(&fakeCalibrator{cfg: pose.DefaultConfig()})

	req := httptest.NewRequest(http.MethodGet, "/api/calibration", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body calibrationBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.MinDistanceCm != 5 || body.MaxDistanceCm != 45 {
		t.Errorf("distance band = [%v, %v], want [5, 45]", body.MinDistanceCm, body.MaxDistanceCm)
	}
	if body.HoldMs != 500 {
		t.Errorf("hold_ms = %d, want 500", body.HoldMs)
	}
	if body.CooldownMs != 3000 {
		t.Errorf("cooldown_ms = %d, want 3000", body.CooldownMs)
	}
}

func TestCalibrationHandler_Update(t *testing.T) {
	calibrator := &fakeCalibrator{cfg: pose.DefaultConfig()}
	h := NewCalibrationHandler(calibrator)

	body := bytes.NewBufferString(`{"max_rotation_deg": 15, "hold_ms": 800}`)
	req := httptest.NewRequest(http.MethodPut, "/api/calibration", body)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	// Named fields updated, the rest untouched
	if calibrator.cfg.MaxRotationDeg != 15 {
		t.Errorf("MaxRotationDeg = %v, want 15", calibrator.cfg.MaxRotationDeg)
	}
	if calibrator.cfg.Hold != 800*time.Millisecond {
		t.Errorf("Hold = %v, want 800ms", calibrator.cfg.Hold)
	}
	if calibrator.cfg.MinDistanceCm != 5 {
		t.Errorf("MinDistanceCm = %v, want unchanged 5", calibrator.cfg.MinDistanceCm)
	}
	if calibrator.cfg.Cooldown != 3*time.Second {
		t.Errorf("Cooldown = %v, want unchanged 3s", calibrator.cfg.Cooldown)
	}
}

func TestCalibrationHandler_Update_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `not json`},
		{"inverted distance band", `{"min_distance_cm": 50}`},
		{"alignment above one", `{"min_alignment": 1.5}`},
		{"too many required fingers", `{"required_extended_fingers": 9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calibrator := &fakeCalibrator{cfg: pose.DefaultConfig()}
			h := NewCalibrationHandler(calibrator)

			req := httptest.NewRequest(http.MethodPut, "/api/calibration", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if calibrator.cfg.MinDistanceCm != 5 {
				t.Error("invalid update must not modify the calibration")
			}
		})
	}
}

func TestCalibrationHandler_MethodNotAllowed(t *testing.T) {
	h := NewCalibrationHandler(&fakeCalibrator{cfg: pose.DefaultConfig()})

	req := httptest.NewRequest(http.MethodDelete, "/api/calibration", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
