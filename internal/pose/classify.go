package pose

import (
	"math"

	"github.com/ayusman/hastarekha/internal/detector"
)

// Status classifies a frame's hand pose. Every non-perfect status corresponds
// to one piece of user guidance.
type Status string

const (
	StatusNoHand             Status = "no_hand"
	StatusOutOfFrame         Status = "out_of_frame"
	StatusFingersNotExtended Status = "fingers_not_extended"
	StatusTooClose           Status = "too_close"
	StatusTooFar             Status = "too_far"
	StatusNotCentered        Status = "not_centered"
	StatusWrongOrientation   Status = "wrong_orientation"
	StatusRotated            Status = "rotated"
	StatusNotFlat            Status = "not_flat"
	StatusPerfect            Status = "perfect"
)

// Assessment is the per-frame pose evaluation. All metric fields are filled
// regardless of the status so the UI can render diagnostics without
// recomputation; RotationDeg keeps its sign for directional guidance.
type Assessment struct {
	Status            Status  `json:"status"`
	Handedness        string  `json:"handedness"`
	DistanceCm        float64 `json:"distance_cm"`
	Alignment         float64 `json:"alignment"`
	RotationDeg       float64 `json:"rotation_deg"`
	OrientationOK     bool    `json:"orientation_ok"`
	FlatOK            bool    `json:"flat_ok"`
	FingersExtendedOK bool    `json:"fingers_extended_ok"`
}

// Classify evaluates a stabilized landmark set against the configured
// thresholds. The first failing check in priority order determines the
// status; the order matches the guidance a user can act on first (get the
// whole hand in frame before worrying about rotation).
func Classify(h *detector.HandLandmarks, cfg Config) Assessment {
	a := Assessment{
		Handedness:        h.Handedness,
		DistanceCm:        DistanceCm(h),
		Alignment:         Alignment(h, cfg),
		RotationDeg:       RotationDeg(h),
		OrientationOK:     PalmOrientationOK(h, cfg),
		FlatOK:            HandFlat(h, cfg),
		FingersExtendedOK: FingersExtended(h, cfg),
	}

	switch {
	case !inFrame(h, cfg.EdgeMargin):
		a.Status = StatusOutOfFrame
	case !a.FingersExtendedOK:
		a.Status = StatusFingersNotExtended
	case a.DistanceCm < cfg.MinDistanceCm:
		a.Status = StatusTooClose
	case a.DistanceCm > cfg.MaxDistanceCm:
		a.Status = StatusTooFar
	case a.Alignment < cfg.MinAlignment:
		a.Status = StatusNotCentered
	case !a.OrientationOK:
		a.Status = StatusWrongOrientation
	case math.Abs(a.RotationDeg) > cfg.MaxRotationDeg:
		a.Status = StatusRotated
	case !a.FlatOK:
		a.Status = StatusNotFlat
	default:
		a.Status = StatusPerfect
	}

	return a
}

// inFrame reports whether every landmark sits inside the edge margin.
func inFrame(h *detector.HandLandmarks, margin float64) bool {
	for i := 0; i < detector.NumLandmarks; i++ {
		p := h.Points[i]
		if p.X < margin || p.X > 1-margin || p.Y < margin || p.Y > 1-margin {
			return false
		}
	}
	return true
}
