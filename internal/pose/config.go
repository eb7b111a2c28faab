// Package pose implements the palm-pose validation and capture-gating engine:
// landmark stabilization, geometric pose metrics, threshold classification and
// the debounced auto-capture state machine.
package pose

import "time"

// Config holds the tunable thresholds of the pose engine. Zero values are not
// meaningful; start from DefaultConfig and override fields as needed.
type Config struct {
	// MinDistanceCm and MaxDistanceCm bound the acceptable estimated
	// hand-to-camera distance.
	MinDistanceCm float64
	MaxDistanceCm float64

	// MinAlignment is the minimum composite alignment score (0-1).
	MinAlignment float64

	// MaxRotationDeg is the maximum absolute in-plane rotation of the
	// wrist-to-middle-finger line away from vertical.
	MaxRotationDeg float64

	// RequiredExtendedFingers is how many fingers must read as extended
	// (of the four non-thumb fingers) and as open (of all five) for the
	// extension and flatness checks respectively.
	RequiredExtendedFingers int

	// HistorySize is the stabilizer's landmark frame history capacity.
	HistorySize int

	// Hold is how long a perfect pose must be held continuously before a
	// capture fires. Cooldown is the minimum gap between two captures.
	Hold     time.Duration
	Cooldown time.Duration

	// MaxStoredCaptures caps the persisted capture history; the oldest
	// records are trimmed beyond it.
	MaxStoredCaptures int

	// EdgeMargin is the frame-border margin (fraction of frame size) inside
	// which any landmark makes the hand out-of-frame. AlignmentEdgeMargin is
	// the tighter margin that zeroes the alignment score when a critical
	// point (wrist or a fingertip) touches it.
	EdgeMargin          float64
	AlignmentEdgeMargin float64

	// OrientationDepthTol is the slack allowed when requiring fingertips to
	// sit no deeper than the knuckles (palm side toward the camera).
	// Empirically tuned, exposed for calibration.
	OrientationDepthTol float64

	// FlatnessMaxZDev is the maximum fingertip depth deviation from the
	// wrist for the hand to count as flat. Empirically tuned.
	FlatnessMaxZDev float64

	// OpenFingerPalmDist and OpenFingerJointDist are the minimum 2D
	// distances of a fingertip from the palm center and from its mid joint
	// for the finger to count as open.
	OpenFingerPalmDist  float64
	OpenFingerJointDist float64

	// MinPalmArea and MaxPalmArea bound the palm area band that earns a
	// full area score in the alignment composite.
	MinPalmArea float64
	MaxPalmArea float64
}

// DefaultConfig returns the calibration the scanner ships with.
func DefaultConfig() Config {
	return Config{
		MinDistanceCm:           5,
		MaxDistanceCm:           45,
		MinAlignment:            0.3,
		MaxRotationDeg:          30,
		RequiredExtendedFingers: 3,
		HistorySize:             5,
		Hold:                    500 * time.Millisecond,
		Cooldown:                3 * time.Second,
		MaxStoredCaptures:       10,
		EdgeMargin:              0.05,
		AlignmentEdgeMargin:     0.03,
		OrientationDepthTol:     0.01,
		FlatnessMaxZDev:         0.15,
		OpenFingerPalmDist:      0.15,
		OpenFingerJointDist:     0.05,
		MinPalmArea:             0.01,
		MaxPalmArea:             0.08,
	}
}
