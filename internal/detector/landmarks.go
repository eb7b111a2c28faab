// Package detector provides hand detection interfaces and types for the palm scanner.
package detector

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Point3D represents a detected landmark position. X and Y are normalized to
// [0,1] relative to frame width and height with the origin at the top-left;
// Z is a relative depth where more negative means closer to the camera.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks represents the 21 hand landmarks detected by MediaPipe.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left", "Right" or ""
	Score      float64               `json:"score"`
}

// Mirror returns a copy of the landmarks reflected about the vertical frame
// axis, with the handedness label swapped. The palm geometry of a mirrored
// right hand is that of a left hand, so downstream checks that branch on
// handedness see an equivalent pose.
func (h *HandLandmarks) Mirror() *HandLandmarks {
	if h == nil {
		return nil
	}

	mirrored := &HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}

	switch h.Handedness {
	case "Left":
		mirrored.Handedness = "Right"
	case "Right":
		mirrored.Handedness = "Left"
	}

	for i := 0; i < NumLandmarks; i++ {
		mirrored.Points[i] = Point3D{
			X: 1.0 - h.Points[i].X,
			Y: h.Points[i].Y,
			Z: h.Points[i].Z,
		}
	}

	return mirrored
}
