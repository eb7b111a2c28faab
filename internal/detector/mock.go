package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// OpenPalmLandmarks returns a preset right hand held flat, centered and
// palm-forward at a comfortable scanning distance (palm area ~0.03 of the
// frame). All fingers are extended and the wrist-to-middle line points
// straight up.
func OpenPalmLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.97,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}

	// Thumb extended to the side
	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.63, Z: -0.01}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.61, Y: 0.59, Z: -0.01}
	landmarks.Points[ThumbIP] = Point3D{X: 0.64, Y: 0.56, Z: -0.02}
	landmarks.Points[ThumbTip] = Point3D{X: 0.70, Y: 0.52, Z: -0.02}

	// Index finger extended upward
	landmarks.Points[IndexMCP] = Point3D{X: 0.38, Y: 0.44, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.37, Y: 0.36, Z: -0.01}
	landmarks.Points[IndexDIP] = Point3D{X: 0.365, Y: 0.30, Z: -0.015}
	landmarks.Points[IndexTip] = Point3D{X: 0.36, Y: 0.24, Z: -0.02}

	// Middle finger extended straight up
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.41, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.33, Z: -0.01}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.25, Z: -0.015}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.18, Z: -0.02}

	// Ring finger extended upward
	landmarks.Points[RingMCP] = Point3D{X: 0.54, Y: 0.42, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.55, Y: 0.35, Z: -0.01}
	landmarks.Points[RingDIP] = Point3D{X: 0.56, Y: 0.28, Z: -0.015}
	landmarks.Points[RingTip] = Point3D{X: 0.57, Y: 0.22, Z: -0.02}

	// Pinky finger extended upward
	landmarks.Points[PinkyMCP] = Point3D{X: 0.62, Y: 0.46, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.63, Y: 0.40, Z: -0.01}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.645, Y: 0.35, Z: -0.015}
	landmarks.Points[PinkyTip] = Point3D{X: 0.66, Y: 0.30, Z: -0.02}

	return landmarks
}

// FistLandmarks returns a preset right hand closed into a fist at the same
// position and scale as OpenPalmLandmarks. Fingertips curl back toward the
// palm so straightness and openness checks fail.
func FistLandmarks() HandLandmarks {
	landmarks := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	landmarks.Points[Wrist] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}

	// Thumb folded across the palm
	landmarks.Points[ThumbCMC] = Point3D{X: 0.56, Y: 0.63, Z: -0.01}
	landmarks.Points[ThumbMCP] = Point3D{X: 0.58, Y: 0.58, Z: -0.02}
	landmarks.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.55, Z: -0.03}
	landmarks.Points[ThumbTip] = Point3D{X: 0.51, Y: 0.54, Z: -0.04}

	// Index finger curled
	landmarks.Points[IndexMCP] = Point3D{X: 0.38, Y: 0.44, Z: 0.0}
	landmarks.Points[IndexPIP] = Point3D{X: 0.38, Y: 0.39, Z: -0.04}
	landmarks.Points[IndexDIP] = Point3D{X: 0.39, Y: 0.43, Z: -0.05}
	landmarks.Points[IndexTip] = Point3D{X: 0.40, Y: 0.47, Z: -0.03}

	// Middle finger curled
	landmarks.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.41, Z: 0.0}
	landmarks.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.36, Z: -0.04}
	landmarks.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: -0.05}
	landmarks.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.45, Z: -0.03}

	// Ring finger curled
	landmarks.Points[RingMCP] = Point3D{X: 0.54, Y: 0.42, Z: 0.0}
	landmarks.Points[RingPIP] = Point3D{X: 0.54, Y: 0.37, Z: -0.04}
	landmarks.Points[RingDIP] = Point3D{X: 0.53, Y: 0.41, Z: -0.05}
	landmarks.Points[RingTip] = Point3D{X: 0.53, Y: 0.46, Z: -0.03}

	// Pinky finger curled
	landmarks.Points[PinkyMCP] = Point3D{X: 0.62, Y: 0.46, Z: 0.0}
	landmarks.Points[PinkyPIP] = Point3D{X: 0.62, Y: 0.42, Z: -0.04}
	landmarks.Points[PinkyDIP] = Point3D{X: 0.61, Y: 0.45, Z: -0.05}
	landmarks.Points[PinkyTip] = Point3D{X: 0.60, Y: 0.49, Z: -0.03}

	return landmarks
}
