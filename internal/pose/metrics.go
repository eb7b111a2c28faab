package pose

import (
	"math"

	"github.com/ayusman/hastarekha/internal/detector"
)

// Landmark groups the palm geometry works over.
var (
	// criticalPoints are the wrist and five fingertips; any of them near a
	// frame edge zeroes the alignment score.
	criticalPoints = [6]int{detector.Wrist, detector.ThumbTip, detector.IndexTip,
		detector.MiddleTip, detector.RingTip, detector.PinkyTip}

	// palmOutline is the polygon whose area tracks apparent hand size:
	// wrist plus the four non-thumb finger bases.
	palmOutline = [5]int{detector.Wrist, detector.IndexMCP, detector.MiddleMCP,
		detector.RingMCP, detector.PinkyMCP}

	fingertips = [5]int{detector.ThumbTip, detector.IndexTip, detector.MiddleTip,
		detector.RingTip, detector.PinkyTip}

	// fingertipMidJoints pairs each fingertip with its mid joint for the
	// openness check.
	fingertipMidJoints = [5]int{detector.ThumbIP, detector.IndexPIP,
		detector.MiddlePIP, detector.RingPIP, detector.PinkyPIP}

	// fingerTriplets holds base, mid and tip joints for the four non-thumb
	// fingers, used by the straightness and orientation checks.
	fingerTriplets = [4][3]int{
		{detector.IndexMCP, detector.IndexPIP, detector.IndexTip},
		{detector.MiddleMCP, detector.MiddlePIP, detector.MiddleTip},
		{detector.RingMCP, detector.RingPIP, detector.RingTip},
		{detector.PinkyMCP, detector.PinkyPIP, detector.PinkyTip},
	}
)

// Distance calibration breakpoints mapping palm area (normalized frame units)
// to estimated centimeters. Larger apparent palm area means a closer hand.
// The breakpoints are part of the capture-record format; records produced
// with different constants are not comparable.
const (
	areaNear = 0.08 // at or above: clamp to distNear
	areaMid  = 0.05
	areaFar  = 0.01

	distNear    = 5.0
	distMid     = 20.0
	distFar     = 45.0
	distHorizon = 85.0 // at area zero; extrapolation is unbounded, no clamp
)

// spreadFullScale is the mean fingertip gap that earns a full spread score.
const spreadFullScale = 0.1

// Alignment composite weights.
const (
	weightArea        = 0.25
	weightOrientation = 0.35
	weightSpread      = 0.15
	weightCenter      = 0.25
)

func dist2D(a, b detector.Point3D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// PalmCenter returns the midpoint of the wrist and the middle-finger base.
func PalmCenter(h *detector.HandLandmarks) detector.Point3D {
	w := h.Points[detector.Wrist]
	m := h.Points[detector.MiddleMCP]
	return detector.Point3D{
		X: (w.X + m.X) / 2,
		Y: (w.Y + m.Y) / 2,
		Z: (w.Z + m.Z) / 2,
	}
}

// PalmArea returns the unsigned area of the palm outline polygon in
// normalized frame-area units, via the shoelace formula.
func PalmArea(h *detector.HandLandmarks) float64 {
	var sum float64
	n := len(palmOutline)
	for i := 0; i < n; i++ {
		a := h.Points[palmOutline[i]]
		b := h.Points[palmOutline[(i+1)%n]]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// DistanceCm estimates the hand-to-camera distance in centimeters from the
// apparent palm area, interpolating linearly between the calibration
// breakpoints.
func DistanceCm(h *detector.HandLandmarks) float64 {
	area := PalmArea(h)
	switch {
	case area >= areaNear:
		return distNear
	case area >= areaMid:
		return distNear + (areaNear-area)/(areaNear-areaMid)*(distMid-distNear)
	case area >= areaFar:
		return distMid + (areaMid-area)/(areaMid-areaFar)*(distFar-distMid)
	default:
		return distFar + (areaFar-area)/areaFar*(distHorizon-distFar)
	}
}

// FingerSpread returns the mean 2D distance between consecutive fingertips.
func FingerSpread(h *detector.HandLandmarks) float64 {
	var sum float64
	for i := 0; i < len(fingertips)-1; i++ {
		sum += dist2D(h.Points[fingertips[i]], h.Points[fingertips[i+1]])
	}
	return sum / float64(len(fingertips)-1)
}

// PalmNormal returns the unit normal of the palm plane, computed as the cross
// product of the wrist-to-index-base and wrist-to-pinky-base vectors. The
// z-component's sign is flipped for left hands so that a positive z always
// means the palm faces the camera, regardless of handedness.
func PalmNormal(h *detector.HandLandmarks) detector.Point3D {
	w := h.Points[detector.Wrist]
	i := h.Points[detector.IndexMCP]
	p := h.Points[detector.PinkyMCP]

	v1 := detector.Point3D{X: i.X - w.X, Y: i.Y - w.Y, Z: i.Z - w.Z}
	v2 := detector.Point3D{X: p.X - w.X, Y: p.Y - w.Y, Z: p.Z - w.Z}

	n := detector.Point3D{
		X: v1.Y*v2.Z - v1.Z*v2.Y,
		Y: v1.Z*v2.X - v1.X*v2.Z,
		Z: v1.X*v2.Y - v1.Y*v2.X,
	}

	length := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if length < 1e-10 {
		return detector.Point3D{}
	}
	n.X /= length
	n.Y /= length
	n.Z /= length

	if h.Handedness == "Left" {
		n.Z = -n.Z
	}

	return n
}

// Alignment scores how well the hand sits in frame, in [0,1]. A critical
// point inside the edge margin yields 0 outright; otherwise the score is a
// weighted sum of palm-area, orientation, finger-spread and centering terms.
func Alignment(h *detector.HandLandmarks, cfg Config) float64 {
	for _, idx := range criticalPoints {
		p := h.Points[idx]
		if p.X < cfg.AlignmentEdgeMargin || p.X > 1-cfg.AlignmentEdgeMargin ||
			p.Y < cfg.AlignmentEdgeMargin || p.Y > 1-cfg.AlignmentEdgeMargin {
			return 0
		}
	}

	area := PalmArea(h)
	areaScore := 1.0
	switch {
	case area < cfg.MinPalmArea:
		areaScore = area / cfg.MinPalmArea
	case area > cfg.MaxPalmArea:
		areaScore = 0.8
	}

	orientationScore := clamp01(PalmNormal(h).Z * 1.5)
	spreadScore := clamp01(FingerSpread(h) / spreadFullScale)

	center := PalmCenter(h)
	centerScore := math.Max(0.5, 1-math.Hypot(center.X-0.5, center.Y-0.5))

	score := weightArea*areaScore +
		weightOrientation*orientationScore +
		weightSpread*spreadScore +
		weightCenter*centerScore

	return clamp01(score)
}

// ExtendedFingerCount returns how many of the four non-thumb fingers are
// straight: the base-to-mid and mid-to-tip segments must point the same way
// (cosine similarity above 0.5).
func ExtendedFingerCount(h *detector.HandLandmarks) int {
	count := 0
	for _, f := range fingerTriplets {
		base := h.Points[f[0]]
		mid := h.Points[f[1]]
		tip := h.Points[f[2]]

		v1x, v1y := mid.X-base.X, mid.Y-base.Y
		v2x, v2y := tip.X-mid.X, tip.Y-mid.Y

		l1 := math.Hypot(v1x, v1y)
		l2 := math.Hypot(v2x, v2y)
		if l1 < 1e-10 || l2 < 1e-10 {
			continue
		}

		cosine := (v1x*v2x + v1y*v2y) / (l1 * l2)
		if cosine > 0.5 {
			count++
		}
	}
	return count
}

// FingersExtended reports whether enough fingers are straight for the pose
// to count as an open hand.
func FingersExtended(h *detector.HandLandmarks, cfg Config) bool {
	return ExtendedFingerCount(h) >= cfg.RequiredExtendedFingers
}

// HandFlat reports whether the hand reads as an open, roughly coplanar palm:
// enough fingertips sit far from both the palm center and their mid joint,
// and no fingertip strays too far from the wrist in depth.
func HandFlat(h *detector.HandLandmarks, cfg Config) bool {
	center := PalmCenter(h)
	wristZ := h.Points[detector.Wrist].Z

	open := 0
	maxDev := 0.0
	for i, tipIdx := range fingertips {
		tip := h.Points[tipIdx]
		mid := h.Points[fingertipMidJoints[i]]

		if dist2D(tip, center) > cfg.OpenFingerPalmDist &&
			dist2D(tip, mid) > cfg.OpenFingerJointDist {
			open++
		}

		if dev := math.Abs(tip.Z - wristZ); dev > maxDev {
			maxDev = dev
		}
	}

	return open >= cfg.RequiredExtendedFingers && maxDev < cfg.FlatnessMaxZDev
}

// PalmOrientationOK reports whether the palm side faces the camera: the
// fingertips must sit no deeper than the knuckles (within a small tolerance)
// and the palm normal must point toward the camera.
func PalmOrientationOK(h *detector.HandLandmarks, cfg Config) bool {
	var tipZ, baseZ float64
	for _, f := range fingerTriplets {
		baseZ += h.Points[f[0]].Z
		tipZ += h.Points[f[2]].Z
	}
	tipZ /= float64(len(fingerTriplets))
	baseZ /= float64(len(fingerTriplets))

	if tipZ > baseZ+cfg.OrientationDepthTol {
		return false
	}

	return PalmNormal(h).Z > 0
}

// RotationDeg returns the signed angle in degrees between the wrist-to-
// middle-finger-base line and straight up. The sign is normalized across
// handedness: positive means the user should rotate the hand
// counter-clockwise to correct, negative clockwise.
func RotationDeg(h *detector.HandLandmarks) float64 {
	w := h.Points[detector.Wrist]
	m := h.Points[detector.MiddleMCP]

	vx := m.X - w.X
	vy := m.Y - w.Y

	// Reference "up" is (0,-1) in image coordinates.
	cross := -vx
	dot := -vy

	deg := math.Atan2(cross, dot) * 180 / math.Pi

	if h.Handedness == "Left" {
		deg = -deg
	}

	return deg
}
