package pose

import "github.com/ayusman/hastarekha/internal/detector"

// Stabilizer smooths raw per-frame landmark detections by averaging over a
// bounded history with linearly increasing recency weights. Detector jitter
// is large enough to flicker the pose classification; the weighted average
// damps it while staying responsive to genuine motion.
type Stabilizer struct {
	size    int
	history []detector.HandLandmarks
}

// NewStabilizer creates a Stabilizer holding up to size frames.
func NewStabilizer(size int) *Stabilizer {
	if size <= 0 {
		size = DefaultConfig().HistorySize
	}
	return &Stabilizer{
		size:    size,
		history: make([]detector.HandLandmarks, 0, size),
	}
}

// Observe feeds one frame's detection into the history and returns the
// smoothed landmark set. A nil hand (hand lost) clears the history and
// returns nil. The input is never mutated; with a single frame in history
// the frame comes back unchanged.
func (s *Stabilizer) Observe(hand *detector.HandLandmarks) *detector.HandLandmarks {
	if hand == nil {
		s.history = s.history[:0]
		return nil
	}

	if len(s.history) >= s.size {
		copy(s.history, s.history[1:])
		s.history = s.history[:len(s.history)-1]
	}
	s.history = append(s.history, *hand)

	latest := s.history[len(s.history)-1]
	smoothed := &detector.HandLandmarks{
		Handedness: latest.Handedness,
		Score:      latest.Score,
	}

	var totalWeight float64
	for i := range s.history {
		// Frame i (oldest first) weighs i+1; normalization divides the
		// weight sum back out.
		w := float64(i + 1)
		totalWeight += w
		for j := 0; j < detector.NumLandmarks; j++ {
			smoothed.Points[j].X += s.history[i].Points[j].X * w
			smoothed.Points[j].Y += s.history[i].Points[j].Y * w
			smoothed.Points[j].Z += s.history[i].Points[j].Z * w
		}
	}

	for j := 0; j < detector.NumLandmarks; j++ {
		smoothed.Points[j].X /= totalWeight
		smoothed.Points[j].Y /= totalWeight
		smoothed.Points[j].Z /= totalWeight
	}

	return smoothed
}

// Len returns the number of frames currently in the history.
func (s *Stabilizer) Len() int {
	return len(s.history)
}

// Reset clears the history.
func (s *Stabilizer) Reset() {
	s.history = s.history[:0]
}
