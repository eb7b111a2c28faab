package pose

import (
	"time"

	"github.com/ayusman/hastarekha/internal/detector"
)

// Session owns the per-scan state of the pose engine: one stabilizer and one
// debouncer. It is the single entry point the frame pipeline drives; it is
// not safe for concurrent use, callers serialize frames (the pipeline
// processes one camera stream in order).
type Session struct {
	cfg        Config
	stabilizer *Stabilizer
	debouncer  *Debouncer
	current    *detector.HandLandmarks
}

// NewSession creates a Session with the given configuration.
func NewSession(cfg Config) *Session {
	return &Session{
		cfg:        cfg,
		stabilizer: NewStabilizer(cfg.HistorySize),
		debouncer:  NewDebouncer(cfg.Hold, cfg.Cooldown),
	}
}

// Config returns the session's current configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// SetConfig swaps the thresholds in place. The stabilizer history and
// debounce state survive so live calibration does not interrupt a scan.
func (s *Session) SetConfig(cfg Config) {
	s.cfg = cfg
	s.debouncer.SetWindows(cfg.Hold, cfg.Cooldown)
}

// ProcessFrame runs one frame through the full engine: stabilize, classify,
// debounce. A nil hand means no detection this frame; it clears the
// stabilizer history and disarms the debouncer, and the returned assessment
// carries StatusNoHand. captureFired is true on exactly the frame the
// debounced capture should happen.
func (s *Session) ProcessFrame(hand *detector.HandLandmarks, now time.Time) (Assessment, bool) {
	smoothed := s.stabilizer.Observe(hand)
	s.current = smoothed

	if smoothed == nil {
		s.debouncer.Observe(StatusNoHand, now)
		return Assessment{Status: StatusNoHand}, false
	}

	assessment := Classify(smoothed, s.cfg)
	fired := s.debouncer.Observe(assessment.Status, now)
	return assessment, fired
}

// Current returns the most recent smoothed landmark set, or nil if the last
// frame had no hand. Capture records are built from this snapshot so the
// recorded metrics match the classification that fired the capture.
func (s *Session) Current() *detector.HandLandmarks {
	return s.current
}

// Armed reports whether the debouncer is timing a perfect streak.
func (s *Session) Armed() bool {
	return s.debouncer.Armed()
}

// Reset synchronously restores the initial state: empty history, idle
// debouncer, cleared cooldown. Called when scanning stops.
func (s *Session) Reset() {
	s.stabilizer.Reset()
	s.debouncer.Reset()
	s.current = nil
}
