package pose

import "time"

// Debouncer turns a stream of per-frame pose statuses into at most one
// capture trigger per continuous perfect streak. It arms when a perfect pose
// appears outside the cooldown window and fires once the pose has been held
// for the hold duration. Time is supplied by the caller on every observation;
// the debouncer owns no timers and performs no I/O.
type Debouncer struct {
	hold     time.Duration
	cooldown time.Duration

	armed       bool
	armedAt     time.Time
	lastCapture time.Time
	captured    bool
}

// NewDebouncer creates a Debouncer with the given hold and cooldown windows.
func NewDebouncer(hold, cooldown time.Duration) *Debouncer {
	return &Debouncer{
		hold:     hold,
		cooldown: cooldown,
	}
}

// Observe advances the state machine by one frame and reports whether a
// capture should fire now. Any non-perfect status disarms immediately, so a
// capture only ever fires after an unbroken run of perfect frames. While the
// cooldown from the previous capture is still running, perfect frames do not
// re-arm.
func (d *Debouncer) Observe(status Status, now time.Time) bool {
	if status != StatusPerfect {
		d.armed = false
		return false
	}

	if !d.armed {
		if d.captured && now.Sub(d.lastCapture) < d.cooldown {
			return false
		}
		d.armed = true
		d.armedAt = now
		return false
	}

	// armedAt is never re-stamped while the streak continues.
	if now.Sub(d.armedAt) >= d.hold {
		d.armed = false
		d.lastCapture = now
		d.captured = true
		return true
	}

	return false
}

// Armed reports whether a perfect streak is currently being timed.
func (d *Debouncer) Armed() bool {
	return d.armed
}

// SetWindows updates the hold and cooldown durations, for live calibration.
func (d *Debouncer) SetWindows(hold, cooldown time.Duration) {
	d.hold = hold
	d.cooldown = cooldown
}

// Reset restores the initial state, including the cooldown stamp. Called
// when a scanning session stops so that resuming starts clean.
func (d *Debouncer) Reset() {
	d.armed = false
	d.armedAt = time.Time{}
	d.lastCapture = time.Time{}
	d.captured = false
}
