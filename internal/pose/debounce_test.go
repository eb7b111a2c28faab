package pose

import (
	"testing"
	"time"
)

var debounceEpoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDebouncer_FiresOnceAfterHold(t *testing.T) {
	d := NewDebouncer(500*time.Millisecond, 3*time.Second)

	fired := 0
	firedFrame := -1
	for i := 0; i < 10; i++ {
		now := debounceEpoch.Add(time.Duration(i) * 100 * time.Millisecond)
		if d.Observe(StatusPerfect, now) {
			fired++
			firedFrame = i
		}
	}

	if fired != 1 {
		t.Fatalf("fired %d times, want 1", fired)
	}
	// Armed on frame 0; the hold elapses at frame 5 (500ms later).
	if firedFrame != 5 {
		t.Errorf("fired on frame %d, want 5", firedFrame)
	}
}

func TestDebouncer_BrokenStreakDisarms(t *testing.T) {
	d := NewDebouncer(500*time.Millisecond, 3*time.Second)

	now := debounceEpoch
	d.Observe(StatusPerfect, now)
	d.Observe(StatusPerfect, now.Add(300*time.Millisecond))
	if !d.Armed() {
		t.Fatal("expected armed after perfect frames")
	}

	// One imperfect frame resets the streak entirely.
	d.Observe(StatusNotFlat, now.Add(400*time.Millisecond))
	if d.Armed() {
		t.Fatal("expected disarmed after imperfect frame")
	}

	// 100ms later the original hold would have elapsed, but the streak
	// restarted, so no fire yet.
	if d.Observe(StatusPerfect, now.Add(500*time.Millisecond)) {
		t.Error("fired without a continuous hold")
	}
	if d.Observe(StatusPerfect, now.Add(900*time.Millisecond)) {
		t.Error("fired 400ms into the new streak")
	}
	if !d.Observe(StatusPerfect, now.Add(1000*time.Millisecond)) {
		t.Error("expected fire 500ms into the new streak")
	}
}

func TestDebouncer_CooldownSuppression(t *testing.T) {
	d := NewDebouncer(500*time.Millisecond, 3*time.Second)

	fired := 0
	// Two full hold sequences back to back, well inside the cooldown.
	for i := 0; i < 20; i++ {
		now := debounceEpoch.Add(time.Duration(i) * 100 * time.Millisecond)
		if d.Observe(StatusPerfect, now) {
			fired++
		}
	}
	if fired != 1 {
		t.Fatalf("fired %d times within cooldown, want 1", fired)
	}

	// After the cooldown a fresh hold fires again.
	base := debounceEpoch.Add(4 * time.Second)
	for i := 0; i < 10; i++ {
		now := base.Add(time.Duration(i) * 100 * time.Millisecond)
		if d.Observe(StatusPerfect, now) {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("fired %d times total, want 2", fired)
	}
}

func TestDebouncer_ResetClearsCooldown(t *testing.T) {
	d := NewDebouncer(500*time.Millisecond, 3*time.Second)

	for i := 0; i < 6; i++ {
		d.Observe(StatusPerfect, debounceEpoch.Add(time.Duration(i)*100*time.Millisecond))
	}

	d.Reset()
	if d.Armed() {
		t.Fatal("expected idle after reset")
	}

	// A reset session starts with no cooldown debt.
	fired := false
	for i := 0; i < 6; i++ {
		now := debounceEpoch.Add(time.Second).Add(time.Duration(i) * 100 * time.Millisecond)
		if d.Observe(StatusPerfect, now) {
			fired = true
		}
	}
	if !fired {
		t.Error("expected capture after reset despite recent prior capture")
	}
}
