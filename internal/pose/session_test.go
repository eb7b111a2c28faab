package pose

import (
	"testing"
	"time"

	"github.com/ayusman/hastarekha/internal/detector"
)

func TestSession_AutoCaptureScenario(t *testing.T) {
	session := NewSession(DefaultConfig())
	hand := detector.OpenPalmLandmarks()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	fired := 0
	firedFrame := -1
	for i := 0; i < 6; i++ {
		now := start.Add(time.Duration(i) * 100 * time.Millisecond)
		assessment, captureFired := session.ProcessFrame(&hand, now)

		if assessment.Status != StatusPerfect {
			t.Fatalf("frame %d: Status = %s, want %s", i, assessment.Status, StatusPerfect)
		}
		if captureFired {
			fired++
			firedFrame = i
		}
	}

	if fired != 1 {
		t.Fatalf("capture fired %d times over 6 perfect frames, want 1", fired)
	}
	if firedFrame != 5 {
		t.Errorf("capture fired on frame %d, want 5", firedFrame)
	}

	record, err := BuildCaptureRecord(CaptureKindRegular, session.Current(), session.Config(), start.Add(500*time.Millisecond), "")
	if err != nil {
		t.Fatalf("BuildCaptureRecord() error = %v", err)
	}
	if record.DistanceCm != 32 {
		t.Errorf("DistanceCm = %d, want 32", record.DistanceCm)
	}
	if record.AlignmentPercent <= 60 {
		t.Errorf("AlignmentPercent = %d, want > 60", record.AlignmentPercent)
	}
}

func TestSession_HandLossClearsState(t *testing.T) {
	session := NewSession(DefaultConfig())
	hand := detector.OpenPalmLandmarks()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	session.ProcessFrame(&hand, start)
	session.ProcessFrame(&hand, start.Add(100*time.Millisecond))
	if !session.Armed() {
		t.Fatal("expected armed during perfect streak")
	}

	assessment, fired := session.ProcessFrame(nil, start.Add(200*time.Millisecond))
	if assessment.Status != StatusNoHand {
		t.Errorf("Status = %s, want %s", assessment.Status, StatusNoHand)
	}
	if fired {
		t.Error("capture fired on hand loss")
	}
	if session.Armed() {
		t.Error("still armed after hand loss")
	}
	if session.Current() != nil {
		t.Error("Current() should be nil after hand loss")
	}
}

func TestSession_ResetRestoresInitialState(t *testing.T) {
	session := NewSession(DefaultConfig())
	hand := detector.OpenPalmLandmarks()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Drive a full capture so there is cooldown debt to clear.
	for i := 0; i < 6; i++ {
		session.ProcessFrame(&hand, start.Add(time.Duration(i)*100*time.Millisecond))
	}
	session.Reset()

	fired := 0
	resume := start.Add(time.Second)
	for i := 0; i < 6; i++ {
		if _, f := session.ProcessFrame(&hand, resume.Add(time.Duration(i)*100*time.Millisecond)); f {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("capture fired %d times after reset, want 1", fired)
	}
}

func TestSession_SetConfigKeepsScanState(t *testing.T) {
	session := NewSession(DefaultConfig())
	hand := detector.OpenPalmLandmarks()
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	session.ProcessFrame(&hand, start)
	session.ProcessFrame(&hand, start.Add(100*time.Millisecond))

	cfg := session.Config()
	cfg.MaxRotationDeg = 15
	session.SetConfig(cfg)

	if !session.Armed() {
		t.Error("calibration update should not disarm a running streak")
	}
	if session.Config().MaxRotationDeg != 15 {
		t.Errorf("MaxRotationDeg = %f, want 15", session.Config().MaxRotationDeg)
	}
}
