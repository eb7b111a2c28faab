package pose

import (
	"testing"

	"github.com/ayusman/hastarekha/internal/detector"
)

func TestStabilizer_IdenticalFramesConverge(t *testing.T) {
	s := NewStabilizer(5)
	hand := detector.OpenPalmLandmarks()

	for i := 0; i < 7; i++ {
		smoothed := s.Observe(&hand)
		if smoothed == nil {
			t.Fatalf("frame %d: Observe returned nil for valid hand", i)
		}
		for j := 0; j < detector.NumLandmarks; j++ {
			got := smoothed.Points[j]
			want := hand.Points[j]
			if !almostEqual(got.X, want.X) || !almostEqual(got.Y, want.Y) || !almostEqual(got.Z, want.Z) {
				t.Fatalf("frame %d landmark %d: got %+v, want %+v", i, j, got, want)
			}
		}
	}
}

func TestStabilizer_RecencyWeighting(t *testing.T) {
	s := NewStabilizer(5)

	older := detector.OpenPalmLandmarks()
	older.Points[detector.Wrist].X = 0.3

	newer := detector.OpenPalmLandmarks()
	newer.Points[detector.Wrist].X = 0.6

	s.Observe(&older)
	smoothed := s.Observe(&newer)

	// Weights 1 and 2 over two frames: (0.3*1 + 0.6*2) / 3 = 0.5
	if !almostEqual(smoothed.Points[detector.Wrist].X, 0.5) {
		t.Errorf("wrist X = %f, want 0.5", smoothed.Points[detector.Wrist].X)
	}
}

func TestStabilizer_NilClearsHistory(t *testing.T) {
	s := NewStabilizer(5)
	hand := detector.OpenPalmLandmarks()

	for i := 0; i < 4; i++ {
		s.Observe(&hand)
	}

	if got := s.Observe(nil); got != nil {
		t.Fatalf("Observe(nil) = %+v, want nil", got)
	}
	if s.Len() != 0 {
		t.Fatalf("history length after nil = %d, want 0", s.Len())
	}

	// The next valid frame must come back unmodified regardless of what
	// was in the history before the hand was lost.
	fresh := detector.FistLandmarks()
	smoothed := s.Observe(&fresh)
	for j := 0; j < detector.NumLandmarks; j++ {
		if smoothed.Points[j] != fresh.Points[j] {
			t.Fatalf("landmark %d: got %+v, want %+v", j, smoothed.Points[j], fresh.Points[j])
		}
	}
}

func TestStabilizer_HistoryBounded(t *testing.T) {
	s := NewStabilizer(3)
	hand := detector.OpenPalmLandmarks()

	for i := 0; i < 10; i++ {
		s.Observe(&hand)
	}
	if s.Len() != 3 {
		t.Errorf("history length = %d, want 3", s.Len())
	}
}

func TestStabilizer_DoesNotMutateInput(t *testing.T) {
	s := NewStabilizer(5)

	a := detector.OpenPalmLandmarks()
	b := detector.OpenPalmLandmarks()
	b.Points[detector.Wrist].X = 0.1

	s.Observe(&a)
	s.Observe(&b)

	original := detector.OpenPalmLandmarks()
	if a.Points[detector.Wrist] != original.Points[detector.Wrist] {
		t.Error("Observe mutated its input")
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	diff := a - b
	return diff < eps && diff > -eps
}
