package detector

import (
	"errors"
	"math"
	"testing"
)

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{OpenPalmLandmarks()})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 1 {
			t.Errorf("expected 1 hand, got %d", len(hands))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockDetector()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}

func TestOpenPalmLandmarks(t *testing.T) {
	landmarks := OpenPalmLandmarks()

	t.Run("has correct handedness and score", func(t *testing.T) {
		if landmarks.Handedness != "Right" {
			t.Errorf("expected handedness Right, got %s", landmarks.Handedness)
		}
		if landmarks.Score < 0.9 {
			t.Errorf("expected score >= 0.9, got %f", landmarks.Score)
		}
	})

	t.Run("all fingers are extended", func(t *testing.T) {
		// For extended fingers, the tip sits well above (lower Y) the MCP
		minExtension := 0.15

		fingers := []struct {
			name     string
			mcp, tip int
		}{
			{"index", IndexMCP, IndexTip},
			{"middle", MiddleMCP, MiddleTip},
			{"ring", RingMCP, RingTip},
			{"pinky", PinkyMCP, PinkyTip},
		}
		for _, f := range fingers {
			extension := landmarks.Points[f.mcp].Y - landmarks.Points[f.tip].Y
			if extension < minExtension {
				t.Errorf("%s finger not extended enough (extension: %f), expected >= %f",
					f.name, extension, minExtension)
			}
		}
	})

	t.Run("all points stay inside the frame", func(t *testing.T) {
		for i, p := range landmarks.Points {
			if p.X < 0.05 || p.X > 0.95 || p.Y < 0.05 || p.Y > 0.95 {
				t.Errorf("point %d at (%f, %f) is outside the safe frame area", i, p.X, p.Y)
			}
		}
	})
}

func TestFistLandmarks(t *testing.T) {
	landmarks := FistLandmarks()

	// For curled fingers, the tip sits near or below the MCP in Y
	fingers := []struct {
		name     string
		mcp, tip int
	}{
		{"index", IndexMCP, IndexTip},
		{"middle", MiddleMCP, MiddleTip},
		{"ring", RingMCP, RingTip},
		{"pinky", PinkyMCP, PinkyTip},
	}
	for _, f := range fingers {
		extension := landmarks.Points[f.mcp].Y - landmarks.Points[f.tip].Y
		if extension > 0.1 {
			t.Errorf("%s finger appears extended (extension: %f), should be curled", f.name, extension)
		}
	}
}

func TestHandLandmarks_Mirror(t *testing.T) {
	hand := OpenPalmLandmarks()
	mirrored := hand.Mirror()

	if mirrored.Handedness != "Left" {
		t.Errorf("mirrored handedness = %s, want Left", mirrored.Handedness)
	}
	if mirrored.Score != hand.Score {
		t.Errorf("mirrored score = %f, want %f", mirrored.Score, hand.Score)
	}

	for i := range hand.Points {
		if math.Abs(mirrored.Points[i].X-(1.0-hand.Points[i].X)) > 1e-12 {
			t.Errorf("point %d: X = %f, want %f", i, mirrored.Points[i].X, 1.0-hand.Points[i].X)
		}
		if mirrored.Points[i].Y != hand.Points[i].Y || mirrored.Points[i].Z != hand.Points[i].Z {
			t.Errorf("point %d: Y/Z must be unchanged by mirroring", i)
		}
	}

	// Mirroring twice restores the original
	restored := mirrored.Mirror()
	if restored.Handedness != hand.Handedness {
		t.Errorf("double mirror handedness = %s, want %s", restored.Handedness, hand.Handedness)
	}
	for i := range hand.Points {
		if math.Abs(restored.Points[i].X-hand.Points[i].X) > 1e-12 {
			t.Errorf("point %d: double mirror X = %f, want %f", i, restored.Points[i].X, hand.Points[i].X)
		}
	}
}
