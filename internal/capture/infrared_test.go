package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestSimulateInfrared(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	ir, err := SimulateInfrared(&frame)
	if err != nil {
		t.Fatalf("SimulateInfrared() error = %v", err)
	}
	defer ir.Close()

	if ir.Empty() {
		t.Fatal("infrared frame is empty")
	}
	if ir.Rows() != frame.Rows() || ir.Cols() != frame.Cols() {
		t.Errorf("infrared frame is %dx%d, want %dx%d", ir.Cols(), ir.Rows(), frame.Cols(), frame.Rows())
	}
	// The colormap output is 3-channel regardless of input.
	if ir.Channels() != 3 {
		t.Errorf("infrared frame has %d channels, want 3", ir.Channels())
	}
}

func TestSimulateInfrared_EmptyFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	empty := gocv.NewMat()
	defer empty.Close()

	out, err := SimulateInfrared(&empty)
	defer out.Close()
	if err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestEncodeJPEG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer frame.Close()

	data, err := EncodeJPEG(&frame)
	if err != nil {
		t.Fatalf("EncodeJPEG() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("encoded JPEG is empty")
	}
	// JPEG SOI marker
	if data[0] != 0xFF || data[1] != 0xD8 {
		t.Errorf("missing JPEG SOI marker, got % x", data[:2])
	}
}

func TestMockCamera_Playback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	a := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer a.Close()
	b := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer b.Close()

	cam := NewMockCamera([]*gocv.Mat{&a, &b}, false)

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error reading from closed camera")
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		frame, err := cam.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: ReadFrame() error = %v", i, err)
		}
		frame.Close()
	}

	if _, err := cam.ReadFrame(); err == nil {
		t.Error("expected error after sequence exhausted without loop")
	}

	cam.Rewind()
	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame() after Rewind error = %v", err)
	}
	frame.Close()
}
