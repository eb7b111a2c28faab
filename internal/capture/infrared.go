package capture

import (
	"errors"

	"gocv.io/x/gocv"
)

// SimulateInfrared renders the synthetic vein-imaging look of a capture
// frame: grayscale, inverted so skin reads dark like in near-infrared
// imagery, contrast-stretched, then tinted with the bone colormap. This is a
// cosmetic transform only; no actual infrared data is involved.
// The caller owns the returned Mat and must close it.
func SimulateInfrared(frame *gocv.Mat) (gocv.Mat, error) {
	if frame == nil || frame.Empty() {
		return gocv.NewMat(), errors.New("empty frame")
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	inverted := gocv.NewMat()
	defer inverted.Close()
	gocv.BitwiseNot(gray, &inverted)

	stretched := gocv.NewMat()
	defer stretched.Close()
	gocv.EqualizeHist(inverted, &stretched)

	tinted := gocv.NewMat()
	gocv.ApplyColorMap(stretched, &tinted, gocv.ColormapBone)

	return tinted, nil
}

// EncodeJPEG encodes a frame as JPEG bytes for persistence or streaming.
func EncodeJPEG(frame *gocv.Mat) ([]byte, error) {
	if frame == nil || frame.Empty() {
		return nil, errors.New("empty frame")
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}
