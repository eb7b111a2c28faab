package pose

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/hastarekha/internal/detector"
)

// CaptureKind distinguishes the plain camera capture from its procedurally
// generated infrared variant.
type CaptureKind string

const (
	CaptureKindRegular  CaptureKind = "regular"
	CaptureKindInfrared CaptureKind = "infrared"
)

// ErrStaleHand is returned when the hand no longer passes the flatness or
// orientation checks at the moment a capture record is built. The pose can
// degrade between the frame that fired the capture and the build call, so
// the builder re-validates instead of trusting an earlier assessment.
var ErrStaleHand = errors.New("hand pose went stale before capture")

// ErrNoHand is returned when a capture is requested with no hand in view.
var ErrNoHand = errors.New("no hand detected")

// CaptureRecord is the persisted outcome of one capture event. Metrics are
// snapshotted at build time. PairedID links the regular and infrared records
// taken from the same instant.
type CaptureRecord struct {
	ID               string      `json:"id"`
	CapturedAt       time.Time   `json:"captured_at"`
	Kind             CaptureKind `json:"kind"`
	DistanceCm       int         `json:"distance_cm"`
	AlignmentPercent int         `json:"alignment_percent"`
	PairedID         string      `json:"paired_id,omitempty"`
}

// BuildCaptureRecord assembles a capture record from the landmark set at the
// moment of firing. It returns ErrNoHand for a nil hand and ErrStaleHand if
// the flatness or orientation check no longer passes. An unrecognized kind
// is a bug in the caller and panics.
func BuildCaptureRecord(kind CaptureKind, hand *detector.HandLandmarks, cfg Config, now time.Time, pairedID string) (*CaptureRecord, error) {
	switch kind {
	case CaptureKindRegular, CaptureKindInfrared:
	default:
		panic(fmt.Sprintf("pose: unknown capture kind %q", kind))
	}

	if hand == nil {
		return nil, ErrNoHand
	}

	if !HandFlat(hand, cfg) || !PalmOrientationOK(hand, cfg) {
		return nil, ErrStaleHand
	}

	return &CaptureRecord{
		ID:               captureID(kind),
		CapturedAt:       now,
		Kind:             kind,
		DistanceCm:       int(math.Round(DistanceCm(hand))),
		AlignmentPercent: int(math.Round(Alignment(hand, cfg) * 100)),
		PairedID:         pairedID,
	}, nil
}

// BuildCapturePair builds the regular and infrared records for a dual
// capture. Both share the same timestamp and reference each other through
// PairedID. Validation happens once up front so the pair is all-or-nothing.
func BuildCapturePair(hand *detector.HandLandmarks, cfg Config, now time.Time) (*CaptureRecord, *CaptureRecord, error) {
	regular, err := BuildCaptureRecord(CaptureKindRegular, hand, cfg, now, "")
	if err != nil {
		return nil, nil, err
	}

	infrared, err := BuildCaptureRecord(CaptureKindInfrared, hand, cfg, now, regular.ID)
	if err != nil {
		return nil, nil, err
	}

	regular.PairedID = infrared.ID
	return regular, infrared, nil
}

// captureID derives a unique record id, suffixed with the kind so the two
// halves of a pair stay tell-apart in logs and URLs.
func captureID(kind CaptureKind) string {
	return fmt.Sprintf("cap-%s-%s", uuid.New().String(), kind)
}
