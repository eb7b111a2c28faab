package app

import (
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/hook"
	"github.com/ayusman/hastarekha/internal/pose"
	"github.com/ayusman/hastarekha/internal/store"
)

// runPipeline is the main scan loop that processes frames from the camera.
// It manages the state transitions between idle and active modes based on
// motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (idleFPS=5)
// 2. On motion detected, switch to active mode (activeFPS=15)
// 3. Run hand detection and feed the pose session
// 4. Notify assessment observers every frame
// 5. When the session fires, persist the capture pair and run hooks
// 6. After 2s no motion, switch back to idle mode
func (s *Scanner) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if scanning is disabled
			if !s.IsScanning() {
				continue
			}

			frame, err := s.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion detection
			motionDetected, _ := s.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					s.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					s.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			d := s.Detector()
			if !activeMode || d == nil {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			hands, err := d.Detect(frame)
			if err != nil {
				frame.Close()
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			var hand *detector.HandLandmarks
			if len(hands) > 0 {
				hand = &hands[0]
			}

			// Step 3: Pose assessment and capture gating
			s.ProcessFrame(frame, hand, time.Now())
		}
	}
}

// ProcessFrame feeds one frame and its detected hand into the pose session,
// notifies observers and, when the session fires, persists the capture pair
// and runs hooks. It takes ownership of the frame.
func (s *Scanner) ProcessFrame(frame *gocv.Mat, hand *detector.HandLandmarks, now time.Time) {
	s.sessionMu.Lock()

	assessment, fired := s.session.ProcessFrame(hand, now)

	// Retain the latest frame for the manual-capture path.
	s.dropLastFrameLocked()
	s.lastFrame = frame

	smoothed := s.session.Current()

	var captures []*store.Capture
	if fired {
		regular, infrared, err := pose.BuildCapturePair(smoothed, s.session.Config(), now)
		if err != nil {
			// The smoothed pose degraded between classification and the
			// record build. Skip this fire; the debouncer stays in cooldown.
			log.Printf("Capture aborted: %v", err)
		} else if captures, err = s.persistPairLocked(regular, infrared); err != nil {
			log.Printf("Failed to persist capture: %v", err)
			captures = nil
		}
	}

	s.sessionMu.Unlock()

	s.notifyAssessment(assessment, smoothed)
	if len(captures) > 0 {
		log.Printf("Captured palm: %s (%dcm, %d%% aligned)",
			captures[0].ID, captures[0].DistanceCm, captures[0].AlignmentPercent)
		s.notifyCapture(captures)
		go s.runHooks(captures)
	}
}

// persistPairLocked encodes the retained frame as the regular and simulated
// infrared images, stores both rows and trims the history. Callers hold
// sessionMu.
func (s *Scanner) persistPairLocked(regular, infrared *pose.CaptureRecord) ([]*store.Capture, error) {
	regularJPEG, err := capture.EncodeJPEG(s.lastFrame)
	if err != nil {
		return nil, err
	}

	irFrame, err := capture.SimulateInfrared(s.lastFrame)
	if err != nil {
		return nil, err
	}
	infraredJPEG, err := capture.EncodeJPEG(&irFrame)
	irFrame.Close()
	if err != nil {
		return nil, err
	}

	rows := []*store.Capture{
		recordToRow(regular, regularJPEG),
		recordToRow(infrared, infraredJPEG),
	}

	if s.config.Store == nil {
		return rows, nil
	}

	repo := s.config.Store.Captures()
	for _, row := range rows {
		if err := repo.Create(row); err != nil {
			return nil, err
		}
	}

	// Two rows per capture event.
	if max := s.session.Config().MaxStoredCaptures; max > 0 {
		if err := repo.Trim(max * 2); err != nil {
			log.Printf("Failed to trim capture history: %v", err)
		}
	}

	return rows, nil
}

// recordToRow converts a pose.CaptureRecord plus its encoded frame into the
// stored row form.
func recordToRow(r *pose.CaptureRecord, image []byte) *store.Capture {
	return &store.Capture{
		ID:               r.ID,
		CapturedAt:       r.CapturedAt,
		Kind:             string(r.Kind),
		DistanceCm:       r.DistanceCm,
		AlignmentPercent: r.AlignmentPercent,
		PairedID:         r.PairedID,
		Image:            image,
	}
}

func (s *Scanner) notifyAssessment(a pose.Assessment, hand *detector.HandLandmarks) {
	s.observerMu.RLock()
	observers := s.onAssessment
	s.observerMu.RUnlock()

	for _, fn := range observers {
		fn(a, hand)
	}
}

func (s *Scanner) notifyCapture(captures []*store.Capture) {
	s.observerMu.RLock()
	observers := s.onCapture
	s.observerMu.RUnlock()

	for _, fn := range observers {
		fn(captures)
	}
}

// runHooks executes every hook subscribed to the capture event. Hook failures
// are logged and never block the pipeline.
func (s *Scanner) runHooks(captures []*store.Capture) {
	records := make([]pose.CaptureRecord, 0, len(captures))
	for _, c := range captures {
		records = append(records, pose.CaptureRecord{
			ID:               c.ID,
			CapturedAt:       c.CapturedAt,
			Kind:             pose.CaptureKind(c.Kind),
			DistanceCm:       c.DistanceCm,
			AlignmentPercent: c.AlignmentPercent,
			PairedID:         c.PairedID,
		})
	}

	event := &hook.Event{
		Name:     hook.EventCapture,
		Captures: records,
	}

	for _, h := range s.hookMgr.ForEvent(hook.EventCapture) {
		resp, err := s.hookExec.Execute(h, event)
		if err != nil {
			log.Printf("Hook %s failed: %v", h.Manifest.Name, err)
			continue
		}
		if !resp.Success {
			log.Printf("Hook %s reported error: %s", h.Manifest.Name, resp.Error)
		}
	}
}
