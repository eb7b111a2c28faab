// Package app provides the main application logic for the Hastarekha palm scanner.
package app

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/hastarekha/internal/capture"
	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/hook"
	"github.com/ayusman/hastarekha/internal/pose"
	"github.com/ayusman/hastarekha/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active scanning.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds to wait before switching back to idle mode.
	IdleTimeoutMs = 2000
	// hookTimeoutMs bounds each post-capture hook execution.
	hookTimeoutMs = 5000
)

// calibrationKey is the settings-table key the live thresholds persist under.
const calibrationKey = "calibration"

// Config holds configuration options for the scanner.
type Config struct {
	Store        *store.Store
	HookDir      string
	CameraID     int
	MotionThresh float64
	Pose         pose.Config
}

// AssessmentObserver receives every processed frame's assessment. The landmark
// set is the smoothed one the assessment was computed from; nil when no hand
// is in view.
type AssessmentObserver func(a pose.Assessment, hand *detector.HandLandmarks)

// CaptureObserver receives the stored rows of a finished capture pair.
type CaptureObserver func(captures []*store.Capture)

// Scanner orchestrates the scan pipeline: camera frames through motion gating,
// hand detection and the pose session, with captures persisted and hooks run
// when the session fires.
type Scanner struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	hookMgr  *hook.Manager
	hookExec *hook.Executor

	// session and lastFrame are shared between the pipeline goroutine and
	// the manual-capture path.
	sessionMu sync.Mutex
	session   *pose.Session
	lastFrame *gocv.Mat

	onAssessment []AssessmentObserver
	onCapture    []CaptureObserver
	observerMu   sync.RWMutex

	scanning bool
	mu       sync.RWMutex
	stopCh   chan struct{}
}

// New creates a new Scanner with the given configuration.
func New(config Config) *Scanner {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	s := &Scanner{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		motion:   capture.NewMotionDetector(motionThreshold),
		hookMgr:  hook.NewManager(config.HookDir),
		hookExec: hook.NewExecutor(hookTimeoutMs),
		session:  pose.NewSession(config.Pose),
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		s.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		s.detector = detector.NewMockDetector()
	}

	return s
}

// SetScanning enables or disables frame processing. Disabling resets the
// session so a later re-enable starts from a clean pose history.
func (s *Scanner) SetScanning(scanning bool) {
	s.mu.Lock()
	s.scanning = scanning
	s.mu.Unlock()

	if !scanning {
		s.sessionMu.Lock()
		s.session.Reset()
		s.dropLastFrameLocked()
		s.sessionMu.Unlock()
	}
}

// IsScanning returns whether frame processing is currently enabled.
func (s *Scanner) IsScanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// SetDetector sets the hand detector implementation to use.
func (s *Scanner) SetDetector(d detector.Detector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detector = d
}

// OnAssessment registers an observer called for every processed frame.
func (s *Scanner) OnAssessment(fn AssessmentObserver) {
	s.observerMu.Lock()
	defer s.observerMu.Unlock()
	s.onAssessment = append(s.onAssessment, fn)
}

// OnCapture registers an observer called after a capture pair is stored.
func (s *Scanner) OnCapture(fn CaptureObserver) {
	s.observerMu.Lock()
	defer s.observerMu.Unlock()
	s.onCapture = append(s.onCapture, fn)
}

// DiscoverHooks scans the hook directory and loads available hooks.
func (s *Scanner) DiscoverHooks() error {
	return s.hookMgr.Discover()
}

// LoadCalibration restores persisted threshold overrides from the settings
// table. A missing entry leaves the configured defaults in place.
func (s *Scanner) LoadCalibration() error {
	if s.config.Store == nil {
		return nil
	}

	raw, err := s.config.Store.Settings().Get(calibrationKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	cfg := s.Calibration()
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return err
	}

	s.sessionMu.Lock()
	s.session.SetConfig(cfg)
	s.sessionMu.Unlock()
	return nil
}

// Calibration returns the live pose thresholds.
func (s *Scanner) Calibration() pose.Config {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	return s.session.Config()
}

// SetCalibration applies new thresholds to the running session and persists
// them to the settings table.
func (s *Scanner) SetCalibration(cfg pose.Config) error {
	s.sessionMu.Lock()
	s.session.SetConfig(cfg)
	s.sessionMu.Unlock()

	if s.config.Store == nil {
		return nil
	}

	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.config.Store.Settings().Set(calibrationKey, string(raw))
}

// CaptureNow captures the current pose immediately, skipping the hold timer.
// The pose itself is still validated: a missing hand returns pose.ErrNoHand
// and a hand that fails flatness or orientation returns pose.ErrStaleHand.
func (s *Scanner) CaptureNow() ([]*store.Capture, error) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	hand := s.session.Current()
	if hand == nil || s.lastFrame == nil {
		return nil, pose.ErrNoHand
	}

	regular, infrared, err := pose.BuildCapturePair(hand, s.session.Config(), time.Now())
	if err != nil {
		return nil, err
	}

	return s.persistPairLocked(regular, infrared)
}

// Start begins the scan pipeline.
func (s *Scanner) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Don't start if already running
	if s.stopCh != nil {
		return nil
	}

	// Open the camera
	if err := s.camera.Open(); err != nil {
		return err
	}

	// Set initial FPS to idle mode
	s.camera.SetFPS(IdleFPS)

	// Create stop channel and start the pipeline
	s.stopCh = make(chan struct{})
	go s.runPipeline(s.stopCh)

	log.Println("Scan pipeline started")
	return nil
}

// Stop halts the scan pipeline and releases resources. The session is reset
// synchronously so a restart begins from a clean state.
func (s *Scanner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Signal the pipeline to stop
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}

	s.sessionMu.Lock()
	s.session.Reset()
	s.dropLastFrameLocked()
	s.sessionMu.Unlock()

	// Close the camera
	if err := s.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	// Close motion detector
	s.motion.Close()

	// Close the hand detector if set
	if s.detector != nil {
		if err := s.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Scan pipeline stopped")
}

// Camera returns the camera instance.
func (s *Scanner) Camera() capture.Camera {
	return s.camera
}

// MotionDetector returns the motion detector instance.
func (s *Scanner) MotionDetector() *capture.MotionDetector {
	return s.motion
}

// HookManager returns the hook manager.
func (s *Scanner) HookManager() *hook.Manager {
	return s.hookMgr
}

// Detector returns the hand detector.
func (s *Scanner) Detector() detector.Detector {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detector
}

// dropLastFrameLocked releases the retained frame. Callers hold sessionMu.
func (s *Scanner) dropLastFrameLocked() {
	if s.lastFrame != nil {
		s.lastFrame.Close()
		s.lastFrame = nil
	}
}
