// Package hook provides discovery and execution of external capture hooks.
// Hooks are standalone executables that are run after each successful palm
// capture, receiving the capture records as JSON on stdin.
package hook

import (
	"encoding/json"

	"github.com/ayusman/hastarekha/internal/pose"
)

// Manifest describes a hook's metadata.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Events       []string        `json:"events"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Event represents a capture event delivered to a hook.
type Event struct {
	Name     string               `json:"event"`
	Captures []pose.CaptureRecord `json:"captures"`
	Config   json.RawMessage      `json:"config,omitempty"`
}

// Response represents the response from a hook execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Hook represents a discovered hook with its manifest and location.
type Hook struct {
	Manifest   Manifest
	Path       string
	Executable string
}

// EventCapture is the event name fired after a capture pair is stored.
const EventCapture = "capture"
