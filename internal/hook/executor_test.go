package hook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/hastarekha/internal/pose"
)

func writeScript(t *testing.T, dir, name, content string) *Hook {
	t.Helper()

	scriptPath := filepath.Join(dir, name)
	if err := os.WriteFile(scriptPath, []byte(content), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Hook{
		Manifest: Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name,
			Events:     []string{EventCapture},
		},
		Path:       dir,
		Executable: scriptPath,
	}
}

func captureEvent() *Event {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &Event{
		Name: EventCapture,
		Captures: []pose.CaptureRecord{
			{
				ID:               "cap-1-regular",
				CapturedAt:       at,
				Kind:             pose.CaptureKindRegular,
				DistanceCm:       32,
				AlignmentPercent: 99,
				PairedID:         "cap-1-infrared",
			},
			{
				ID:               "cap-1-infrared",
				CapturedAt:       at,
				Kind:             pose.CaptureKindInfrared,
				DistanceCm:       32,
				AlignmentPercent: 99,
				PairedID:         "cap-1-regular",
			},
		},
	}
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "ok-hook.sh", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"stored"}}
EOF
`)

	executor := NewExecutor(5000)
	response, err := executor.Execute(h, captureEvent())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true, got false")
	}
	if response.Error != "" {
		t.Errorf("expected empty error, got %q", response.Error)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "stored" {
		t.Errorf("expected message 'stored', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "echo-hook.sh", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	executor := NewExecutor(5000)
	response, err := executor.Execute(h, captureEvent())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}

	received, ok := data["received"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected 'received' to be an object, got %T", data["received"])
	}
	if received["event"] != EventCapture {
		t.Errorf("expected event %q, got %v", EventCapture, received["event"])
	}

	captures, ok := received["captures"].([]interface{})
	if !ok || len(captures) != 2 {
		t.Fatalf("expected 2 captures in event, got %v", received["captures"])
	}
	first, _ := captures[0].(map[string]interface{})
	if first["id"] != "cap-1-regular" {
		t.Errorf("expected first capture id 'cap-1-regular', got %v", first["id"])
	}
}

func TestExecutor_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "slow-hook.sh", `#!/bin/sh
sleep 10
echo '{"success":true}'
`)

	executor := NewExecutor(100)
	_, err := executor.Execute(h, captureEvent())
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if !strings.Contains(err.Error(), "timeout") && !strings.Contains(err.Error(), "killed") && !strings.Contains(err.Error(), "context deadline exceeded") {
		t.Errorf("expected timeout-related error, got: %v", err)
	}
}

func TestExecutor_Execute_ErrorResponse(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "error-hook.sh", `#!/bin/sh
echo '{"success":false,"error":"upload failed"}'
`)

	executor := NewExecutor(5000)
	response, err := executor.Execute(h, captureEvent())
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if response.Success {
		t.Error("expected success=false, got true")
	}
	if response.Error != "upload failed" {
		t.Errorf("expected error 'upload failed', got %q", response.Error)
	}
}

func TestExecutor_Execute_InvalidJSON(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "bad-hook.sh", `#!/bin/sh
echo 'not valid json'
`)

	executor := NewExecutor(5000)
	if _, err := executor.Execute(h, captureEvent()); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestExecutor_Execute_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	h := writeScript(t, t.TempDir(), "exit-hook.sh", `#!/bin/sh
echo "Error: something failed" >&2
exit 1
`)

	executor := NewExecutor(5000)
	if _, err := executor.Execute(h, captureEvent()); err == nil {
		t.Fatal("expected error for non-zero exit, got nil")
	}
}
