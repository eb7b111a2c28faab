// Package main provides a capture hook that forwards capture records to a
// configured HTTP endpoint.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Event represents the input from the hook executor.
type Event struct {
	Name     string            `json:"event"`
	Captures []json.RawMessage `json:"captures"`
	Config   json.RawMessage   `json:"config"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type config struct {
	URL string `json:"url"`
}

func main() {
	var event Event
	if err := json.NewDecoder(os.Stdin).Decode(&event); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode event: %v", err))
		return
	}

	var cfg config
	if len(event.Config) > 0 {
		if err := json.Unmarshal(event.Config, &cfg); err != nil {
			writeErrorResponse(fmt.Sprintf("failed to decode config: %v", err))
			return
		}
	}
	if cfg.URL == "" {
		cfg.URL = os.Getenv("HASTAREKHA_WEBHOOK_URL")
	}
	if cfg.URL == "" {
		writeErrorResponse("no webhook url configured")
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":    event.Name,
		"captures": event.Captures,
	})
	if err != nil {
		writeErrorResponse(fmt.Sprintf("failed to marshal payload: %v", err))
		return
	}

	client := &http.Client{Timeout: 4 * time.Second}
	resp, err := client.Post(cfg.URL, "application/json", bytes.NewReader(body))
	if err != nil {
		writeErrorResponse(fmt.Sprintf("webhook request failed: %v", err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		writeErrorResponse(fmt.Sprintf("webhook returned status %d", resp.StatusCode))
		return
	}

	writeSuccessResponse()
}

// writeErrorResponse writes an error response to stdout.
func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: false,
		Error:   errMsg,
	})
}

// writeSuccessResponse writes a success response to stdout.
func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
