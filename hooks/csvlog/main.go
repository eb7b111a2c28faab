// Package main provides a capture hook that appends capture records to a
// CSV file.
package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Event represents the input from the hook executor.
type Event struct {
	Name     string          `json:"event"`
	Captures []Capture       `json:"captures"`
	Config   json.RawMessage `json:"config"`
}

// Capture mirrors the capture record fields the log cares about.
type Capture struct {
	ID               string `json:"id"`
	CapturedAt       string `json:"captured_at"`
	Kind             string `json:"kind"`
	DistanceCm       int    `json:"distance_cm"`
	AlignmentPercent int    `json:"alignment_percent"`
	PairedID         string `json:"paired_id"`
}

// Response represents the output to the hook executor.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type config struct {
	Path string `json:"path"`
}

func main() {
	var event Event
	if err := json.NewDecoder(os.Stdin).Decode(&event); err != nil {
		writeResponse(false, fmt.Sprintf("failed to decode event: %v", err))
		return
	}

	cfg := config{Path: "captures.csv"}
	if len(event.Config) > 0 {
		if err := json.Unmarshal(event.Config, &cfg); err != nil {
			writeResponse(false, fmt.Sprintf("failed to decode config: %v", err))
			return
		}
	}

	f, err := os.OpenFile(cfg.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		writeResponse(false, fmt.Sprintf("failed to open %s: %v", cfg.Path, err))
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, c := range event.Captures {
		record := []string{
			c.ID,
			c.CapturedAt,
			c.Kind,
			strconv.Itoa(c.DistanceCm),
			strconv.Itoa(c.AlignmentPercent),
			c.PairedID,
		}
		if err := w.Write(record); err != nil {
			writeResponse(false, fmt.Sprintf("failed to write record: %v", err))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		writeResponse(false, fmt.Sprintf("failed to flush csv: %v", err))
		return
	}

	writeResponse(true, "")
}

func writeResponse(success bool, errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{
		Success: success,
		Error:   errMsg,
	})
}
