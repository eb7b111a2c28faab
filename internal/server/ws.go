package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/ayusman/hastarekha/internal/detector"
	"github.com/ayusman/hastarekha/internal/pose"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// AssessmentMessage is the WebSocket payload pushed to clients on every
// processed frame.
type AssessmentMessage struct {
	Assessment pose.Assessment          `json:"assessment"`
	Guidance   string                   `json:"guidance"`
	Landmarks  *detector.HandLandmarks  `json:"landmarks,omitempty"`
	Timestamp  int64                    `json:"timestamp_ms"`
}

// AssessmentHandler broadcasts per-frame pose assessments via WebSocket.
// The scan pipeline pushes into it through Publish; the handler itself does
// no camera or detector work.
type AssessmentHandler struct {
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler() *AssessmentHandler {
	return &AssessmentHandler{
		clients: make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *AssessmentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Publish broadcasts an assessment to all connected clients. The landmark set
// may be nil when no hand is in view.
func (h *AssessmentHandler) Publish(a pose.Assessment, hand *detector.HandLandmarks) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.clients) == 0 {
		return
	}

	msg, _ := json.Marshal(AssessmentMessage{
		Assessment: a,
		Guidance:   Guidance(a),
		Landmarks:  hand,
		Timestamp:  time.Now().UnixMilli(),
	})

	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, msg)
	}
}

// ClientCount returns the number of connected clients.
func (h *AssessmentHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Guidance maps an assessment to the instruction shown to the user. The
// rotation direction comes from the sign of the measured angle.
func Guidance(a pose.Assessment) string {
	switch a.Status {
	case pose.StatusNoHand:
		return "Show your palm to the camera"
	case pose.StatusOutOfFrame:
		return "Show entire hand in frame"
	case pose.StatusFingersNotExtended:
		return "Spread your fingers"
	case pose.StatusTooClose:
		return "Move hand further away"
	case pose.StatusTooFar:
		return "Move hand closer"
	case pose.StatusNotCentered:
		return "Center your hand in frame"
	case pose.StatusWrongOrientation:
		return "Face your palm toward the camera"
	case pose.StatusRotated:
		if a.RotationDeg > 0 {
			return "Rotate counter-clockwise"
		}
		return "Rotate clockwise"
	case pose.StatusNotFlat:
		return "Flatten your hand"
	case pose.StatusPerfect:
		return "Hold still"
	default:
		return ""
	}
}
