package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MeKo-Tech/lingua/internal/bulk"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketDetectRequest represents a detection request via WebSocket.
type WebSocketDetectRequest struct {
	Type   string   `json:"type"` // "detect" or "mentions"
	Texts  []string `json:"texts,omitempty"`
	Text   string   `json:"text,omitempty"`
	Locale string   `json:"locale,omitempty"`

	// Mention matching request fields
	SearchLocale  string `json:"search_locale,omitempty"`
	DisplayLocale string `json:"display_locale,omitempty"`
}

// WebSocketConnWriter is an interface for writing WebSocket messages.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// WebSocketDetectResponse represents a detection response via WebSocket.
// Bulk requests stream one "result" message per classified text before the
// final "completed" message.
type WebSocketDetectResponse struct {
	Type      string                    `json:"type"`
	Status    string                    `json:"status"` // "processing", "result", "completed", "error"
	Progress  float64                   `json:"progress,omitempty"`
	Result    *bulk.LanguageInformation `json:"result,omitempty"`
	Mentioned []string                  `json:"mentioned,omitempty"`
	Count     int                       `json:"count,omitempty"`
	Error     string                    `json:"error,omitempty"`
	ErrorType string                    `json:"error_type,omitempty"`
}

// detectWebSocketHandler handles WebSocket connections for streaming
// detection results.
func (s *Server) detectWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(r.Context(), conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(ctx context.Context, conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Send ping messages to keep connection alive
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(ctx, conn, data)
		}
	}
}

// handleWebSocketMessage processes a WebSocket message.
func (s *Server) handleWebSocketMessage(ctx context.Context, conn *websocket.Conn, data []byte) {
	var req WebSocketDetectRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", fmt.Sprintf("Failed to parse request: %v", err))
		return
	}

	switch req.Type {
	case "detect":
		s.processWebSocketDetect(ctx, conn, req)
	case "mentions":
		s.processWebSocketMentions(conn, req)
	default:
		s.sendWebSocketError(conn, "invalid_request", "Unsupported request type: "+req.Type)
	}
}

// processWebSocketDetect runs bulk detection and streams each result as it
// is delivered.
func (s *Server) processWebSocketDetect(ctx context.Context, conn *websocket.Conn, req WebSocketDetectRequest) {
	texts := req.Texts
	if len(texts) == 0 && req.Text != "" {
		texts = []string{req.Text}
	}
	if len(texts) == 0 {
		s.sendWebSocketError(conn, "invalid_request", "No texts provided")
		return
	}
	if len(texts) > s.maxTexts {
		s.sendWebSocketError(conn, "invalid_request",
			fmt.Sprintf("Too many texts: %d exceeds limit of %d", len(texts), s.maxTexts))
		return
	}

	s.sendWebSocketResponse(conn, WebSocketDetectResponse{
		Type:   "detect_response",
		Status: "processing",
	})

	start := time.Now()
	results, err := s.engine.DetectMany(ctx, texts, req.Locale)
	if err != nil {
		detectionRequestsTotal.WithLabelValues("websocket", "error").Inc()
		s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("Detection failed: %v", err))
		return
	}

	detectionRequestsTotal.WithLabelValues("websocket", "success").Inc()
	detectionDuration.WithLabelValues("websocket").Observe(time.Since(start).Seconds())

	for i := range results {
		s.sendWebSocketResponse(conn, WebSocketDetectResponse{
			Type:     "detect_response",
			Status:   "result",
			Progress: float64(i+1) / float64(len(results)),
			Result:   &results[i],
		})
	}

	s.sendWebSocketResponse(conn, WebSocketDetectResponse{
		Type:     "detect_response",
		Status:   "completed",
		Progress: 1.0,
		Count:    len(results),
	})
}

// processWebSocketMentions runs mention matching for a single text.
func (s *Server) processWebSocketMentions(conn *websocket.Conn, req WebSocketDetectRequest) {
	if req.Text == "" {
		s.sendWebSocketError(conn, "invalid_request", "No text provided")
		return
	}
	if req.SearchLocale == "" {
		s.sendWebSocketError(conn, "invalid_request", "No search_locale provided")
		return
	}

	mentioned, err := s.matcher.FindMentioned(req.Text, req.SearchLocale, req.DisplayLocale)
	if err != nil {
		s.sendWebSocketError(conn, "processing_error", fmt.Sprintf("Mention matching failed: %v", err))
		return
	}

	mentionsFound.Observe(float64(len(mentioned)))

	s.sendWebSocketResponse(conn, WebSocketDetectResponse{
		Type:      "mentions_response",
		Status:    "completed",
		Mentioned: mentioned,
		Count:     len(mentioned),
	})
}

// sendWebSocketResponse sends a response message over WebSocket.
func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, response WebSocketDetectResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// sendWebSocketError sends an error message over WebSocket.
func (s *Server) sendWebSocketError(conn WebSocketConnWriter, errorType, message string) {
	response := WebSocketDetectResponse{
		Type:      "error",
		Status:    "error",
		Error:     message,
		ErrorType: errorType,
	}

	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket error response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket error message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
