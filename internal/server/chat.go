package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatSocketRequest is the incoming WebSocket message format.
type chatSocketRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	Message   string `json:"message"`
}

// chatSocketResponse is the outgoing WebSocket message format.
type chatSocketResponse struct {
	Type      string `json:"type"` // "reply" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

func (s *Server) chatSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// A socket without a session id gets one that lasts the connection.
	connSessionID := uuid.New().String()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req chatSocketRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendSocketError(conn, "", "invalid message format")
			continue
		}
		if req.Message == "" {
			s.sendSocketError(conn, req.SessionID, "message is required")
			continue
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = connSessionID
		}

		reply, err := s.engine.Turn(r.Context(), sessionID, req.Message)
		if err != nil {
			s.sendSocketError(conn, sessionID, "processing failed: "+err.Error())
			continue
		}
		s.transcript.Record(r.Context(), sessionID, req.Message, reply)

		s.sendSocketResponse(conn, chatSocketResponse{
			Type:      "reply",
			SessionID: sessionID,
			Content:   reply,
		})
	}
}

func (s *Server) sendSocketResponse(conn *websocket.Conn, resp chatSocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendSocketError(conn *websocket.Conn, sessionID, message string) {
	resp := chatSocketResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write error: %v", err)
	}
}
