package server

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/medbot-io/medbot/internal/db"
)

// Transcript persists chat turns to the chat_messages table.
type Transcript struct {
	db *db.DB
}

// NewTranscript creates a Transcript backed by the given database.
func NewTranscript(database *db.DB) *Transcript {
	return &Transcript{db: database}
}

// Record stores one user message and its bot reply. Transcript failures
// are logged, not returned: losing a log line must not fail the chat.
func (t *Transcript) Record(ctx context.Context, sessionID, message, reply string) {
	if t.db == nil {
		return
	}
	if err := t.insert(ctx, sessionID, "user", message); err != nil {
		log.Printf("server: recording user message: %v", err)
		return
	}
	if err := t.insert(ctx, sessionID, "bot", reply); err != nil {
		log.Printf("server: recording bot reply: %v", err)
	}
}

func (t *Transcript) insert(ctx context.Context, sessionID, role, content string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), sessionID, role, content,
	)
	return err
}

// History returns the stored messages for a session in insertion order.
func (t *Transcript) History(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Message is one stored chat line.
type Message struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
