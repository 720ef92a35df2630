package models

import (
	"encoding/json"
	"time"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a persisted chat turn
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExternalID string    `json:"external_id" gorm:"index"`
	UserID     string    `json:"user_id" gorm:"index:idx_messages_user_created,priority:1"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	Clips      string    `json:"-"` // serialized JSON list of clips shown with this turn
	CreatedAt  time.Time `json:"created_at" gorm:"index:idx_messages_user_created,priority:2"`
}

// ClipList deserializes the clips column. Returns nil when no clips were attached.
func (m *Message) ClipList() []ClipRef {
	if m.Clips == "" {
		return nil
	}
	var refs []ClipRef
	if err := json.Unmarshal([]byte(m.Clips), &refs); err != nil {
		return nil
	}
	return refs
}

// SetClipList serializes clips into the clips column.
func (m *Message) SetClipList(refs []ClipRef) error {
	if len(refs) == 0 {
		m.Clips = ""
		return nil
	}
	data, err := json.Marshal(refs)
	if err != nil {
		return err
	}
	m.Clips = string(data)
	return nil
}

// ClipRef is the clip payload stored alongside a message and streamed to clients
type ClipRef struct {
	ClipID      string `json:"clip_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YouTubeID   string `json:"youtube_id"`
	Timestamp   int    `json:"timestamp,omitempty"`
}

// ChatMessage is the inbound chat request payload
type ChatMessage struct {
	Message     string           `json:"message" binding:"required"`
	UserID      string           `json:"user_id"`
	Preferences *UserPreferences `json:"preferences,omitempty"`
}
