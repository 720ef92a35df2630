package service

import "sports-lore-chatbot/backend/internal/models"

// EventType discriminates the frames on a chat stream
type EventType string

const (
	EventStart EventType = "start"
	EventToken EventType = "token"
	EventClip  EventType = "clip"
	EventDone  EventType = "done"
	EventError EventType = "error"
)

// Event is one typed frame of a chat response stream. A stream is `start`,
// zero or more `token`, zero or more `clip`, then `done`. Any failure replaces
// the remainder with a single terminating `error`.
type Event struct {
	Type    EventType       `json:"type"`
	Content string          `json:"content,omitempty"`
	Clip    *models.ClipRef `json:"clip,omitempty"`
}
