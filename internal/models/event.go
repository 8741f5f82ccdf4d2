package models

import "time"

// Event types published on the admin feed.
const (
	EventMatchCreated   = "match_created"
	EventChatEnded      = "chat_ended"
	EventComplaintFiled = "complaint_filed"
)

// Event is a lifecycle notification broadcast over Redis pub/sub and
// streamed to connected admin dashboards.
type Event struct {
	Type      string    `json:"type"`
	ChatID    string    `json:"chat_id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
