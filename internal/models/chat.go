package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat statuses. A chat is never deleted; it ends and stays as history.
const (
	ChatActive = "active"
	ChatEnded  = "ended"
)

// Chat is one pairing between two users, possibly on different
// platforms. Participants are internal user IDs; while Status is
// "active" both users' CurrentChatID must point back here.
type Chat struct {
	// ID is the unique identifier of the pairing (UUID).
	ID string `gorm:"primaryKey" json:"id"`
	// User1ID is the user whose search created the chat.
	User1ID string `gorm:"index;not null" json:"user1_id"`
	// User2ID is the matched partner.
	User2ID string `gorm:"index;not null" json:"user2_id"`
	// Status is "active" or "ended".
	Status string `gorm:"default:active;index" json:"status"`
	// MessageCount counts relayed messages while the chat is active.
	MessageCount int `gorm:"default:0" json:"message_count"`
	// StartedAt is when the pairing was established.
	StartedAt time.Time `json:"started_at"`
	// EndedAt is set once, when the chat is torn down.
	EndedAt *time.Time `json:"ended_at"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// PartnerOf returns the other participant's user ID, or "" when the
// given user is not part of this chat.
func (c *Chat) PartnerOf(userID string) string {
	switch userID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	}
	return ""
}
