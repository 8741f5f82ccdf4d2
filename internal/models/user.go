package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform identifies the messaging network a user reaches us through.
type Platform string

const (
	PlatformTelegram Platform = "telegram"
	PlatformVK       Platform = "vk"
)

// Gender values stored on a user row.
const (
	GenderNotSet = "not_set"
	GenderMale   = "male"
	GenderFemale = "female"
)

// Matchmaking states. A user is in exactly one of these at any time.
const (
	StatusIdle      = "idle"
	StatusSearching = "searching"
	StatusInChat    = "in_chat"
)

// User represents one person across all platforms. The (Platform,
// PlatformID) pair is the external identity; ID is the internal
// surrogate key everything else references.
type User struct {
	ID            string   `gorm:"primaryKey" json:"id"` // Anonymous UUID
	Platform      Platform `gorm:"uniqueIndex:idx_platform_identity;not null" json:"platform"`
	PlatformID    string   `gorm:"uniqueIndex:idx_platform_identity;not null" json:"platform_id"`
	DisplayName   string   `json:"-"`
	Gender        string   `gorm:"default:not_set" json:"gender"`
	GenderPref    string   `gorm:"default:''" json:"gender_pref"` // preferred partner gender, "" = any
	Status        string   `gorm:"default:idle;index" json:"status"`
	CurrentChatID *string  `gorm:"index" json:"current_chat_id"`
	IsBlocked     bool     `gorm:"default:false" json:"is_blocked"`
	LastActive    time.Time `json:"last_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the row is
// inserted without one.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// HasGender reports whether the user has completed gender selection,
// a precondition for searching.
func (u *User) HasGender() bool {
	return u.Gender == GenderMale || u.Gender == GenderFemale
}
