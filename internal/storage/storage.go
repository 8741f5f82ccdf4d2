package storage

import (
	"context"
	"errors"

	"anontalk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrRaceLost is returned by ClaimMatch when a conditional update hit
// zero rows because a concurrent transaction claimed one of the
// participants first. The whole transaction is rolled back.
var ErrRaceLost = errors.New("storage: participant claimed concurrently")

// ErrClaimedElsewhere is the flavor of race where the *caller* was the
// row that got claimed: another searcher already paired with them, so
// there is nothing left to do for this request.
var ErrClaimedElsewhere = errors.New("storage: caller already paired by a concurrent search")

// Storage is the durable-store contract the core operates against.
// Every state transition is a conditional write keyed by the expected
// prior state; callers learn from the return value whether their view
// was stale.
type Storage interface {
	// Users
	GetOrCreateUser(platform models.Platform, platformID, displayName string) (*models.User, error)
	GetUserByID(userID string) (*models.User, error)
	UpdateUserGender(userID, gender string) error
	UpdateUserPref(userID, pref string) error
	SetUserBlocked(userID string, blocked bool) error
	IsUserBlocked(userID string) (bool, error)

	// Matchmaking state
	MarkSearching(userID string) error
	StopSearching(userID string) (bool, error)
	FindCandidate(excludeUserID, genderFilter string) (*models.User, error)
	ClaimMatch(userID, candidateID string) (*models.Chat, error)

	// Chats
	ActiveChatForUser(userID string) (*models.Chat, error)
	EndChat(chatID string) (bool, error)
	IncrementMessageCount(chatID string) error

	// Complaints
	SaveComplaint(c *models.Complaint) error
	ResolveComplaint(complaintID uint) error

	// Admin feed
	PublishEvent(ev models.Event) error
}

// Service implements Storage over PostgreSQL (GORM) with Redis for the
// block cache and the event pub/sub channel.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService constructs the storage service. rdb may be nil for
// CLI tools that only need the database.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// AutoMigrate creates or updates the schema for every model the
// service owns.
func (s *Service) AutoMigrate() error {
	return s.DB.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.Complaint{},
	)
}
