package storage

import (
	"errors"
	"time"

	"anontalk/backend/internal/models"

	"gorm.io/gorm"
)

// ClaimMatch atomically pairs two searching users. Inside one
// transaction it inserts the chat row and conditionally flips both
// users from searching to in_chat; if either conditional update hits
// zero rows the transaction rolls back, so a lost race never leaves
// one user paired and the other not.
//
// The candidate is claimed first. If the candidate was taken, the
// caller should retry with a fresh candidate (ErrRaceLost). If the
// *caller's* own row could not be flipped, a concurrent search already
// paired them and the winner handles the notifications
// (ErrClaimedElsewhere).
func (s *Service) ClaimMatch(userID, candidateID string) (*models.Chat, error) {
	chat := &models.Chat{
		User1ID:   userID,
		User2ID:   candidateID,
		Status:    models.ChatActive,
		StartedAt: time.Now(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND status = ?", candidateID, models.StatusSearching).
			Updates(map[string]interface{}{
				"status":          models.StatusInChat,
				"current_chat_id": chat.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRaceLost
		}

		res = tx.Model(&models.User{}).
			Where("id = ? AND status = ?", userID, models.StatusSearching).
			Updates(map[string]interface{}{
				"status":          models.StatusInChat,
				"current_chat_id": chat.ID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClaimedElsewhere
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

// ActiveChatForUser finds the chat a user currently participates in,
// regardless of which platform they are on. Returns (nil, nil) when
// there is none.
func (s *Service) ActiveChatForUser(userID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.DB.Where("status = ?", models.ChatActive).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// EndChat tears down an active chat: marks it ended with a timestamp
// and resets both participants to idle in the same transaction.
// Returns false when the chat was already ended (someone else won the
// teardown), which callers treat as a no-op.
func (s *Service) EndChat(chatID string) (bool, error) {
	ended := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&models.Chat{}).
			Where("id = ? AND status = ?", chatID, models.ChatActive).
			Updates(map[string]interface{}{
				"status":   models.ChatEnded,
				"ended_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // already ended
		}
		ended = true

		return tx.Model(&models.User{}).
			Where("current_chat_id = ?", chatID).
			Updates(map[string]interface{}{
				"status":          models.StatusIdle,
				"current_chat_id": nil,
			}).Error
	})
	return ended, err
}

// IncrementMessageCount bumps the relay counter of an active chat.
// The status guard makes ended chats stop counting; the increment is a
// usage metric and is never rolled back on delivery failure.
func (s *Service) IncrementMessageCount(chatID string) error {
	return s.DB.Model(&models.Chat{}).
		Where("id = ? AND status = ?", chatID, models.ChatActive).
		Update("message_count", gorm.Expr("message_count + 1")).Error
}
