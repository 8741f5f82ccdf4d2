package storage

import (
	"errors"
	"fmt"
	"log"
	"time"

	"anontalk/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrCreateUser resolves a (platform, native id) pair to a user row,
// creating it on first contact. Creation is exactly-once: a concurrent
// duplicate insert falls through DoNothing and the follow-up lookup
// returns the winning row.
func (s *Service) GetOrCreateUser(platform models.Platform, platformID, displayName string) (*models.User, error) {
	user := models.User{
		Platform:    platform,
		PlatformID:  platformID,
		DisplayName: displayName,
		Gender:      models.GenderNotSet,
		Status:      models.StatusIdle,
		LastActive:  time.Now(),
	}

	res := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "platform"}, {Name: "platform_id"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		return nil, fmt.Errorf("create user %s/%s: %w", platform, platformID, res.Error)
	}

	if res.RowsAffected > 0 {
		log.Printf("INFO: new %s user registered (anon id %s)", platform, user.ID)
		return &user, nil
	}

	// Row already existed; fetch it and refresh last_active.
	var existing models.User
	if err := s.DB.Where("platform = ? AND platform_id = ?", platform, platformID).
		First(&existing).Error; err != nil {
		return nil, fmt.Errorf("lookup user %s/%s: %w", platform, platformID, err)
	}
	if err := s.DB.Model(&existing).Update("last_active", time.Now()).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetUserByID returns the user row for an internal ID.
func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserGender sets the user's own gender. Allowed in any state.
func (s *Service) UpdateUserGender(userID, gender string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("gender", gender).Error
}

// UpdateUserPref stores the preferred partner gender ("" = any).
func (s *Service) UpdateUserPref(userID, pref string) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("gender_pref", pref).Error
}

// SetUserBlocked flips the block flag and refreshes the Redis cache.
func (s *Service) SetUserBlocked(userID string, blocked bool) error {
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("is_blocked", blocked).Error; err != nil {
		return err
	}
	if s.Redis == nil {
		return nil
	}
	key := "block:" + userID
	if blocked {
		return s.Redis.Set(s.Ctx, key, "1", blockCacheTTL).Err()
	}
	return s.Redis.Del(s.Ctx, key).Err()
}

const blockCacheTTL = 10 * time.Minute

// IsUserBlocked checks the Redis cache first and falls back to the
// database, caching a positive answer.
func (s *Service) IsUserBlocked(userID string) (bool, error) {
	if s.Redis != nil {
		_, err := s.Redis.Get(s.Ctx, "block:"+userID).Result()
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: block cache read failed for %s: %v", userID, err)
		}
	}

	var blocked bool
	err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Pluck("is_blocked", &blocked).Error
	if err != nil {
		return false, err
	}
	if blocked && s.Redis != nil {
		_ = s.Redis.Set(s.Ctx, "block:"+userID, "1", blockCacheTTL).Err()
	}
	return blocked, nil
}

// MarkSearching moves an idle user into the searching state. Applying
// it to a user who is already searching is a harmless no-op; the
// conditional guard keeps it from ever touching an in_chat user.
func (s *Service) MarkSearching(userID string) error {
	return s.DB.Model(&models.User{}).
		Where("id = ? AND status = ?", userID, models.StatusIdle).
		Update("status", models.StatusSearching).Error
}

// StopSearching cancels a search. Returns false when the user was not
// searching, so the caller can report "not searching" without treating
// it as an error.
func (s *Service) StopSearching(userID string) (bool, error) {
	res := s.DB.Model(&models.User{}).
		Where("id = ? AND status = ?", userID, models.StatusSearching).
		Update("status", models.StatusIdle)
	return res.RowsAffected > 0, res.Error
}

// FindCandidate picks one searching, unblocked user other than the
// caller, optionally constrained by gender. Selection is random across
// platforms; the caller must still win the claim, so two concurrent
// searches seeing the same candidate is fine. Returns (nil, nil) when
// the queue is empty.
func (s *Service) FindCandidate(excludeUserID, genderFilter string) (*models.User, error) {
	q := s.DB.Where("status = ? AND is_blocked = ? AND id != ?",
		models.StatusSearching, false, excludeUserID)
	if genderFilter != "" {
		q = q.Where("gender = ?", genderFilter)
	}

	var candidate models.User
	err := q.Order("random()").First(&candidate).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}
