package storage

import (
	"encoding/json"

	"anontalk/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// eventChannel is the Redis pub/sub channel carrying lifecycle events
// for the admin live feed.
const eventChannel = "anontalk:events"

// PublishEvent broadcasts a lifecycle event. A nil Redis client (CLI
// tools) makes this a no-op.
func (s *Service) PublishEvent(ev models.Event) error {
	if s.Redis == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventChannel, payload).Err()
}

// SubscribeEvents returns a subscription to the lifecycle event
// channel. The caller owns the subscription and must Close it.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, eventChannel)
}
