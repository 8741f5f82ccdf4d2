// Package identity maps a platform-native identity to a single
// internal user, creating it on first contact.
package identity

import (
	"fmt"

	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"
)

// Resolver turns (platform, native id) pairs into user records. Both
// platform adapters share one resolver so the same person is never
// represented twice.
type Resolver struct {
	Storage storage.Storage
}

func NewResolver(s storage.Storage) *Resolver {
	return &Resolver{Storage: s}
}

// Resolve returns the user for the given external identity, creating
// it lazily with gender unset and state idle. Safe under concurrent
// first contact: the store guarantees exactly-once creation.
func (r *Resolver) Resolve(platform models.Platform, nativeID, displayName string) (*models.User, error) {
	if nativeID == "" {
		return nil, fmt.Errorf("identity: empty native id for platform %s", platform)
	}
	user, err := r.Storage.GetOrCreateUser(platform, nativeID, displayName)
	if err != nil {
		return nil, fmt.Errorf("identity: resolve %s/%s: %w", platform, nativeID, err)
	}
	return user, nil
}
