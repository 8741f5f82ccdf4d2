package identity_test

import (
	"errors"
	"testing"

	"anontalk/backend/internal/identity"
	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStorage implements only the resolver's slice of the interface;
// the embedded nil interface panics on anything else.
type stubStorage struct {
	storage.Storage
	getOrCreate func(platform models.Platform, platformID, displayName string) (*models.User, error)
}

func (s *stubStorage) GetOrCreateUser(platform models.Platform, platformID, displayName string) (*models.User, error) {
	return s.getOrCreate(platform, platformID, displayName)
}

// TestResolveDelegatesToStorage verifies the happy path.
func TestResolveDelegatesToStorage(t *testing.T) {
	want := &models.User{ID: "uuid-1", Platform: models.PlatformTelegram, PlatformID: "42"}
	store := &stubStorage{
		getOrCreate: func(platform models.Platform, platformID, displayName string) (*models.User, error) {
			assert.Equal(t, models.PlatformTelegram, platform)
			assert.Equal(t, "42", platformID)
			assert.Equal(t, "alice", displayName)
			return want, nil
		},
	}
	resolver := identity.NewResolver(store)

	user, err := resolver.Resolve(models.PlatformTelegram, "42", "alice")

	require.NoError(t, err)
	assert.Same(t, want, user)
}

// TestResolveRejectsEmptyNativeID verifies the input guard.
func TestResolveRejectsEmptyNativeID(t *testing.T) {
	resolver := identity.NewResolver(&stubStorage{})

	_, err := resolver.Resolve(models.PlatformVK, "", "bob")

	assert.Error(t, err)
}

// TestResolveWrapsStorageError verifies error propagation with context.
func TestResolveWrapsStorageError(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &stubStorage{
		getOrCreate: func(models.Platform, string, string) (*models.User, error) {
			return nil, storeErr
		},
	}
	resolver := identity.NewResolver(store)

	_, err := resolver.Resolve(models.PlatformVK, "99", "bob")

	assert.ErrorIs(t, err, storeErr)
}
