package models_test

import (
	"testing"

	"anontalk/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{
		Platform:   models.PlatformTelegram,
		PlatformID: "123456789",
		Gender:     models.GenderFemale,
	}

	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID, "User ID must be populated after BeforeCreate")

	parsed, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{
		ID:         existingID,
		Platform:   models.PlatformVK,
		PlatformID: "987654321",
	}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID, "BeforeCreate should preserve existing ID")
}

// TestUserHasGender verifies the search precondition helper.
func TestUserHasGender(t *testing.T) {
	tests := []struct {
		gender string
		want   bool
	}{
		{models.GenderMale, true},
		{models.GenderFemale, true},
		{models.GenderNotSet, false},
		{"", false},
		{"other", false},
	}

	for _, tt := range tests {
		u := models.User{Gender: tt.gender}
		assert.Equal(t, tt.want, u.HasGender(), "gender %q", tt.gender)
	}
}
