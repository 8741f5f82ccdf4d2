package chathub_test

import (
	"errors"
	"testing"

	"anontalk/backend/internal/chathub"
	"anontalk/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routerFixture() (*chathub.RouterService, *MockStorage, *MockDeliverer, *MockDeliverer) {
	storageMock := new(MockStorage)
	registry := chathub.NewDeliveryRegistry()
	tg := newMockDeliverer()
	vkDel := newMockDeliverer()
	registry.Register(models.PlatformTelegram, tg)
	registry.Register(models.PlatformVK, vkDel)
	return chathub.NewRouterService(storageMock, registry), storageMock, tg, vkDel
}

// TestRouterDeliversCrossPlatform verifies that a Telegram sender's
// message reaches the VK partner with the partner flag set.
func TestRouterDeliversCrossPlatform(t *testing.T) {
	router, storageMock, _, vkDel := routerFixture()

	sender := &models.User{ID: "user_A", Platform: models.PlatformTelegram, PlatformID: "100"}
	partner := &models.User{ID: "user_B", Platform: models.PlatformVK, PlatformID: "200"}
	chat := &models.Chat{ID: "chat-1", User1ID: "user_A", User2ID: "user_B", Status: models.ChatActive}

	storageMock.On("ActiveChatForUser", "user_A").Return(chat, nil).Once()
	storageMock.On("GetUserByID", "user_B").Return(partner, nil).Once()
	storageMock.On("IncrementMessageCount", "chat-1").Return(nil).Once()

	outcome, err := router.Route(sender, models.TextContent("hello"))

	assert.NoError(t, err)
	assert.Equal(t, chathub.Delivered, outcome)
	require.Len(t, vkDel.Delivered["200"], 1)
	delivered := vkDel.Delivered["200"][0]
	assert.Equal(t, "hello", delivered.Text)
	assert.True(t, delivered.FromPartner, "relayed content must carry the partner flag")
	storageMock.AssertExpectations(t)
}

// TestRouterNoActiveSession verifies the outcome when the sender has no
// active chat.
func TestRouterNoActiveSession(t *testing.T) {
	router, storageMock, tg, _ := routerFixture()

	sender := &models.User{ID: "user_A", Platform: models.PlatformTelegram, PlatformID: "100"}
	storageMock.On("ActiveChatForUser", "user_A").Return(nil, nil).Once()

	outcome, err := router.Route(sender, models.TextContent("hello"))

	assert.NoError(t, err)
	assert.Equal(t, chathub.NoActiveSession, outcome)
	assert.Empty(t, tg.Delivered)
	storageMock.AssertNotCalled(t, "IncrementMessageCount")
}

// TestRouterCountsBeforeDelivery verifies the counter is bumped even
// when delivery to the partner fails.
func TestRouterCountsBeforeDelivery(t *testing.T) {
	router, storageMock, _, vkDel := routerFixture()

	sender := &models.User{ID: "user_A", Platform: models.PlatformTelegram, PlatformID: "100"}
	partner := &models.User{ID: "user_B", Platform: models.PlatformVK, PlatformID: "200"}
	chat := &models.Chat{ID: "chat-1", User1ID: "user_A", User2ID: "user_B", Status: models.ChatActive}
	vkDel.FailFor["200"] = errors.New("vk: api error 902: can't send messages")

	storageMock.On("ActiveChatForUser", "user_A").Return(chat, nil).Once()
	storageMock.On("GetUserByID", "user_B").Return(partner, nil).Once()
	storageMock.On("IncrementMessageCount", "chat-1").Return(nil).Once()

	outcome, err := router.Route(sender, models.TextContent("hello"))

	assert.NoError(t, err)
	assert.Equal(t, chathub.PartnerUnreachable, outcome)
	storageMock.AssertExpectations(t)
}

// TestRouterMediaPassesThrough verifies media content keeps its file
// reference and caption across the relay.
func TestRouterMediaPassesThrough(t *testing.T) {
	router, storageMock, tg, _ := routerFixture()

	sender := &models.User{ID: "user_B", Platform: models.PlatformVK, PlatformID: "200"}
	partner := &models.User{ID: "user_A", Platform: models.PlatformTelegram, PlatformID: "100"}
	chat := &models.Chat{ID: "chat-1", User1ID: "user_A", User2ID: "user_B", Status: models.ChatActive}

	storageMock.On("ActiveChatForUser", "user_B").Return(chat, nil).Once()
	storageMock.On("GetUserByID", "user_A").Return(partner, nil).Once()
	storageMock.On("IncrementMessageCount", "chat-1").Return(nil).Once()

	content := models.MediaContent(models.ContentPhoto, "photo200_5", "look")
	outcome, err := router.Route(sender, content)

	assert.NoError(t, err)
	assert.Equal(t, chathub.Delivered, outcome)
	require.Len(t, tg.Delivered["100"], 1)
	assert.Equal(t, models.ContentPhoto, tg.Delivered["100"][0].Kind)
	assert.Equal(t, "photo200_5", tg.Delivered["100"][0].FileRef)
	assert.Equal(t, "look", tg.Delivered["100"][0].Caption)
}
