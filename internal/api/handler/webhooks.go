package handler

import (
	"net/http"

	"anontalk/backend/internal/vk"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramWebhook receives Bot API updates. Always responds 200 so
// Telegram does not redeliver; processing failures are logged inside.
func (h *Handler) TelegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad update payload"})
		return
	}
	h.TelegramBot.HandleUpdate(&update)
	c.Status(http.StatusOK)
}

// VKWebhook receives Callback API events. VK expects a plain-text body:
// the confirmation code for a confirmation event, "ok" otherwise.
func (h *Handler) VKWebhook(c *gin.Context) {
	var ev vk.CallbackEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.String(http.StatusBadRequest, "bad event payload")
		return
	}
	c.String(http.StatusOK, h.VKBot.HandleEvent(&ev))
}
