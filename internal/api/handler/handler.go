// Package handler exposes the HTTP surface: platform webhooks, the
// admin REST API behind JWT auth, and the live event feed.
package handler

import (
	"anontalk/backend/internal/storage"
	"anontalk/backend/internal/telegram"
	"anontalk/backend/internal/vk"
)

// Handler bundles the dependencies of the HTTP layer.
type Handler struct {
	Store       *storage.Service
	TelegramBot *telegram.BotService
	VKBot       *vk.BotService

	jwtSecret     []byte
	adminPassword string
}

func NewHandler(store *storage.Service, tg *telegram.BotService, vkBot *vk.BotService, jwtSecret, adminPassword string) *Handler {
	return &Handler{
		Store:         store,
		TelegramBot:   tg,
		VKBot:         vkBot,
		jwtSecret:     []byte(jwtSecret),
		adminPassword: adminPassword,
	}
}
