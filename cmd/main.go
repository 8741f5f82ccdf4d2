package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"anontalk/backend/internal/api/handler"
	"anontalk/backend/internal/chathub"
	"anontalk/backend/internal/config"
	"anontalk/backend/internal/identity"
	"anontalk/backend/internal/models"
	"anontalk/backend/internal/storage"
	"anontalk/backend/internal/telegram"
	"anontalk/backend/internal/vk"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*storage.Service, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}

	s := storage.NewService(db, rdb)
	if err := s.AutoMigrate(); err != nil {
		return nil, err
	}
	log.Println("Database and Redis connections established, migrations complete.")
	return s, nil
}

func main() {
	log.Println("Starting AnonTalk backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := setupDependencies(cfg)
	if err != nil {
		log.Fatalf("Failed to set up dependencies: %v", err)
	}

	registry := chathub.NewDeliveryRegistry()
	lifecycle := chathub.NewLifecycleService(store, registry, cfg.RequeueKeepsFilter)
	resolver := identity.NewResolver(store)

	var tgBot *telegram.BotService
	if cfg.TelegramBotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Fatalf("Failed to start Telegram bot: %v", err)
		}
		out := telegram.NewDeliverer(api)
		registry.Register(models.PlatformTelegram, out)
		tgBot = telegram.NewBotService(resolver, lifecycle, out)
		log.Printf("Telegram bot authorized as @%s", api.Self.UserName)
	}

	var vkBot *vk.BotService
	if cfg.VKGroupToken != "" {
		client := vk.NewClient(cfg.VKGroupToken)
		registry.Register(models.PlatformVK, vk.NewDeliverer(client))
		vkBot = vk.NewBotService(resolver, lifecycle, client, cfg.VKConfirmationCode)
		log.Println("VK bot configured")
	}

	if tgBot == nil && vkBot == nil {
		log.Fatal("No platform tokens configured; set TELEGRAM_BOT_TOKEN or VK_GROUP_TOKEN")
	}

	r := gin.Default()
	h := handler.NewHandler(store, tgBot, vkBot, cfg.JWTSecret, cfg.AdminPassword)

	if tgBot != nil {
		r.POST("/webhook/telegram", h.TelegramWebhook)
	}
	if vkBot != nil {
		r.POST("/webhook/vk", h.VKWebhook)
	}

	r.POST("/admin/login", h.Login)
	admin := r.Group("/admin", h.AuthRequired())
	{
		admin.GET("/stats", h.GetStats)
		admin.GET("/chats", h.ListChats)
		admin.GET("/complaints", h.ListComplaints)
		admin.POST("/complaints/:id/resolve", h.ResolveComplaint)
		admin.POST("/users/:id/block", h.BlockUser)
	}
	r.GET("/admin/events", h.ServeEventFeed)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
