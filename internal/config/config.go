// Package config loads the service configuration from environment
// variables, optionally seeded from a .env file.
package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration.
type Config struct {
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"DATABASE_DSN,required"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	TelegramBotToken   string `env:"TELEGRAM_BOT_TOKEN"`
	VKGroupToken       string `env:"VK_GROUP_TOKEN"`
	VKConfirmationCode string `env:"VK_CONFIRMATION_CODE"`

	AdminPassword string `env:"ADMIN_PASSWORD"`
	JWTSecret     string `env:"JWT_SECRET,required"`

	// RequeueKeepsFilter: when true, "next" re-searches with the
	// user's stored gender preference instead of resetting to none.
	RequeueKeepsFilter bool `env:"REQUEUE_KEEPS_FILTER" envDefault:"false"`
}

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file loaded")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
