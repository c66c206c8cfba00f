package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Storage
	DatabaseURL string // PostgreSQL; SQLite is used when empty
	SQLitePath  string
	RedisURL    string // optional shared rate-limit store

	// AI gateway (chat completions)
	GatewayURL string
	GatewayKey string
	ChatModel  string

	// Realtime voice sessions
	RealtimeURL   string
	RealtimeKey   string
	RealtimeModel string
	RealtimeVoice string

	// Admin API
	AdminTokenHash string // bcrypt hash of the admin bearer token

	// Rate limiting
	ContactRateMax     int
	ContactRateWindow  time.Duration
	ChatRateMax        int
	ChatRateWindow     time.Duration
	RealtimeRateMax    int
	RealtimeRateWindow time.Duration

	// Anti-automation
	MinFormTime time.Duration // minimum elapsed time between page load and submit
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		RedisURL:    os.Getenv("REDIS_URL"),

		GatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
		GatewayKey: os.Getenv("AI_GATEWAY_KEY"),
		ChatModel:  getEnv("AI_CHAT_MODEL", "google/gemini-2.5-flash"),

		RealtimeURL:   getEnv("REALTIME_URL", "https://api.openai.com/v1/realtime/sessions"),
		RealtimeKey:   os.Getenv("OPENAI_API_KEY"),
		RealtimeModel: getEnv("REALTIME_MODEL", "gpt-4o-realtime-preview-2024-12-17"),
		RealtimeVoice: getEnv("REALTIME_VOICE", "alloy"),

		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),

		ContactRateMax:     getEnvInt("CONTACT_RATE_MAX", 5),
		ContactRateWindow:  getEnvDuration("CONTACT_RATE_WINDOW", time.Hour),
		ChatRateMax:        getEnvInt("CHAT_RATE_MAX", 20),
		ChatRateWindow:     getEnvDuration("CHAT_RATE_WINDOW", time.Minute),
		RealtimeRateMax:    getEnvInt("REALTIME_RATE_MAX", 10),
		RealtimeRateWindow: getEnvDuration("REALTIME_RATE_WINDOW", time.Minute),

		MinFormTime: getEnvDuration("MIN_FORM_TIME", 3*time.Second),
	}

	// In production, require a real database
	if cfg.Env == "production" {
		if cfg.DatabaseURL == "" {
			panic("DATABASE_URL is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
