package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/api"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/config"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/handlers"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/ratelimit"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/store"
	"github.com/Selvan2806/tamilselvan-portfolio/internal/upstream"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Initialize the submission store: PostgreSQL when configured, SQLite
	// otherwise (development default).
	var dataStore store.DataStore
	if cfg.DatabaseURL != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("postgres connection failed")
		}
		dataStore = pgStore
		logger.Info().Msg("connected to PostgreSQL")
	} else {
		sqliteStore, err := store.NewSQLiteStore(ctx, cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("sqlite initialization failed")
		}
		dataStore = sqliteStore
		logger.Info().Msg("using SQLite store")
	}
	defer dataStore.Close()

	// Rate-limit record stores: shared Redis when configured so multiple
	// instances count against one window, in-process maps otherwise.
	limitStore := func(name string) ratelimit.Store {
		return ratelimit.NewMemoryStore()
	}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()
		logger.Info().Msg("connected to Redis")

		limitStore = func(name string) ratelimit.Store {
			return ratelimit.NewRedisStore(redisClient, "ratelimit:"+name)
		}
	}

	// AI gateway client
	ai := upstream.New(cfg.GatewayURL, cfg.GatewayKey, cfg.ChatModel,
		upstream.WithRealtime(cfg.RealtimeURL, cfg.RealtimeKey, cfg.RealtimeModel, cfg.RealtimeVoice))

	if cfg.GatewayKey == "" {
		logger.Warn().Msg("AI_GATEWAY_KEY is not set; chat requests will fail")
	}

	// Create router
	h := handlers.NewHandler(dataStore, ai, cfg, logger)
	router := api.NewRouter(logger, cfg, h, limitStore)

	// Create server. The write timeout must outlive a full streamed chat
	// response, not just a single write.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting portfolio API server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}
