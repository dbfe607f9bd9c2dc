package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aldisaputra17/chatbot-backend/internal/api"
	"github.com/aldisaputra17/chatbot-backend/internal/attachment"
	"github.com/aldisaputra17/chatbot-backend/internal/config"
	"github.com/aldisaputra17/chatbot-backend/internal/llm/gemini"
	mongodb "github.com/aldisaputra17/chatbot-backend/internal/repository/mongo"
	"github.com/aldisaputra17/chatbot-backend/internal/repository/redis"
	"github.com/aldisaputra17/chatbot-backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting chatbot backend")

	// Initialize the document store
	db, err := mongodb.NewDB(context.Background(), cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer db.Close(context.Background())

	// One Gemini client for the whole process
	provider, err := gemini.NewProvider(context.Background(), cfg.LLM.Gemini)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Gemini provider")
	}
	defer provider.Close()

	// Optional Redis-backed rate limiting on the chat endpoint
	var rateLimiter *redis.RateLimiter
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		rateLimiter = redis.NewRateLimiter(
			redisClient,
			cfg.Redis.RateLimit.RequestsPerMinute,
			cfg.Redis.RateLimit.Burst,
		)
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Rate limiting enabled")
	}

	// Wire repositories and the chat service
	messageRepo := mongodb.NewMessageRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	chatService := service.NewChatService(messageRepo, sessionRepo, provider, attachment.NewNormalizer())

	router := api.NewRouter(cfg, db, chatService, rateLimiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
