package api

import (
	"net/http"

	"github.com/aldisaputra17/chatbot-backend/internal/api/handler"
	customMiddleware "github.com/aldisaputra17/chatbot-backend/internal/api/middleware"
	"github.com/aldisaputra17/chatbot-backend/internal/config"
	mongodb "github.com/aldisaputra17/chatbot-backend/internal/repository/mongo"
	"github.com/aldisaputra17/chatbot-backend/internal/repository/redis"
	"github.com/aldisaputra17/chatbot-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router. rateLimiter may be nil,
// in which case chat requests are not limited.
func NewRouter(cfg *config.Config, db *mongodb.DB, chatService *service.ChatService, rateLimiter *redis.RateLimiter) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	chatHandler := handler.NewChatHandler(chatService)

	// Liveness
	r.Get("/", handler.Root)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Chat carries the model-call cost, so only it is rate limited
		r.Group(func(r chi.Router) {
			if rateLimiter != nil {
				r.Use(customMiddleware.NewRateLimitMiddleware(rateLimiter).Limit)
			}
			r.Post("/chat", chatHandler.Chat)
		})

		r.Get("/sessions", chatHandler.ListSessions)
		r.Patch("/sessions/{sessionID}", chatHandler.UpdateSession)
		r.Get("/history/{sessionID}", chatHandler.History)
	})

	return r
}
