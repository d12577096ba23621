package api

import (
	"net/http"

	"github.com/evansarr33/sav-simulateur/internal/api/handler"
	customMiddleware "github.com/evansarr33/sav-simulateur/internal/api/middleware"
	"github.com/evansarr33/sav-simulateur/internal/config"
	"github.com/evansarr33/sav-simulateur/internal/identity"
	"github.com/evansarr33/sav-simulateur/internal/llm"
	"github.com/evansarr33/sav-simulateur/internal/llm/gemini"
	"github.com/evansarr33/sav-simulateur/internal/llm/openai"
	"github.com/evansarr33/sav-simulateur/internal/llm/openrouter"
	"github.com/evansarr33/sav-simulateur/internal/policy"
	"github.com/evansarr33/sav-simulateur/internal/ratelimit"
	"github.com/evansarr33/sav-simulateur/internal/repository/postgres"
	"github.com/evansarr33/sav-simulateur/internal/repository/redis"
	"github.com/evansarr33/sav-simulateur/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// CORS; preflight OPTIONS gets an empty 204
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Identity resolution
	var resolver identity.Resolver
	if cfg.Auth.Mode == "remote" {
		resolver = identity.NewProviderResolver(cfg.Auth.ProviderURL, cfg.Auth.ProviderAPIKey, cfg.Auth.ProviderTimeout)
	} else {
		resolver = identity.NewJWTResolver(cfg.Auth.JWTSecret)
	}

	// Repositories
	sessionRepo := postgres.NewSessionRepository(db.Pool)
	scenarioRepo := postgres.NewScenarioRepository(db.Pool)
	actionRepo := postgres.NewActionRepository(db.Pool)
	scoreRepo := postgres.NewScoreRepository(db.Pool)
	messageRepo := postgres.NewMessageRepository(db.Pool)
	profileRepo := postgres.NewProfileRepository(db.Pool)
	statsRepo := postgres.NewStatsRepository(db.Pool)

	// Rate limiting: one limiter per endpoint, one shared store
	var limitStore ratelimit.Store
	if redisClient != nil {
		limitStore = redis.NewRateLimitStore(redisClient)
	} else {
		limitStore = ratelimit.NewMemoryStore()
	}
	actionLimiter := ratelimit.New(limitStore, cfg.RateLimit.Action.Limit, cfg.RateLimit.Action.Window)
	scoreLimiter := ratelimit.New(limitStore, cfg.RateLimit.Score.Limit, cfg.RateLimit.Score.Window)
	chatLimiter := ratelimit.New(limitStore, cfg.RateLimit.Chat.Limit, cfg.RateLimit.Chat.Window)

	// Completion providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing completion providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.OpenRouter.APIKey != "" {
		llmRouter.RegisterProvider(openrouter.NewProvider(cfg.LLM.OpenRouter.APIKey, cfg.LLM.OpenRouter.Model))
	}
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	}

	// Policy evaluator with the named defaults
	evaluator := policy.NewEvaluator(policy.Defaults{
		DiscountPercent: cfg.Training.DefaultDiscountPercent,
		BasketCents:     cfg.Training.BasketCents,
	})

	// Services
	sessionService := service.NewSessionService(sessionRepo, messageRepo)
	actionService := service.NewActionService(sessionRepo, scenarioRepo, actionRepo, evaluator)
	scoreService := service.NewScoreService(sessionRepo, scoreRepo)
	chatService := service.NewChatService(sessionRepo, scenarioRepo, messageRepo, llmRouter, service.ChatOptions{
		HistoryLimit: cfg.Training.HistoryLimit,
		MaxTokens:    cfg.LLM.MaxTokens,
		Temperature:  cfg.LLM.Temperature,
		Timeout:      cfg.LLM.Timeout,
	})
	adminService := service.NewAdminService(profileRepo, sessionRepo, statsRepo, cfg.Training.RecentSessions)

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessionService)
	actionHandler := handler.NewActionHandler(actionService)
	scoreHandler := handler.NewScoreHandler(scoreService)
	chatHandler := handler.NewChatHandler(chatService)
	adminHandler := handler.NewAdminHandler(adminService)

	authMiddleware := customMiddleware.NewAuthMiddleware(resolver)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/sessions", sessionHandler.Start)

			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/messages", sessionHandler.History)

				r.With(customMiddleware.RateLimit(actionLimiter, "action")).
					Post("/actions", actionHandler.Submit)
				r.With(customMiddleware.RateLimit(scoreLimiter, "score")).
					Post("/score", scoreHandler.ScoreAndClose)
				r.With(customMiddleware.RateLimit(chatLimiter, "chat")).
					Post("/chat", chatHandler.Turn)
			})

			r.Get("/admin/summary", adminHandler.Summary)
		})
	})

	return r
}
