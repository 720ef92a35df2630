package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"sports-lore-chatbot/backend/internal/api"
	"sports-lore-chatbot/backend/internal/ws"
	"sports-lore-chatbot/backend/pkg/config"
	"sports-lore-chatbot/backend/pkg/di"
	"sports-lore-chatbot/backend/pkg/errors"
	"sports-lore-chatbot/backend/pkg/logger"
	"sports-lore-chatbot/backend/pkg/middleware"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
	Config    *config.Config
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	cfg := config.Get()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Logging first so every request is captured, then error formatting and
	// panic recovery with structured logging
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())

	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(cfg.Security.RateLimit)
	limiterOpts.Burst = cfg.Security.RateLimitBurst
	rateLimiter := middleware.NewRateLimiter(container.Logger, limiterOpts)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
		Config:    cfg,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Config.Security.AllowedOrigins))

	chatController := api.NewChatController(
		r.Container.ChatService,
		r.Container.HistoryService,
		r.Container.NewsClient,
		r.Logger,
	)
	onboardingController := api.NewOnboardingController(r.Container.NewsClient)
	wsHandler := ws.NewHandler(r.Container.ChatService, r.Logger)

	chatController.RegisterRoutes(r.Engine)
	onboardingController.RegisterRoutes(r.Engine)

	r.Engine.GET("/ws/chat", wsHandler.ServeChat)
	r.Engine.GET("/health", r.healthCheckHandler())
}

// healthCheckHandler returns a simple health check handler
func (r *Router) healthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ok"
		code := 200

		if sqlDB, err := r.Container.DB.DB(); err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			code = 503
		}

		c.JSON(code, gin.H{
			"status":  status,
			"service": "sports-lore-chatbot",
			"time":    time.Now().Format(time.RFC3339),
		})
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if _, ok := allowed[origin]; ok {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization, Cache-Control")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
