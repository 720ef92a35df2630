// Package di wires the application's collaborators together once at process
// start. Every service is constructed here and passed by reference, so tests
// can substitute doubles for any of them.
package di

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"sports-lore-chatbot/backend/ai"
	"sports-lore-chatbot/backend/internal/clips"
	"sports-lore-chatbot/backend/internal/news"
	"sports-lore-chatbot/backend/internal/repository"
	"sports-lore-chatbot/backend/internal/service"
	"sports-lore-chatbot/backend/pkg/cache"
	"sports-lore-chatbot/backend/pkg/config"
	"sports-lore-chatbot/backend/pkg/logger"
	"sports-lore-chatbot/backend/pkg/secrets"
)

// Container holds all the dependencies for the application
type Container struct {
	DB             *gorm.DB
	Logger         *logger.Logger
	Corpus         *clips.Corpus
	HistoryService *service.HistoryService
	NewsClient     *news.Client
	LLMClient      *ai.Client
	ChatService    *service.ChatService
}

// New creates a new dependency injection container
func New(db *gorm.DB, log *logger.Logger) (*Container, error) {
	cfg := config.Get()

	// Provider API key: Vault when enabled, plain env lookup when Vault is
	// misconfigured or disabled
	var secretManager secrets.Manager
	if vaultManager, err := secrets.NewVaultManager(log); err != nil {
		log.Warn("vault unavailable, using environment secrets", "error", err.Error())
		secretManager = secrets.EnvManager{}
	} else {
		secretManager = vaultManager
	}
	apiKey := secretManager.GetSecretWithDefault(context.Background(), "OPENROUTER_API_KEY", cfg.LLM.APIKey)

	store := newCacheStore(cfg, log)

	corpus := clips.Default()

	repo := repository.NewGormMessageRepository(db)
	historyService := service.NewHistoryService(repo, log)

	newsClient := news.NewClient(
		cfg.Sports.BaseURL,
		&http.Client{Timeout: cfg.Sports.Timeout},
		store,
		cfg.Cache.TTL,
		log.WithComponent("news"),
	)

	llmClient := ai.NewClient(
		cfg.LLM.BaseURL,
		apiKey,
		cfg.LLM.Model,
		&http.Client{Timeout: cfg.LLM.Timeout},
	)

	chatService := service.NewChatService(historyService, newsClient, llmClient, corpus, log.WithComponent("chat"))

	return &Container{
		DB:             db,
		Logger:         log,
		Corpus:         corpus,
		HistoryService: historyService,
		NewsClient:     newsClient,
		LLMClient:      llmClient,
		ChatService:    chatService,
	}, nil
}

// newCacheStore prefers redis when configured and reachable, otherwise the
// in-process cache.
func newCacheStore(cfg *config.Config, log *logger.Logger) cache.Store {
	if cfg.Redis.Enabled {
		redisStore := cache.NewRedis(cfg.Redis.Addr)
		if err := redisStore.Ping(context.Background()); err == nil {
			log.Info("using redis news cache", "addr", cfg.Redis.Addr)
			return redisStore
		}
		log.Warn("redis unreachable, falling back to in-memory cache", "addr", cfg.Redis.Addr)
	}
	return cache.NewMemory(cfg.Cache.PurgeWindow)
}
