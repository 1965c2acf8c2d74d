package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-assistant-be/internal/config"
	"ai-assistant-be/internal/controller"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/pkg/serverutils"
	"ai-assistant-be/internal/repository/unitofwork"
	"ai-assistant-be/internal/service"
	"ai-assistant-be/pkg/ai/router"
	"ai-assistant-be/pkg/llm/factory"
	pktNats "ai-assistant-be/pkg/nats"
	"ai-assistant-be/pkg/sandbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const auditTopicName = "ASSISTANT_AUDIT"

type Container struct {
	// Controllers
	DocumentController  controller.IDocumentController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	isProd := cfg.App.Environment == "production"
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, isProd)
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)

	if cfg.Assistant.APIKey == "" && isProd {
		log.Fatal("[FATAL] ASSISTANT_API_KEY must be configured in production")
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS (optional: external event mirror)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis-backed rate limiting with in-memory fallback
	chatLimiter, documentsLimiter := newRateLimiters(cfg, sysLogger)

	// 3. LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// Sandboxed file reader. A bad root makes the service unusable, so fail
	// at startup rather than per request.
	fileReader, err := sandbox.NewReader(
		cfg.Assistant.FileRoot,
		cfg.Assistant.AllowedExtensions,
		cfg.Assistant.MaxFileSizeBytes,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize file sandbox: %v", err)
	}
	log.Printf("[INFO] File sandbox root: %s", fileReader.Root())

	// 4. Services
	publisherService := service.NewPublisherService(auditTopicName, pubSub)
	consumerService := service.NewConsumerService(pubSub, auditTopicName, auditLogger)

	documentService := service.NewDocumentService(uowFactory, publisherService, natsPub, sysLogger)

	cmdRouter := router.NewRouter(
		llmProvider,
		service.NewRouterStore(documentService),
		fileReader,
		sysLogger,
		router.Config{
			Model:            cfg.Ai.Model,
			MaxMessageLength: cfg.Assistant.MaxMessageLength,
		},
	)

	assistantService := service.NewAssistantService(cmdRouter, publisherService, natsPub, sysLogger)

	// 5. Controllers
	documentMiddlewares := middlewareChain(cfg, serverutils.RateLimitMiddleware(documentsLimiter, "documents", sysLogger))
	chatMiddlewares := middlewareChain(cfg, serverutils.RateLimitMiddleware(chatLimiter, "chat", sysLogger))

	return &Container{
		DocumentController:  controller.NewDocumentController(documentService, documentMiddlewares...),
		AssistantController: controller.NewAssistantController(assistantService, cfg.Assistant.MaxHistoryLength, chatMiddlewares...),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}

// middlewareChain builds the per-group middleware list. API key auth is
// skipped only when no key is configured, which non-production setups allow.
func middlewareChain(cfg *config.Config, extra ...fiber.Handler) []fiber.Handler {
	var chain []fiber.Handler
	if cfg.Assistant.APIKey != "" {
		chain = append(chain, serverutils.ApiKeyMiddleware(cfg.Assistant.APIKey))
	}
	return append(chain, extra...)
}

func newRateLimiters(cfg *config.Config, sysLogger logger.ILogger) (serverutils.RateLimiter, serverutils.RateLimiter) {
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory rate limiting", err)
		return serverutils.NewMemoryRateLimiter(cfg.RateLimit.ChatPerMinute, time.Minute),
			serverutils.NewMemoryRateLimiter(cfg.RateLimit.DocumentsPerMinute, time.Minute)
	}
	return serverutils.NewRedisRateLimiter(rdb, cfg.RateLimit.ChatPerMinute, time.Minute),
		serverutils.NewRedisRateLimiter(rdb, cfg.RateLimit.DocumentsPerMinute, time.Minute)
}
