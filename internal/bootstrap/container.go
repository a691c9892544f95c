package bootstrap

import (
	"context"
	"log"
	"time"

	"docucortex-be/internal/config"
	"docucortex-be/internal/controller"
	"docucortex-be/internal/pkg/logger"
	"docucortex-be/internal/repository/implementation"
	"docucortex-be/internal/service"
	"docucortex-be/internal/websocket"
	"docucortex-be/pkg/appcmd"
	"docucortex-be/pkg/embedding"
	"docucortex-be/pkg/enrich"
	"docucortex-be/pkg/events"
	"docucortex-be/pkg/gateway"
	"docucortex-be/pkg/gateway/huggingface"
	"docucortex-be/pkg/gateway/ollama"
	"docucortex-be/pkg/gateway/openrouter"
	"docucortex-be/pkg/intent"
	"docucortex-be/pkg/nlp"
	"docucortex-be/pkg/session"
	"docucortex-be/pkg/websearch"

	pktNats "docucortex-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	queryProcessedTopic = "QUERY_PROCESSED"
	sweepInterval       = 30 * time.Minute
)

type Container struct {
	// Controllers
	AIController controller.IAIController

	// Background services (exposed for main.go to run)
	StatsService service.IStatsService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Runtime-reloadable orchestration settings
	Runtime *config.Runtime

	// Owned state with background sweeps
	SessionManager *session.Manager
	IntentMemory   *intent.Memory

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	conversationRepo := implementation.NewConversationRepository(db)
	documentRepo := implementation.NewDocumentRepository(db)
	embeddingRepo := implementation.NewDocumentEmbeddingRepository(db)
	equipmentRepo := implementation.NewEquipmentRepository(db)

	// 4. Retrieval stack
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaEmbeddingModel)
	documentStore := service.NewVectorDocumentStore(embeddingProvider, embeddingRepo, documentRepo, cfg.Ai.SearchThreshold)
	enricher := enrich.NewEnricher(documentStore, cfg.Ai.SearchLimit, sysLogger)

	// 5. Classification
	intentMemory := intent.NewMemory(intent.DefaultMemoryTTL)
	classifier := intent.NewClassifier(nlp.NewExtractor(), intentMemory, sysLogger)

	// 6. Rolling history
	sessionManager := session.NewManager(session.DefaultHistoryCap, session.DefaultTTL)

	// 7. Generation backends and fallback
	gateways := map[string]gateway.Gateway{
		"ollama":      ollama.New(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel),
		"openrouter":  openrouter.New(cfg.Keys.OpenRouter, cfg.Ai.OpenRouterModel),
		"huggingface": huggingface.New(cfg.Keys.HuggingFace, cfg.Ai.HuggingFaceModel),
	}
	dispatcher := gateway.NewDispatcher(gateway.NewDefaultResponder(gateway.DefaultConfidence()), sysLogger)

	runtime := config.NewRuntime(cfg)

	// 8. Shortcut collaborators
	searcher := websearch.NewDuckDuckGoClient()
	commander := appcmd.NewCommander(equipmentInventory{repo: equipmentRepo})

	// 9. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	wsLogger := logger.NewIsolatedLogger("logs/websocket.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 10. Services
	publisherService := service.NewPublisherService(pubSub, queryProcessedTopic)
	statsService := service.NewStatsService(pubSub, queryProcessedTopic, sysLogger)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	if eventPublisher != nil {
		dispatcher.SetOnRevoke(func(name string, cause error) {
			evt := events.NewProviderRevoked(name, cause.Error())
			if err := eventPublisher.Publish(context.Background(), evt); err != nil {
				sysLogger.Warn("Gateway", "Failed to publish provider revocation event", map[string]interface{}{
					"provider": name,
					"error":    err.Error(),
				})
			}
		})
	}

	aiService := service.NewAIService(
		classifier,
		sessionManager,
		enricher,
		dispatcher,
		gateways,
		runtime,
		searcher,
		commander,
		conversationRepo,
		publisherService,
		statsService,
		eventPublisher,
		wsHub,
		sysLogger,
	)

	return &Container{
		AIController:   controller.NewAIController(aiService, runtime),
		StatsService:   statsService,
		WebSocketHub:   wsHub,
		Runtime:        runtime,
		SessionManager: sessionManager,
		IntentMemory:   intentMemory,
		Logger:         sysLogger,
	}
}

// RunBackground starts the stats consumer and the eviction sweeps. All of
// them stop when ctx is cancelled.
func (c *Container) RunBackground(ctx context.Context) error {
	if err := c.StatsService.Consume(ctx); err != nil {
		return err
	}
	go c.SessionManager.Run(ctx, sweepInterval)
	go c.IntentMemory.Run(ctx, sweepInterval)
	return nil
}
