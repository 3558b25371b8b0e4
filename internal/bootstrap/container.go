package bootstrap

import (
	"log"
	"time"

	"equipment-chatbot-be/internal/config"
	"equipment-chatbot-be/internal/controller"
	"equipment-chatbot-be/internal/pkg/logger"
	"equipment-chatbot-be/internal/repository/implementation"
	"equipment-chatbot-be/internal/service"
	"equipment-chatbot-be/pkg/agent"
	"equipment-chatbot-be/pkg/cache"
	"equipment-chatbot-be/pkg/embedding"
	"equipment-chatbot-be/pkg/llm/factory"
	pktNats "equipment-chatbot-be/pkg/nats"
	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"
	"equipment-chatbot-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	HealthController    controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Infrastructure exposed for shutdown
	EventPublisher *pktNats.Publisher
	SysLogger      logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Retrieval internals log to their own rotated file so fusion
	// diagnostics do not drown the main application log.
	retrievalLogger := log.New(&lumberjack.Logger{
		Filename:   cfg.App.RetrievalLogPath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}, "", log.LstdFlags)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS audit bus is optional infrastructure. A publish failure or a
	// missing broker never blocks answering a turn.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 3. Cache store. Redis primary with an in-process fallback so a cache
	// outage degrades to cold retrievals and stateless sessions.
	redisStore := cache.NewRedisStoreFromURL(cfg.App.RedisURL)
	memoryStore := cache.NewMemoryStore(time.Duration(cfg.Retrieval.CacheTTLSeconds) * time.Second)
	store := cache.NewFallbackStore(redisStore, memoryStore, func(err error) {
		sysLogger.Warn("CACHE", "Redis unavailable, falling back to memory store", map[string]interface{}{
			"error": err.Error(),
		})
	})

	// 4. Search backends
	keywordIndex := keyword.NewElasticIndex(cfg.Search.ElasticURL, cfg.Search.ElasticIndex)
	embeddingRepo := implementation.NewKnowledgeEmbeddingRepository(db)
	vectorIndex := vector.NewPgVectorIndex(embeddingRepo, db)

	// 5. AI Providers
	embeddingProvider := embedding.NewOllamaProvider(
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaEmbedModel,
	)
	log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)

	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 6. Domain components
	retriever := retrieval.NewRetriever(
		keywordIndex,
		vectorIndex,
		embeddingProvider,
		store,
		retrieval.Config{
			Alpha:          cfg.Retrieval.Alpha,
			TopK:           cfg.Retrieval.TopK,
			CacheTTL:       time.Duration(cfg.Retrieval.CacheTTLSeconds) * time.Second,
			KeywordTimeout: time.Duration(cfg.Retrieval.KeywordTimeoutMs) * time.Millisecond,
			VectorTimeout:  time.Duration(cfg.Retrieval.VectorTimeoutMs) * time.Millisecond,
		},
		retrievalLogger,
	)

	sessions := session.NewManager(store, session.Config{
		MaxHistory: cfg.Session.MaxHistory,
		TTL:        time.Duration(cfg.Session.TTLHours) * time.Hour,
	}, log.Default())

	router := agent.NewRouter()
	agents := agent.NewRegistry(llmProvider, agent.DefaultConfig(), log.Default())

	// 7. Services
	publisherService := service.NewPublisherService(cfg.App.IndexTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IndexTopic,
		embeddingRepo,
		keywordIndex,
		embeddingProvider,
	)

	chatService := service.NewChatService(retriever, router, agents, sessions, natsPub, sysLogger)
	knowledgeService := service.NewKnowledgeService(publisherService, embeddingRepo, keywordIndex, sysLogger)

	// 8. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		HealthController:    controller.NewHealthController(store, keywordIndex, vectorIndex),
		ConsumerService:     consumerService,
		EventPublisher:      natsPub,
		SysLogger:           sysLogger,
	}
}
