package bootstrap

import (
	"context"
	"log"
	"time"

	"policy-compass-be/internal/config"
	"policy-compass-be/internal/controller"
	"policy-compass-be/internal/handler"
	"policy-compass-be/internal/pkg/logger"
	"policy-compass-be/internal/pkg/mailer"
	"policy-compass-be/internal/repository"
	"policy-compass-be/internal/repository/memory"
	"policy-compass-be/internal/service"
	"policy-compass-be/internal/websocket"
	"policy-compass-be/pkg/embedding"
	"policy-compass-be/pkg/llm"
	"policy-compass-be/pkg/llm/factory"
	"policy-compass-be/pkg/report"
	"policy-compass-be/pkg/tracker"

	pktNats "policy-compass-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	DocumentController   controller.IDocumentController
	DecoderController    controller.IDecoderController
	CompareController    controller.ICompareController
	ChatController       controller.IChatController
	SimulatorController  controller.ISimulatorController
	LegislatorController controller.ILegislatorController
	QuizController       controller.IQuizController
	VoiceController      controller.IVoiceController
	ExportController     controller.IExportController
	EnsembleController   controller.IEnsembleController
	SettingsController   controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	ActivityFeedHandler *handler.ActivityFeedHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	documentRepo := repository.NewDocumentRepository(db)
	chunkRepo := repository.NewChunkRepository(db)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "text-embedding-3-small")
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	}

	primaryKey := providerKey(cfg, cfg.Ai.LLMProvider)
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		primaryKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// The secondary model only serves the ensemble page; the app runs
	// fine without it.
	var secondaryProvider llm.LLMProvider
	secondaryKey := providerKey(cfg, cfg.Ai.SecondaryProvider)
	if cfg.Ai.SecondaryProvider != "" {
		secondaryProvider, err = factory.NewLLMProvider(
			cfg.Ai.SecondaryProvider,
			cfg.Ai.SecondaryModel,
			cfg.Ai.OllamaBaseURL,
			secondaryKey,
		)
		if err != nil {
			log.Printf("[WARN] Secondary LLM Provider unavailable: %v", err)
			secondaryProvider = nil
		} else {
			log.Printf("[INFO] Using Secondary LLM Provider: %s (%s)", cfg.Ai.SecondaryProvider, cfg.Ai.SecondaryModel)
		}
	}

	// Session cache, refreshed on every tracked action
	sessionTTL := time.Duration(cfg.Tracker.SessionTTL) * time.Minute
	sessionRepo := memory.NewSessionRepository(sessionTTL, 10*time.Minute)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		rdb = nil
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/activity_feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Session persistence mirror
	var trackerStore tracker.Store
	if cfg.Tracker.Store == "redis" && rdb != nil {
		trackerStore = tracker.NewRedisStore(rdb, sessionTTL)
		log.Printf("[INFO] Using Tracker Store: REDIS")
	} else {
		trackerStore, err = tracker.NewFileStore(cfg.Tracker.MirrorDir)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize tracker mirror dir: %v", err)
		}
		log.Printf("[INFO] Using Tracker Store: FILE (%s)", cfg.Tracker.MirrorDir)
	}

	reportGenerator, err := report.NewGenerator(cfg.App.ReportDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize report dir: %v", err)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Ai.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedTopic,
		documentRepo,
		chunkRepo,
		embeddingProvider,
	)

	trackerService := service.NewTrackerService(
		sessionRepo,
		trackerStore,
		documentRepo,
		chunkRepo,
		sysLogger,
		natsPub,
		wsHub,
		sessionTTL,
	)

	documentService := service.NewDocumentService(
		documentRepo,
		publisherService,
		natsPub,
		trackerService,
		sysLogger,
	)

	decoderService := service.NewDecoderService(
		documentService,
		chunkRepo,
		embeddingProvider,
		llmProvider,
		trackerService,
		primaryKey,
	)
	compareService := service.NewCompareService(documentService, llmProvider, trackerService, primaryKey)
	chatService := service.NewChatService(chunkRepo, embeddingProvider, llmProvider, trackerService, primaryKey)
	quizService := service.NewQuizService(documentService, llmProvider, trackerService, primaryKey)
	simulatorService := service.NewSimulatorService(documentService, trackerService)
	legislatorService := service.NewLegislatorService(trackerService, cfg.Keys.ProPublica)
	voiceService := service.NewVoiceService(trackerService, cfg.Keys.ElevenLabs)
	exportService := service.NewExportService(reportGenerator, emailService, natsPub, trackerService, sysLogger)
	ensembleService := service.NewEnsembleService(
		documentService,
		chunkRepo,
		embeddingProvider,
		llmProvider,
		cfg.Ai.LLMProvider,
		secondaryProvider,
		cfg.Ai.SecondaryProvider,
		trackerService,
		primaryKey,
		secondaryKey,
	)
	settingsService := service.NewSettingsService(trackerService)

	// Audit trail worker
	if natsSub != nil {
		auditService := service.NewAuditService(natsSub, wsLogger)
		go auditService.Start()
	}

	// Handler
	feedHandler := handler.NewActivityFeedHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		ActivityFeedHandler:  feedHandler,
		WebSocketHub:         wsHub,
		ConsumerService:      consumerService,
		SessionController:    controller.NewSessionController(trackerService),
		DocumentController:   controller.NewDocumentController(documentService),
		DecoderController:    controller.NewDecoderController(decoderService),
		CompareController:    controller.NewCompareController(compareService),
		ChatController:       controller.NewChatController(chatService),
		SimulatorController:  controller.NewSimulatorController(simulatorService),
		LegislatorController: controller.NewLegislatorController(legislatorService),
		QuizController:       controller.NewQuizController(quizService),
		VoiceController:      controller.NewVoiceController(voiceService),
		ExportController:     controller.NewExportController(exportService, cfg.App.ReportDir),
		EnsembleController:   controller.NewEnsembleController(ensembleService),
		SettingsController:   controller.NewSettingsController(settingsService),
	}
}

func providerKey(cfg *config.Config, providerType string) string {
	switch providerType {
	case "anthropic":
		return cfg.Keys.Anthropic
	case "ollama":
		return ""
	default:
		return cfg.Keys.OpenAI
	}
}
