package bootstrap

import (
	"context"
	"log"
	"time"

	"breathcoach-be/internal/config"
	"breathcoach-be/internal/controller"
	"breathcoach-be/internal/pkg/logger"
	"breathcoach-be/internal/repository/memory"
	"breathcoach-be/internal/service"
	"breathcoach-be/pkg/audiocache"
	"breathcoach-be/pkg/catalog"
	"breathcoach-be/pkg/coach"
	"breathcoach-be/pkg/llm/factory"
	"breathcoach-be/pkg/tts"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CoachController controller.ICoachController

	// Background Services (Exposed for main.go to run)
	WarmupService service.IWarmupService

	Logger logger.ILogger
}

// NewContainer wires the coaching engine. db may be nil; the phrase
// catalog then falls back to the compiled-in banks.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Phrase library: catalog DB when configured, compiled-in otherwise
	library := coach.DefaultLibrary()
	if db != nil {
		catalogRepo := catalog.NewCatalogRepository(db)
		records, err := catalogRepo.ListAll(context.Background())
		if err != nil {
			log.Printf("[WARN] Failed to load phrase catalog, using defaults: %v", err)
		} else if len(records) > 0 {
			loaded, err := catalog.BuildLibrary(records)
			if err != nil {
				log.Printf("[WARN] Phrase catalog incomplete, using defaults: %v", err)
			} else {
				library = loaded
				log.Printf("[INFO] Loaded %d phrase templates from catalog", len(records))
			}
		}
	}

	// 4. LLM Provider for AI phrase variants (optional)
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider == nil {
		log.Printf("[INFO] AI phrase variants disabled, templates only")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 5. Audio artifact store
	var artifactStore audiocache.ArtifactStore
	if cfg.Audio.Store == "redis" {
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
		}
		artifactStore = audiocache.NewRedisStore(rdb, time.Duration(cfg.Audio.RetentionHours)*time.Hour)
	} else {
		fileStore, err := audiocache.NewFileStore(cfg.Audio.Dir)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize audio store: %v", err)
		}
		artifactStore = fileStore
	}

	// 6. Synthesis + cache
	synthesizer := tts.NewOpenAISynthesizer(cfg.Keys.OpenAI, cfg.Audio.TTSModel, cfg.Audio.TTSVoice)
	if cfg.Keys.OpenAI == "" {
		log.Printf("[WARN] OPENAI_API_KEY is empty, synthesis will fail and check-ins degrade to text-only")
	}
	audioCache := audiocache.New(
		artifactStore,
		synthesizer,
		time.Duration(cfg.Coaching.SynthesisTimeoutSeconds)*time.Second,
		time.Duration(cfg.Audio.RetentionHours)*time.Hour,
		sysLogger,
	)

	// 7. Domain services
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Coaching.SessionIdleMinutes) * time.Minute)
	selector := coach.NewSelector(library, llmProvider, coach.DefaultValidationRules())

	coachingService := service.NewCoachingService(
		sessionRepo,
		selector,
		audioCache,
		coach.DefaultPolicyConfig(),
		pubSub,
		cfg.Coaching.PhaseEventTopic,
		sysLogger,
	)
	warmupService := service.NewWarmupService(pubSub, cfg.Coaching.PhaseEventTopic, library, audioCache, sysLogger)

	// 8. Controllers
	coachController := controller.NewCoachController(coachingService, audioCache)

	return &Container{
		CoachController: coachController,
		WarmupService:   warmupService,
		Logger:          sysLogger,
	}
}
