package main

import (
	"context"

	"github.com/sandevgo/sorcerer/internal/config"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/internal/providers/chart"
	"github.com/sandevgo/sorcerer/internal/providers/llm"
	"github.com/sandevgo/sorcerer/internal/providers/rag"
	"github.com/sandevgo/sorcerer/internal/service/cache"
	"github.com/sandevgo/sorcerer/internal/service/domain"
	"github.com/sandevgo/sorcerer/internal/service/knowledge"
	"github.com/sandevgo/sorcerer/internal/service/memory"
	"github.com/sandevgo/sorcerer/internal/service/retrieval"
	"github.com/sandevgo/sorcerer/internal/storage/badger"
	"github.com/sandevgo/sorcerer/internal/storage/sqlite"
	"github.com/sandevgo/sorcerer/internal/transport/http"
	"github.com/sandevgo/sorcerer/internal/transport/telegram"
	"github.com/sandevgo/sorcerer/pkg/log"
	"github.com/sandevgo/sorcerer/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := config.LoadEnv(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)
	cacheCfg := config.NewCacheConfig(ctx, appCfg)
	chartCfg := config.NewChartConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	knowledgeRepo := sqlite.NewKnowledgeRepo(db)
	turnRepo := sqlite.NewTurnRepo(db)
	tarotLog := sqlite.NewTarotLogRepo(db)

	storeCfg := badger.DefaultConfig(cacheCfg.Path)
	storeCfg.TTL = cacheCfg.TTL
	cacheStore, err := badger.Open(ctx, storeCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open cache")
	}
	services = append(services, srv.NewCleanup(cacheStore.Close))

	// 3. LLM
	gen, err := newGenerator(ctx, appCfg, llmCfg, llm.NewProvider)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}
	summaryGen, err := newGenerator(ctx, appCfg, llmCfg, llm.NewSummaryProvider)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize summary provider")
	}

	// 4. Retrieval
	retriever, embedderSvc := initRetrieval(ctx, appCfg, ragCfg, sqlite.NewVectorIndex(db))
	if embedderSvc != nil {
		services = append(services, embedderSvc)
	}

	// 5. Domain
	deps := domain.NewDeps(appCfg)
	deps.Gen = gen
	deps.Knowledge = knowledge.NewLookup(knowledgeRepo, cacheCfg.KnowledgeLRUSize)
	deps.Retriever = retriever
	deps.Cache = cache.New(cacheStore)
	deps.Memory = memory.NewMemory(appCfg, turnRepo, memory.NewSummarizer(summaryGen))
	deps.TarotLog = tarotLog

	if c := chart.NewClient(chartCfg, appCfg.CallTimeout); c != nil {
		deps.Charts = c
	} else {
		logger.Warn().Msg("CHART_SERVICE_URL is empty, horoscope requests will get the unavailable reply")
	}

	router := domain.NewRouter(deps)

	// 6. Transports
	transports, err := initTransports(ctx, appCfg, router)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

type providerFactory func(context.Context, *config.LLMConfig) (core.LLMProvider, error)

func newGenerator(ctx context.Context, appCfg *config.AppConfig, llmCfg *config.LLMConfig, factory providerFactory) (*llm.Gateway, error) {
	provider, err := factory(ctx, llmCfg)
	if err != nil {
		return nil, err
	}
	return llm.NewGateway(provider, appCfg.CallTimeout, llmCfg.MaxRetries), nil
}

// initRetrieval falls back to a no-op retriever when no embedding endpoint is configured.
func initRetrieval(ctx context.Context, appCfg *config.AppConfig, ragCfg *config.RAGConfig, index core.VectorIndex) (core.Retriever, srv.Service) {
	logger := log.FromCtx(ctx)
	if !ragCfg.Enabled() {
		logger.Warn().Msg("no embedding endpoint configured, retrieval disabled")
		return retrieval.Disabled{}, nil
	}

	model, err := rag.NewEmbeddingModel(ragCfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to initialize embedding model, retrieval disabled")
		return retrieval.Disabled{}, nil
	}
	embedder := rag.NewEmbedder(model).WithTimeout(appCfg.CallTimeout)
	return retrieval.NewRetriever(ragCfg, embedder, index), srv.NewCleanup(embedder.Shutdown)
}

func initTransports(ctx context.Context, cfg *config.AppConfig, router *domain.Router) ([]srv.Service, error) {
	services := []srv.Service{http.NewServer(ctx, cfg, router)}

	// Telegram Bot
	if cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}
