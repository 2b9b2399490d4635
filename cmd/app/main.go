package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legal-document-insight/internal/config"
	"legal-document-insight/internal/domain/ports/adapter"
	"legal-document-insight/internal/domain/ports/repository"
	aiAdapters "legal-document-insight/internal/infra/adapters/ai"
	"legal-document-insight/internal/infra/adapters/extract"
	storageAdapters "legal-document-insight/internal/infra/adapters/storage"
	pg "legal-document-insight/internal/infra/db/postgres"
	"legal-document-insight/internal/infra/logging"
	"legal-document-insight/internal/infra/metrics"
	red "legal-document-insight/internal/infra/redis"
	"legal-document-insight/internal/infra/web"
	"legal-document-insight/internal/infra/worker"
	"legal-document-insight/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, noop AI fallback)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Warn().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Repositories ----
	var docRepo repository.DocumentRepository = pg.NewDocumentRepo(pool)
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		docRepo = pg.NewDocumentRepoCacheDecorator(docRepo, redisClient)
		logger.Info().Str("addr", cfg.Redis.URL).Msg("document record cache enabled")
	}

	// ---- Storage gateway ----
	var storage adapter.StorageGateway
	switch cfg.Storage.Driver {
	case "minio":
		mg, err := storageAdapters.NewMinioGateway(&cfg.Storage)
		if err != nil {
			logger.Fatal().Err(err).Msg("minio gateway")
		}
		if err := mg.EnsureBucket(ctx); err != nil {
			logger.Fatal().Err(err).Msg("minio bucket")
		}
		storage = mg
		logger.Info().Str("endpoint", cfg.Storage.Minio.Endpoint).Str("bucket", cfg.Storage.Minio.Bucket).Msg("storage: minio")
	default:
		lg, err := storageAdapters.NewLocalGateway(cfg.Storage.Local.Dir)
		if err != nil {
			logger.Fatal().Err(err).Msg("local storage")
		}
		storage = lg
		logger.Info().Str("dir", cfg.Storage.Local.Dir).Msg("storage: local")
	}

	// ---- Insight adapter (OpenAI -> Gemini -> noop) ----
	var insight adapter.InsightAdapter
	switch {
	case cfg.AI.OpenAIKey != "":
		insight, err = aiAdapters.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.OpenAIBaseURL, cfg.AI.Model, cfg.AI.MaxInputTokens, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("openai adapter")
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("insight adapter: openai")
	case cfg.AI.GeminiKey != "":
		insight, err = aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.Model, cfg.AI.MaxOutputTokens)
		if err != nil {
			logger.Fatal().Err(err).Msg("gemini adapter")
		}
		logger.Info().Str("model", cfg.AI.Model).Msg("insight adapter: gemini")
	case cfg.Runtime.Dev:
		insight = aiAdapters.NewNoopInsightAdapter()
		logger.Warn().Msg("insight adapter: noop (no provider configured)")
	default:
		logger.Fatal().Msg("no AI provider configured: set ai.openai_key or ai.gemini_key")
	}
	insight = aiAdapters.NewLimitedInsight(insight, cfg.AI.ConcurrentLimit)

	// ---- Pipeline ----
	extractor := extract.New()
	processUC := usecase.NewProcessingUseCase(docRepo, storage, extractor, insight, logger)

	workerPool := worker.NewPool(cfg.Server.Workers, logger)
	workerPool.Start(ctx)
	dispatcher := worker.NewDispatcher(workerPool, processUC, logger)

	docUC := usecase.NewDocumentUseCase(docRepo, storage, dispatcher, logger)

	// ---- HTTP ----
	srv := web.NewServer(docUC, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	workerPool.Stop()
}
