package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/paymatch/paymatch/internal/adapter/http"
	"github.com/paymatch/paymatch/internal/adapter/gateway/billing"
	"github.com/paymatch/paymatch/internal/adapter/http/handler"
	postgresRepo "github.com/paymatch/paymatch/internal/adapter/repository/postgres"
	redisRepo "github.com/paymatch/paymatch/internal/adapter/repository/redis"
	"github.com/paymatch/paymatch/internal/infrastructure/auth"
	"github.com/paymatch/paymatch/internal/infrastructure/config"
	"github.com/paymatch/paymatch/internal/infrastructure/eventpublisher"
	"github.com/paymatch/paymatch/internal/infrastructure/logger"
	"github.com/paymatch/paymatch/internal/infrastructure/metrics"
	"github.com/paymatch/paymatch/internal/infrastructure/postgres"
	"github.com/paymatch/paymatch/internal/infrastructure/redis"
	"github.com/paymatch/paymatch/internal/infrastructure/reporting"
	"github.com/paymatch/paymatch/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	suggRepo := postgresRepo.NewSuggestionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Billing gateway, with the client roster cached in Redis
	gateway := billing.NewCachedGateway(
		billing.NewClient(cfg.GatewayBaseURL, cfg.GatewayTimeout, appLogger),
		cache,
		cfg.ClientCacheTTL,
	)

	// Observability
	appMetrics := metrics.New()
	reporter := reporting.NewReporter(appLogger, appMetrics)

	// Initialize use cases
	matchCfg := cfg.MatchConfig()
	generators := usecase.DefaultGenerators(gateway, matchCfg)
	matchUC := usecase.NewMatchUseCase(matchCfg, txnRepo, suggRepo, gateway, generators, idGen, reporter)
	reconcileUC := usecase.NewReconcileUseCase(txManager, txnRepo, suggRepo, outboxRepo, gateway, idGen, retrier, reporter)

	// Initialize handlers
	matchHandler := handler.NewMatchHandler(matchUC)
	suggestionHandler := handler.NewSuggestionHandler(reconcileUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Optional bearer auth for the operator API
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		MatchHandler:      matchHandler,
		SuggestionHandler: suggestionHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		JWTManager:        jwtManager,
		Logger:            appLogger,
		RateLimit:         cfg.RateLimit,
		RateLimitBurst:    cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start outbox publisher in goroutine
	publisherCtx, stopPublisher := context.WithCancel(ctx)
	defer stopPublisher()

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(appLogger),
		Logger:     appLogger,
		BatchSize:  cfg.PublishBatch,
		Interval:   cfg.PublishInterval,
	})
	go func() {
		if err := publisher.Start(publisherCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopPublisher()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
