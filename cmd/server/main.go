package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/aman-soni-070202/my-finances/internal/adapter/http"
	"github.com/aman-soni-070202/my-finances/internal/adapter/http/handler"
	"github.com/aman-soni-070202/my-finances/internal/adapter/http/middleware"
	postgresRepo "github.com/aman-soni-070202/my-finances/internal/adapter/repository/postgres"
	redisRepo "github.com/aman-soni-070202/my-finances/internal/adapter/repository/redis"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/config"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/logger"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/postgres"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/redis"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
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
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
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
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	cardRepo := postgresRepo.NewCardRepository(pool)
	categoryRepo := postgresRepo.NewCategoryRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier().WithLogger(appLogger)

	appMetrics := metrics.New()

	// Initialize use cases
	transactionUC := usecase.NewTransactionUseCase(
		txManager, transactionRepo, accountRepo, cardRepo, categoryRepo, auditRepo, idGen, cache,
	).WithRetrier(retrier).WithMetrics(appMetrics)
	accountUC := usecase.NewAccountUseCase(accountRepo, idGen).WithMetrics(appMetrics)
	cardUC := usecase.NewCardUseCase(cardRepo, idGen).WithMetrics(appMetrics)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	statsUC := usecase.NewStatsUseCase(transactionRepo, cache, cfg.StatsCacheTTL, appLogger).WithMetrics(appMetrics)
	backupUC := usecase.NewBackupUseCase(
		txManager, transactionRepo, accountRepo, cardRepo, categoryRepo, auditRepo, idGen, cache,
	).WithMetrics(appMetrics)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo).WithMetrics(appMetrics)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(transactionUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	cardHandler := handler.NewCardHandler(cardUC)
	categoryHandler := handler.NewCategoryHandler(categoryUC)
	statsHandler := handler.NewStatsHandler(statsUC)
	backupHandler := handler.NewBackupHandler(backupUC)
	ledgerHandler := handler.NewLedgerHandler(reconciliationUC, auditUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(appMetrics)

		go func() {
			ticker := time.NewTicker(time.Hour)
			defer ticker.Stop()
			for range ticker.C {
				rateLimiter.CleanupLimiters()
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: transactionHandler,
		AccountHandler:     accountHandler,
		CardHandler:        cardHandler,
		CategoryHandler:    categoryHandler,
		StatsHandler:       statsHandler,
		BackupHandler:      backupHandler,
		LedgerHandler:      ledgerHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		RateLimiter:        rateLimiter,
		Logger:             appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

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

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
