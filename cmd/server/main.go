package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/transfermatch/internal/adapter/http"
	"github.com/iho/transfermatch/internal/adapter/http/handler"
	postgresRepo "github.com/iho/transfermatch/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/transfermatch/internal/adapter/repository/redis"
	"github.com/iho/transfermatch/internal/infrastructure/config"
	"github.com/iho/transfermatch/internal/infrastructure/logger"
	"github.com/iho/transfermatch/internal/infrastructure/metrics"
	"github.com/iho/transfermatch/internal/infrastructure/postgres"
	"github.com/iho/transfermatch/internal/infrastructure/redis"
	"github.com/iho/transfermatch/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

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
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()
	cache := redisRepo.NewCache(redisClient)

	// Initialize use cases
	suggestionUC := usecase.NewSuggestionUseCase(transactionRepo, accountRepo, cache, cfg.MatcherConfig())
	decisionUC := usecase.NewDecisionUseCase(txManager, transactionRepo, idGen, retrier, cache)
	ledgerUC := usecase.NewLedgerUseCase(txManager, transactionRepo, accountRepo, idGen, cache)

	// Initialize metrics and handlers
	m := metrics.New()
	suggestionHandler := handler.NewSuggestionHandler(suggestionUC, m)
	decisionHandler := handler.NewDecisionHandler(decisionUC, m)
	transactionHandler := handler.NewTransactionHandler(ledgerUC, m)
	accountHandler := handler.NewAccountHandler(ledgerUC, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		SuggestionHandler:  suggestionHandler,
		DecisionHandler:    decisionHandler,
		TransactionHandler: transactionHandler,
		AccountHandler:     accountHandler,
		HealthHandler:      healthHandler,
		Logger:             appLogger,
	})

	// Create server
	server := newServer(cfg, router)

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

func newServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}
