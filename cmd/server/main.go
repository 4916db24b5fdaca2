package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gocaja/internal/adapter/http"
	"github.com/iho/gocaja/internal/adapter/http/handler"
	postgresRepo "github.com/iho/gocaja/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gocaja/internal/adapter/repository/redis"
	"github.com/iho/gocaja/internal/infrastructure/config"
	"github.com/iho/gocaja/internal/infrastructure/logger"
	"github.com/iho/gocaja/internal/infrastructure/metrics"
	"github.com/iho/gocaja/internal/infrastructure/postgres"
	"github.com/iho/gocaja/internal/infrastructure/redis"
	"github.com/iho/gocaja/internal/usecase"
)

func main() {
	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Setup log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
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
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	allocationRepo := postgresRepo.NewAllocationRepository(pool)
	incomeRepo := postgresRepo.NewIncomeRepository(pool)
	closingRepo := postgresRepo.NewClosingRepository(pool)
	bankAccountRepo := postgresRepo.NewBankAccountRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	reportCache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Initialize use cases
	expenseUC := usecase.NewExpenseUseCase(expenseRepo, allocationRepo, idGen)
	allocationUC := usecase.NewAllocationUseCase(txManager, expenseRepo, allocationRepo, idGen)
	incomeUC := usecase.NewIncomeUseCase(incomeRepo, idGen)
	movementUC := usecase.NewMovementUseCase(allocationRepo, incomeRepo)
	movementUC.WithCache(reportCache, cfg.ReportCacheTTL)
	closingUC := usecase.NewClosingUseCase(txManager, closingRepo, movementUC)

	// Initialize handlers
	appMetrics := metrics.New()
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	expenseHandler.WithMetrics(appMetrics)
	allocationHandler := handler.NewAllocationHandler(allocationUC, bankAccountRepo, retrier)
	allocationHandler.WithMetrics(appMetrics)
	incomeHandler := handler.NewIncomeHandler(incomeUC, bankAccountRepo)
	incomeHandler.WithMetrics(appMetrics)
	movementHandler := handler.NewMovementHandler(movementUC)
	closingHandler := handler.NewClosingHandler(closingUC)
	closingHandler.WithMetrics(appMetrics)
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountRepo)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ExpenseHandler:     expenseHandler,
		AllocationHandler:  allocationHandler,
		IncomeHandler:      incomeHandler,
		MovementHandler:    movementHandler,
		ClosingHandler:     closingHandler,
		BankAccountHandler: bankAccountHandler,
		HealthHandler:      healthHandler,
		IdempotencyStore:   idempotencyStore,
		Logger:             &appLogger,
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
