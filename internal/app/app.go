package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ayo6706/payment-instructions/internal/api"
	"github.com/ayo6706/payment-instructions/internal/api/handler"
	"github.com/ayo6706/payment-instructions/internal/api/middleware"
	"github.com/ayo6706/payment-instructions/internal/config"
	"github.com/ayo6706/payment-instructions/internal/db"
	"github.com/ayo6706/payment-instructions/internal/events"
	"github.com/ayo6706/payment-instructions/internal/idempotency"
	"github.com/ayo6706/payment-instructions/internal/observability"
	"github.com/ayo6706/payment-instructions/internal/repository"
	"github.com/ayo6706/payment-instructions/internal/service"
	"github.com/ayo6706/payment-instructions/internal/worker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Run bootstraps the HTTP server and the optional idempotency sweeper, blocking until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	observability.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		idemStore middleware.IdempotencyStore
		dbPinger  handler.Pinger
		redisCmd  redis.Cmdable
	)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = newRedisClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisClient.Close()
		redisCmd = redisClient
	}

	if cfg.IdempotencyEnabled() {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		repoStore := repository.NewStore(pool)
		dbPinger = repoStore

		var cache redis.Cmdable
		if redisClient != nil {
			cache = redisClient
		}
		store := idempotency.NewStore(cache, repoStore, cfg.IdempotencyTTL)
		idemStore = store

		sweeper := worker.NewIdempotencySweeper(store).WithInterval(cfg.IdempotencySweepInterval)
		stopSweeper := sweeper.Run(ctx)
		defer stopSweeper()
		logger.Info("idempotency enabled", zap.Duration("ttl", cfg.IdempotencyTTL), zap.Bool("redis_cache", cache != nil))
	} else {
		logger.Info("idempotency disabled: DATABASE_URL not set")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATSURL != "" {
		js, err := events.NewJetStreamPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, logger)
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		publisher = js
		logger.Info("publishing instruction events", zap.String("prefix", cfg.NATSSubjectPrefix))
	}
	defer publisher.Close()

	svc := service.NewInstructionService(publisher, logger)
	router := api.NewRouter(cfg, logger, svc, idemStore, dbPinger, redisCmd)

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("port", cfg.HTTPPort))
		serverErr <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigChan:
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return nil
}

// NewLogger builds the production JSON logger at the given level.
// Unknown levels fall back to info.
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	switch strings.ToLower(level) {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info", "":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func newRedisClient(url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
