package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"photogrid/identity/internal/cache"
	"photogrid/identity/internal/config"
	"photogrid/identity/internal/database"
	"photogrid/identity/internal/handlers"
	"photogrid/identity/internal/jobs"
	"photogrid/identity/internal/log"
	"photogrid/identity/internal/repository"
	"photogrid/identity/internal/security"
	"photogrid/identity/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	if cfg.Postgres.Migrate {
		if err := database.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			logger.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect redis")
	}

	// Process-wide secure random source, pre-warmed so the first login does
	// not pay initialization latency.
	tokenSource, err := security.NewTokenSource()
	if err != nil {
		logger.Fatal().Err(err).Msg("secure rng unavailable")
	}

	handlerSet := handlers.NewHandlerSet(logger, dbPool, redisClient, tokenSource, cfg)
	httpServer := server.NewHTTPServer(cfg, logger, handlerSet)

	var scheduler *jobs.Scheduler
	if cfg.Sweep.Enabled {
		scheduler = jobs.NewScheduler(
			repository.NewSessionRepository(dbPool),
			redisClient,
			cfg.Sweep.Schedule,
			cfg.Sweep.LockTTL,
			logger,
		)
		if err := scheduler.Start(); err != nil {
			logger.Error().Err(err).Msg("sweep scheduler start failed")
		}
	}

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(logger, httpServer, scheduler, dbPool, redisClient)
}

func waitForShutdown(logger zerolog.Logger, srv *server.HTTPServer, scheduler *jobs.Scheduler, db *pgxpool.Pool, redisClient *redis.Client) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	if scheduler != nil {
		scheduler.Stop()
	}

	db.Close()
	if err := redisClient.Close(); err != nil {
		logger.Error().Err(err).Msg("redis close error")
	}

	logger.Info().Msg("server exited cleanly")
}
