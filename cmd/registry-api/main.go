package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tinyboard/account-registry/internal/api"
	"github.com/tinyboard/account-registry/internal/core/service"
	"github.com/tinyboard/account-registry/internal/infrastructure/db/postgres"
	"github.com/tinyboard/account-registry/internal/infrastructure/db/redis"
	"github.com/tinyboard/account-registry/internal/infrastructure/queue"
	"github.com/tinyboard/account-registry/internal/pkg/config"
	"github.com/tinyboard/account-registry/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	pools, err := postgres.Connect(ctx, postgres.Config{
		URL:          cfg.Postgres.URL,
		ReadPoolMax:  cfg.Postgres.ReadPoolMax,
		WritePoolMax: cfg.Postgres.WritePoolMax,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pools.Close()

	if err := pools.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	repo := postgres.NewAccountRepository(pools)
	registration := service.NewRegistrationService(repo, cfg.PublicBaseURL, log)
	listing := service.NewListingService(repo, cfg.PageSize, log)
	activity := service.NewActivityService(repo, log)

	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activity, log)
	dispatcher.Start(ctx)

	limiter := redis.NewRateLimiter(rdb, cfg.RateLimit.RegisterPerMinute, time.Minute)

	e := api.NewRouter(api.Deps{
		Registration: registration,
		Listing:      listing,
		Activity:     dispatcher,
		Limiter:      limiter,
		Pools:        pools,
		Redis:        rdb,
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
