// Entry point of the STWMS Workforce Portal. Loads configuration, connects
// to Redis for session persistence, wires the backend client, services and
// HTTP routes, and runs the server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stwms/workforce-portal/internal/api"
	"github.com/stwms/workforce-portal/internal/infrastructure/config"
	"github.com/stwms/workforce-portal/internal/infrastructure/session"
	"github.com/stwms/workforce-portal/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})
	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Str("backend", cfg.BackendURL).
		Msg("starting workforce portal")

	if cfg.SessionSecret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("SESSION_SECRET is required outside development")
		}
		cfg.SessionSecret = "dev-only-insecure-secret"
		log.Warn().Msg("SESSION_SECRET not set, using development default")
	}

	ctx := context.Background()

	// Session store. Without Redis the portal degrades to in-process
	// sessions, which do not survive a restart.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = session.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis connection failed")
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, sessions held in memory only")
	}

	e := api.NewRouter(cfg, rdb)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("portal stopped")
}
