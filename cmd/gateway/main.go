package main

import (
	"context"

	"github.com/joho/godotenv"

	"github.com/vetlink/session-gateway/internal/api"
	"github.com/vetlink/session-gateway/internal/core/ports"
	"github.com/vetlink/session-gateway/internal/infrastructure/backend"
	"github.com/vetlink/session-gateway/internal/infrastructure/config"
	"github.com/vetlink/session-gateway/internal/infrastructure/db/memory"
	redisdb "github.com/vetlink/session-gateway/internal/infrastructure/db/redis"
	"github.com/vetlink/session-gateway/pkg/logger"
)

func main() {
	// Local overrides first; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// Session store: Redis in any real environment; in development the
	// gateway degrades to the in-memory store so it runs standalone.
	var store ports.SessionStore
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		if cfg.Env != "development" {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Warn().Err(err).Msg("redis unavailable, using in-memory session store")
		rdb = nil
		store = memory.NewSessionStore()
	} else {
		store = redisdb.NewSessionStore(rdb, cfg.SessionTTL)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, store, log)
	if err != nil {
		log.Fatal().Err(err).Msg("backend client init failed")
	}

	e := api.NewRouter(cfg, store, client, rdb, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Str("backend", cfg.Backend.BaseURL).Msg("vetlink session gateway listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
