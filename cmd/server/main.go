package main

import (
	"context"

	"github.com/synapselink/backend/internal/app"
	"github.com/synapselink/backend/internal/cache"
	"github.com/synapselink/backend/internal/config"
	"github.com/synapselink/backend/internal/db"
	"github.com/synapselink/backend/internal/logger"
	"github.com/synapselink/backend/internal/server"
	"github.com/synapselink/backend/internal/service/connection"
	"github.com/synapselink/backend/internal/service/endorsement"
	"github.com/synapselink/backend/internal/service/network"
	"github.com/synapselink/backend/internal/service/profile"
	"github.com/synapselink/backend/internal/service/ranking"
	"github.com/synapselink/backend/internal/service/system"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(database, redisCache, log)

	registrars := []server.Registrar{
		profile.NewRegistrar(appCtx),
		connection.NewRegistrar(appCtx),
		endorsement.NewRegistrar(appCtx),
		ranking.NewRegistrar(appCtx),
		network.NewRegistrar(appCtx),
	}

	if cfg.App.ENV == "development" {
		registrars = append(registrars, system.NewRegistrar(appCtx))
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.StartHTTPServer(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
