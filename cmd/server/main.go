package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogoggogosususus-sudo/stormanagement/internal/api"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/core/service"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/backend"
	mongodb "github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/db/mongo"
	redisdb "github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/db/redis"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/poll"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/infrastructure/queue"
	"github.com/gogoggogosususus-sudo/stormanagement/internal/pkg/config"
	"github.com/gogoggogosususus-sudo/stormanagement/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis.Addr, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	backendClient := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	sessionStore := redisdb.NewSessionStore(rdb)
	auditRepo := mongodb.NewAuditRepository(db)

	// --- Core services ---
	sessions := service.NewSessionService(
		backendClient,
		sessionStore,
		auditRepo,
		cfg.SessionSecret,
		cfg.SessionTTL,
		cfg.AllowedRoles,
		log,
	)
	views := service.NewViewService(backendClient, sessionStore, auditRepo, log)

	// --- Background refresh ---
	dispatcher := queue.NewDispatcher(0, views, log)
	dispatcher.Start(ctx)

	poller := poll.New(views, dispatcher, cfg.PollInterval, log)
	poller.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Sessions:     sessions,
		Views:        views,
		Backend:      backendClient,
		Mongo:        db,
		Redis:        rdb,
		AllowedRoles: cfg.AllowedRoles,
		Log:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("sales portal started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
