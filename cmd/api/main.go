package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/smartfit/smartfit-api/internal/config"
	"github.com/smartfit/smartfit-api/internal/handlers"
	"github.com/smartfit/smartfit-api/internal/observability"
	"github.com/smartfit/smartfit-api/internal/server"
	"github.com/smartfit/smartfit-api/internal/services"
	"github.com/smartfit/smartfit-api/internal/store"
	"github.com/smartfit/smartfit-api/internal/utils"
)

const indexRetryInterval = 30 * time.Second

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	observability.ConfigureLogging(os.Stderr, cfg.LogLevel, cfg.ConsoleLogs())

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set, /api/ai will fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Database Connection ---
	client, err := store.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB client")
	}
	db := client.Database(cfg.MongoDatabase)

	ping := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
		defer cancel()
		return store.Ping(ctx, client)
	}
	if err := ping(ctx); err != nil {
		if cfg.DBFailFast {
			log.Fatal().Err(err).Msg("MongoDB is unreachable")
		}
		log.Error().Err(err).Msg("MongoDB is unreachable, serving degraded")
	} else {
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")
	}

	go func() {
		_ = store.RetryIndexes(ctx, indexRetryInterval, ping, func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
			defer cancel()
			return store.EnsureIndexes(ctx, db)
		})
	}()

	// --- Services and handlers ---
	tokens, err := utils.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token settings")
	}
	ai := services.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	h := handlers.NewHandler(store.NewMongoStores(db, cfg.DBTimeout), tokens, ai)

	gin.SetMode(cfg.GinMode)
	srvCfg := server.Config{
		Address:      ":" + cfg.Port,
		CORSOrigins:  cfg.CORSOrigins,
		AllowAll:     cfg.AllowAllOrigins(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	srv := server.NewServer(srvCfg, server.NewRouter(srvCfg, h))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", srvCfg.Address).Msg("SmartFit API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCh
	log.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to disconnect from MongoDB")
	}
}
