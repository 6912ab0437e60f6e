package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jeevankiran1503/Prodigy-FS-03/config"
	"github.com/Jeevankiran1503/Prodigy-FS-03/imagestore"
	"github.com/Jeevankiran1503/Prodigy-FS-03/logging"
	"github.com/Jeevankiran1503/Prodigy-FS-03/routes"
	"github.com/Jeevankiran1503/Prodigy-FS-03/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.Info().Str("env", cfg.AppEnv).Str("db_driver", cfg.DBDriver).Msg("starting storefront api")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	st, err := store.Open(connectCtx, cfg)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("failed to close database")
		}
	}()

	images, err := imagestore.NewLocalStore(cfg.UploadsDir, cfg.UploadsURLPrefix, cfg.ImageMaxWidth)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to prepare uploads directory")
	}

	app, err := routes.NewApp(cfg, st, images)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build router")
	}
	defer app.Feed.Close()

	go app.AuthLimiter.RunCleanup(ctx, 5*time.Minute)

	if cfg.BackupDir != "" {
		go imagestore.NewBackup(cfg.UploadsDir, cfg.BackupDir, cfg.BackupRetention).Run(ctx)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down server gracefully")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server shutdown failed")
		return
	}

	logging.Info().Msg("server exited")
}
