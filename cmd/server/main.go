package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/api"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
	"github.com/nunu-app/marketplace-api/internal/core/service"
	"github.com/nunu-app/marketplace-api/internal/infrastructure/blob"
	"github.com/nunu-app/marketplace-api/internal/infrastructure/config"
	"github.com/nunu-app/marketplace-api/pkg/logger"
	"github.com/nunu-app/marketplace-api/pkg/password"
	"github.com/nunu-app/marketplace-api/pkg/token"
)

const shutdownTimeout = 10 * time.Second

// @title                       Marketplace API
// @version                     1.0
// @description                 Accounts, profiles, provider directory and uploads for the events marketplace.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "marketplace-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace-api",
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
	if cfg.UsesDevSecret() {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the development key")
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Str("store", st.name).Msg("closing store")
		}
	}()
	log.Info().Str("store", st.name).Msg("store connected")

	tokens, err := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	blobs, err := newBlobStore(cfg, log)
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		Log:       log,
		Tokens:    tokens,
		Auth:      service.NewAuthService(st.users, password.NewHasher(), tokens, logger.Component("auth")),
		Profiles:  service.NewProfileService(st.profiles, logger.Component("profile")),
		Directory: service.NewDirectoryService(st.providers),
		Uploads:   service.NewUploadService(blobs, logger.Component("upload")),
		Readiness: map[string]ports.Pinger{st.name: st.health},
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server exited")
	return nil
}

func newBlobStore(cfg *config.Config, log zerolog.Logger) (ports.BlobStore, error) {
	store, err := blob.NewCloudinaryStore(blob.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
		Folder:    cfg.Cloudinary.Folder,
	}, log)
	if errors.Is(err, blob.ErrNotConfigured) && cfg.IsDevelopment() {
		log.Warn().Msg("cloudinary credentials missing, uploads are disabled")
		return blob.Disabled{}, nil
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
