package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/grensregio/directory-ui/config"
	"github.com/grensregio/directory-ui/internal/adapters/memory"
	redisstore "github.com/grensregio/directory-ui/internal/adapters/redis"
	"github.com/grensregio/directory-ui/internal/bootstrap"
	"github.com/grensregio/directory-ui/internal/directory"
	"github.com/grensregio/directory-ui/internal/listing"
	"github.com/grensregio/directory-ui/internal/ports"
	"github.com/grensregio/directory-ui/internal/service"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting directory-ui",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"dev", cfg.IsDev)

	client, err := directory.NewClient(directory.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return err
	}

	sessions, cleanup, err := setupSessionStore(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Auth:       client,
		Sessions:   sessions,
		SessionTTL: cfg.Session.TTL,
	})

	server := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:    &cfg,
		Auth:      authSvc,
		Directory: client,
		Listing:   listing.NewView(client),
		Logger:    logger,
	})

	// Block until a shutdown signal arrives.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	return bootstrap.ShutdownHTTPServer(ctx, server, logger)
}

// setupSessionStore connects Redis for session persistence. In dev mode
// an unreachable Redis degrades to an in-memory store so the UI can run
// against just the directory API.
func setupSessionStore(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (ports.SessionStore, func(), error) {
	client, err := bootstrap.ConnectRedis(cfg.Redis, logger)
	if err != nil {
		if cfg.IsDev {
			logger.WarnContext(ctx, "redis unavailable, using in-memory sessions", "error", err)
			return memory.NewSessionStore(), func() {}, nil
		}
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}

	cleanup := func() {
		if cerr := client.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}
	return redisstore.NewSessionStoreWithPrefix(client, cfg.Session.KeyPrefix), cleanup, nil
}
