package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/config"
	"twins-digital-web/internal/gemini"
	"twins-digital-web/internal/httpclient"
	"twins-digital-web/internal/intake"
	"twins-digital-web/internal/metrics"
	"twins-digital-web/internal/staging"
	"twins-digital-web/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(false)
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Error("catalog load failed", "path", cfg.CatalogPath, "err", err)
		os.Exit(1)
	}

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
	})

	gem := gemini.New(gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		ChatModel:  cfg.GeminiChatModel,
		ImageModel: cfg.GeminiImageModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	m := metrics.New()

	workspaces := staging.NewStore(staging.Options{
		Transformer: staging.NewGeminiTransformer(gem),
		Catalog:     cat,
		Logger:      logger,
		Hooks:       m.StagingHooks(),
		ItemTimeout: cfg.RequestTimeout,
	})

	chats := assistant.NewStore(assistant.Options{
		Chatter:     gem,
		MaxMessages: cfg.MaxHistoryMessages,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Runs outlive the request that started them but not the process.
	runCtx, cancelRuns := context.WithCancel(context.Background())
	defer cancelRuns()

	srv := web.New(web.Options{
		Logger:            logger,
		Catalog:           cat,
		Workspaces:        workspaces,
		Chats:             chats,
		Metrics:           m,
		Sample:            &intake.Fetcher{Client: httpClient, MaxBytes: cfg.MaxUploadBytes},
		SampleURL:         cfg.SampleImageURL,
		AllowedOrigins:    cfg.AllowedOrigins,
		MaxUploadBytes:    cfg.MaxUploadBytes,
		UploadConcurrency: cfg.MaxConcurrent,
		SecureCookies:     cfg.SecureCookies,
		BaseContext:       runCtx,
	})

	httpServer := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		IdleTimeout:       90 * time.Second,
		// No WriteTimeout: /api/demo/events is a long-lived stream.
	}

	go sweep(ctx, logger, chats, workspaces, cfg.WorkspaceIdle)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web started", "addr", cfg.WebAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "err", err)
		}
	}

	cancelRuns()
	workspaces.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
}

func sweep(ctx context.Context, logger *slog.Logger, chats *assistant.Store, workspaces *staging.Store, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c := chats.Sweep(maxIdle)
			w := workspaces.Sweep(maxIdle)
			if c+w > 0 {
				logger.Info("idle state swept", "chats", c, "workspaces", w)
			}
		}
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
