package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"twins-digital-web/internal/assistant"
	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/config"
	"twins-digital-web/internal/gemini"
	"twins-digital-web/internal/handlers"
	"twins-digital-web/internal/httpclient"
	"twins-digital-web/internal/mediagroup"
	"twins-digital-web/internal/staging"
	"twins-digital-web/internal/telegram"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(true)
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

	tg, err := telegram.New(telegram.Options{
		Token:        cfg.TelegramToken,
		HTTPClient:   httpClient,
		Logger:       logger,
		Debug:        cfg.Debug,
		MaxFileBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	gem := gemini.New(gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		APIVersion: cfg.GeminiAPIVersion,
		ChatModel:  cfg.GeminiChatModel,
		ImageModel: cfg.GeminiImageModel,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	chats := assistant.NewStore(assistant.Options{
		Chatter:     gem,
		MaxMessages: cfg.MaxHistoryMessages,
		Logger:      logger,
	})

	workspaces := staging.NewStore(staging.Options{
		Transformer: staging.NewGeminiTransformer(gem),
		Catalog:     cat,
		Logger:      logger,
		ItemTimeout: cfg.RequestTimeout,
	})
	defer workspaces.Close()

	handler := handlers.New(handlers.Options{
		Telegram:   tg,
		Chats:      chats,
		Workspaces: workspaces,
		Catalog:    cat,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A staging run is bounded per item, not per update, so album handling
	// gets the per-item timeout times the album size.
	runTimeout := func(items int) time.Duration {
		if items < 1 {
			items = 1
		}
		return cfg.RequestTimeout * time.Duration(items)
	}

	sem := make(chan struct{}, cfg.MaxConcurrent)
	onGroupFlush := func(group mediagroup.Group) {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return
		}

		go func() {
			defer func() { <-sem }()

			reqCtx, cancel := context.WithTimeout(ctx, runTimeout(len(group.FileIDs)))
			defer cancel()

			handler.HandleMediaGroup(reqCtx, group)
		}()
	}

	aggregator := mediagroup.New(mediagroup.Options{
		Debounce: cfg.MediaGroupDebounce,
		OnFlush:  onGroupFlush,
	})
	defer aggregator.Stop()
	handler.SetMediaGroupAggregator(aggregator)

	go sweep(ctx, logger, chats, workspaces, cfg.WorkspaceIdle)

	logger.Info("bot started", "username", tg.Username())

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}

			go func(update telegram.Update) {
				defer func() { <-sem }()

				reqCtx, cancel := context.WithTimeout(ctx, runTimeout(1))
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "err", err)
				}
			}(update)
		}
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
