package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ai-prompt-studio/internal/app"
	"ai-prompt-studio/internal/config"
	"ai-prompt-studio/internal/handlers"
	"ai-prompt-studio/internal/metrics"
	"ai-prompt-studio/internal/session"
	"ai-prompt-studio/internal/telegram"
)

const (
	sessionIdleTTL = 24 * time.Hour
	pruneInterval  = time.Hour
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		panic(err)
	}

	logger := app.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := app.NewHTTPClient(cfg)

	tg, err := telegram.New(telegram.Options{
		Token:      cfg.TelegramToken,
		HTTPClient: httpClient,
		Logger:     logger,
		Debug:      cfg.Debug,
	})
	if err != nil {
		logger.Error("telegram init failed", "err", err)
		os.Exit(1)
	}

	svc, err := app.NewService(ctx, cfg, httpClient, logger, metrics.New())
	if err != nil {
		logger.Error("service init failed", "err", err)
		os.Exit(1)
	}

	sessions := session.NewStore(session.Options{IdleTTL: sessionIdleTTL})

	handler, err := handlers.New(handlers.Options{
		Messenger: tg,
		Generator: svc,
		Sessions:  sessions,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("handler init failed", "err", err)
		os.Exit(1)
	}

	logger.Info("bot started", "username", tg.Username(), "model", cfg.GeminiModel, "transport", cfg.GeminiTransport)

	updates := tg.Updates(telegram.UpdatesOptions{
		Timeout: 30 * time.Second,
	})
	defer tg.StopUpdates()

	g := new(errgroup.Group)
	g.SetLimit(cfg.MaxConcurrent)
	defer func() { _ = g.Wait() }()

	prune := time.NewTicker(pruneInterval)
	defer prune.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		case <-prune.C:
			if n := sessions.Prune(); n > 0 {
				logger.Debug("pruned idle sessions", "count", n)
			}
		case update, ok := <-updates:
			if !ok {
				logger.Info("updates channel closed")
				return
			}

			g.Go(func() error {
				reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
				defer cancel()

				if err := handler.HandleUpdate(reqCtx, update); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("handle update failed", "update_id", update.UpdateID, "err", err)
				}
				return nil
			})
		}
	}
}
