package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ai-prompt-studio/internal/app"
	"ai-prompt-studio/internal/config"
	"ai-prompt-studio/internal/metrics"
	"ai-prompt-studio/internal/promptgen"
	"ai-prompt-studio/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := app.NewLogger(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	httpClient := app.NewHTTPClient(cfg)

	svc, err := app.NewService(ctx, cfg, httpClient, logger, m)
	if err != nil {
		logger.Error("service init failed", "err", err)
		os.Exit(1)
	}

	s, err := web.New(web.Options{
		Generator:      svc,
		Logger:         logger,
		Observer:       m,
		Metrics:        m.Handler(),
		RequestTimeout: cfg.RequestTimeout,
		IdeaPicker:     promptgen.RandomIdea,
	})
	if err != nil {
		logger.Error("web init failed", "err", err)
		os.Exit(1)
	}

	handler, err := s.Handler()
	if err != nil {
		logger.Error("web routes failed", "err", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}()

	logger.Info("web started", "addr", cfg.WebAddr, "model", cfg.GeminiModel, "transport", cfg.GeminiTransport)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
	logger.Info("shutting down")
}
