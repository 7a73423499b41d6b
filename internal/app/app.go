package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"ai-prompt-studio/internal/config"
	"ai-prompt-studio/internal/gemini"
	"ai-prompt-studio/internal/genaiclient"
	"ai-prompt-studio/internal/httpclient"
	"ai-prompt-studio/internal/promptgen"
)

const userAgent = "ai-prompt-studio"

func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: lvl,
	}))
}

func NewHTTPClient(cfg config.Config) *http.Client {
	return httpclient.New(httpclient.Options{
		PreferIPv4: cfg.PreferIPv4,
		Timeout:    cfg.HTTPTimeout,
		UserAgent:  userAgent,
	})
}

// NewCaller builds the upstream transport selected by GEMINI_TRANSPORT.
func NewCaller(ctx context.Context, cfg config.Config, httpClient *http.Client, logger *slog.Logger) (promptgen.Caller, error) {
	switch cfg.GeminiTransport {
	case config.TransportSDK:
		c, err := genaiclient.New(ctx, genaiclient.Options{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			APIVersion: cfg.GeminiAPIVersion,
			HTTPClient: httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.TransportREST, "":
		return gemini.New(gemini.Options{
			APIKey:     cfg.GeminiAPIKey,
			BaseURL:    cfg.GeminiBaseURL,
			APIVersion: cfg.GeminiAPIVersion,
			HTTPClient: httpClient,
			Logger:     logger,
		}), nil
	default:
		return nil, fmt.Errorf("unknown gemini transport %q", cfg.GeminiTransport)
	}
}

// NewService wires the generation service once per process.
func NewService(ctx context.Context, cfg config.Config, httpClient *http.Client, logger *slog.Logger, rec promptgen.Recorder) (*promptgen.Service, error) {
	caller, err := NewCaller(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("init gemini transport: %w", err)
	}

	return promptgen.NewService(promptgen.Options{
		Caller:   caller,
		Model:    cfg.GeminiModel,
		Logger:   logger,
		Recorder: rec,
	})
}
