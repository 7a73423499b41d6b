package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	TelegramToken string `env:"TELEGRAM_BOT_TOKEN"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"DEBUG" envDefault:"false"`

	PreferIPv4     bool          `env:"PREFER_IPV4" envDefault:"true"`
	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"180s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	MaxConcurrent  int           `env:"MAX_CONCURRENT" envDefault:"4"`

	GeminiBaseURL    string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiAPIVersion string `env:"GEMINI_API_VERSION" envDefault:"v1beta"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-3-flash-preview"`
	GeminiTransport  string `env:"GEMINI_TRANSPORT" envDefault:"rest"`

	WebAddr string `env:"WEB_ADDR" envDefault:":8080"`
}

// Load reads the environment. Only the Gemini key is required here; front
// ends check their own extra requirements.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}

	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("API_KEY"))
	}
	cfg.TelegramToken = strings.TrimSpace(cfg.TelegramToken)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.GeminiBaseURL = strings.TrimSpace(cfg.GeminiBaseURL)
	cfg.GeminiAPIVersion = strings.TrimSpace(cfg.GeminiAPIVersion)
	cfg.GeminiModel = strings.TrimSpace(cfg.GeminiModel)
	cfg.GeminiTransport = strings.ToLower(strings.TrimSpace(cfg.GeminiTransport))
	cfg.WebAddr = strings.TrimSpace(cfg.WebAddr)

	if cfg.GeminiAPIKey == "" {
		return Config{}, errors.New("GEMINI_API_KEY is required")
	}

	switch cfg.GeminiTransport {
	case TransportREST, TransportSDK:
	case "":
		cfg.GeminiTransport = TransportREST
	default:
		return Config{}, fmt.Errorf("GEMINI_TRANSPORT must be %q or %q, got %q", TransportREST, TransportSDK, cfg.GeminiTransport)
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 120 * time.Second
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 180 * time.Second
	}
	if cfg.WebAddr == "" {
		cfg.WebAddr = ":8080"
	}

	return cfg, nil
}

func (c Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}
