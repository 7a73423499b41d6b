package app

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-prompt-studio/internal/config"
	"ai-prompt-studio/internal/gemini"
	"ai-prompt-studio/internal/genaiclient"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"k":"v"`)
}

func TestNewCaller(t *testing.T) {
	ctx := context.Background()
	cfg := config.Config{GeminiAPIKey: "k", GeminiTransport: config.TransportREST}

	c, err := NewCaller(ctx, cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, c)

	cfg.GeminiTransport = config.TransportSDK
	c, err = NewCaller(ctx, cfg, http.DefaultClient, nil)
	require.NoError(t, err)
	assert.IsType(t, &genaiclient.Client{}, c)

	cfg.GeminiTransport = "grpc"
	_, err = NewCaller(ctx, cfg, http.DefaultClient, nil)
	assert.Error(t, err)
}

func TestNewService(t *testing.T) {
	cfg := config.Config{GeminiAPIKey: "k", GeminiTransport: config.TransportREST, GeminiModel: "m"}

	svc, err := NewService(context.Background(), cfg, NewHTTPClient(cfg), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}
