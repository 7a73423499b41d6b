package genaiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"ai-prompt-studio/internal/promptgen"
)

type Options struct {
	APIKey     string
	BaseURL    string
	APIVersion string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client performs the structured-output call through the official Go SDK.
type Client struct {
	models *genai.Models
	logger *slog.Logger
}

var _ promptgen.Caller = (*Client)(nil)

func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("api key is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimSpace(opts.BaseURL),
			APIVersion: strings.TrimSpace(opts.APIVersion),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{models: client.Models, logger: logger}, nil
}

func (c *Client) GenerateJSON(ctx context.Context, call promptgen.Call) (string, error) {
	resp, err := c.models.GenerateContent(ctx, call.Model, genai.Text(call.UserMessage), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(call.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ToSchema(call.Schema),
		Temperature:       genai.Ptr(call.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil {
		return "", errors.New("nil response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
	}

	text := resp.Text()
	c.logger.Debug("genai response", "model", call.Model, "bytes", len(text))
	return text, nil
}

// ToSchema converts the descriptor into the SDK's OpenAPI-style schema,
// keeping property order.
func ToSchema(s promptgen.OutputSchema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		props[f.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: f.Description,
		}
		order = append(order, f.Name)
	}

	return &genai.Schema{
		Title:            s.Title,
		Type:             genai.TypeObject,
		Properties:       props,
		Required:         s.Required(),
		PropertyOrdering: order,
	}
}
