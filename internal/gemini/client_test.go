package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-prompt-studio/internal/promptgen"
)

func testCall() promptgen.Call {
	comp := promptgen.Compose("一只柯基在月球上跑", promptgen.StyleAnime, promptgen.AspectSquare, promptgen.ModeTextToImage)
	return promptgen.Call{
		Model:             "gemini-3-flash-preview",
		SystemInstruction: comp.SystemInstruction,
		UserMessage:       comp.UserMessage,
		Schema:            comp.Schema,
		Temperature:       0.7,
	}
}

func TestClient_GenerateJSON(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[
			{"text":"thinking...","thought":true},
			{"text":"{\"englishPrompt\":\"a corgi"},
			{"text":" on the moon\"}"}
		]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "secret", BaseURL: srv.URL + "/", HTTPClient: srv.Client()})

	text, err := c.GenerateJSON(context.Background(), testCall())
	require.NoError(t, err)
	assert.Equal(t, `{"englishPrompt":"a corgi on the moon"}`, text)

	assert.Equal(t, "/v1beta/models/gemini-3-flash-preview:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	cfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.7, cfg["temperature"], 1e-6)
	assert.Equal(t, "application/json", cfg["responseMimeType"])

	schema, ok := cfg["responseJsonSchema"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", schema["type"])
	assert.Len(t, schema["required"], 5)

	sys, ok := gotBody["systemInstruction"].(map[string]any)
	require.True(t, ok)
	parts := sys["parts"].([]any)
	assert.Contains(t, parts[0].(map[string]any)["text"], "Anime style, makoto shinkai style")

	contents := gotBody["contents"].([]any)
	userParts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "User Idea: 一只柯基在月球上跑\nDesired Aspect Ratio: 1:1", userParts[0].(map[string]any)["text"])
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota"}}`))
	}))
	defer srv.Close()

	c := New(Options{APIKey: "k", BaseURL: srv.URL, APIVersion: "v1", HTTPClient: srv.Client()})

	_, err := c.GenerateJSON(context.Background(), testCall())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "quota")
}

func TestClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	text, err := c.GenerateJSON(context.Background(), testCall())
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestClient_BlockedPrompt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	c := New(Options{BaseURL: srv.URL, HTTPClient: srv.Client()})

	_, err := c.GenerateJSON(context.Background(), testCall())
	assert.ErrorContains(t, err, "SAFETY")
}

func TestClient_NilHTTPClient(t *testing.T) {
	c := New(Options{})
	_, err := c.GenerateJSON(context.Background(), testCall())
	assert.Error(t, err)
}
