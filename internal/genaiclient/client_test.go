package genaiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"ai-prompt-studio/internal/promptgen"
)

func TestToSchema(t *testing.T) {
	comp := promptgen.Compose("idea", promptgen.StyleNone, promptgen.AspectSquare, promptgen.ModeImageReference)

	s := ToSchema(comp.Schema)

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"englishPrompt", "chineseTranslation", "negativePrompt", "reasoning", "suggestedAspectRatio"}, s.Required)
	assert.Equal(t, s.Required, s.PropertyOrdering)
	require.Len(t, s.Properties, 5)
	for name, p := range s.Properties {
		assert.Equal(t, genai.TypeString, p.Type, name)
		assert.NotEmpty(t, p.Description, name)
	}
	assert.Contains(t, s.Properties["englishPrompt"].Description, promptgen.SubjectTag)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestClient_GenerateJSON(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"englishPrompt\":\"x\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), Options{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
	require.NoError(t, err)

	comp := promptgen.Compose("idea", promptgen.StyleOil, promptgen.AspectPortrait, promptgen.ModeTextToImage)
	text, err := c.GenerateJSON(context.Background(), promptgen.Call{
		Model:             "gemini-3-flash-preview",
		SystemInstruction: comp.SystemInstruction,
		UserMessage:       comp.UserMessage,
		Schema:            comp.Schema,
		Temperature:       0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"englishPrompt":"x"}`, text)

	assert.True(t, strings.HasSuffix(gotPath, "gemini-3-flash-preview:generateContent"), gotPath)
	cfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", cfg["responseMimeType"])
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	c, err := New(context.Background(), Options{APIKey: "bad", BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = c.GenerateJSON(context.Background(), promptgen.Call{Model: "m", UserMessage: "u", SystemInstruction: "s"})
	assert.Error(t, err)
}
