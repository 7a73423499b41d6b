package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-prompt-studio/internal/promptgen"
)

func TestObserveGeneration(t *testing.T) {
	m := New()

	m.ObserveGeneration(promptgen.ModeTextToImage, promptgen.StyleAnime, "ok", 1500*time.Millisecond)
	m.ObserveGeneration(promptgen.ModeTextToImage, promptgen.StyleAnime, "ok", time.Second)
	m.ObserveGeneration(promptgen.ModeImageReference, promptgen.StyleNone, "decode_error", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("text_to_image", "anime", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("image_reference", "none", "decode_error")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveHTTP("/api/generate", http.StatusBadGateway)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `prompt_studio_http_requests_total{route="/api/generate",status="502"} 1`)
}
