package llm

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

	"github.com/sozercan/symptom-ai/internal/config"
)

func geminiConfig(baseURL string) *config.Config {
	return &config.Config{
		LLM: config.LLMConfig{
			Provider:        config.ProviderGemini,
			MaxOutputTokens: 800,
			Temperature:     0.2,
		},
		Gemini: config.GeminiConfig{
			APIKey:  "test-key",
			Model:   "gemini-1.5-flash",
			BaseURL: baseURL,
		},
	}
}

func TestGeminiAnalyze(t *testing.T) {
	var captured map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), "unexpected path %s", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(body, &captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "candidates": [
    {
      "content": {"role": "model", "parts": [{"text": "{\"summary\":\"Mild tension headache\"}"}]},
      "finishReason": "STOP"
    }
  ],
  "usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20},
  "modelVersion": "gemini-1.5-flash-002"
}`))
	}))
	defer ts.Close()

	provider, err := NewGemini(context.Background(), geminiConfig(ts.URL))
	require.NoError(t, err)

	resp, err := provider.Analyze(context.Background(),
		[]string{"system rules"},
		[]string{"I have a headache"},
		WithJSONResponse(),
	)
	require.NoError(t, err)

	assert.Equal(t, `{"summary":"Mild tension headache"}`, resp.Content)
	assert.Equal(t, "gemini-1.5-flash-002", resp.Model)
	assert.Equal(t, int64(20), resp.Usage.TotalTokens)

	genCfg, ok := captured["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from request: %v", captured)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.EqualValues(t, 800, genCfg["maxOutputTokens"])
	assert.InDelta(t, 0.2, genCfg["temperature"], 1e-6)

	raw, err := json.Marshal(captured)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "system rules")
	assert.Contains(t, string(raw), "I have a headache")
}

func TestGeminiAnalyzeAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": 401, "message": "API key not valid. Please pass a valid API key.", "status": "UNAUTHENTICATED"}}`))
	}))
	defer ts.Close()

	provider, err := NewGemini(context.Background(), geminiConfig(ts.URL))
	require.NoError(t, err)

	_, err = provider.Analyze(context.Background(), nil, []string{"hello"})
	require.Error(t, err)

	assert.Equal(t, http.StatusUnauthorized, StatusCode(err))
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestNewGeminiRequiresKey(t *testing.T) {
	cfg := geminiConfig("")
	cfg.Gemini.APIKey = ""

	_, err := NewGemini(context.Background(), cfg)
	assert.Error(t, err)
}
