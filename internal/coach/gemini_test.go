package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kjbranchesi/alf-coach-backend/config"
)

func newTestGemini(baseURL string) *GeminiClient {
	return NewGeminiClient(&config.GeminiConfig{
		APIKey:          "test-key",
		Model:           "gemini-2.0-flash",
		BaseURL:         baseURL,
		Temperature:     0.7,
		MaxOutputTokens: 256,
		RequestsPerMin:  600,
	})
}

func TestGeminiClient_Generate(t *testing.T) {
	var gotBody generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{"text": "Hello "}, {"text": "educator"}},
				},
				"finishReason": "STOP",
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newTestGemini(srv.URL)
	history := []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	}

	text, err := client.Generate(context.Background(), "be kind", history, "what next?")
	require.NoError(t, err)
	assert.Equal(t, "Hello educator", text)

	require.Len(t, gotBody.Contents, 3)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	assert.Equal(t, "model", gotBody.Contents[1].Role, "assistant history maps to the model role")
	assert.Equal(t, "what next?", gotBody.Contents[2].Parts[0].Text)
	require.NotNil(t, gotBody.SystemInstruction)
	assert.Equal(t, "be kind", gotBody.SystemInstruction.Parts[0].Text)
	require.NotNil(t, gotBody.GenerationConfig)
	assert.Equal(t, 0.7, gotBody.GenerationConfig.Temperature)
	assert.Equal(t, 256, gotBody.GenerationConfig.MaxOutputTokens)
}

func TestGeminiClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "quota exceeded"},
		})
	}))
	defer srv.Close()

	client := newTestGemini(srv.URL)
	_, err := client.Generate(context.Background(), "sys", nil, "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client := newTestGemini(srv.URL)
	_, err := client.Generate(context.Background(), "sys", nil, "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
