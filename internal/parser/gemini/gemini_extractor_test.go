package gemini_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll/internal/config"
	"payroll/internal/domain"
	"payroll/internal/parser"
	"payroll/internal/parser/gemini"
	"payroll/internal/port"
)

func newTestExtractor(t *testing.T, serverURL string) *gemini.Extractor {
	t.Helper()
	ex, err := gemini.NewExtractor(context.Background(), &config.ParserProviderConfig{
		Provider:    "gemini",
		APIKey:      "test-gemini-key",
		BaseURL:     serverURL + "/",
		TimeoutSecs: 5,
	})
	require.NoError(t, err)
	return ex
}

var webpInput = port.ExtractInput{ImageBytes: []byte("RIFF fake"), ContentType: "image/webp", FileName: "roster.webp"}

func TestExtractor_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Contains(t, reqBody, "systemInstruction")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role":  "model",
						"parts": []map[string]interface{}{{"text": `[{"name":"王五"}]`}},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	out, err := newTestExtractor(t, server.URL).Extract(context.Background(), webpInput)

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"王五"}]`, out.RawText)
	assert.Equal(t, "gemini-2.0-flash", out.ModelUsed)
	assert.Equal(t, parser.RosterPrompt, out.PromptUsed)
}

func TestExtractor_Extract_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	_, err := newTestExtractor(t, server.URL).Extract(context.Background(), webpInput)

	var rlErr *parser.RateLimitError
	require.True(t, errors.As(err, &rlErr), "got %v", err)
	assert.Equal(t, "gemini", rlErr.Provider)
}

func TestExtractor_Extract_UnsupportedType(t *testing.T) {
	_, err := newTestExtractor(t, "http://unused.invalid").Extract(context.Background(), port.ExtractInput{
		ImageBytes:  []byte("x"),
		ContentType: "image/tiff",
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedImageType)
}

func TestNewExtractor_RequiresKey(t *testing.T) {
	_, err := gemini.NewExtractor(context.Background(), &config.ParserProviderConfig{Provider: "gemini"})

	assert.Error(t, err)
}
