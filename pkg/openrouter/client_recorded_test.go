package openrouter

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
)

// This test uses go-vcr to record/replay a real Query call.
// It skips by default if the cassette is absent and RECORD_CASSETTES != 1.
func TestQuery_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "openrouter_query.yaml")
	if _, err := os.Stat(cassette); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		err := os.MkdirAll(filepath.Dir(cassette), 0o755)
		assert.NoError(t, err, "mkdir cassettes dir should succeed")
	}

	r, err := recorder.New(cassette)
	assert.NoError(t, err, "recorder.New should not error")
	assert.NotNil(t, r, "recorder should not be nil")
	defer func() { _ = r.Stop() }()

	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		apiKey = "recorded-key"
	}

	cfg := &Config{
		BaseURL:      defaultBaseURL,
		APIKey:       apiKey,
		DefaultModel: "deepseek/deepseek-chat",
		Timeout:      30 * time.Second,
		MaxRetries:   1,
		LogLevel:     "error",
	}

	client, err := NewClient(cfg, WithHTTPClient(&http.Client{Transport: r}))
	assert.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Query(ctx, &QueryRequest{
		UserMessage: "Say a short hello.",
		Provider:    &ProviderPreferences{Order: []string{"Fireworks"}},
	})
	assert.NoError(t, err)
	if result != nil {
		assert.NotEmpty(t, result.Content)
		assert.Greater(t, result.PromptTokens, 0)
	}
}
