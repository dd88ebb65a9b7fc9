package openrouter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient(nil)
		require.Error(t, err)
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := NewClient(&Config{
			BaseURL:      "https://api.example.com",
			DefaultModel: "gpt-5",
			Timeout:      time.Second,
		})
		require.Error(t, err)
	})
}

func TestClientChat(t *testing.T) {
	var (
		mu        sync.Mutex
		lastBody  []byte
		lastPath  string
		callCount int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		callCount++
		lastPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		lastBody = body

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1",
			"object":"chat.completion",
			"created":1730366400,
			"model":"deepseek/deepseek-chat",
			"choices":[
				{
					"index":0,
					"finish_reason":"stop",
					"logprobs":null,
					"message":{
						"role":"assistant",
						"content":"Hello from test",
						"tool_calls":[]
					}
				}
			],
			"usage":{
				"prompt_tokens":10,
				"completion_tokens":12,
				"total_tokens":22
			}
		}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Models = map[string]ModelConfig{
		"deepseek": {
			Vendor:    "deepseek",
			ModelName: "deepseek-chat",
		},
	}

	client, err := NewClient(cfg, WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := client.Chat(ctx, &ChatRequest{
		Model: "deepseek",
		Messages: []Message{
			{Role: "user", Content: "hi"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "deepseek/deepseek-chat", resp.Model)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, "Hello from test", resp.Choices[0].Message.Content)
	require.Equal(t, 22, resp.Usage.TotalTokens)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, "/chat/completions", lastPath)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(lastBody, &payload))
	require.Equal(t, "deepseek/deepseek-chat", payload["model"])
	require.Equal(t, 1, callCount)
}

func TestClientChatRawRetries(t *testing.T) {
	var callCount int32
	var captured map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		c := atomic.AddInt32(&callCount, 1)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)

		if c == 1 {
			// Force a retry on first attempt
			http.Error(w, "temporary error", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
            "id":"chatcmpl-raw-1",
            "object":"chat.completion",
            "created":1730366400,
            "model":"deepseek/deepseek-chat",
            "choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"ok"}}],
            "usage":{"prompt_tokens":3,"completion_tokens":2,"total_tokens":5}
        }`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 1 // one retry after the initial failure

	client, err := NewClient(cfg, WithHTTPClient(server.Client()),
		WithRetryHandler(NewRetryHandler(RetryConfig{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond})))
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	resp, err := client.Chat(ctx, &ChatRequest{
		Provider: &ProviderPreferences{Order: []string{"Fireworks"}},
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp.Choices[0].Message.Content)
	require.Equal(t, int32(2), atomic.LoadInt32(&callCount))

	provider := captured["provider"].(map[string]any)
	require.Equal(t, []any{"Fireworks"}, provider["order"])
}

func TestClientChatRawNonRetryableError(t *testing.T) {
	var callCount int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&callCount, 1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), &ChatRequest{
		Provider: &ProviderPreferences{Order: []string{"Fireworks"}},
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "http 401")
	require.Equal(t, int32(1), atomic.LoadInt32(&callCount))
}

func TestClientChatRequiresMessages(t *testing.T) {
	client, err := NewClient(testConfig("https://api.example.com"))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Chat(context.Background(), &ChatRequest{})
	require.Error(t, err)

	_, err = client.Chat(context.Background(), nil)
	require.Error(t, err)
}

func TestClientOptions(t *testing.T) {
	cfg := testConfig("https://api.example.com")

	t.Run("WithLogger", func(t *testing.T) {
		customLogger := NewLogger("debug")
		client, err := NewClient(cfg, WithLogger(customLogger))
		require.NoError(t, err)
		defer client.Close()

		require.Equal(t, customLogger, client.logger)
	})

	t.Run("WithRetryHandler", func(t *testing.T) {
		customRetry := NewRetryHandler(RetryConfig{MaxRetries: 5})
		client, err := NewClient(cfg, WithRetryHandler(customRetry))
		require.NoError(t, err)
		defer client.Close()

		require.Equal(t, customRetry, client.retryHandler)
	})

	t.Run("WithHTTPClient", func(t *testing.T) {
		customHTTPClient := &http.Client{Timeout: 10 * time.Second}
		client, err := NewClient(cfg, WithHTTPClient(customHTTPClient))
		require.NoError(t, err)
		defer client.Close()

		require.NotNil(t, client.httpClient)
	})
}

func TestGetConfig(t *testing.T) {
	cfg := testConfig("https://api.example.com")
	cfg.Provider = &ProviderPreferences{Order: []string{"Fireworks"}}

	client, err := NewClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	returnedCfg := client.GetConfig()
	require.NotNil(t, returnedCfg)
	require.Equal(t, cfg.BaseURL, returnedCfg.BaseURL)
	require.Equal(t, cfg.APIKey, returnedCfg.APIKey)
	require.Equal(t, cfg.DefaultModel, returnedCfg.DefaultModel)
	require.Equal(t, []string{"Fireworks"}, returnedCfg.Provider.Order)

	// Verify it's a clone, not the original
	require.NotSame(t, cfg, returnedCfg)
	require.NotSame(t, cfg.Provider, returnedCfg.Provider)
}

func TestConvertToolCalls(t *testing.T) {
	t.Run("empty tool calls", func(t *testing.T) {
		require.Nil(t, convertToolCalls(nil))
		require.Nil(t, convertToolCalls([]openai.ChatCompletionMessageToolCall{}))
	})

	t.Run("single tool call", func(t *testing.T) {
		calls := []openai.ChatCompletionMessageToolCall{
			{
				ID:   "call_123",
				Type: "function",
				Function: openai.ChatCompletionMessageToolCallFunction{
					Name:      "get_weather",
					Arguments: `{"location":"Tokyo"}`,
				},
			},
		}

		result := convertToolCalls(calls)
		require.Len(t, result, 1)
		require.Equal(t, "call_123", result[0].ID)
		require.Equal(t, "function", result[0].Type)
		require.Equal(t, "get_weather", result[0].Function.Name)
		require.Equal(t, `{"location":"Tokyo"}`, result[0].Function.Arguments)
	})
}
