package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const chatCompletionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4-0613",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "{\"name\": \"Ada\"}"},
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 120, "completion_tokens": 8, "total_tokens": 128}
}`

func TestOpenAIClient_Chat(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Errorf("unmarshal body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "You fill forms."},
			{Role: RoleUser, Content: "I'm Ada."},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !result.Success {
		t.Fatal("expected success")
	}
	if result.Content != `{"name": "Ada"}` {
		t.Errorf("Content = %q", result.Content)
	}
	if result.ModelUsed != "gpt-4-0613" {
		t.Errorf("ModelUsed = %q", result.ModelUsed)
	}
	if result.PromptTokens != 120 || result.CompletionTokens != 8 || result.TotalTokens != 128 {
		t.Errorf("tokens = %d/%d/%d", result.PromptTokens, result.CompletionTokens, result.TotalTokens)
	}
	if result.Provider != OpenAIName {
		t.Errorf("Provider = %q", result.Provider)
	}

	if got, _ := payload["model"].(string); got != "gpt-4" {
		t.Errorf("model = %q, want gpt-4", got)
	}
	if got, _ := payload["temperature"].(float64); got != 0.3 {
		t.Errorf("temperature = %v, want 0.3", got)
	}
	if got, _ := payload["max_tokens"].(float64); got != 500 {
		t.Errorf("max_tokens = %v, want 500", got)
	}
	msgs, _ := payload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(msgs))
	}
	first, _ := msgs[0].(map[string]any)
	if first["role"] != "system" {
		t.Errorf("messages[0].role = %v", first["role"])
	}
}

func TestOpenAIClient_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit","type":"rate_limit_error","param":"","code":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "test-key", BaseURL: server.URL, RPM: 60})

	result, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	rle, ok := IsRateLimitError(err)
	if !ok {
		t.Fatalf("expected RateLimitError, got %T: %v", err, err)
	}
	if rle.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %v, want 3s", rle.RetryAfter)
	}
	if result == nil || result.Success || result.RetryAfter != 3*time.Second {
		t.Errorf("result = %+v", result)
	}
}

func TestOpenAIClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","param":"","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(OpenAIConfig{APIKey: "bad", BaseURL: server.URL})
	_, err := client.Chat(context.Background(), &ChatRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %T: %v", err, err)
	}
	if !se.Unauthorized() {
		t.Errorf("Unauthorized() = false for status %d", se.StatusCode)
	}
}

func TestOpenAIClient_Config(t *testing.T) {
	c := NewOpenAIClient(OpenAIConfig{APIKey: "k"})
	if c.Name() != OpenAIName {
		t.Errorf("Name() = %q", c.Name())
	}
	if c.Model() != "gpt-4" {
		t.Errorf("Model() = %q, want gpt-4", c.Model())
	}
	c = NewOpenAIClient(OpenAIConfig{APIKey: "k", DefaultModel: "gpt-4o-mini"})
	if c.Model() != "gpt-4o-mini" {
		t.Errorf("Model() = %q", c.Model())
	}
}

func TestOpenAIIntegration(t *testing.T) {
	cfg := LoadTestConfig()
	if !cfg.HasOpenAI() {
		t.Skip("OPENAI_API_KEY not set")
	}

	client := NewOpenAIClient(OpenAIConfig{APIKey: cfg.OpenAIAPIKey, DefaultModel: "gpt-4o-mini"})
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := client.Chat(ctx, &ChatRequest{
		Messages:  []Message{{Role: RoleUser, Content: `Reply with the JSON object {"ok": true} and nothing else.`}},
		MaxTokens: 20,
	})
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if result.Content == "" {
		t.Error("empty content")
	}
}
