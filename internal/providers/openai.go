package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIName         = "openai"
	openAIDefaultModel = "gpt-4"
)

// OpenAIConfig holds configuration for the OpenAI chat client.
type OpenAIConfig struct {
	APIKey       string
	DefaultModel string        // "gpt-4" (default)
	RPM          int           // Requests per minute (0 = unlimited)
	MaxRetries   int           // SDK transport retries (0 = none)
	Timeout      time.Duration // HTTP timeout
	BaseURL      string        // Optional, for compatible gateways and tests
	HTTPClient   *http.Client  // Optional (tests)
}

// OpenAIClient implements LLMClient using the official OpenAI SDK.
type OpenAIClient struct {
	apiKey       string
	defaultModel string
	baseURL      string
	rpm          int
	limiter      *RateLimiter
	client       openai.Client
}

// NewOpenAIClient creates a new OpenAI chat client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = openAIDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	c := &OpenAIClient{
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
		baseURL:      cfg.BaseURL,
		rpm:          cfg.RPM,
		client:       openai.NewClient(opts...),
	}
	if cfg.RPM > 0 {
		c.limiter = NewRateLimiter(cfg.RPM)
	}
	return c
}

// Name returns the client identifier.
func (c *OpenAIClient) Name() string {
	return OpenAIName
}

// Model returns the configured default model.
func (c *OpenAIClient) Model() string {
	return c.defaultModel
}

// Chat sends a chat completion request.
func (c *OpenAIClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	result := &ChatResult{
		RequestID: requestID,
		Provider:  OpenAIName,
		ModelUsed: model,
		Attempts:  1,
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return result.fail(start, "context_cancelled", err)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
	}
	params.Temperature = openai.Float(req.Temperature)
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	var reqOpts []option.RequestOption
	if req.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(req.Timeout))
	}

	execStart := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params, reqOpts...)
	result.ExecutionTime = time.Since(execStart)
	if err != nil {
		mapped := mapOpenAIError(err)
		if rle, ok := IsRateLimitError(mapped); ok && c.limiter != nil {
			c.limiter.Record429(rle.RetryAfter)
		}
		return result.fail(start, "http_error", mapped)
	}

	if len(resp.Choices) == 0 {
		return result.fail(start, "empty_response", fmt.Errorf("no choices in response"))
	}

	result.Success = true
	result.Content = resp.Choices[0].Message.Content
	if resp.Model != "" {
		result.ModelUsed = resp.Model
	}
	result.PromptTokens = int(resp.Usage.PromptTokens)
	result.CompletionTokens = int(resp.Usage.CompletionTokens)
	result.TotalTokens = int(resp.Usage.TotalTokens)
	result.TotalTime = time.Since(start)
	return result, nil
}

func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			retryAfter := time.Duration(0)
			if apiErr.Response != nil {
				retryAfter = parseRetryAfter(apiErr.Response.Header.Get("Retry-After"))
			}
			return &RateLimitError{
				Message:    fmt.Sprintf("OpenAI rate limited: %s", apiErr.Message),
				RetryAfter: retryAfter,
				StatusCode: apiErr.StatusCode,
			}
		}
		return &StatusError{Provider: "OpenAI", StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	return err
}

var _ LLMClient = (*OpenAIClient)(nil)
