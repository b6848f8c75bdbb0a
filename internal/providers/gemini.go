package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

const (
	GeminiName         = "gemini"
	geminiDefaultModel = "gemini-2.5-flash"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey       string
	DefaultModel string        // "gemini-2.5-flash" (default)
	RPM          int           // Requests per minute (0 = unlimited)
	Timeout      time.Duration // HTTP timeout
	BaseURL      string        // Optional (tests)
	HTTPClient   *http.Client  // Optional (tests)
}

// GeminiClient implements LLMClient on the Google GenAI SDK.
// The SDK client is created lazily on first use since construction needs a
// context and may fail.
type GeminiClient struct {
	apiKey       string
	defaultModel string
	baseURL      string
	rpm          int
	timeout      time.Duration
	httpClient   *http.Client
	limiter      *RateLimiter

	once    sync.Once
	client  *genai.Client
	initErr error
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = geminiDefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &GeminiClient{
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
		baseURL:      cfg.BaseURL,
		rpm:          cfg.RPM,
		timeout:      cfg.Timeout,
		httpClient:   httpClient,
	}
	if cfg.RPM > 0 {
		c.limiter = NewRateLimiter(cfg.RPM)
	}
	return c
}

// Name returns the client identifier.
func (c *GeminiClient) Name() string {
	return GeminiName
}

// Model returns the configured default model.
func (c *GeminiClient) Model() string {
	return c.defaultModel
}

func (c *GeminiClient) sdk(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		cc := &genai.ClientConfig{
			APIKey:     c.apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.httpClient,
		}
		if c.baseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
		}
		c.client, c.initErr = genai.NewClient(ctx, cc)
	})
	if c.initErr != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", c.initErr)
	}
	return c.client, nil
}

// Chat sends the conversation to GenerateContent. System messages become the
// system instruction; assistant messages map to the model role.
func (c *GeminiClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
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
		Provider:  GeminiName,
		ModelUsed: model,
		Attempts:  1,
	}

	client, err := c.sdk(ctx)
	if err != nil {
		return result.fail(start, "client_error", err)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return result.fail(start, "context_cancelled", err)
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	var system []string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	execStart := time.Now()
	resp, err := client.Models.GenerateContent(ctx, model, contents, cfg)
	result.ExecutionTime = time.Since(execStart)
	if err != nil {
		mapped := mapGeminiError(err)
		if rle, ok := IsRateLimitError(mapped); ok && c.limiter != nil {
			c.limiter.Record429(rle.RetryAfter)
		}
		return result.fail(start, "http_error", mapped)
	}
	if len(resp.Candidates) == 0 {
		return result.fail(start, "empty_response", fmt.Errorf("no candidates in response"))
	}

	result.Success = true
	result.Content = resp.Text()
	if resp.ModelVersion != "" {
		result.ModelUsed = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		result.PromptTokens = int(u.PromptTokenCount)
		result.CompletionTokens = int(u.CandidatesTokenCount)
		result.TotalTokens = int(u.TotalTokenCount)
	}
	result.TotalTime = time.Since(start)
	return result, nil
}

func mapGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return &RateLimitError{
				Message:    fmt.Sprintf("Gemini rate limited: %s", apiErr.Message),
				StatusCode: apiErr.Code,
			}
		}
		return &StatusError{Provider: "Gemini", StatusCode: apiErr.Code, Message: apiErr.Message}
	}
	return err
}

var _ LLMClient = (*GeminiClient)(nil)
