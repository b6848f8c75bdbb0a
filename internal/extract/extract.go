// Package extract turns a free-text description into form field values by
// asking a completion provider for a JSON object shaped by the form schema.
//
// Every failure is non-fatal: Extract always returns a usable (possibly
// empty) Result alongside the error, so callers can keep manual entry
// working when the service is unavailable.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/llmcall"
	"github.com/jackzampolin/formfill/internal/prompts"
	"github.com/jackzampolin/formfill/internal/prompts/fill"
	"github.com/jackzampolin/formfill/internal/providers"
)

// Defaults for the completion request.
const (
	DefaultTemperature     = 0.3
	DefaultFormMaxTokens   = 500
	DefaultWizardMaxTokens = 1000
)

// Sentinel errors. Returned errors wrap one of these.
var (
	ErrEmptyDescription  = errors.New("please enter a description first")
	ErrMissingCredential = errors.New("no completion provider configured")
	ErrServiceCall       = errors.New("completion service call failed")
	ErrMalformedResponse = errors.New("completion reply is not a JSON object")
)

// Variant names the reply shape requested from the provider.
type Variant string

const (
	// VariantForm is a flat field → value object (single page forms).
	VariantForm Variant = "form"
	// VariantWizard nests values under supported_fields and lists
	// unmodeled information in unsupported_fields.
	VariantWizard Variant = "wizard"
)

// VariantOf returns the variant used for schema.
func VariantOf(schema *forms.FormSchema) Variant {
	if schema.MultiPage() {
		return VariantWizard
	}
	return VariantForm
}

// Result is the outcome of one extraction.
type Result struct {
	Supported   map[string]any `json:"supported_fields"`
	Unsupported []string       `json:"unsupported_fields"`
	Variant     Variant        `json:"variant"`
	Provider    string         `json:"provider,omitempty"`
	Model       string         `json:"model,omitempty"`
	CallID      string         `json:"call_id,omitempty"`
	// Gaps lists places where the reply does not match the form's JSON
	// schema. They are informational; the renderer absorbs them.
	Gaps []string `json:"gaps,omitempty"`
}

// Empty reports whether nothing was extracted.
func (r *Result) Empty() bool {
	return len(r.Supported) == 0 && len(r.Unsupported) == 0
}

func emptyResult(v Variant) *Result {
	return &Result{
		Supported:   map[string]any{},
		Unsupported: []string{},
		Variant:     v,
	}
}

// Options configures a Client.
type Options struct {
	Provider        string // registry name; empty picks the first registered provider
	Model           string // empty uses the provider's default model
	Temperature     float64
	FormMaxTokens   int
	WizardMaxTokens int
	Recorder        *llmcall.Recorder
	Logger          *slog.Logger
}

// Client performs extractions against providers from a registry.
type Client struct {
	registry *providers.Registry
	recorder *llmcall.Recorder
	logger   *slog.Logger

	mu   sync.RWMutex
	opts Options

	validators *validatorCache
}

// New creates an extraction client.
func New(registry *providers.Registry, opts Options) *Client {
	if opts.Temperature == 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.FormMaxTokens == 0 {
		opts.FormMaxTokens = DefaultFormMaxTokens
	}
	if opts.WizardMaxTokens == 0 {
		opts.WizardMaxTokens = DefaultWizardMaxTokens
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		registry:   registry,
		recorder:   opts.Recorder,
		logger:     logger,
		opts:       opts,
		validators: newValidatorCache(),
	}
}

// SetDefaults changes the provider and model used by later calls.
func (c *Client) SetDefaults(provider, model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Provider = provider
	c.opts.Model = model
}

// Defaults returns the configured provider and model names.
func (c *Client) Defaults() (provider, model string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts.Provider, c.opts.Model
}

// CallOption adds traceability context to a single call.
type CallOption func(*llmcall.RecordOptions)

// WithSessionID tags the recorded call with a session.
func WithSessionID(id string) CallOption {
	return func(o *llmcall.RecordOptions) { o.SessionID = id }
}

// Extract sends text to the completion provider using the prompt for
// schema and parses the reply. The returned Result is never nil.
func (c *Client) Extract(ctx context.Context, text string, schema *forms.FormSchema, opts ...CallOption) (*Result, error) {
	if schema == nil {
		return emptyResult(VariantForm), fmt.Errorf("nil form schema")
	}
	variant := VariantOf(schema)
	result := emptyResult(variant)

	text = prompts.CleanDescription(text)
	if text == "" {
		return result, ErrEmptyDescription
	}

	client, model, err := c.provider()
	if err != nil {
		return result, err
	}
	result.Provider = client.Name()

	key, system, err := fill.Build(schema)
	if err != nil {
		return result, fmt.Errorf("failed to build prompt: %w", err)
	}

	c.mu.RLock()
	temperature := c.opts.Temperature
	maxTokens := c.opts.FormMaxTokens
	if variant == VariantWizard {
		maxTokens = c.opts.WizardMaxTokens
	}
	c.mu.RUnlock()

	req := &providers.ChatRequest{
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []providers.Message{
			{Role: providers.RoleSystem, Content: system},
			{Role: providers.RoleUser, Content: text},
		},
	}

	chat, chatErr := client.Chat(ctx, req)

	rec := llmcall.RecordOptions{
		FormID:      schema.ID,
		PromptKey:   key,
		Temperature: &temperature,
	}
	if tmpl, ok := fill.Template(key); ok {
		rec.PromptHash = prompts.HashText(tmpl)
	}
	for _, o := range opts {
		o(&rec)
	}
	if call := c.recorder.Record(chat, rec); call != nil {
		result.CallID = call.ID
	}

	if chat != nil {
		result.Model = chat.ModelUsed
	}
	if chatErr != nil {
		c.logger.Warn("extraction failed", "form", schema.ID, "provider", client.Name(), "error", chatErr)
		return result, fmt.Errorf("%w: %w", ErrServiceCall, chatErr)
	}

	parsed, err := parseReply(chat.Content, variant)
	if err != nil {
		c.logger.Warn("extraction reply rejected", "form", schema.ID, "provider", client.Name(), "error", err)
		return result, err
	}
	result.Supported = parsed.Supported
	result.Unsupported = parsed.Unsupported

	result.Gaps = c.validators.check(schema, chat.Content)
	if len(result.Gaps) > 0 {
		c.logger.Debug("extraction reply does not match form schema", "form", schema.ID, "gaps", result.Gaps)
	}

	c.logger.Info("extraction complete",
		"form", schema.ID,
		"provider", result.Provider,
		"model", result.Model,
		"fields", len(result.Supported),
		"unsupported", len(result.Unsupported))
	return result, nil
}

// provider resolves the client to call and the model to ask for. When the
// configured provider is not registered (its key is unset), the first
// registered one is used with its own default model.
func (c *Client) provider() (providers.LLMClient, string, error) {
	if c.registry == nil {
		return nil, "", ErrMissingCredential
	}
	c.mu.RLock()
	name, model := c.opts.Provider, c.opts.Model
	c.mu.RUnlock()

	if name != "" {
		if client, err := c.registry.GetLLM(name); err == nil {
			return client, model, nil
		}
	}
	names := c.registry.ListLLM()
	if len(names) == 0 {
		if name != "" {
			return nil, "", fmt.Errorf("%w: %s is not configured", ErrMissingCredential, name)
		}
		return nil, "", ErrMissingCredential
	}
	client, err := c.registry.GetLLM(names[0])
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}
	if name != "" {
		c.logger.Warn("configured provider not available, using fallback",
			"configured", name, "provider", names[0])
		model = ""
	}
	return client, model, nil
}

// parseReply decodes the raw reply. The reply must be exactly one JSON
// object; surrounding prose or code fences make it malformed.
func parseReply(content string, variant Variant) (*Result, error) {
	var decoded any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrMalformedResponse, decoded)
	}

	out := emptyResult(variant)
	if variant == VariantForm {
		out.Supported = obj
		return out, nil
	}

	if raw, ok := obj["supported_fields"]; ok && raw != nil {
		supported, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: supported_fields is %T", ErrMalformedResponse, raw)
		}
		out.Supported = supported
	}
	if raw, ok := obj["unsupported_fields"]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported_fields is %T", ErrMalformedResponse, raw)
		}
		for _, item := range items {
			s, err := cast.ToStringE(item)
			if err != nil || s == "" {
				continue
			}
			out.Unsupported = append(out.Unsupported, s)
		}
	}
	return out, nil
}

// Notice converts an extraction error into the message shown to the user.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyDescription):
		return "Please enter a description first."
	case errors.Is(err, ErrMissingCredential):
		return "No completion provider is configured; fill the form manually."
	case errors.Is(err, ErrMalformedResponse):
		return "The completion service returned an unreadable reply; no fields were filled."
	case errors.Is(err, ErrServiceCall):
		return "Error calling completion service: " + strings.TrimPrefix(err.Error(), ErrServiceCall.Error()+": ")
	default:
		return err.Error()
	}
}
