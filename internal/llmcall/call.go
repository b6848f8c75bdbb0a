// Package llmcall provides LLM call recording and querying for traceability.
// Every extraction call is recorded with its prompt key, response, and metrics.
package llmcall

import (
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/formfill/internal/providers"
)

// Call represents a recorded LLM API call.
type Call struct {
	// Unique identifier
	ID string `json:"id"`

	// Timing
	Timestamp time.Time `json:"timestamp"`
	LatencyMs int       `json:"latency_ms"`

	// Context references
	SessionID string `json:"session_id,omitempty"`
	FormID    string `json:"form_id,omitempty"`

	// Prompt traceability
	PromptKey  string `json:"prompt_key"`
	PromptHash string `json:"prompt_hash,omitempty"` // Hash of the template the prompt was rendered from

	// Model info
	Provider    string   `json:"provider"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`

	// Token usage
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`

	// Response
	Response string `json:"response"`

	// Status
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RecordOptions provides context for recording an LLM call.
type RecordOptions struct {
	// Context references (all optional)
	SessionID string
	FormID    string

	// Prompt identification (required for traceability)
	PromptKey  string
	PromptHash string

	// Request parameters (pointer to distinguish "not set" from "set to 0")
	Temperature *float64
}

// FromChatResult creates a Call from a ChatResult.
// Returns nil if result is nil.
func FromChatResult(result *providers.ChatResult, opts RecordOptions) *Call {
	if result == nil {
		return nil
	}

	call := &Call{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		LatencyMs:    int(result.ExecutionTime.Milliseconds()),
		SessionID:    opts.SessionID,
		FormID:       opts.FormID,
		PromptKey:    opts.PromptKey,
		PromptHash:   opts.PromptHash,
		Provider:     result.Provider,
		Model:        result.ModelUsed,
		InputTokens:  result.PromptTokens,
		OutputTokens: result.CompletionTokens,
		Response:     result.Content,
		Success:      result.Success,
		Temperature:  opts.Temperature,
	}

	if !result.Success {
		call.Error = result.ErrorMessage
	}

	return call
}
