package prompts

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Resolver holds the registered embedded prompts.
type Resolver struct {
	embedded map[string]EmbeddedPrompt
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewResolver creates a new prompt resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		embedded: make(map[string]EmbeddedPrompt),
		logger:   logger,
	}
}

// Register registers an embedded prompt.
// This should be called during initialization by each prompt package.
func (r *Resolver) Register(prompt EmbeddedPrompt) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Compute hash if not provided
	if prompt.Hash == "" {
		prompt.Hash = HashText(prompt.Text)
	}

	// Extract variables if not provided
	if prompt.Variables == nil {
		prompt.Variables = ExtractVariables(prompt.Text)
	}

	r.embedded[prompt.Key] = prompt
	r.logger.Debug("registered embedded prompt", "key", prompt.Key, "vars", prompt.Variables)
}

// Resolve returns the registered prompt for key.
func (r *Resolver) Resolve(key string) (*ResolvedPrompt, error) {
	r.mu.RLock()
	embedded, ok := r.embedded[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", key)
	}

	return &ResolvedPrompt{
		Key:       key,
		Text:      embedded.Text,
		Variables: embedded.Variables,
		Hash:      embedded.Hash,
	}, nil
}

// GetEmbedded returns the embedded prompt for a key.
func (r *Resolver) GetEmbedded(key string) (*EmbeddedPrompt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.embedded[key]
	return &p, ok
}

// AllEmbedded returns all registered embedded prompts sorted by key.
func (r *Resolver) AllEmbedded() []EmbeddedPrompt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]EmbeddedPrompt, 0, len(r.embedded))
	for _, p := range r.embedded {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result
}

// List returns the listing view of every registered prompt.
func (r *Resolver) List() []Prompt {
	all := r.AllEmbedded()
	out := make([]Prompt, 0, len(all))
	for _, p := range all {
		out = append(out, Prompt{
			Key:         p.Key,
			Text:        p.Text,
			Description: p.Description,
			Variables:   p.Variables,
			Hash:        p.Hash,
		})
	}
	return out
}
