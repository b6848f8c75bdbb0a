package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if strings.HasPrefix(key, ".") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: malformed dots in %q", ErrInvalidKey, key)
	}
	return nil
}

// Entry is one flattened configuration setting.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

var descriptions = map[string]string{
	"defaults.llm_provider":      "Provider used for extraction",
	"defaults.model":             "Model override for the default provider",
	"defaults.temperature":       "Sampling temperature for extraction calls",
	"defaults.form_max_tokens":   "Token ceiling for single form extraction",
	"defaults.wizard_max_tokens": "Token ceiling for multi-page extraction",
	"defaults.timeout_seconds":   "Provider timeout when a provider sets none",
	"server.host":                "HTTP listen host",
	"server.port":                "HTTP listen port",
	"type":                       "Provider type: openai, gemini or mock",
	"model":                      "Model name",
	"api_key":                    "API key (supports ${ENV_VAR} syntax)",
	"base_url":                   "Optional API endpoint override",
	"rate_limit":                 "Requests per minute (0 = unlimited)",
	"timeout_seconds":            "HTTP timeout in seconds",
	"max_retries":                "Transport retry attempts",
	"enabled":                    "Whether the provider is enabled",
}

// Entries flattens the configuration into sorted key/value entries. API
// keys are reported as their unresolved ${ENV_VAR} reference, or "***" when
// the file holds a literal secret.
func (c *Config) Entries() []Entry {
	var out []Entry
	add := func(key string, value any, descKey string) {
		out = append(out, Entry{Key: key, Value: value, Description: descriptions[descKey]})
	}

	d := c.Defaults
	add("defaults.llm_provider", d.LLMProvider, "defaults.llm_provider")
	add("defaults.model", d.Model, "defaults.model")
	add("defaults.temperature", d.Temperature, "defaults.temperature")
	add("defaults.form_max_tokens", d.FormMaxTokens, "defaults.form_max_tokens")
	add("defaults.wizard_max_tokens", d.WizardMaxTokens, "defaults.wizard_max_tokens")
	add("defaults.timeout_seconds", d.TimeoutSeconds, "defaults.timeout_seconds")
	add("server.host", c.Server.Host, "server.host")
	add("server.port", c.Server.Port, "server.port")

	for name, p := range c.LLMProviders {
		prefix := "llm_providers." + name + "."
		add(prefix+"type", p.Type, "type")
		add(prefix+"model", p.Model, "model")
		add(prefix+"api_key", redact(p.APIKey), "api_key")
		add(prefix+"base_url", p.BaseURL, "base_url")
		add(prefix+"rate_limit", p.RateLimit, "rate_limit")
		add(prefix+"timeout_seconds", p.TimeoutSeconds, "timeout_seconds")
		add(prefix+"max_retries", p.MaxRetries, "max_retries")
		add(prefix+"enabled", p.Enabled, "enabled")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// EntriesByPrefix returns the entries whose key starts with prefix.
func (c *Config) EntriesByPrefix(prefix string) ([]Entry, error) {
	if prefix != "" {
		if err := ValidateKey(prefix); err != nil {
			return nil, err
		}
	}
	var out []Entry
	for _, e := range c.Entries() {
		if strings.HasPrefix(e.Key, prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

func redact(key string) string {
	if key == "" || envPattern.MatchString(key) && envPattern.ReplaceAllString(key, "") == "" {
		return key
	}
	return "***"
}
