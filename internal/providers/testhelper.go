package providers

import (
	"os"
)

// TestConfig holds provider credentials loaded from environment variables so
// live tests use the same configuration pattern as production.
type TestConfig struct {
	OpenAIAPIKey string
	GeminiAPIKey string
}

// LoadTestConfig loads provider API keys from environment variables.
// Returns a TestConfig with whatever keys are available.
func LoadTestConfig() TestConfig {
	return TestConfig{
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
}

// HasOpenAI returns true if an OpenAI API key is configured.
func (c TestConfig) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasGemini returns true if a Gemini API key is configured.
func (c TestConfig) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

// HasAnyLLM returns true if any LLM provider is configured.
func (c TestConfig) HasAnyLLM() bool {
	return c.HasOpenAI() || c.HasGemini()
}

// ToRegistryConfig converts test config to a RegistryConfig for the provider registry.
// Only includes providers that have API keys configured.
func (c TestConfig) ToRegistryConfig() RegistryConfig {
	cfg := RegistryConfig{
		LLMProviders: make(map[string]LLMProviderConfig),
	}
	if c.HasOpenAI() {
		cfg.LLMProviders[OpenAIName] = LLMProviderConfig{
			Type:    OpenAIName,
			APIKey:  c.OpenAIAPIKey,
			Enabled: true,
		}
	}
	if c.HasGemini() {
		cfg.LLMProviders[GeminiName] = LLMProviderConfig{
			Type:    GeminiName,
			APIKey:  c.GeminiAPIKey,
			Enabled: true,
		}
	}
	return cfg
}
