package config

// Config holds formfill configuration.
// Stored at: {home}/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
	Server       ServerCfg                 `mapstructure:"server" yaml:"server"`
}

// LLMProviderCfg configures an LLM provider.
type LLMProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                                   // "openai", "gemini", "mock"
	Model          string `mapstructure:"model" yaml:"model"`                                 // Model name
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                             // API key (supports ${ENV_VAR} syntax)
	BaseURL        string `mapstructure:"base_url" yaml:"base_url,omitempty"`                 // Optional gateway URL
	RateLimit      int    `mapstructure:"rate_limit" yaml:"rate_limit"`                       // Requests per minute
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"`   // Per request timeout
	MaxRetries     int    `mapstructure:"max_retries" yaml:"max_retries,omitempty"`           // SDK-level retries for transport errors
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default provider selections and extraction settings.
type DefaultsCfg struct {
	LLMProvider     string  `mapstructure:"llm_provider" yaml:"llm_provider"`         // Default LLM provider
	Model           string  `mapstructure:"model" yaml:"model,omitempty"`             // Overrides the provider's model
	Temperature     float64 `mapstructure:"temperature" yaml:"temperature"`           // Extraction temperature
	FormMaxTokens   int     `mapstructure:"form_max_tokens" yaml:"form_max_tokens"`   // Token ceiling, single form
	WizardMaxTokens int     `mapstructure:"wizard_max_tokens" yaml:"wizard_max_tokens"` // Token ceiling, wizard
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`   // Provider timeout when unset per provider
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openai": {
				Type:    "openai",
				Model:   "gpt-4",
				APIKey:  "${OPENAI_API_KEY}",
				Enabled: true,
			},
			"gemini": {
				Type:    "gemini",
				Model:   "gemini-2.5-flash",
				APIKey:  "${GEMINI_API_KEY}",
				Enabled: true,
			},
		},
		Defaults: DefaultsCfg{
			LLMProvider:     "openai",
			Temperature:     0.3,
			FormMaxTokens:   500,
			WizardMaxTokens: 1000,
			TimeoutSeconds:  120,
		},
		Server: ServerCfg{
			Host: "127.0.0.1",
			Port: "8080",
		},
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// EnabledLLMProviders returns all enabled LLM providers.
func (c *Config) EnabledLLMProviders() map[string]LLMProviderCfg {
	result := make(map[string]LLMProviderCfg)
	for name, cfg := range c.LLMProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}
