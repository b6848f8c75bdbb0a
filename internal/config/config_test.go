package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gopkg.in/yaml.v2"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	openai, ok := cfg.GetLLMProvider("openai")
	if !ok {
		t.Fatal("expected default openai provider")
	}
	if openai.APIKey != "${OPENAI_API_KEY}" {
		t.Errorf("expected openai API key placeholder, got %s", openai.APIKey)
	}
	if cfg.Defaults.LLMProvider != "openai" {
		t.Errorf("expected default provider openai, got %s", cfg.Defaults.LLMProvider)
	}
	if cfg.Defaults.Temperature != 0.3 || cfg.Defaults.FormMaxTokens != 500 || cfg.Defaults.WizardMaxTokens != 1000 {
		t.Errorf("unexpected extraction defaults: %+v", cfg.Defaults)
	}
	if len(cfg.EnabledLLMProviders()) != 2 {
		t.Errorf("expected 2 enabled providers, got %d", len(cfg.EnabledLLMProviders()))
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "secret123")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestToProviderRegistryConfig(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-123")

	cfg := &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openai": {Type: "openai", Model: "gpt-4", APIKey: "${TEST_OPENAI_KEY}", Enabled: true},
			"gemini": {Type: "gemini", APIKey: "literal", TimeoutSeconds: 30, Enabled: true},
		},
		Defaults: DefaultsCfg{TimeoutSeconds: 120},
	}

	rc := cfg.ToProviderRegistryConfig()
	if rc.LLMProviders["openai"].APIKey != "sk-123" {
		t.Errorf("expected resolved key, got %s", rc.LLMProviders["openai"].APIKey)
	}
	if rc.LLMProviders["openai"].Timeout != 120*time.Second {
		t.Errorf("expected default timeout, got %s", rc.LLMProviders["openai"].Timeout)
	}
	if rc.LLMProviders["gemini"].Timeout != 30*time.Second {
		t.Errorf("expected provider timeout, got %s", rc.LLMProviders["gemini"].Timeout)
	}
	if rc.LLMProviders["gemini"].APIKey != "literal" {
		t.Errorf("expected literal key, got %s", rc.LLMProviders["gemini"].APIKey)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return configFile
}

func TestNewManager(t *testing.T) {
	t.Run("loads from config file", func(t *testing.T) {
		configFile := writeConfig(t, `
llm_providers:
  local:
    type: openai
    model: llama3
    api_key: "test_value"
    base_url: http://localhost:11434/v1
    enabled: true
defaults:
  llm_provider: local
`)

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}

		cfg := mgr.Get()
		local, ok := cfg.GetLLMProvider("local")
		if !ok {
			t.Fatal("expected local provider")
		}
		if local.BaseURL != "http://localhost:11434/v1" {
			t.Errorf("expected base url, got %s", local.BaseURL)
		}
		if cfg.Defaults.LLMProvider != "local" {
			t.Errorf("expected local default, got %s", cfg.Defaults.LLMProvider)
		}
		// unset keys keep their defaults
		if cfg.Defaults.WizardMaxTokens != 1000 {
			t.Errorf("expected default wizard tokens, got %d", cfg.Defaults.WizardMaxTokens)
		}
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("FORMFILL_DEFAULTS_LLM_PROVIDER", "gemini")
		configFile := writeConfig(t, "server:\n  port: \"9090\"\n")

		mgr, err := NewManager(configFile)
		if err != nil {
			t.Fatalf("failed to create manager: %v", err)
		}
		if got := mgr.Get().Defaults.LLMProvider; got != "gemini" {
			t.Errorf("expected gemini from env, got %s", got)
		}
		if got := mgr.Get().Server.Port; got != "9090" {
			t.Errorf("expected port 9090, got %s", got)
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		configFile := writeConfig(t, "llm_providers: [unclosed")
		if _, err := NewManager(configFile); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestManager_OnChange_Multiple(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "defaults:\n  llm_provider: openai\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})
	mgr.OnChange(func(cfg *Config) {})

	mgr.mu.RLock()
	if len(mgr.callbacks) != 3 {
		t.Errorf("expected 3 callbacks, got %d", len(mgr.callbacks))
	}
	mgr.mu.RUnlock()
}

func TestManager_Get_ThreadSafe(t *testing.T) {
	mgr, err := NewManager(writeConfig(t, "defaults:\n  llm_provider: openai\n"))
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				cfg := mgr.Get()
				_ = cfg.Defaults.LLMProvider
			}
			done <- struct{}{}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestManager_WatchConfig(t *testing.T) {
	configFile := writeConfig(t, "defaults:\n  llm_provider: initial\n")

	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	if got := mgr.Get().Defaults.LLMProvider; got != "initial" {
		t.Fatalf("initial value mismatch: got %s", got)
	}

	var callbackCount atomic.Int32
	var lastValue atomic.Value
	mgr.OnChange(func(cfg *Config) {
		callbackCount.Add(1)
		lastValue.Store(cfg.Defaults.LLMProvider)
	})

	mgr.WatchConfig()

	// Give fsnotify time to set up the watcher
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(configFile, []byte("defaults:\n  llm_provider: updated\n"), 0644); err != nil {
		t.Fatalf("failed to write updated config file: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if callbackCount.Load() > 0 {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}

	if callbackCount.Load() == 0 {
		t.Fatal("callback was not invoked after config file change")
	}
	if v, _ := lastValue.Load().(string); v != "updated" {
		t.Errorf("expected updated, got %v", v)
	}
	if got := mgr.Get().Defaults.LLMProvider; got != "updated" {
		t.Errorf("manager not updated: got %s", got)
	}
}

func TestManager_Reload(t *testing.T) {
	configFile := writeConfig(t, "defaults:\n  llm_provider: openai\n")
	mgr, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	var got string
	mgr.OnChange(func(cfg *Config) { got = cfg.Defaults.LLMProvider })

	if err := os.WriteFile(configFile, []byte("defaults:\n  llm_provider: gemini\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	if err := mgr.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got != "gemini" {
		t.Errorf("callback saw %q, want gemini", got)
	}
	if mgr.Get().Defaults.LLMProvider != "gemini" {
		t.Errorf("Get() = %q, want gemini", mgr.Get().Defaults.LLMProvider)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}
	if !strings.HasPrefix(string(data), "# formfill configuration") {
		t.Error("expected header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if cfg.LLMProviders["gemini"].APIKey != "${GEMINI_API_KEY}" {
		t.Errorf("expected gemini key placeholder, got %s", cfg.LLMProviders["gemini"].APIKey)
	}
}

func TestEntries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLMProviders["local"] = LLMProviderCfg{Type: "openai", APIKey: "sk-literal", Enabled: true}

	entries := cfg.Entries()
	byKey := make(map[string]Entry, len(entries))
	for i, e := range entries {
		if i > 0 && entries[i-1].Key >= e.Key {
			t.Fatalf("entries not sorted at %s", e.Key)
		}
		byKey[e.Key] = e
	}

	if byKey["llm_providers.openai.api_key"].Value != "${OPENAI_API_KEY}" {
		t.Errorf("env reference should be shown, got %v", byKey["llm_providers.openai.api_key"].Value)
	}
	if byKey["llm_providers.local.api_key"].Value != "***" {
		t.Errorf("literal key should be redacted, got %v", byKey["llm_providers.local.api_key"].Value)
	}
	if byKey["defaults.temperature"].Description == "" {
		t.Error("expected description for defaults.temperature")
	}

	got, err := cfg.EntriesByPrefix("defaults.")
	if err != nil {
		t.Fatalf("EntriesByPrefix() error = %v", err)
	}
	if len(got) != 6 {
		t.Errorf("expected 6 defaults entries, got %d", len(got))
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"defaults.llm_provider", false},
		{"llm_providers.my-gateway.model", false},
		{"", true},
		{"bad key", true},
		{"bad..key", true},
		{".leading", true},
		{"semi;colon", true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidKey) {
				t.Errorf("expected ErrInvalidKey, got %v", err)
			}
		})
	}
}
