package providers

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get LLM", func(t *testing.T) {
		r := NewRegistry()
		mock := NewMockClient()

		r.RegisterLLM("test-llm", mock)

		client, err := r.GetLLM("test-llm")
		if err != nil {
			t.Fatalf("GetLLM() error = %v", err)
		}
		if client != mock {
			t.Error("got different client than registered")
		}
	})

	t.Run("get nonexistent LLM", func(t *testing.T) {
		r := NewRegistry()
		if _, err := r.GetLLM("nonexistent"); err == nil {
			t.Error("expected error for nonexistent LLM")
		}
	})

	t.Run("list sorted", func(t *testing.T) {
		r := NewRegistry()
		r.RegisterLLM("zeta", NewMockClient())
		r.RegisterLLM("alpha", NewMockClient())

		if diff := cmp.Diff([]string{"alpha", "zeta"}, r.ListLLM()); diff != "" {
			t.Errorf("ListLLM() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unregister", func(t *testing.T) {
		r := NewRegistry()
		r.RegisterLLM("x", NewMockClient())
		r.UnregisterLLM("x")
		if r.HasLLM("x") {
			t.Error("HasLLM(x) = true after unregister")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		r := NewRegistry()
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				r.RegisterLLM("mock", NewMockClient())
			}()
			go func() {
				defer wg.Done()
				_ = r.ListLLM()
				_ = r.HasLLM("mock")
			}()
		}
		wg.Wait()
	})
}

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := RegistryConfig{
		LLMProviders: map[string]LLMProviderConfig{
			"openai":   {Type: OpenAIName, APIKey: "sk-1", Model: "gpt-4", Enabled: true},
			"gemini":   {Type: GeminiName, APIKey: "", Enabled: true},
			"disabled": {Type: OpenAIName, APIKey: "sk-2", Enabled: false},
			"mock":     {Type: MockClientName, Enabled: true},
			"unknown":  {Type: "carrier-pigeon", APIKey: "k", Enabled: true},
		},
	}

	r := NewRegistryFromConfig(cfg)

	if diff := cmp.Diff([]string{"mock", "openai"}, r.ListLLM()); diff != "" {
		t.Errorf("ListLLM() mismatch (-want +got):\n%s", diff)
	}
	client, _ := r.GetLLM("openai")
	if _, ok := client.(*OpenAIClient); !ok {
		t.Errorf("openai client is %T", client)
	}
}

func TestRegistry_Reload(t *testing.T) {
	base := LLMProviderConfig{Type: OpenAIName, APIKey: "sk-1", Model: "gpt-4", Timeout: time.Minute, Enabled: true}
	r := NewRegistryFromConfig(RegistryConfig{LLMProviders: map[string]LLMProviderConfig{"openai": base}})
	before, _ := r.GetLLM("openai")

	t.Run("unchanged config keeps client", func(t *testing.T) {
		r.Reload(RegistryConfig{LLMProviders: map[string]LLMProviderConfig{"openai": base}})
		after, _ := r.GetLLM("openai")
		if after != before {
			t.Error("client replaced although config did not change")
		}
	})

	t.Run("changed key replaces client", func(t *testing.T) {
		changed := base
		changed.APIKey = "sk-2"
		r.Reload(RegistryConfig{LLMProviders: map[string]LLMProviderConfig{"openai": changed}})
		after, _ := r.GetLLM("openai")
		if after == before {
			t.Error("client not replaced after key change")
		}
	})

	t.Run("manual registrations survive", func(t *testing.T) {
		r.RegisterLLM("manual", NewMockClient())
		r.Reload(RegistryConfig{})
		if r.HasLLM("openai") {
			t.Error("openai still registered after removal from config")
		}
		if !r.HasLLM("manual") {
			t.Error("manually registered client removed by reload")
		}
	})

	t.Run("missing key unregisters", func(t *testing.T) {
		r.Reload(RegistryConfig{LLMProviders: map[string]LLMProviderConfig{"openai": base}})
		noKey := base
		noKey.APIKey = ""
		r.Reload(RegistryConfig{LLMProviders: map[string]LLMProviderConfig{"openai": noKey}})
		if r.HasLLM("openai") {
			t.Error("openai registered without a key")
		}
	})
}
