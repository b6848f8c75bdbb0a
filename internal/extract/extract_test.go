package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/llmcall"
	"github.com/jackzampolin/formfill/internal/prompts/fill"
	"github.com/jackzampolin/formfill/internal/providers"
)

func form(t *testing.T, id string) *forms.FormSchema {
	t.Helper()
	f, ok := forms.Default().Form(id)
	if !ok {
		t.Fatalf("form %q not found", id)
	}
	return f
}

func setup(t *testing.T, reply string) (*Client, *providers.MockClient, *llmcall.Store) {
	t.Helper()
	mock := providers.NewMockClient()
	mock.ResponseText = reply
	reg := providers.NewRegistry()
	reg.RegisterLLM("mock", mock)
	store := llmcall.NewStore(10)
	c := New(reg, Options{Provider: "mock", Model: "test-model", Recorder: llmcall.NewRecorder(store)})
	return c, mock, store
}

func TestExtract_Form(t *testing.T) {
	c, mock, store := setup(t, `{"name": "Ada Lovelace", "age": 36, "country": "United Kingdom", "is_active": true}`)

	res, err := c.Extract(context.Background(), "Ada, 36, lives in London, active customer", form(t, "customer_info"), WithSessionID("s1"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := map[string]any{
		"name":      "Ada Lovelace",
		"age":       float64(36),
		"country":   "United Kingdom",
		"is_active": true,
	}
	if diff := cmp.Diff(want, res.Supported); diff != "" {
		t.Errorf("Supported mismatch (-want +got):\n%s", diff)
	}
	if res.Variant != VariantForm {
		t.Errorf("Variant = %s, want form", res.Variant)
	}
	if len(res.Gaps) != 0 {
		t.Errorf("Gaps = %v, want none", res.Gaps)
	}

	req, _ := mock.LastRequest()
	if req.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", req.Temperature)
	}
	if req.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d, want 500", req.MaxTokens)
	}
	if req.Model != "test-model" {
		t.Errorf("Model = %s", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != providers.RoleSystem || req.Messages[1].Role != providers.RoleUser {
		t.Fatalf("Messages = %+v", req.Messages)
	}
	if req.Messages[1].Content != "Ada, 36, lives in London, active customer" {
		t.Errorf("user message = %q", req.Messages[1].Content)
	}

	calls, _ := store.List(llmcall.QueryFilter{})
	if len(calls) != 1 {
		t.Fatalf("recorded %d calls, want 1", len(calls))
	}
	if calls[0].ID != res.CallID || calls[0].SessionID != "s1" || calls[0].FormID != "customer_info" {
		t.Errorf("recorded call = %+v", calls[0])
	}
	if calls[0].PromptKey != fill.FormPromptKey || calls[0].PromptHash == "" {
		t.Errorf("prompt trace = %s/%s", calls[0].PromptKey, calls[0].PromptHash)
	}
}

func TestExtract_Wizard(t *testing.T) {
	c, mock, _ := setup(t, `{
		"supported_fields": {"full_name": "Sam Lee", "priority_range": [2, 4], "interests": ["Technology"]},
		"unsupported_fields": ["pet_name", 7, ""]
	}`)

	res, err := c.Extract(context.Background(), "Sam Lee likes tech, owns a dog named Rex", form(t, "intake"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Variant != VariantWizard {
		t.Errorf("Variant = %s, want wizard", res.Variant)
	}
	if res.Supported["full_name"] != "Sam Lee" {
		t.Errorf("full_name = %v", res.Supported["full_name"])
	}
	if diff := cmp.Diff([]string{"pet_name", "7"}, res.Unsupported); diff != "" {
		t.Errorf("Unsupported mismatch (-want +got):\n%s", diff)
	}
	req, _ := mock.LastRequest()
	if req.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", req.MaxTokens)
	}
	if !strings.Contains(req.Messages[0].Content, "unsupported_fields") {
		t.Error("wizard prompt not used")
	}
}

func TestExtract_WizardMissingKeys(t *testing.T) {
	c, _, _ := setup(t, `{}`)

	res, err := c.Extract(context.Background(), "nothing useful", form(t, "intake"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if len(res.Supported) != 0 || len(res.Unsupported) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
	if res.Supported == nil || res.Unsupported == nil {
		t.Error("empty result should carry non-nil collections")
	}
	if !res.Empty() {
		t.Error("Empty() = false")
	}
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		fail    bool
		text    string
		wantErr error
	}{
		{"not json", "Sure! Here you go: {\"name\": \"x\"}", false, "desc", ErrMalformedResponse},
		{"fenced json", "```json\n{\"name\": \"x\"}\n```", false, "desc", ErrMalformedResponse},
		{"array", `["name"]`, false, "desc", ErrMalformedResponse},
		{"service error", `{}`, true, "desc", ErrServiceCall},
		{"empty text", `{}`, false, "   ", ErrEmptyDescription},
		{"markup only", `{}`, false, "<br/>", ErrEmptyDescription},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, mock, _ := setup(t, tt.reply)
			mock.ShouldFail = tt.fail

			res, err := c.Extract(context.Background(), tt.text, form(t, "customer_info"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if res == nil {
				t.Fatal("result must never be nil")
			}
			if !res.Empty() {
				t.Errorf("expected empty result, got %+v", res.Supported)
			}
			if Notice(err) == "" {
				t.Error("Notice() empty for failure")
			}
		})
	}
}

func TestExtract_EmptyTextSkipsService(t *testing.T) {
	c, mock, _ := setup(t, `{}`)
	_, _ = c.Extract(context.Background(), "", form(t, "customer_info"))
	if mock.RequestCount() != 0 {
		t.Errorf("RequestCount = %d, want 0", mock.RequestCount())
	}
}

func TestExtract_WizardWrongShape(t *testing.T) {
	c, _, _ := setup(t, `{"supported_fields": ["a"], "unsupported_fields": []}`)
	_, err := c.Extract(context.Background(), "desc", form(t, "intake"))
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestExtract_MissingCredential(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		c := New(providers.NewRegistry(), Options{})
		res, err := c.Extract(context.Background(), "desc", form(t, "customer_info"))
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("error = %v, want ErrMissingCredential", err)
		}
		if res == nil || !res.Empty() {
			t.Errorf("result = %+v", res)
		}
	})

	t.Run("configured provider without key", func(t *testing.T) {
		c := New(providers.NewRegistry(), Options{Provider: "openai"})
		_, err := c.Extract(context.Background(), "desc", form(t, "customer_info"))
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("error = %v, want ErrMissingCredential", err)
		}
	})

	t.Run("nil registry", func(t *testing.T) {
		c := New(nil, Options{})
		_, err := c.Extract(context.Background(), "desc", form(t, "customer_info"))
		if !errors.Is(err, ErrMissingCredential) {
			t.Fatalf("error = %v, want ErrMissingCredential", err)
		}
	})
}

func TestExtract_FallsBackToRegisteredProvider(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"name": "Jane", "age": 30}`
	reg := providers.NewRegistry()
	reg.RegisterLLM("gemini", mock)
	c := New(reg, Options{Provider: "openai", Model: "gpt-4o-mini"})

	res, err := c.Extract(context.Background(), "Jane, 30", form(t, "customer_info"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if diff := cmp.Diff(map[string]any{"name": "Jane", "age": float64(30)}, res.Supported); diff != "" {
		t.Errorf("supported mismatch (-want +got):\n%s", diff)
	}
	req, ok := mock.LastRequest()
	if !ok {
		t.Fatal("fallback provider was not called")
	}
	if req.Model != "" {
		t.Errorf("model = %q, want the fallback provider's default", req.Model)
	}
}

func TestExtract_DefaultProvider(t *testing.T) {
	reg := providers.NewRegistry()
	mock := providers.NewMockClient()
	mock.ResponseText = `{"issue": "login broken"}`
	reg.RegisterLLM("mock", mock)

	c := New(reg, Options{})
	res, err := c.Extract(context.Background(), "I cannot log in", form(t, "support_request"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if res.Provider != providers.MockClientName {
		t.Errorf("Provider = %s", res.Provider)
	}

	c.SetDefaults("other", "m")
	if p, m := c.Defaults(); p != "other" || m != "m" {
		t.Errorf("Defaults() = %s, %s", p, m)
	}
}

func TestExtract_Gaps(t *testing.T) {
	c, _, _ := setup(t, `{"age": 300, "country": "Atlantis", "favorite_color": "blue"}`)

	res, err := c.Extract(context.Background(), "desc", form(t, "customer_info"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	// Values outside the schema are kept; the renderer normalizes them.
	if res.Supported["country"] != "Atlantis" {
		t.Errorf("country = %v", res.Supported["country"])
	}
	if len(res.Gaps) == 0 {
		t.Error("expected schema gaps to be reported")
	}
}

func TestCompileSchema_AllForms(t *testing.T) {
	for _, f := range forms.Default().Forms() {
		t.Run(f.ID, func(t *testing.T) {
			if _, err := CompileSchema(f); err != nil {
				t.Fatalf("CompileSchema() error = %v", err)
			}
		})
	}
}

func TestNotice(t *testing.T) {
	if Notice(nil) != "" {
		t.Error("Notice(nil) should be empty")
	}
	got := Notice(errors.Join(ErrServiceCall, errors.New("boom")))
	if !strings.HasPrefix(got, "Error calling completion service") {
		t.Errorf("Notice() = %q", got)
	}
}
