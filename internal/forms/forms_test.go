package forms

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	want := []string{"customer_info", "product_feedback", "support_request", "intake"}
	if diff := cmp.Diff(want, c.IDs()); diff != "" {
		t.Fatalf("IDs() mismatch (-want +got):\n%s", diff)
	}

	t.Run("single page forms", func(t *testing.T) {
		for _, id := range want[:3] {
			f, ok := c.Form(id)
			if !ok {
				t.Fatalf("Form(%q) not found", id)
			}
			if f.MultiPage() {
				t.Errorf("%s: MultiPage() = true, want false", id)
			}
		}
	})

	t.Run("wizard has three pages of ten", func(t *testing.T) {
		f, ok := c.Form("intake")
		if !ok {
			t.Fatal("intake not found")
		}
		if !f.MultiPage() {
			t.Fatal("MultiPage() = false, want true")
		}
		if f.PageCount() != 3 {
			t.Fatalf("PageCount() = %d, want 3", f.PageCount())
		}
		for _, p := range f.Pages {
			if len(p.Fields) != 10 {
				t.Errorf("page %s has %d fields, want 10", p.ID, len(p.Fields))
			}
		}
		if f.FieldCount() != 30 {
			t.Errorf("FieldCount() = %d, want 30", f.FieldCount())
		}
	})

	t.Run("every kind is used", func(t *testing.T) {
		used := make(map[Kind]bool)
		for _, f := range c.Forms() {
			for _, fs := range f.Fields() {
				used[fs.Kind] = true
			}
		}
		for _, k := range Kinds {
			if !used[k] {
				t.Errorf("kind %s not used by any form", k)
			}
		}
	})
}

func TestCatalog_Form(t *testing.T) {
	c := Default()

	tests := []struct {
		query  string
		wantID string
		wantOK bool
	}{
		{"customer_info", "customer_info", true},
		{"Customer Info", "customer_info", true},
		{"support request", "support_request", true},
		{"Client Onboarding", "intake", true},
		{"nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f, ok := c.Form(tt.query)
			if ok != tt.wantOK {
				t.Fatalf("Form(%q) ok = %v, want %v", tt.query, ok, tt.wantOK)
			}
			if ok && f.ID != tt.wantID {
				t.Errorf("Form(%q).ID = %q, want %q", tt.query, f.ID, tt.wantID)
			}
		})
	}
}

func TestFormSchema_Lookups(t *testing.T) {
	f, _ := Default().Form("intake")

	if _, ok := f.Page(3); ok {
		t.Error("Page(3) ok = true, want false")
	}
	if _, ok := f.Page(-1); ok {
		t.Error("Page(-1) ok = true, want false")
	}
	p, idx, ok := f.PageByID("preferences")
	if !ok || idx != 1 || p.Title != "Preferences" {
		t.Errorf("PageByID(preferences) = %q, %d, %v", p.Title, idx, ok)
	}

	fs, ok := f.Field("hourly_rate")
	if !ok {
		t.Fatal("Field(hourly_rate) not found")
	}
	if fs.Kind != KindSlider {
		t.Errorf("hourly_rate kind = %s, want slider", fs.Kind)
	}
	b := fs.SliderBounds()
	if b.Min != 25 || b.Max != 250 || b.Step != 2.5 {
		t.Errorf("hourly_rate bounds = %+v", b)
	}

	names := f.FieldNames()
	if names[0] != "full_name" || names[29] != "description" {
		t.Errorf("FieldNames() order wrong: first=%s last=%s", names[0], names[29])
	}
}

func TestSliderBoundsDefaults(t *testing.T) {
	got := FieldSpec{Kind: KindSlider}.SliderBounds()
	want := Bounds{Min: 0, Max: 100, Step: 1}
	if got != want {
		t.Errorf("SliderBounds() = %+v, want %+v", got, want)
	}
}

func TestPromptSchema_KeepsOrder(t *testing.T) {
	f, _ := Default().Form("customer_info")

	raw, err := json.Marshal(f.PromptSchema())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	s := string(raw)
	order := []string{`"name"`, `"age"`, `"country"`, `"is_active"`}
	last := -1
	for _, key := range order {
		i := strings.Index(s, key+":")
		if i < 0 {
			t.Fatalf("key %s missing from %s", key, s)
		}
		if i < last {
			t.Errorf("key %s out of order in %s", key, s)
		}
		last = i
	}

	var decoded map[string]PromptField
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["country"].Kind != KindSelect || len(decoded["country"].Options) != 11 {
		t.Errorf("country = %+v", decoded["country"])
	}
	if decoded["name"].Options != nil {
		t.Errorf("text field should have no options, got %v", decoded["name"].Options)
	}
}

func TestPromptSchema_UnmarshalKeepsOrder(t *testing.T) {
	f, _ := Default().Form("intake")
	want := f.PromptSchema()

	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got PromptSchema
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if err := json.Unmarshal([]byte(`["name"]`), &got); err == nil {
		t.Error("expected error for non-object input")
	}
}

func TestJSONSchema_Shape(t *testing.T) {
	single, _ := Default().Form("product_feedback")
	s := single.JSONSchema()
	if s["type"] != "object" {
		t.Fatalf("type = %v", s["type"])
	}
	props := s["properties"].(map[string]any)
	if len(props) != 3 {
		t.Errorf("len(properties) = %d, want 3", len(props))
	}

	wizard, _ := Default().Form("intake")
	w := wizard.JSONSchema()
	wprops := w["properties"].(map[string]any)
	if _, ok := wprops["supported_fields"]; !ok {
		t.Error("wizard schema missing supported_fields")
	}
	if _, ok := wprops["unsupported_fields"]; !ok {
		t.Error("wizard schema missing unsupported_fields")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "forms: []", "no forms"},
		{"bad kind", `
forms:
  - id: a
    pages:
      - id: p
        fields:
          - {name: x, kind: color, label: X}
`, "unknown kind"},
		{"duplicate field", `
forms:
  - id: a
    pages:
      - id: p
        fields:
          - {name: x, kind: text, label: X}
      - id: q
        fields:
          - {name: x, kind: text, label: X}
`, "duplicate field"},
		{"inverted bounds", `
forms:
  - id: a
    pages:
      - id: p
        fields:
          - {name: x, kind: slider, label: X, bounds: {min: 5, max: 1, step: 1}}
`, "exceeds max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}
