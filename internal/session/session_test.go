package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/render"
)

func form(t *testing.T, id string) *forms.FormSchema {
	t.Helper()
	f, ok := forms.Default().Form(id)
	if !ok {
		t.Fatalf("form %q not found", id)
	}
	return f
}

func testRenderer() *render.Renderer {
	return render.New(render.WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	}))
}

func TestNavigation(t *testing.T) {
	s := New(form(t, "intake"))

	if s.Back() {
		t.Error("Back() on first page should not move")
	}
	if !s.Next() || s.Page != 1 {
		t.Fatalf("Next() -> page %d, want 1", s.Page)
	}
	if !s.Next() || s.Page != 2 {
		t.Fatalf("Next() -> page %d, want 2", s.Page)
	}
	if s.Next() {
		t.Error("Next() on last page should not move")
	}
	if s.Page != 2 {
		t.Errorf("page = %d, want 2", s.Page)
	}
	if !s.Back() || s.Page != 1 {
		t.Errorf("Back() -> page %d, want 1", s.Page)
	}
}

func TestNavigation_SinglePage(t *testing.T) {
	s := New(form(t, "customer_info"))
	if s.Next() || s.Back() {
		t.Error("single page form should not navigate")
	}
	view := s.RenderPage(testRenderer())
	if view.CanBack || view.CanNext || !view.IsLast {
		t.Errorf("view nav = back:%v next:%v last:%v", view.CanBack, view.CanNext, view.IsLast)
	}
}

func TestSet(t *testing.T) {
	s := New(form(t, "customer_info"))

	if err := s.Set("name", "Ada"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s.Values["name"] != "Ada" {
		t.Errorf("name = %v", s.Values["name"])
	}
	if err := s.Set("shoe_size", 9); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Set(unknown) error = %v, want ErrUnknownField", err)
	}
	if _, ok := s.Values["shoe_size"]; ok {
		t.Error("unknown field was stored")
	}
}

func TestMerge(t *testing.T) {
	s := New(form(t, "intake"))
	s.Values["full_name"] = "Old Name"
	s.Values["email"] = "kept@example.com"

	dropped, err := s.Merge(map[string]any{
		"full_name":    "Sam Lee",
		"priority":     "High",
		"pet_name":     "Rex",
		"favorite_car": "Volvo",
	}, []string{"pet_name"})
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if diff := cmp.Diff([]string{"favorite_car", "pet_name"}, dropped); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
	want := map[string]any{
		"full_name": "Sam Lee",
		"email":     "kept@example.com",
		"priority":  "High",
	}
	if diff := cmp.Diff(want, s.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"pet_name"}, s.Unsupported); diff != "" {
		t.Errorf("Unsupported mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderPage_PersistsNormalized(t *testing.T) {
	s := New(form(t, "intake"))
	s.Next() // preferences
	s.Values["priority_range"] = []any{2.0, 9.0, 1.0}
	s.Values["satisfaction"] = "7"
	s.Values["contact_method"] = "Carrier pigeon"

	view := s.RenderPage(testRenderer())

	if view.ID != "preferences" || view.Index != 1 || view.Count != 3 {
		t.Fatalf("view = %s %d/%d", view.ID, view.Index, view.Count)
	}
	if view.Progress() != "Page 2 of 3" {
		t.Errorf("Progress() = %q", view.Progress())
	}
	if len(view.Fields) != 10 {
		t.Errorf("rendered %d fields, want 10", len(view.Fields))
	}
	if diff := cmp.Diff([]any{int64(2), int64(5)}, s.Values["priority_range"]); diff != "" {
		t.Errorf("priority_range mismatch (-want +got):\n%s", diff)
	}
	if s.Values["satisfaction"] != int64(7) {
		t.Errorf("satisfaction = %#v", s.Values["satisfaction"])
	}
	// unset fields show their defaults without being stored
	shown := map[string]string{}
	for _, fv := range view.Fields {
		shown[fv.Field.Name] = fv.Value.String()
	}
	if shown["start_date"] != "2026-03-14" || shown["best_contact_time"] != "09:00:00" {
		t.Errorf("defaults shown = %q, %q", shown["start_date"], shown["best_contact_time"])
	}
	for _, name := range []string{"start_date", "best_contact_time"} {
		if _, ok := s.Values[name]; ok {
			t.Errorf("%s stored = %v, want unset", name, s.Values[name])
		}
	}
	// fields on other pages are untouched
	if _, ok := s.Values["full_name"]; ok {
		t.Error("page 1 field should not be rendered")
	}

	// rendering again is stable
	before := s.Clone().Values
	s.RenderPage(testRenderer())
	if diff := cmp.Diff(before, s.Values); diff != "" {
		t.Errorf("second render changed values (-before +after):\n%s", diff)
	}
}

func TestSubmit(t *testing.T) {
	t.Run("missing required", func(t *testing.T) {
		s := New(form(t, "customer_info"))
		s.Values["name"] = "Ada"

		sum, err := s.Submit(testRenderer())
		if !errors.Is(err, ErrMissingRequired) {
			t.Fatalf("Submit() error = %v, want ErrMissingRequired", err)
		}
		if s.Submitted {
			t.Error("session should stay editable")
		}
		// age normalizes to 0, country to the empty first option
		if diff := cmp.Diff([]string{"age", "country"}, sum.MissingRequired); diff != "" {
			t.Errorf("MissingRequired mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("complete", func(t *testing.T) {
		s := New(form(t, "customer_info"))
		s.Values["name"] = "Ada"
		s.Values["age"] = 36
		s.Values["country"] = "India"

		sum, err := s.Submit(testRenderer())
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if !s.Submitted {
			t.Error("Submitted = false")
		}
		if sum.TotalFields != 4 || sum.FilledFields != 3 {
			t.Errorf("filled %d/%d, want 3/4", sum.FilledFields, sum.TotalFields)
		}
		if sum.Completion != "75.0%" || sum.CompletionRate != 75 {
			t.Errorf("Completion = %s (%v)", sum.Completion, sum.CompletionRate)
		}
		if sum.Values["is_active"] != false {
			t.Errorf("is_active = %v", sum.Values["is_active"])
		}

		if err := s.Set("name", "Bob"); !errors.Is(err, ErrSubmitted) {
			t.Errorf("Set() after submit error = %v, want ErrSubmitted", err)
		}
		if _, err := s.Merge(map[string]any{"name": "Bob"}, nil); !errors.Is(err, ErrSubmitted) {
			t.Errorf("Merge() after submit error = %v, want ErrSubmitted", err)
		}
		if _, err := s.Submit(testRenderer()); !errors.Is(err, ErrSubmitted) {
			t.Errorf("second Submit() error = %v, want ErrSubmitted", err)
		}
	})
}

func TestSubmit_DefaultsAreNotFilled(t *testing.T) {
	s := New(form(t, "intake"))
	for _, name := range []string{"full_name", "email", "phone", "bio", "notes", "description", "project_name"} {
		s.Values[name] = "x"
	}
	r := testRenderer()
	for {
		s.RenderPage(r)
		if !s.Next() {
			break
		}
	}

	sum, err := s.Submit(r)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if sum.TotalFields != 30 || sum.FilledFields != 7 {
		t.Fatalf("filled %d/%d, want 7/30", sum.FilledFields, sum.TotalFields)
	}
	if sum.Completion != "23.3%" {
		t.Errorf("Completion = %s, want 23.3%%", sum.Completion)
	}
	// the summary still reports a value for every field
	if len(sum.Values) != 30 || sum.Values["start_date"] != "2026-03-14" {
		t.Errorf("summary values = %d, start_date = %v", len(sum.Values), sum.Values["start_date"])
	}
	if _, ok := s.Values["start_date"]; ok {
		t.Error("default stored on the session")
	}
}

func TestSummarize_Completion(t *testing.T) {
	s := New(form(t, "intake"))
	for _, name := range []string{"full_name", "email", "phone", "bio", "notes", "description", "project_name"} {
		s.Values[name] = "x"
	}
	s.Values["newsletter"] = false
	s.Values["team_size"] = 0
	s.Values["interests"] = []string{}

	sum := s.Summarize()
	if sum.TotalFields != 30 || sum.FilledFields != 7 {
		t.Fatalf("filled %d/%d, want 7/30", sum.FilledFields, sum.TotalFields)
	}
	if sum.Completion != "23.3%" {
		t.Errorf("Completion = %s, want 23.3%%", sum.Completion)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s := New(form(t, "customer_info"))

	if err := store.Create(ctx, s); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// the stored copy is independent of the caller's value
	s.Values["name"] = "mutated"
	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if _, ok := got.Values["name"]; ok {
		t.Error("store shares state with caller")
	}

	updated, err := store.Update(ctx, s.ID, func(s *Session) error {
		return s.Set("name", "Ada")
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Values["name"] != "Ada" {
		t.Errorf("name = %v", updated.Values["name"])
	}

	// failed updates leave the stored state alone
	_, err = store.Update(ctx, s.ID, func(s *Session) error {
		s.Values["name"] = "Half"
		return s.Set("nope", 1)
	})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("Update() error = %v, want ErrUnknownField", err)
	}
	got, _ = store.Get(ctx, s.ID)
	if got.Values["name"] != "Ada" {
		t.Errorf("name = %v after failed update", got.Values["name"])
	}

	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Errorf("List() len = %d, want 1", len(list))
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, "missing", func(*Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}
