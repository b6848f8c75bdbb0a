// Package session holds the per-user state of one form being filled: stored
// values, the active page, and the submission lifecycle.
package session

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/render"
)

// Sentinel errors.
var (
	ErrNotFound        = errors.New("session not found")
	ErrUnknownField    = errors.New("unknown field")
	ErrSubmitted       = errors.New("session already submitted")
	ErrMissingRequired = errors.New("please fill in all required fields")
)

// Session is the state of one form fill.
type Session struct {
	ID          string         `json:"id"`
	FormID      string         `json:"form_id"`
	Values      map[string]any `json:"values"`
	Unsupported []string       `json:"unsupported_fields"`
	Page        int            `json:"page"`
	Submitted   bool           `json:"submitted"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	form *forms.FormSchema
}

// New starts an empty session for form.
func New(form *forms.FormSchema) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.New().String(),
		FormID:      form.ID,
		Values:      make(map[string]any),
		Unsupported: []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
		form:        form,
	}
}

// Form returns the session's schema.
func (s *Session) Form() *forms.FormSchema {
	return s.form
}

// Clone returns a deep enough copy that mutating the clone never affects s.
func (s *Session) Clone() *Session {
	out := *s
	out.Values = make(map[string]any, len(s.Values))
	for k, v := range s.Values {
		out.Values[k] = cloneValue(v)
	}
	out.Unsupported = append([]string{}, s.Unsupported...)
	return &out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		return append([]any{}, t...)
	case []string:
		return append([]string{}, t...)
	default:
		return v
	}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// Back moves to the previous page. It reports whether the page changed.
func (s *Session) Back() bool {
	if s.Page <= 0 {
		return false
	}
	s.Page--
	s.touch()
	return true
}

// Next moves to the following page. It reports whether the page changed.
func (s *Session) Next() bool {
	if s.Page >= s.form.PageCount()-1 {
		return false
	}
	s.Page++
	s.touch()
	return true
}

// Set stores a manually entered value.
func (s *Session) Set(name string, value any) error {
	if s.Submitted {
		return ErrSubmitted
	}
	if _, ok := s.form.Field(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	s.Values[name] = value
	s.touch()
	return nil
}

// Merge applies extracted values. Keys that are not fields of the form are
// dropped and returned sorted. unsupported replaces the previous list.
func (s *Session) Merge(values map[string]any, unsupported []string) ([]string, error) {
	if s.Submitted {
		return nil, ErrSubmitted
	}
	var dropped []string
	for name, v := range values {
		if _, ok := s.form.Field(name); !ok {
			dropped = append(dropped, name)
			continue
		}
		s.Values[name] = v
	}
	sort.Strings(dropped)
	s.Unsupported = append([]string{}, unsupported...)
	s.touch()
	return dropped, nil
}

// FieldView is one rendered field.
type FieldView struct {
	Field forms.FieldSpec `json:"field"`
	Value render.Value    `json:"value"`
}

// PageView is the rendered active page plus navigation state.
type PageView struct {
	Index   int         `json:"index"`
	Count   int         `json:"count"`
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Fields  []FieldView `json:"fields"`
	CanBack bool        `json:"can_back"`
	CanNext bool        `json:"can_next"`
	IsLast  bool        `json:"is_last"`
}

// Progress is the "Page i of n" label.
func (v PageView) Progress() string {
	return fmt.Sprintf("Page %d of %d", v.Index+1, v.Count)
}

// RenderPage normalizes the active page's values and returns the view.
// Stored values are replaced by their normalized form; fields without a
// stored value show their default and stay unset, so defaults never count
// as filled.
func (s *Session) RenderPage(r *render.Renderer) PageView {
	page, _ := s.form.Page(s.Page)
	count := s.form.PageCount()
	view := PageView{
		Index:   s.Page,
		Count:   count,
		ID:      page.ID,
		Title:   page.Title,
		Fields:  make([]FieldView, 0, len(page.Fields)),
		CanBack: s.Page > 0,
		CanNext: s.Page < count-1,
		IsLast:  s.Page == count-1,
	}
	for _, f := range page.Fields {
		raw, set := s.Values[f.Name]
		v := r.Render(f, raw)
		if set && !s.Submitted {
			s.Values[f.Name] = v.Raw()
		}
		view.Fields = append(view.Fields, FieldView{Field: f, Value: v})
	}
	if !s.Submitted {
		s.touch()
	}
	return view
}

// Summary is the review of a session's values.
type Summary struct {
	FormID          string         `json:"form_id"`
	Values          map[string]any `json:"values"`
	TotalFields     int            `json:"total_fields"`
	FilledFields    int            `json:"filled_fields"`
	CompletionRate  float64        `json:"completion_rate"`
	Completion      string         `json:"completion"`
	Unsupported     []string       `json:"unsupported_fields"`
	MissingRequired []string       `json:"missing_required,omitempty"`
}

// Summarize reports completion over the stored values without changing them.
func (s *Session) Summarize() *Summary {
	fields := s.form.Fields()
	sum := &Summary{
		FormID:      s.FormID,
		Values:      make(map[string]any, len(s.Values)),
		TotalFields: len(fields),
		Unsupported: append([]string{}, s.Unsupported...),
	}
	for k, v := range s.Values {
		sum.Values[k] = cloneValue(v)
	}
	for _, f := range fields {
		if render.Truthy(s.Values[f.Name]) {
			sum.FilledFields++
		} else if f.Required {
			sum.MissingRequired = append(sum.MissingRequired, f.Name)
		}
	}
	sum.CompletionRate = completion(sum.FilledFields, sum.TotalFields)
	sum.Completion = fmt.Sprintf("%.1f%%", sum.CompletionRate)
	return sum
}

// completion is filled/total as a percentage rounded to one decimal.
func completion(filled, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(filled)/float64(total)*1000) / 10
}

// Submit normalizes every stored value and finalizes the session. Filled
// fields are counted before defaults are applied; the summary's Values then
// carry the default of every unset field. When a required field is unfilled
// it returns the summary with ErrMissingRequired and the session stays
// editable.
func (s *Session) Submit(r *render.Renderer) (*Summary, error) {
	if s.Submitted {
		return s.summarize(r), ErrSubmitted
	}
	for _, f := range s.form.Fields() {
		if raw, ok := s.Values[f.Name]; ok {
			s.Values[f.Name] = r.Normalize(f, raw)
		}
	}
	s.touch()

	sum := s.summarize(r)
	if len(sum.MissingRequired) > 0 {
		return sum, fmt.Errorf("%w: %v", ErrMissingRequired, sum.MissingRequired)
	}
	s.Submitted = true
	return sum, nil
}

// summarize is Summarize with defaults filled in for unset fields.
func (s *Session) summarize(r *render.Renderer) *Summary {
	sum := s.Summarize()
	for _, f := range s.form.Fields() {
		if _, ok := sum.Values[f.Name]; !ok {
			sum.Values[f.Name] = r.Normalize(f, nil)
		}
	}
	return sum
}
