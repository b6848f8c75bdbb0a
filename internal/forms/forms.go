// Package forms holds the declarative field schemas every other component
// works from: the single-page forms and the multi-page onboarding wizard.
//
// Schemas are loaded once from the embedded catalog and are read-only after
// that. Lookups report absence with a boolean rather than an error.
package forms

// Kind is the widget kind of a field. It decides how stored values are
// normalized and how the field is described to the extraction service.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindCheckbox    Kind = "checkbox"
	KindRadio       Kind = "radio"
	KindTextArea    Kind = "textarea"
	KindSlider      Kind = "slider"
)

// Kinds lists every supported kind.
var Kinds = []Kind{
	KindText, KindNumber, KindDate, KindTime, KindSelect,
	KindMultiSelect, KindCheckbox, KindRadio, KindTextArea, KindSlider,
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether the kind draws its values from FieldSpec.Options.
func (k Kind) HasOptions() bool {
	return k == KindSelect || k == KindMultiSelect || k == KindRadio
}

// Default slider bounds, used when a slider field declares none.
const (
	DefaultSliderMin  = 0
	DefaultSliderMax  = 100
	DefaultSliderStep = 1
)

// Bounds are the numeric limits of a slider or number field.
type Bounds struct {
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
	Step float64 `json:"step" yaml:"step"`
}

// FieldSpec declares one form field.
type FieldSpec struct {
	Name     string   `json:"name" yaml:"name"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Label    string   `json:"label" yaml:"label"`
	Options  []string `json:"options,omitempty" yaml:"options,omitempty"`
	Bounds   *Bounds  `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Help     string   `json:"help,omitempty" yaml:"help,omitempty"`
}

// SliderBounds returns the field bounds, filling in the slider defaults
// for anything left unset.
func (f FieldSpec) SliderBounds() Bounds {
	if f.Bounds == nil {
		return Bounds{Min: DefaultSliderMin, Max: DefaultSliderMax, Step: DefaultSliderStep}
	}
	b := *f.Bounds
	if b.Step == 0 {
		b.Step = DefaultSliderStep
	}
	return b
}

// Page is one screen of a form.
type Page struct {
	ID     string      `json:"id" yaml:"id"`
	Title  string      `json:"title" yaml:"title"`
	Fields []FieldSpec `json:"fields" yaml:"fields"`
}

// FormSchema is a complete form: one page for the simple forms, several for
// the wizard.
type FormSchema struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       []string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Pages       []Page   `json:"pages" yaml:"pages"`

	index map[string]FieldSpec
}

// PageCount returns the number of pages.
func (s *FormSchema) PageCount() int {
	return len(s.Pages)
}

// MultiPage reports whether the form is a wizard. Wizards are extracted in
// one call across all pages and report unsupported information.
func (s *FormSchema) MultiPage() bool {
	return len(s.Pages) > 1
}

// Page returns the page at index i.
func (s *FormSchema) Page(i int) (Page, bool) {
	if i < 0 || i >= len(s.Pages) {
		return Page{}, false
	}
	return s.Pages[i], true
}

// PageByID returns the page with the given ID and its index.
func (s *FormSchema) PageByID(id string) (Page, int, bool) {
	for i, p := range s.Pages {
		if p.ID == id {
			return p, i, true
		}
	}
	return Page{}, -1, false
}

// Field returns the field with the given name from any page.
func (s *FormSchema) Field(name string) (FieldSpec, bool) {
	if s.index != nil {
		f, ok := s.index[name]
		return f, ok
	}
	for _, p := range s.Pages {
		for _, f := range p.Fields {
			if f.Name == name {
				return f, true
			}
		}
	}
	return FieldSpec{}, false
}

// Fields returns all fields in page order.
func (s *FormSchema) Fields() []FieldSpec {
	var out []FieldSpec
	for _, p := range s.Pages {
		out = append(out, p.Fields...)
	}
	return out
}

// FieldCount returns the number of fields across all pages.
func (s *FormSchema) FieldCount() int {
	n := 0
	for _, p := range s.Pages {
		n += len(p.Fields)
	}
	return n
}

// FieldNames returns all field names in page order.
func (s *FormSchema) FieldNames() []string {
	fields := s.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}
