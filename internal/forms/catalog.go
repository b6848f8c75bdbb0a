package forms

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var defaultCatalog = mustLoad(catalogYAML)

// Catalog is the ordered set of known forms.
type Catalog struct {
	forms []*FormSchema
}

type catalogFile struct {
	Forms []*FormSchema `yaml:"forms"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustLoad(data []byte) *Catalog {
	c, err := Load(data)
	if err != nil {
		panic(fmt.Sprintf("forms: invalid embedded catalog: %v", err))
	}
	return c
}

// Load parses and validates a catalog document.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Forms) == 0 {
		return nil, fmt.Errorf("catalog has no forms")
	}

	seen := make(map[string]bool, len(file.Forms))
	for _, f := range file.Forms {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("form %q: %w", f.ID, err)
		}
		if seen[f.ID] {
			return nil, fmt.Errorf("duplicate form id %q", f.ID)
		}
		seen[f.ID] = true
	}
	return &Catalog{forms: file.Forms}, nil
}

// validate checks the schema invariants and builds the field index.
func (s *FormSchema) validate() error {
	if s.ID == "" {
		return fmt.Errorf("missing id")
	}
	if s.Title == "" {
		s.Title = s.ID
	}
	if len(s.Pages) == 0 {
		return fmt.Errorf("no pages")
	}

	s.index = make(map[string]FieldSpec)
	pageIDs := make(map[string]bool, len(s.Pages))
	for _, p := range s.Pages {
		if p.ID == "" {
			return fmt.Errorf("page without id")
		}
		if pageIDs[p.ID] {
			return fmt.Errorf("duplicate page id %q", p.ID)
		}
		pageIDs[p.ID] = true

		for _, f := range p.Fields {
			if f.Name == "" {
				return fmt.Errorf("page %q: field without name", p.ID)
			}
			if !f.Kind.Valid() {
				return fmt.Errorf("field %q: unknown kind %q", f.Name, f.Kind)
			}
			if _, dup := s.index[f.Name]; dup {
				return fmt.Errorf("duplicate field name %q", f.Name)
			}
			if f.Bounds != nil && f.Bounds.Min > f.Bounds.Max {
				return fmt.Errorf("field %q: min %v exceeds max %v", f.Name, f.Bounds.Min, f.Bounds.Max)
			}
			if f.Label == "" {
				return fmt.Errorf("field %q: missing label", f.Name)
			}
			s.index[f.Name] = f
		}
	}
	return nil
}

// Forms returns the forms in catalog order.
func (c *Catalog) Forms() []*FormSchema {
	out := make([]*FormSchema, len(c.forms))
	copy(out, c.forms)
	return out
}

// Form finds a form by ID or by title (case-insensitive).
func (c *Catalog) Form(idOrTitle string) (*FormSchema, bool) {
	for _, f := range c.forms {
		if f.ID == idOrTitle {
			return f, true
		}
	}
	for _, f := range c.forms {
		if strings.EqualFold(f.Title, idOrTitle) {
			return f, true
		}
	}
	return nil, false
}

// IDs returns the form IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.forms))
	for i, f := range c.forms {
		ids[i] = f.ID
	}
	return ids
}
