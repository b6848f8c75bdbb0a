package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/formfill/internal/forms"
)

// validatorCache compiles each form's reply schema once.
type validatorCache struct {
	mu      sync.Mutex
	schemas map[string]*jsonschema.Schema
}

func newValidatorCache() *validatorCache {
	return &validatorCache{schemas: make(map[string]*jsonschema.Schema)}
}

func (c *validatorCache) get(form *forms.FormSchema) (*jsonschema.Schema, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.schemas[form.ID]; ok {
		return s, nil
	}
	s, err := CompileSchema(form)
	if err != nil {
		return nil, err
	}
	c.schemas[form.ID] = s
	return s, nil
}

// check returns the schema violations of a reply. A reply that cannot be
// validated at all yields no gaps.
func (c *validatorCache) check(form *forms.FormSchema, content string) []string {
	schema, err := c.get(form)
	if err != nil {
		return nil
	}
	var doc any
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &doc); err != nil {
		return nil
	}
	return Gaps(schema, doc)
}

// CompileSchema compiles the JSON schema describing form's extraction reply.
func CompileSchema(form *forms.FormSchema) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(form.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema for %s: %w", form.ID, err)
	}
	url := form.ID + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema for %s: %w", form.ID, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema for %s: %w", form.ID, err)
	}
	return schema, nil
}

// Gaps validates doc and flattens the violations into readable lines.
func Gaps(schema *jsonschema.Schema, doc any) []string {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	var gaps []string
	for _, e := range ve.BasicOutput().Errors {
		if e.Error == "" || strings.HasPrefix(e.Error, "doesn't validate with") {
			continue
		}
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		gaps = append(gaps, loc+": "+e.Error)
	}
	return gaps
}
