package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PromptField is the per-field description handed to the extraction service.
type PromptField struct {
	Kind    Kind     `json:"kind"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
	Bounds  *Bounds  `json:"bounds,omitempty"`
}

// PromptEntry pairs a field name with its description.
type PromptEntry struct {
	Name  string
	Field PromptField
}

// PromptSchema is an ordered field-name → description mapping. It marshals
// as a JSON object whose keys keep page order.
type PromptSchema []PromptEntry

// MarshalJSON writes the entries as an object in order.
func (p PromptSchema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into entries, keeping key order.
func (p *PromptSchema) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("prompt schema: expected object, got %v", tok)
	}
	out := PromptSchema{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var f PromptField
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("prompt schema field %q: %w", name, err)
		}
		out = append(out, PromptEntry{Name: name, Field: f})
	}
	*p = out
	return nil
}

// Indented renders the schema as two-space indented JSON.
func (p PromptSchema) Indented() (string, error) {
	raw, err := p.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// PromptSchema describes every field of the form, across all pages.
func (s *FormSchema) PromptSchema() PromptSchema {
	fields := s.Fields()
	out := make(PromptSchema, 0, len(fields))
	for _, f := range fields {
		pf := PromptField{Kind: f.Kind, Label: f.Label}
		if f.Kind.HasOptions() {
			pf.Options = f.Options
		}
		if f.Kind == KindSlider {
			b := f.SliderBounds()
			pf.Bounds = &b
		} else if f.Kind == KindNumber && f.Bounds != nil {
			pf.Bounds = f.Bounds
		}
		out = append(out, PromptEntry{Name: f.Name, Field: pf})
	}
	return out
}

// JSONSchema returns a JSON Schema for the reply the extraction service is
// asked to produce. It is used to report mismatches, never to reject a reply.
func (s *FormSchema) JSONSchema() map[string]any {
	props := make(map[string]any, s.FieldCount())
	for _, f := range s.Fields() {
		props[f.Name] = fieldJSONSchema(f)
	}
	fields := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if !s.MultiPage() {
		return fields
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"supported_fields": fields,
			"unsupported_fields": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"supported_fields", "unsupported_fields"},
	}
}

func fieldJSONSchema(f FieldSpec) map[string]any {
	switch f.Kind {
	case KindNumber:
		out := map[string]any{"type": "number"}
		if f.Bounds != nil {
			out["minimum"] = f.Bounds.Min
			out["maximum"] = f.Bounds.Max
		}
		return out
	case KindSlider:
		b := f.SliderBounds()
		num := map[string]any{"type": "number", "minimum": b.Min, "maximum": b.Max}
		return map[string]any{
			"anyOf": []any{
				num,
				map[string]any{"type": "array", "items": num, "minItems": 2, "maxItems": 2},
			},
		}
	case KindCheckbox:
		return map[string]any{"type": "boolean"}
	case KindDate:
		return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
	case KindTime:
		return map[string]any{"type": "string", "pattern": `^\d{2}:\d{2}:\d{2}$`}
	case KindSelect, KindRadio:
		return optionSchema(f.Options)
	case KindMultiSelect:
		return map[string]any{"type": "array", "items": optionSchema(f.Options)}
	default:
		return map[string]any{"type": "string"}
	}
}

func optionSchema(options []string) map[string]any {
	out := map[string]any{"type": "string"}
	if len(options) > 0 {
		enum := make([]any, len(options))
		for i, o := range options {
			enum[i] = o
		}
		out["enum"] = enum
	}
	return out
}
