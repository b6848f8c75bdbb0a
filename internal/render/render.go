// Package render normalizes loosely typed stored values into the typed value
// each widget kind displays. Normalization never fails: anything that cannot
// be interpreted falls back to the kind's default.
package render

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cast"

	"github.com/jackzampolin/formfill/internal/forms"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// DefaultTime is the time-of-day shown when a time field has no usable value.
var DefaultTime = civil.Time{Hour: 9}

// Renderer normalizes field values.
type Renderer struct {
	now func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock sets the clock used for the default date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render normalizes current for the field.
func (r *Renderer) Render(spec forms.FieldSpec, current any) Value {
	switch spec.Kind {
	case forms.KindNumber:
		return renderNumber(spec, current)
	case forms.KindSlider:
		return renderSlider(spec, current)
	case forms.KindCheckbox:
		return Value{Kind: spec.Kind, Bool: toBool(current)}
	case forms.KindSelect, forms.KindRadio:
		return Value{Kind: spec.Kind, Text: pickOption(spec.Options, current)}
	case forms.KindMultiSelect:
		return Value{Kind: spec.Kind, List: toStringList(current)}
	case forms.KindDate:
		return Value{Kind: spec.Kind, Date: r.toDate(current)}
	case forms.KindTime:
		return Value{Kind: spec.Kind, Time: toTimeOfDay(current)}
	default:
		text := ""
		if Truthy(current) {
			text = toText(current)
		}
		return Value{Kind: spec.Kind, Text: text}
	}
}

// Normalize returns the stored form of current after rendering.
func (r *Renderer) Normalize(spec forms.FieldSpec, current any) any {
	return r.Render(spec, current).Raw()
}

// RenderPage normalizes every field of the page. Missing values render as
// their defaults.
func (r *Renderer) RenderPage(page forms.Page, values map[string]any) map[string]Value {
	out := make(map[string]Value, len(page.Fields))
	for _, f := range page.Fields {
		out[f.Name] = r.Render(f, values[f.Name])
	}
	return out
}

func renderNumber(spec forms.FieldSpec, current any) Value {
	v := 0.0
	if Truthy(current) {
		if f, ok := toFloat(current); ok {
			v = f
		}
	}
	integer := isIntegral(v)
	if b := spec.Bounds; b != nil {
		integer = integer && isIntegral(b.Min) && isIntegral(b.Max) && isIntegral(b.Step)
	}
	return Value{Kind: spec.Kind, Number: v, Integer: integer}
}

// renderSlider resolves a slider value:
//
//  1. absent: the minimum
//  2. a list of two or more: a range of the first two elements, each
//     coerced to a number or replaced by the minimum
//  3. a list of one number: that number
//  4. a number: as is
//  5. anything else: coerced to a number, or the minimum
//
// Every number is then clamped into [min, max]. The mode is integer unless a
// bound or a clamped value has a fractional part, so rendering a rendered
// value gives it back unchanged.
func renderSlider(spec forms.FieldSpec, current any) Value {
	b := spec.SliderBounds()
	var vals []float64
	rangeMode := false

	coerce := func(v any) float64 {
		if f, ok := toFloat(v); ok {
			return f
		}
		return b.Min
	}

	if list, ok := toList(current); ok {
		switch {
		case len(list) >= 2:
			rangeMode = true
			vals = []float64{coerce(list[0]), coerce(list[1])}
		case len(list) == 1 && isNumeric(list[0]):
			vals = []float64{coerce(list[0])}
		default:
			vals = []float64{b.Min}
		}
	} else if current == nil {
		vals = []float64{b.Min}
	} else {
		vals = []float64{coerce(current)}
	}

	integer := isIntegral(b.Min) && isIntegral(b.Max) && isIntegral(b.Step)
	for i, v := range vals {
		vals[i] = clamp(v, b.Min, b.Max)
		if !isIntegral(vals[i]) {
			integer = false
		}
	}

	out := Value{Kind: spec.Kind, Integer: integer, Range: rangeMode}
	if rangeMode {
		out.Pair = [2]float64{vals[0], vals[1]}
	} else {
		out.Number = vals[0]
	}
	return out
}

func toBool(v any) bool {
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	return Truthy(v)
}

func pickOption(options []string, current any) string {
	if len(options) == 0 {
		return ""
	}
	if s, ok := current.(string); ok {
		for _, o := range options {
			if o == s {
				return s
			}
		}
	}
	return options[0]
}

func toStringList(v any) []string {
	if list, ok := toList(v); ok {
		out := make([]string, 0, len(list))
		for _, item := range list {
			out = append(out, toText(item))
		}
		return out
	}
	if !Truthy(v) {
		return []string{}
	}
	return []string{toText(v)}
}

func (r *Renderer) toDate(v any) civil.Date {
	switch x := v.(type) {
	case string:
		if t, err := time.Parse(dateLayout, x); err == nil {
			return civil.DateOf(t)
		}
	case civil.Date:
		if x.IsValid() {
			return x
		}
	case time.Time:
		if !x.IsZero() {
			return civil.DateOf(x)
		}
	}
	return civil.DateOf(r.now())
}

func toTimeOfDay(v any) civil.Time {
	switch x := v.(type) {
	case string:
		if t, err := time.Parse(timeLayout, x); err == nil {
			return civil.Time{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
		}
	case civil.Time:
		if x.IsValid() {
			x.Nanosecond = 0
			return x
		}
	case time.Time:
		if !x.IsZero() {
			return civil.Time{Hour: x.Hour(), Minute: x.Minute(), Second: x.Second()}
		}
	}
	return DefaultTime
}
