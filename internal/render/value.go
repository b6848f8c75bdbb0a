package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/jackzampolin/formfill/internal/forms"
)

// Value is a normalized field value. Which members are meaningful depends on
// Kind:
//
//	text, textarea, select, radio  Text
//	number                         Number, Integer
//	slider                         Number or Pair (when Range), Integer
//	checkbox                       Bool
//	date                           Date
//	time                           Time
//	multiselect                    List
type Value struct {
	Kind    forms.Kind
	Text    string
	Number  float64
	Integer bool
	Bool    bool
	Date    civil.Date
	Time    civil.Time
	List    []string
	Range   bool
	Pair    [2]float64
}

// Raw returns the JSON-compatible form of the value, which is what gets
// stored back into form state. Dates become "YYYY-MM-DD", times "HH:MM:SS",
// and integer-mode numbers int64.
func (v Value) Raw() any {
	switch v.Kind {
	case forms.KindNumber:
		return v.num(v.Number)
	case forms.KindSlider:
		if v.Range {
			return []any{v.num(v.Pair[0]), v.num(v.Pair[1])}
		}
		return v.num(v.Number)
	case forms.KindCheckbox:
		return v.Bool
	case forms.KindDate:
		return v.Date.String()
	case forms.KindTime:
		return v.Time.String()
	case forms.KindMultiSelect:
		out := make([]string, len(v.List))
		copy(out, v.List)
		return out
	default:
		return v.Text
	}
}

func (v Value) num(f float64) any {
	if v.Integer {
		return int64(f)
	}
	return f
}

// String formats the value for display.
func (v Value) String() string {
	switch v.Kind {
	case forms.KindNumber:
		return v.formatNum(v.Number)
	case forms.KindSlider:
		if v.Range {
			return v.formatNum(v.Pair[0]) + " - " + v.formatNum(v.Pair[1])
		}
		return v.formatNum(v.Number)
	case forms.KindCheckbox:
		if v.Bool {
			return "yes"
		}
		return "no"
	case forms.KindDate:
		return v.Date.String()
	case forms.KindTime:
		return v.Time.String()
	case forms.KindMultiSelect:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}

func (v Value) formatNum(f float64) string {
	if v.Integer {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes the raw form.
func (v Value) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(v.Raw())
	if err != nil {
		return nil, fmt.Errorf("marshal %s value: %w", v.Kind, err)
	}
	return data, nil
}
