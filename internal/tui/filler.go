package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/spf13/cast"

	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/render"
	"github.com/jackzampolin/formfill/internal/session"
)

// Page actions offered after the fields of a page.
const (
	ActionNext     = "Next"
	ActionBack     = "Back"
	ActionSubmit   = "Submit"
	ActionAutoFill = "Auto-fill from description"
)

const noneOption = "(none)"

// Option configures a Filler.
type Option func(*Filler)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithExtractor enables auto-fill. Without it the filler is manual only.
func WithExtractor(c *extract.Client) Option {
	return func(f *Filler) {
		f.extractor = c
	}
}

// WithRenderer overrides the field renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(f *Filler) {
		if r != nil {
			f.renderer = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filler) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Filler walks a session through its pages in the terminal.
type Filler struct {
	driver    PromptDriver
	extractor *extract.Client
	renderer  *render.Renderer
	logger    *slog.Logger
}

// New creates a Filler backed by survey unless a driver is given.
func New(opts ...Option) *Filler {
	f := &Filler{
		driver:   NewSurveyDriver(),
		renderer: render.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Run fills form and returns the submission summary. The user may auto-fill
// from a description first and again from any page.
func (f *Filler) Run(ctx context.Context, form *forms.FormSchema) (*session.Summary, error) {
	s := session.New(form)

	if f.extractor != nil {
		if err := f.autoFill(ctx, s); err != nil {
			return nil, err
		}
	}

	for {
		view := s.RenderPage(f.renderer)
		header := view.Title
		if form.MultiPage() {
			header = fmt.Sprintf("%s (%s)", view.Title, view.Progress())
		}
		if err := f.driver.Info(ctx, "\n== "+header+" =="); err != nil {
			return nil, err
		}

		for _, fv := range view.Fields {
			value, err := f.promptField(ctx, fv.Field, fv.Value)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", fv.Field.Name, err)
			}
			if _, set := s.Values[fv.Field.Name]; !set && f.acceptsDefault(fv.Field, fv.Value, value) {
				continue
			}
			if err := s.Set(fv.Field.Name, value); err != nil {
				return nil, err
			}
		}

		action, err := f.chooseAction(ctx, view)
		if err != nil {
			return nil, err
		}
		switch action {
		case ActionNext:
			s.Next()
		case ActionBack:
			s.Back()
		case ActionAutoFill:
			if err := f.autoFill(ctx, s); err != nil {
				return nil, err
			}
		case ActionSubmit:
			sum, err := s.Submit(f.renderer)
			if errors.Is(err, session.ErrMissingRequired) {
				msg := fmt.Sprintf("Please fill in all required fields: %s", strings.Join(sum.MissingRequired, ", "))
				if err := f.driver.Info(ctx, msg); err != nil {
					return nil, err
				}
				continue
			}
			if err != nil {
				return nil, err
			}
			f.logger.Debug("form submitted", "form", form.ID, "completion", sum.Completion)
			return sum, nil
		}
	}
}

// acceptsDefault reports whether answer is the default offered for a field,
// so an untouched field is not recorded as filled.
func (f *Filler) acceptsDefault(spec forms.FieldSpec, shown render.Value, answer any) bool {
	got := f.renderer.Normalize(spec, answer)
	if reflect.DeepEqual(got, shown.Raw()) {
		return true
	}
	// out-of-bounds numbers are offered as the bounds minimum
	if b := spec.Bounds; spec.Kind == forms.KindNumber && b != nil {
		return reflect.DeepEqual(got, f.renderer.Normalize(spec, b.Min))
	}
	return false
}

func (f *Filler) chooseAction(ctx context.Context, view session.PageView) (string, error) {
	var actions []string
	if view.CanNext {
		actions = append(actions, ActionNext)
	}
	if view.CanBack {
		actions = append(actions, ActionBack)
	}
	if view.IsLast {
		actions = append(actions, ActionSubmit)
	}
	if f.extractor != nil {
		actions = append(actions, ActionAutoFill)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: "Continue", Options: actions})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(actions) {
		return "", fmt.Errorf("tui: invalid action index %d", idx)
	}
	return actions[idx], nil
}

// autoFill asks for a description, extracts, merges and echoes the mapping.
// Extraction problems are shown and never end the run.
func (f *Filler) autoFill(ctx context.Context, s *session.Session) error {
	text, err := f.driver.TextArea(ctx, TextAreaConfig{
		Message: "Describe the information to fill (leave empty to skip)",
	})
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	result, err := f.extractor.Extract(ctx, text, s.Form(), extract.WithSessionID(s.ID))
	if err != nil {
		return f.driver.Info(ctx, extract.Notice(err))
	}
	dropped, err := s.Merge(result.Supported, result.Unsupported)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result.Supported, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format extracted data: %w", err)
	}
	lines := []string{"Form auto-filled. Review and edit as needed.", "Extracted data:", string(data)}
	if len(result.Unsupported) > 0 {
		lines = append(lines, "Not supported by this form: "+strings.Join(result.Unsupported, ", "))
	}
	if len(dropped) > 0 {
		f.logger.Debug("dropped unknown fields", "form", s.FormID, "fields", dropped)
	}
	return f.driver.Info(ctx, strings.Join(lines, "\n"))
}

// promptField asks for one field, defaulting to its rendered value. The
// returned value is stored as-is and normalized on the next render.
func (f *Filler) promptField(ctx context.Context, spec forms.FieldSpec, current render.Value) (any, error) {
	label := spec.Label
	if spec.Required {
		label += " *"
	}

	switch spec.Kind {
	case forms.KindTextArea:
		return f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current.Text, Help: spec.Help})

	case forms.KindCheckbox:
		return f.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: current.Bool, Help: spec.Help})

	case forms.KindSelect, forms.KindRadio:
		idx, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      displayOptions(spec.Options),
			DefaultIndex: indexOf(spec.Options, current.Text),
			Help:         spec.Help,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(spec.Options) {
			return current.Text, nil
		}
		return spec.Options[idx], nil

	case forms.KindMultiSelect:
		// Values outside the declared options stay selectable.
		options := withExtras(spec.Options, current.List)
		idx, err := f.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  displayOptions(options),
			Defaults: indicesOf(options, current.List),
			Help:     spec.Help,
		})
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(idx))
		for _, i := range idx {
			if i >= 0 && i < len(options) {
				out = append(out, options[i])
			}
		}
		return out, nil

	case forms.KindNumber:
		return f.promptNumber(ctx, spec, label, current)

	case forms.KindSlider:
		if current.Range {
			return f.promptRange(ctx, spec, label, current)
		}
		return f.promptNumber(ctx, spec, label, current)

	case forms.KindDate:
		raw, err := f.driver.Input(ctx, InputConfig{
			Message:   label + " (YYYY-MM-DD)",
			Default:   current.Date.String(),
			Help:      spec.Help,
			Validator: validateDate,
		})
		return strings.TrimSpace(raw), err

	case forms.KindTime:
		raw, err := f.driver.Input(ctx, InputConfig{
			Message:   label + " (HH:MM:SS)",
			Default:   current.Time.String(),
			Help:      spec.Help,
			Validator: validateTime,
		})
		return strings.TrimSpace(raw), err

	default:
		return f.driver.Input(ctx, InputConfig{Message: label, Default: current.Text, Help: spec.Help})
	}
}

func (f *Filler) promptNumber(ctx context.Context, spec forms.FieldSpec, label string, current render.Value) (any, error) {
	def := current.String()
	b := boundsOf(spec)
	if b != nil {
		label = fmt.Sprintf("%s [%s-%s]", label, formatFloat(b.Min), formatFloat(b.Max))
		if current.Number < b.Min || current.Number > b.Max {
			def = formatFloat(b.Min)
		}
	}
	raw, err := f.driver.Input(ctx, InputConfig{
		Message:   label,
		Default:   def,
		Help:      spec.Help,
		Validator: numberValidator(b),
	})
	if err != nil {
		return nil, err
	}
	return cast.ToFloat64E(strings.TrimSpace(raw))
}

func (f *Filler) promptRange(ctx context.Context, spec forms.FieldSpec, label string, current render.Value) (any, error) {
	b := spec.SliderBounds()
	raw, err := f.driver.Input(ctx, InputConfig{
		Message: fmt.Sprintf("%s [%s-%s] (low, high)", label, formatFloat(b.Min), formatFloat(b.Max)),
		Default: formatFloat(current.Pair[0]) + ", " + formatFloat(current.Pair[1]),
		Help:    spec.Help,
		Validator: func(s string) error {
			_, err := parseRange(s, b)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	pair, err := parseRange(raw, b)
	if err != nil {
		return nil, err
	}
	return []any{pair[0], pair[1]}, nil
}

func boundsOf(spec forms.FieldSpec) *forms.Bounds {
	if spec.Kind == forms.KindSlider {
		b := spec.SliderBounds()
		return &b
	}
	return spec.Bounds
}

func numberValidator(b *forms.Bounds) func(string) error {
	return func(s string) error {
		n, err := cast.ToFloat64E(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		if b != nil && (n < b.Min || n > b.Max) {
			return fmt.Errorf("must be between %s and %s", formatFloat(b.Min), formatFloat(b.Max))
		}
		return nil
	}
}

func parseRange(s string, b forms.Bounds) ([2]float64, error) {
	var out [2]float64
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return out, fmt.Errorf("enter two numbers separated by a comma")
	}
	check := numberValidator(&b)
	for i, p := range parts {
		if err := check(p); err != nil {
			return out, err
		}
		out[i] = cast.ToFloat64(strings.TrimSpace(p))
	}
	if out[0] > out[1] {
		return out, fmt.Errorf("low must not exceed high")
	}
	return out, nil
}

func validateDate(s string) error {
	if _, err := civil.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateTime(s string) error {
	if _, err := civil.ParseTime(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use HH:MM:SS")
	}
	return nil
}

// withExtras appends the selected values missing from options.
func withExtras(options, selected []string) []string {
	out := append([]string{}, options...)
	for _, v := range selected {
		if indexOf(out, v) < 0 {
			out = append(out, v)
		}
	}
	return out
}

// displayOptions replaces the empty choice with a visible label.
func displayOptions(options []string) []string {
	out := make([]string, len(options))
	for i, o := range options {
		if o == "" {
			o = noneOption
		}
		out[i] = o
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
