// Package fill holds the system prompts that turn a form schema into an
// extraction instruction for the completion service.
package fill

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/prompts"
)

//go:embed form_system.tmpl
var formSystemPrompt string

//go:embed wizard_system.tmpl
var wizardSystemPrompt string

// Prompt keys.
const (
	FormPromptKey   = "fill.form.system"
	WizardPromptKey = "fill.wizard.system"
)

var (
	formTmpl   = template.Must(template.New(FormPromptKey).Parse(formSystemPrompt))
	wizardTmpl = template.Must(template.New(WizardPromptKey).Parse(wizardSystemPrompt))
)

// Data is the template input.
type Data struct {
	Title  string
	Schema string
	Notes  []string
}

// FormPrompt builds the single-form system prompt.
func FormPrompt(schema *forms.FormSchema) (string, error) {
	return render(formTmpl, schema)
}

// WizardPrompt builds the multi-page system prompt, which also asks for
// supported_fields/unsupported_fields.
func WizardPrompt(schema *forms.FormSchema) (string, error) {
	return render(wizardTmpl, schema)
}

// Build picks the prompt for the schema's shape and returns its key.
func Build(schema *forms.FormSchema) (key, text string, err error) {
	key = KeyFor(schema)
	if schema.MultiPage() {
		text, err = WizardPrompt(schema)
	} else {
		text, err = FormPrompt(schema)
	}
	return key, text, err
}

// KeyFor returns the prompt key used for schema.
func KeyFor(schema *forms.FormSchema) string {
	if schema.MultiPage() {
		return WizardPromptKey
	}
	return FormPromptKey
}

// Template returns the raw template text registered under key.
func Template(key string) (string, bool) {
	switch key {
	case FormPromptKey:
		return formSystemPrompt, true
	case WizardPromptKey:
		return wizardSystemPrompt, true
	}
	return "", false
}

// RegisterPrompts registers the fill prompts with the resolver.
func RegisterPrompts(r *prompts.Resolver) {
	r.Register(prompts.EmbeddedPrompt{
		Key:         FormPromptKey,
		Text:        formSystemPrompt,
		Description: "Single form extraction - returns a flat JSON object of field values",
	})
	r.Register(prompts.EmbeddedPrompt{
		Key:         WizardPromptKey,
		Text:        wizardSystemPrompt,
		Description: "Multi-page wizard extraction - returns supported_fields and unsupported_fields",
	})
}

func render(tmpl *template.Template, schema *forms.FormSchema) (string, error) {
	if schema == nil {
		return "", fmt.Errorf("nil form schema")
	}
	fields, err := schema.PromptSchema().Indented()
	if err != nil {
		return "", fmt.Errorf("failed to serialize form schema: %w", err)
	}
	var b strings.Builder
	err = tmpl.Execute(&b, Data{
		Title:  schema.Title,
		Schema: fields,
		Notes:  schema.Notes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}
