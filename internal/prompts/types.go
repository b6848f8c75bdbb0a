// Package prompts provides prompt management with embedded defaults.
//
// Prompt templates live as embedded .tmpl files next to the code that renders
// them. Each package registers its templates with a Resolver under a
// hierarchical key so the server can list them and every recorded LLM call
// can be traced back to the exact template text through its hash.
package prompts

// Prompt is the listing view of a registered prompt.
type Prompt struct {
	Key         string   `json:"key"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Variables   []string `json:"variables,omitempty"`
	Hash        string   `json:"hash"`
}

// ResolvedPrompt is the result of resolving a prompt key.
type ResolvedPrompt struct {
	Key       string   `json:"key"`
	Text      string   `json:"text"`
	Variables []string `json:"variables,omitempty"`
	Hash      string   `json:"hash"` // SHA256 of Text for traceability
}

// EmbeddedPrompt represents a prompt loaded from an embedded .tmpl file.
type EmbeddedPrompt struct {
	Key         string   // Hierarchical key: fill.form.system
	Text        string   // The prompt text (Go template)
	Description string   // Human-readable description
	Variables   []string // Extracted template variables
	Hash        string   // SHA256 hash of the text for change detection
}
