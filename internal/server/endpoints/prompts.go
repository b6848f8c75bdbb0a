package endpoints

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/prompts"
	"github.com/jackzampolin/formfill/internal/prompts/fill"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// PromptResponse represents a single prompt. Rendered is set when a form
// was given: the exact system prompt sent for that form.
type PromptResponse struct {
	Key         string   `json:"key"`
	Text        string   `json:"text"`
	Description string   `json:"description,omitempty"`
	Variables   []string `json:"variables,omitempty"`
	Hash        string   `json:"hash,omitempty"`
	Form        string   `json:"form,omitempty"`
	Rendered    string   `json:"rendered,omitempty"`
}

// PromptsListResponse contains all prompts.
type PromptsListResponse struct {
	Prompts []prompts.Prompt `json:"prompts"`
}

// ListPromptsEndpoint handles GET /api/prompts.
type ListPromptsEndpoint struct{}

func (e *ListPromptsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts", e.handler
}

func (e *ListPromptsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List all prompts
//	@Description	Get all registered prompt templates
//	@Tags			prompts
//	@Produce		json
//	@Success		200	{object}	PromptsListResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/prompts [get]
func (e *ListPromptsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resolver := svcctx.PromptResolverFrom(r.Context())
	if resolver == nil {
		writeError(w, http.StatusInternalServerError, "prompt resolver not available")
		return
	}
	writeJSON(w, http.StatusOK, PromptsListResponse{Prompts: resolver.List()})
}

func (e *ListPromptsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp PromptsListResponse
			if err := client.Get(ctx, "/api/prompts", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetPromptEndpoint handles GET /api/prompts/{key...}.
type GetPromptEndpoint struct{}

func (e *GetPromptEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/prompts/{key...}", e.handler
}

func (e *GetPromptEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a prompt
//	@Description	Get a prompt template by key. With form set, also render it for that form.
//	@Tags			prompts
//	@Produce		json
//	@Param			key		path		string	true	"Prompt key (e.g., fill.form.system)"
//	@Param			form	query		string	false	"Form ID or title to render the prompt for"
//	@Success		200		{object}	PromptResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/prompts/{key} [get]
func (e *GetPromptEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(r.PathValue("key"))
	if err != nil || key == "" {
		writeError(w, http.StatusBadRequest, "invalid prompt key")
		return
	}

	resolver := svcctx.PromptResolverFrom(r.Context())
	if resolver == nil {
		writeError(w, http.StatusInternalServerError, "prompt resolver not available")
		return
	}

	embedded, ok := resolver.GetEmbedded(key)
	if !ok {
		writeError(w, http.StatusNotFound, "prompt not found: "+key)
		return
	}
	resp := PromptResponse{
		Key:         embedded.Key,
		Text:        embedded.Text,
		Description: embedded.Description,
		Variables:   embedded.Variables,
		Hash:        embedded.Hash,
	}

	if name := r.URL.Query().Get("form"); name != "" {
		catalog := svcctx.CatalogFrom(r.Context())
		if catalog == nil {
			writeError(w, http.StatusInternalServerError, "form catalog not available")
			return
		}
		form, ok := catalog.Form(name)
		if !ok {
			writeError(w, http.StatusNotFound, "form not found: "+name)
			return
		}
		if fill.KeyFor(form) != key {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("form %s uses prompt %s", form.ID, fill.KeyFor(form)))
			return
		}
		_, text, err := fill.Build(form)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Form = form.ID
		resp.Rendered = text
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *GetPromptEndpoint) Command(getServerURL func() string) *cobra.Command {
	var form string
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a prompt by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			path := "/api/prompts/" + url.PathEscape(args[0])
			if form != "" {
				path += "?form=" + url.QueryEscape(form)
			}
			var resp PromptResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&form, "form", "", "Render the prompt for this form")
	return cmd
}
