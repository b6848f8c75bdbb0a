package endpoints

import (
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// FormSummary is the listing view of a catalog form.
type FormSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Pages       int    `json:"pages"`
	Fields      int    `json:"fields"`
	MultiPage   bool   `json:"multi_page"`
}

// FormsListResponse contains every catalog form.
type FormsListResponse struct {
	Forms []FormSummary `json:"forms"`
}

// FormResponse is a full form schema plus the field map sent to the model.
type FormResponse struct {
	Form         *forms.FormSchema  `json:"form"`
	PromptSchema forms.PromptSchema `json:"prompt_schema"`
}

func summarizeForm(f *forms.FormSchema) FormSummary {
	return FormSummary{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Pages:       f.PageCount(),
		Fields:      f.FieldCount(),
		MultiPage:   f.MultiPage(),
	}
}

// ListFormsEndpoint handles GET /api/forms.
type ListFormsEndpoint struct{}

func (e *ListFormsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/forms", e.handler
}

func (e *ListFormsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List forms
//	@Description	List the forms in the catalog
//	@Tags			forms
//	@Produce		json
//	@Success		200	{object}	FormsListResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/forms [get]
func (e *ListFormsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	catalog := svcctx.CatalogFrom(r.Context())
	if catalog == nil {
		writeError(w, http.StatusInternalServerError, "form catalog not available")
		return
	}

	all := catalog.Forms()
	resp := FormsListResponse{Forms: make([]FormSummary, len(all))}
	for i, f := range all {
		resp.Forms[i] = summarizeForm(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ListFormsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog forms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp FormsListResponse
			if err := client.Get(ctx, "/api/forms", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetFormEndpoint handles GET /api/forms/{form}.
type GetFormEndpoint struct{}

func (e *GetFormEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/forms/{form}", e.handler
}

func (e *GetFormEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a form
//	@Description	Get a form schema by ID or title
//	@Tags			forms
//	@Produce		json
//	@Param			form	path		string	true	"Form ID or title"
//	@Success		200		{object}	FormResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/forms/{form} [get]
func (e *GetFormEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	catalog := svcctx.CatalogFrom(r.Context())
	if catalog == nil {
		writeError(w, http.StatusInternalServerError, "form catalog not available")
		return
	}

	form, ok := catalog.Form(r.PathValue("form"))
	if !ok {
		writeError(w, http.StatusNotFound, "form not found: "+r.PathValue("form"))
		return
	}
	writeJSON(w, http.StatusOK, FormResponse{Form: form, PromptSchema: form.PromptSchema()})
}

func (e *GetFormEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <form>",
		Short: "Get a form schema by ID or title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp FormResponse
			if err := client.Get(ctx, "/api/forms/"+url.PathEscape(args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
