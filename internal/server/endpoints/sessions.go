package endpoints

import (
	"errors"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/session"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// CreateSessionRequest is the request body for starting a session.
type CreateSessionRequest struct {
	Form string `json:"form"`
}

// SessionResponse is a session together with its rendered active page.
type SessionResponse struct {
	Session  *session.Session `json:"session"`
	Page     session.PageView `json:"page"`
	Progress string           `json:"progress"`
}

// SessionsListResponse contains all sessions.
type SessionsListResponse struct {
	Sessions []*session.Session `json:"sessions"`
	Total    int                `json:"total"`
}

// UpdateFieldsRequest is the request body for manual field entry.
type UpdateFieldsRequest struct {
	Values map[string]any `json:"values"`
}

func newSessionResponse(s *session.Session, view session.PageView) SessionResponse {
	return SessionResponse{Session: s, Page: view, Progress: view.Progress()}
}

// renderSession renders the active page of session id, storing the
// normalized values, and writes the response.
func renderSession(w http.ResponseWriter, r *http.Request, id string, fn func(*session.Session) error) {
	ctx := r.Context()
	store := svcctx.SessionsFrom(ctx)
	renderer := svcctx.RendererFrom(ctx)
	if store == nil || renderer == nil {
		writeError(w, http.StatusInternalServerError, "session store not available")
		return
	}

	var view session.PageView
	s, err := store.Update(ctx, id, func(s *session.Session) error {
		if fn != nil {
			if err := fn(s); err != nil {
				return err
			}
		}
		view = s.RenderPage(renderer)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(s, view))
}

// CreateSessionEndpoint handles POST /api/sessions.
type CreateSessionEndpoint struct{}

func (e *CreateSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions", e.handler
}

func (e *CreateSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Start a session
//	@Description	Start filling a catalog form. The first page is rendered with defaults.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSessionRequest	true	"Form to fill"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/sessions [post]
func (e *CreateSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Form == "" {
		writeError(w, http.StatusBadRequest, "form is required")
		return
	}

	ctx := r.Context()
	catalog := svcctx.CatalogFrom(ctx)
	store := svcctx.SessionsFrom(ctx)
	renderer := svcctx.RendererFrom(ctx)
	if catalog == nil || store == nil || renderer == nil {
		writeError(w, http.StatusInternalServerError, "session services not available")
		return
	}

	form, ok := catalog.Form(req.Form)
	if !ok {
		writeError(w, http.StatusNotFound, "form not found: "+req.Form)
		return
	}

	s := session.New(form)
	view := s.RenderPage(renderer)
	if err := store.Create(ctx, s); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	svcctx.LoggerFrom(ctx).Info("session created", "session", s.ID, "form", form.ID)
	writeJSON(w, http.StatusCreated, newSessionResponse(s, view))
}

func (e *CreateSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "create <form>",
		Short: "Start filling a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Post(ctx, "/api/sessions", CreateSessionRequest{Form: args[0]}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ListSessionsEndpoint handles GET /api/sessions.
type ListSessionsEndpoint struct{}

func (e *ListSessionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions", e.handler
}

func (e *ListSessionsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List sessions
//	@Description	List all sessions, oldest first
//	@Tags			sessions
//	@Produce		json
//	@Param			form	query		string	false	"Filter by form ID"
//	@Success		200		{object}	SessionsListResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/sessions [get]
func (e *ListSessionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.SessionsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "session store not available")
		return
	}

	all, err := store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	formID := r.URL.Query().Get("form")
	sessions := make([]*session.Session, 0, len(all))
	for _, s := range all {
		if formID == "" || s.FormID == formID {
			sessions = append(sessions, s)
		}
	}
	writeJSON(w, http.StatusOK, SessionsListResponse{Sessions: sessions, Total: len(sessions)})
}

func (e *ListSessionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var formID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			path := "/api/sessions"
			if formID != "" {
				path += "?form=" + formID
			}
			var resp SessionsListResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&formID, "form", "", "Filter by form ID")
	return cmd
}

// GetSessionEndpoint handles GET /api/sessions/{id}.
type GetSessionEndpoint struct{}

func (e *GetSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}", e.handler
}

func (e *GetSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a session
//	@Description	Get a session and render its active page
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id} [get]
func (e *GetSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderSession(w, r, r.PathValue("id"), nil)
}

func (e *GetSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a session and its active page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Get(ctx, "/api/sessions/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DeleteSessionEndpoint handles DELETE /api/sessions/{id}.
type DeleteSessionEndpoint struct{}

func (e *DeleteSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/sessions/{id}", e.handler
}

func (e *DeleteSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete a session
//	@Description	Discard a session and its values
//	@Tags			sessions
//	@Param			id	path	string	true	"Session ID"
//	@Success		204
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id} [delete]
func (e *DeleteSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.SessionsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "session store not available")
		return
	}
	if err := store.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *DeleteSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			if err := client.Delete(ctx, "/api/sessions/"+args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted session %s\n", args[0])
			return nil
		},
	}
}

// UpdateFieldsEndpoint handles PATCH /api/sessions/{id}/fields.
type UpdateFieldsEndpoint struct{}

func (e *UpdateFieldsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/sessions/{id}/fields", e.handler
}

func (e *UpdateFieldsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Enter field values
//	@Description	Set field values by hand. Unknown field names reject the whole update.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Session ID"
//	@Param			request	body		UpdateFieldsRequest	true	"Values by field name"
//	@Success		200		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/fields [patch]
func (e *UpdateFieldsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req UpdateFieldsRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	names := make([]string, 0, len(req.Values))
	for name := range req.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	renderSession(w, r, r.PathValue("id"), func(s *session.Session) error {
		for _, name := range names {
			if err := s.Set(name, req.Values[name]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (e *UpdateFieldsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var values map[string]string
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Set field values (--value name=value, repeatable)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			req := UpdateFieldsRequest{Values: make(map[string]any, len(values))}
			for k, v := range values {
				req.Values[k] = v
			}
			var resp map[string]any
			if err := client.Patch(ctx, "/api/sessions/"+args[0]+"/fields", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringToStringVar(&values, "value", nil, "Field value as name=value")
	return cmd
}

// NextPageEndpoint handles POST /api/sessions/{id}/next.
type NextPageEndpoint struct{}

func (e *NextPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions/{id}/next", e.handler
}

func (e *NextPageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Next page
//	@Description	Move to the following page. On the last page this is a no-op.
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id}/next [post]
func (e *NextPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderSession(w, r, r.PathValue("id"), func(s *session.Session) error {
		s.Next()
		return nil
	})
}

func (e *NextPageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return navCommand(getServerURL, "next", "Move to the next page")
}

// BackPageEndpoint handles POST /api/sessions/{id}/back.
type BackPageEndpoint struct{}

func (e *BackPageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions/{id}/back", e.handler
}

func (e *BackPageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Previous page
//	@Description	Move to the previous page. On the first page this is a no-op.
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SessionResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id}/back [post]
func (e *BackPageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	renderSession(w, r, r.PathValue("id"), func(s *session.Session) error {
		s.Back()
		return nil
	})
}

func (e *BackPageEndpoint) Command(getServerURL func() string) *cobra.Command {
	return navCommand(getServerURL, "back", "Move to the previous page")
}

func navCommand(getServerURL func() string, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Post(ctx, "/api/sessions/"+args[0]+"/"+action, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SubmitResponse is the completion summary of a submit attempt.
type SubmitResponse struct {
	Summary *session.Summary `json:"summary"`
	Error   string           `json:"error,omitempty"`
}

// SubmitSessionEndpoint handles POST /api/sessions/{id}/submit.
type SubmitSessionEndpoint struct{}

func (e *SubmitSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions/{id}/submit", e.handler
}

func (e *SubmitSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Submit a session
//	@Description	Normalize every page and finalize the session. Missing required fields return 422 with the summary.
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	SubmitResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		422	{object}	SubmitResponse
//	@Router			/api/sessions/{id}/submit [post]
func (e *SubmitSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := svcctx.SessionsFrom(ctx)
	renderer := svcctx.RendererFrom(ctx)
	if store == nil || renderer == nil {
		writeError(w, http.StatusInternalServerError, "session store not available")
		return
	}

	var summary *session.Summary
	id := r.PathValue("id")
	_, err := store.Update(ctx, id, func(s *session.Session) error {
		var err error
		summary, err = s.Submit(renderer)
		return err
	})
	switch {
	case err == nil:
		svcctx.LoggerFrom(ctx).Info("session submitted", "session", id, "completion", summary.Completion)
		writeJSON(w, http.StatusOK, SubmitResponse{Summary: summary})
	case errors.Is(err, session.ErrMissingRequired):
		writeJSON(w, http.StatusUnprocessableEntity, SubmitResponse{Summary: summary, Error: err.Error()})
	default:
		writeSessionError(w, err)
	}
}

func (e *SubmitSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>",
		Short: "Submit a session and print the completion summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp SubmitResponse
			if err := client.Post(ctx, "/api/sessions/"+args[0]+"/submit", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp.Summary)
		},
	}
}

// SessionSummaryEndpoint handles GET /api/sessions/{id}/summary.
type SessionSummaryEndpoint struct{}

func (e *SessionSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/summary", e.handler
}

func (e *SessionSummaryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Session summary
//	@Description	Completion summary over the stored values, without submitting
//	@Tags			sessions
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	session.Summary
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id}/summary [get]
func (e *SessionSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.SessionsFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "session store not available")
		return
	}
	s, err := store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Summarize())
}

func (e *SessionSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <id>",
		Short: "Show completion without submitting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp session.Summary
			if err := client.Get(ctx, "/api/sessions/"+args[0]+"/summary", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

