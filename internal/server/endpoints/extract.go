package endpoints

import (
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/session"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// ExtractRequest is the request body for auto-filling from free text.
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse is the session after an auto-fill attempt. A failed
// extraction still answers 200: Result is empty and Notice says why.
type ExtractResponse struct {
	SessionResponse
	Result  *extract.Result `json:"result"`
	Dropped []string        `json:"dropped,omitempty"`
	Notice  string          `json:"notice,omitempty"`
}

// ExtractEndpoint handles POST /api/sessions/{id}/extract.
type ExtractEndpoint struct{}

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions/{id}/extract", e.handler
}

func (e *ExtractEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Auto-fill from text
//	@Description	Send a free-text description to the completion provider and merge the extracted values
//	@Description	into the session. Extraction failures leave the values untouched and set notice.
//	@Tags			sessions
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Session ID"
//	@Param			request	body		ExtractRequest	true	"Free-text description"
//	@Success		200		{object}	ExtractResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/extract [post]
func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	store := svcctx.SessionsFrom(ctx)
	renderer := svcctx.RendererFrom(ctx)
	extractor := svcctx.ExtractorFrom(ctx)
	if store == nil || renderer == nil || extractor == nil {
		writeError(w, http.StatusInternalServerError, "extraction services not available")
		return
	}
	logger := svcctx.LoggerFrom(ctx)

	id := r.PathValue("id")
	current, err := store.Get(ctx, id)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if current.Submitted {
		writeSessionError(w, session.ErrSubmitted)
		return
	}

	// The completion call runs outside the store lock.
	result, extractErr := extractor.Extract(ctx, req.Text, current.Form(), extract.WithSessionID(id))
	resp := ExtractResponse{Result: result, Notice: extract.Notice(extractErr)}
	if extractErr != nil {
		logger.Info("auto-fill did not change session", "session", id, "error", extractErr)
	}

	var view session.PageView
	s, err := store.Update(ctx, id, func(s *session.Session) error {
		if extractErr == nil {
			dropped, err := s.Merge(result.Supported, result.Unsupported)
			if err != nil {
				return err
			}
			resp.Dropped = dropped
		}
		view = s.RenderPage(renderer)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if len(resp.Dropped) > 0 {
		logger.Debug("extracted keys outside the form", "session", id, "keys", resp.Dropped)
	}

	resp.SessionResponse = newSessionResponse(s, view)
	writeJSON(w, http.StatusOK, resp)
}

func (e *ExtractEndpoint) Command(getServerURL func() string) *cobra.Command {
	var text, file string
	cmd := &cobra.Command{
		Use:   "extract <id> [description]",
		Short: "Auto-fill a session from a free-text description",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 2 {
				text = args[1]
			}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return extract.ErrEmptyDescription
			}

			client := api.NewClient(getServerURL())
			var resp map[string]any
			if err := client.Post(ctx, "/api/sessions/"+args[0]+"/extract", ExtractRequest{Text: text}, &resp); err != nil {
				return err
			}
			if notice, _ := resp["notice"].(string); notice != "" {
				cmd.PrintErrln(notice)
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the description from a file")
	return cmd
}
