package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/llmcall"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// LLMCallsResponse contains a page of LLM calls. Total counts every match.
type LLMCallsResponse struct {
	Calls []llmcall.Call `json:"calls"`
	Total int            `json:"total"`
}

// LLMCallResponse contains a single LLM call.
type LLMCallResponse struct {
	Call  *llmcall.Call `json:"call,omitempty"`
	Error string        `json:"error,omitempty"`
}

// LLMCallCountsResponse contains prompt key counts.
type LLMCallCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

// ListLLMCallsEndpoint handles GET /api/llmcalls.
type ListLLMCallsEndpoint struct{}

func (e *ListLLMCallsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/llmcalls", e.handler
}

func (e *ListLLMCallsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List LLM calls
//	@Description	Get extraction call history, newest first, with optional filters
//	@Tags			llmcalls
//	@Produce		json
//	@Param			session_id	query		string	false	"Filter by session ID"
//	@Param			form_id		query		string	false	"Filter by form ID"
//	@Param			prompt_key	query		string	false	"Filter by prompt key"
//	@Param			provider	query		string	false	"Filter by provider"
//	@Param			model		query		string	false	"Filter by model"
//	@Param			success		query		bool	false	"Filter by success status (true or false)"
//	@Param			limit		query		int		false	"Max results (default 100)"
//	@Param			offset		query		int		false	"Result offset"
//	@Param			after		query		string	false	"Filter calls after this RFC3339 timestamp"
//	@Param			before		query		string	false	"Filter calls before this RFC3339 timestamp"
//	@Success		200			{object}	LLMCallsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/api/llmcalls [get]
func (e *ListLLMCallsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.LLMCallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "LLM call store not available")
		return
	}

	filter, err := parseCallFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	calls, total := store.List(filter)
	writeJSON(w, http.StatusOK, LLMCallsResponse{
		Calls: calls,
		Total: total,
	})
}

func parseCallFilter(q url.Values) (llmcall.QueryFilter, error) {
	filter := llmcall.QueryFilter{
		SessionID: q.Get("session_id"),
		FormID:    q.Get("form_id"),
		PromptKey: q.Get("prompt_key"),
		Provider:  q.Get("provider"),
		Model:     q.Get("model"),
	}

	if v := q.Get("success"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, fmt.Errorf("invalid success filter: %q must be true or false", v)
		}
		filter.Success = &b
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid limit: %q must be an integer", v)
		}
		filter.Limit = limit
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid offset: %q must be an integer", v)
		}
		filter.Offset = offset
	}

	if v := q.Get("after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid after time: %q must be RFC3339 format (e.g., 2024-01-15T00:00:00Z)", v)
		}
		filter.After = &t
	}
	if v := q.Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid before time: %q must be RFC3339 format (e.g., 2024-01-15T00:00:00Z)", v)
		}
		filter.Before = &t
	}
	return filter, nil
}

func (e *ListLLMCallsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var sessionID, formID, promptKey, provider, model string
	var limit, offset int
	var successOnly, failedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LLM calls",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			params := url.Values{}
			set := func(k, v string) {
				if v != "" {
					params.Set(k, v)
				}
			}
			set("session_id", sessionID)
			set("form_id", formID)
			set("prompt_key", promptKey)
			set("provider", provider)
			set("model", model)
			if successOnly {
				params.Set("success", "true")
			}
			if failedOnly {
				params.Set("success", "false")
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}

			path := "/api/llmcalls"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var resp LLMCallsResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Filter by session ID")
	cmd.Flags().StringVar(&formID, "form-id", "", "Filter by form ID")
	cmd.Flags().StringVar(&promptKey, "prompt-key", "", "Filter by prompt key")
	cmd.Flags().StringVar(&provider, "provider", "", "Filter by provider")
	cmd.Flags().StringVar(&model, "model", "", "Filter by model")
	cmd.Flags().BoolVar(&successOnly, "success", false, "Only show successful calls")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show failed calls")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Result offset")
	return cmd
}

// GetLLMCallEndpoint handles GET /api/llmcalls/{id}.
type GetLLMCallEndpoint struct{}

func (e *GetLLMCallEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/llmcalls/{id}", e.handler
}

func (e *GetLLMCallEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get an LLM call
//	@Description	Get a single LLM call by ID
//	@Tags			llmcalls
//	@Produce		json
//	@Param			id	path		string	true	"LLM call ID"
//	@Success		200	{object}	LLMCallResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/llmcalls/{id} [get]
func (e *GetLLMCallEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id required")
		return
	}

	store := svcctx.LLMCallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "LLM call store not available")
		return
	}

	call := store.Get(id)
	if call == nil {
		writeError(w, http.StatusNotFound, "LLM call not found")
		return
	}

	writeJSON(w, http.StatusOK, LLMCallResponse{Call: call})
}

func (e *GetLLMCallEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an LLM call by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp LLMCallResponse
			if err := client.Get(ctx, "/api/llmcalls/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp.Call)
		},
	}
}

// LLMCallCountsEndpoint handles GET /api/llmcalls/counts/{form_id}.
type LLMCallCountsEndpoint struct{}

func (e *LLMCallCountsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/llmcalls/counts/{form_id}", e.handler
}

func (e *LLMCallCountsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get LLM call counts by prompt key
//	@Description	Get count of LLM calls grouped by prompt key for a form
//	@Tags			llmcalls
//	@Produce		json
//	@Param			form_id	path		string	true	"Form ID"
//	@Success		200		{object}	LLMCallCountsResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/llmcalls/counts/{form_id} [get]
func (e *LLMCallCountsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	formID := r.PathValue("form_id")
	if formID == "" {
		writeError(w, http.StatusBadRequest, "form_id required")
		return
	}

	store := svcctx.LLMCallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "LLM call store not available")
		return
	}

	writeJSON(w, http.StatusOK, LLMCallCountsResponse{Counts: store.CountByPromptKey(formID)})
}

func (e *LLMCallCountsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "counts <form-id>",
		Short: "Get LLM call counts by prompt key for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp LLMCallCountsResponse
			if err := client.Get(ctx, "/api/llmcalls/counts/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp.Counts)
		},
	}
}

// LLMCallStatsResponse contains aggregate call statistics, optionally grouped.
type LLMCallStatsResponse struct {
	Stats   *llmcall.Stats            `json:"stats"`
	GroupBy string                    `json:"group_by,omitempty"`
	Groups  map[string]*llmcall.Stats `json:"groups,omitempty"`
}

// LLMCallStatsEndpoint handles GET /api/llmcalls/stats.
type LLMCallStatsEndpoint struct{}

func (e *LLMCallStatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/llmcalls/stats", e.handler
}

func (e *LLMCallStatsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get LLM call statistics
//	@Description	Latency percentiles and token usage over matching calls
//	@Tags			llmcalls
//	@Produce		json
//	@Param			group_by	query		string	false	"Group by provider, model, form or prompt_key"
//	@Param			form_id		query		string	false	"Filter by form ID"
//	@Param			provider	query		string	false	"Filter by provider"
//	@Param			model		query		string	false	"Filter by model"
//	@Param			success		query		bool	false	"Filter by success status (true or false)"
//	@Param			after		query		string	false	"Filter calls after this RFC3339 timestamp"
//	@Param			before		query		string	false	"Filter calls before this RFC3339 timestamp"
//	@Success		200			{object}	LLMCallStatsResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/api/llmcalls/stats [get]
func (e *LLMCallStatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.LLMCallStoreFrom(r.Context())
	if store == nil {
		writeError(w, http.StatusInternalServerError, "LLM call store not available")
		return
	}

	filter, err := parseCallFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := LLMCallStatsResponse{Stats: store.Stats(filter)}
	if groupBy := r.URL.Query().Get("group_by"); groupBy != "" {
		key, ok := llmcall.GroupKey(groupBy)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid group_by %q: use provider, model, form or prompt_key", groupBy))
			return
		}
		resp.GroupBy = groupBy
		resp.Groups = store.StatsBy(filter, key)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *LLMCallStatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var groupBy, formID, provider string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show LLM call latency and token statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())

			params := url.Values{}
			if groupBy != "" {
				params.Set("group_by", groupBy)
			}
			if formID != "" {
				params.Set("form_id", formID)
			}
			if provider != "" {
				params.Set("provider", provider)
			}
			path := "/api/llmcalls/stats"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var resp LLMCallStatsResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&groupBy, "group-by", "", "Group by provider, model, form or prompt_key")
	cmd.Flags().StringVar(&formID, "form-id", "", "Filter by form ID")
	cmd.Flags().StringVar(&provider, "provider", "", "Filter by provider")
	return cmd
}
