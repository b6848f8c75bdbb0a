package endpoints

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/svcctx"
	"github.com/jackzampolin/formfill/version"
)

// HealthResponse is the response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Providers string `json:"providers,omitempty"`
}

// HealthEndpoint handles GET /health.
type HealthEndpoint struct{}

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Health check
//	@Description	Report that the server process is up
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (e *HealthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp HealthResponse
			if err := client.Get(ctx, "/health", &resp); err != nil {
				return err
			}
			fmt.Printf("Status: %s\n", resp.Status)
			return nil
		},
	}
}

// ReadyEndpoint handles GET /ready.
type ReadyEndpoint struct{}

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Readiness check
//	@Description	Report whether sessions can be served and an extraction provider is registered
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/ready [get]
func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if svcctx.SessionsFrom(r.Context()) == nil || svcctx.CatalogFrom(r.Context()) == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "not_initialized"})
		return
	}

	// Manual entry works without a provider, so a missing one only degrades.
	resp := HealthResponse{Status: "ok", Providers: "ok"}
	registry := svcctx.RegistryFrom(r.Context())
	if registry == nil || len(registry.ListLLM()) == 0 {
		resp.Providers = "none"
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *ReadyEndpoint) Command(getServerURL func() string) *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "ready",
		Short: "Check server readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			if wait > 0 {
				if err := client.WaitReady(ctx, wait); err != nil {
					return err
				}
			}
			var resp HealthResponse
			if err := client.Get(ctx, "/ready", &resp); err != nil {
				return err
			}
			fmt.Printf("Status:    %s\n", resp.Status)
			if resp.Providers != "" {
				fmt.Printf("Providers: %s\n", resp.Providers)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 0, "Poll until the server is ready or the duration elapses")
	return cmd
}

// StatusResponse is the detailed status response.
type StatusResponse struct {
	Server    string          `json:"server"`
	Version   string          `json:"version"`
	Providers ProvidersStatus `json:"providers"`
	Forms     []string        `json:"forms"`
	Sessions  SessionsStatus  `json:"sessions"`
	LLMCalls  int             `json:"llm_calls"`
}

// ProvidersStatus shows registered LLM providers and the extraction default.
type ProvidersStatus struct {
	LLM     []string `json:"llm"`
	Default string   `json:"default"`
	Model   string   `json:"model,omitempty"`
}

// SessionsStatus counts sessions by lifecycle state.
type SessionsStatus struct {
	Open      int `json:"open"`
	Submitted int `json:"submitted"`
}

// StatusEndpoint handles GET /status.
type StatusEndpoint struct{}

func (e *StatusEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/status", e.handler
}

func (e *StatusEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Server status
//	@Description	Registered providers, catalog forms, session counts and version
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	StatusResponse
//	@Router			/status [get]
func (e *StatusEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := StatusResponse{
		Server:  "running",
		Version: version.GitRelease,
	}

	if registry := svcctx.RegistryFrom(ctx); registry != nil {
		resp.Providers.LLM = registry.ListLLM()
	}
	if extractor := svcctx.ExtractorFrom(ctx); extractor != nil {
		resp.Providers.Default, resp.Providers.Model = extractor.Defaults()
	}
	if catalog := svcctx.CatalogFrom(ctx); catalog != nil {
		resp.Forms = catalog.IDs()
	}
	resp.Sessions = countSessions(ctx)
	if calls := svcctx.LLMCallStoreFrom(ctx); calls != nil {
		resp.LLMCalls = calls.Len()
	}

	writeJSON(w, http.StatusOK, resp)
}

func countSessions(ctx context.Context) SessionsStatus {
	var out SessionsStatus
	store := svcctx.SessionsFrom(ctx)
	if store == nil {
		return out
	}
	sessions, err := store.List(ctx)
	if err != nil {
		svcctx.LoggerFrom(ctx).Warn("failed to list sessions", "error", err)
		return out
	}
	for _, s := range sessions {
		if s.Submitted {
			out.Submitted++
		} else {
			out.Open++
		}
	}
	return out
}

func (e *StatusEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get detailed server status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			var resp StatusResponse
			if err := client.Get(ctx, "/status", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
