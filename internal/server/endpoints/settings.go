package endpoints

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/svcctx"
)

// SettingsResponse contains the effective configuration as flat entries.
type SettingsResponse struct {
	Settings []config.Entry `json:"settings"`
}

// SettingResponse contains a single config entry.
type SettingResponse struct {
	Entry *config.Entry `json:"entry,omitempty"`
	Error string        `json:"error,omitempty"`
}

// ListSettingsEndpoint handles GET /api/settings.
type ListSettingsEndpoint struct{}

func (e *ListSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings", e.handler
}

func (e *ListSettingsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List settings
//	@Description	Get the effective configuration. API keys are shown as their env reference or redacted.
//	@Tags			settings
//	@Produce		json
//	@Param			prefix	query		string	false	"Only keys with this prefix (e.g., defaults.)"
//	@Success		200		{object}	SettingsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/settings [get]
func (e *ListSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	cfg := currentConfig(r)
	entries, err := cfg.EntriesByPrefix(r.URL.Query().Get("prefix"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if entries == nil {
		entries = []config.Entry{}
	}
	writeJSON(w, http.StatusOK, SettingsResponse{Settings: entries})
}

// currentConfig returns the live configuration, or the defaults when the
// server runs without a config manager.
func currentConfig(r *http.Request) *config.Config {
	if mgr := svcctx.ConfigManagerFrom(r.Context()); mgr != nil {
		return mgr.Get()
	}
	return config.DefaultConfig()
}

func (e *ListSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := api.NewClient(getServerURL())
			path := "/api/settings"
			if prefix != "" {
				path += "?prefix=" + url.QueryEscape(prefix)
			}
			var resp SettingsResponse
			if err := client.Get(ctx, path, &resp); err != nil {
				return err
			}
			return api.Output(resp.Settings)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Filter by key prefix (e.g., 'llm_providers.openai.')")
	return cmd
}

// GetSettingEndpoint handles GET /api/settings/{key...}.
type GetSettingEndpoint struct{}

func (e *GetSettingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings/{key...}", e.handler
}

func (e *GetSettingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a setting
//	@Description	Get a single configuration setting by key
//	@Tags			settings
//	@Produce		json
//	@Param			key	path		string	true	"Setting key (URL-encoded)"
//	@Success		200	{object}	SettingResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/settings/{key} [get]
func (e *GetSettingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid key encoding")
		return
	}
	if err := config.ValidateKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	for _, entry := range currentConfig(r).Entries() {
		if entry.Key == key {
			writeJSON(w, http.StatusOK, SettingResponse{Entry: &entry})
			return
		}
	}
	writeError(w, http.StatusNotFound, "setting not found")
}

func (e *GetSettingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a setting by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			key := args[0]
			if err := config.ValidateKey(key); err != nil {
				return err
			}
			client := api.NewClient(getServerURL())
			var resp SettingResponse
			path := "/api/settings/" + url.PathEscape(key)
			if err := client.Get(ctx, path, &resp); err != nil {
				var se *api.StatusError
				if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
					cmd.PrintErrf("no setting named %s\n", key)
				}
				return err
			}
			return api.Output(resp.Entry)
		},
	}
}
