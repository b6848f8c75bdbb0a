package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running formfill server via HTTP.

These commands require a running server (formfill serve).
Use --server to specify a custom server URL.

Examples:
  formfill api health                          # Check server health
  formfill api forms list                      # List the catalog
  formfill api sessions create customer_info   # Start a session
  formfill api sessions extract <id> "Priya Sharma, 34, from India"
  formfill api sessions submit <id>            # Submit and print the summary`,
}

var formsCmd = &cobra.Command{
	Use:   "forms",
	Short: "Form catalog commands",
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Form session commands",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Configuration settings commands",
}

var llmcallsCmd = &cobra.Command{
	Use:   "llmcalls",
	Short: "LLM call history commands",
}

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Extraction prompt commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func addCommands(parent *cobra.Command, eps []api.Endpoint) {
	for _, ep := range eps {
		parent.AddCommand(ep.Command(getServerURL))
	}
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health and docs endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	addCommands(formsCmd, endpoints.FormCommands())
	addCommands(sessionsCmd, endpoints.SessionCommands())
	addCommands(settingsCmd, endpoints.SettingsCommands())
	addCommands(llmcallsCmd, endpoints.LLMCallCommands())
	addCommands(promptsCmd, endpoints.PromptCommands())

	apiCmd.AddCommand(formsCmd)
	apiCmd.AddCommand(sessionsCmd)
	apiCmd.AddCommand(settingsCmd)
	apiCmd.AddCommand(llmcallsCmd)
	apiCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(apiCmd)
}
