package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/mcpserver"
	"github.com/jackzampolin/formfill/version"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the form tools over MCP (stdio)",
	Long: `Run an MCP server on stdin/stdout for agent clients.

Tools:
  list_forms                   List catalog forms
  describe_form {form}         Field kinds, labels, options and bounds
  build_prompt {form}          The system prompt used for extraction
  extract_fields {form, text}  Extract normalized field values from text

Logs are written to stderr so they never mix with the protocol stream.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}
		_, mgr, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := mcpserver.New(mcpserver.Config{
			Name:      "formfill",
			Version:   version.GitRelease,
			Catalog:   forms.Default(),
			Extractor: newExtractor(mgr.Get(), logger),
			Logger:    logger,
		})
		if err != nil {
			return err
		}
		logger.Info("starting MCP server", "transport", "stdio")
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
