package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/home"
	"github.com/jackzampolin/formfill/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "formfill",
	Short: "AI-assisted form filling from natural language descriptions",
	Long: `Formfill serves multi-field forms and pre-fills them from a free-text
description using an LLM completion service.

It provides:
  - Single page forms (Customer Info, Product Feedback, Support Request)
  - A three page onboarding wizard that reports unsupported information
  - An HTTP API that owns form sessions (formfill serve)
  - An interactive terminal filler (formfill fill)
  - An MCP server for agent clients (formfill mcp)`,
	Version:      version.GitRelease,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.formfill/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "formfill home directory (default: ~/.formfill)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn or error",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the text logger used by every long-running command.
func newLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(logLevel))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// loadConfig resolves the home directory and loads configuration. An
// explicit --config wins; otherwise the home config file is used when it
// exists, falling back to viper's search path.
func loadConfig() (*home.Dir, *config.Manager, error) {
	h, err := home.New(homeDir)
	if err != nil {
		return nil, nil, err
	}
	file := cfgFile
	if file == "" && h.ConfigExists() {
		file = h.ConfigPath()
	}
	mgr, err := config.NewManager(file)
	if err != nil {
		return nil, nil, err
	}
	return h, mgr, nil
}
