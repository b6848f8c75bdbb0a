package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/api"
	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/extract"
	"github.com/jackzampolin/formfill/internal/forms"
	"github.com/jackzampolin/formfill/internal/providers"
	"github.com/jackzampolin/formfill/internal/server"
	"github.com/jackzampolin/formfill/internal/tui"
)

var fillNoExtract bool

var fillCmd = &cobra.Command{
	Use:   "fill <form>",
	Short: "Fill a form interactively in the terminal",
	Long: `Fill a form page by page in the terminal.

Before the first page (and from any page) you can describe the information
in plain language; the configured completion provider pre-fills the form and
you review each field. The submission summary is printed at the end.

Examples:
  formfill fill customer_info
  formfill fill "Product Feedback"
  formfill fill intake --no-extract`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		form, ok := forms.Default().Form(args[0])
		if !ok {
			return fmt.Errorf("unknown form %q (available: %v)", args[0], forms.Default().IDs())
		}

		// Prompts own stdout; logs go to stderr.
		logger, err := newLogger(os.Stderr)
		if err != nil {
			return err
		}

		opts := []tui.Option{tui.WithLogger(logger)}
		if !fillNoExtract {
			_, mgr, err := loadConfig()
			if err != nil {
				return err
			}
			opts = append(opts, tui.WithExtractor(newExtractor(mgr.Get(), logger)))
		}

		summary, err := tui.New(opts...).Run(ctx, form)
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			return nil
		}
		if err != nil {
			return err
		}
		return api.Output(summary)
	},
}

// newExtractor builds an extraction client over the providers configured in cfg.
func newExtractor(cfg *config.Config, logger *slog.Logger) *extract.Client {
	registry := providers.NewRegistryFromConfig(cfg.ToProviderRegistryConfig())
	registry.SetLogger(logger)
	return extract.New(registry, server.ExtractOptions(cfg, logger))
}

func init() {
	fillCmd.Flags().BoolVar(&fillNoExtract, "no-extract", false, "Manual entry only, never call the completion provider")

	rootCmd.AddCommand(fillCmd)
}
