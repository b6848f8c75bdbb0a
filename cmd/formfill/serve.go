package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the formfill server",
	Long: `Start the formfill HTTP server.

The server owns form sessions and calls the configured completion provider
to pre-fill them. Provider settings are reloaded when the config file changes.

The server provides:
  - /health  - Basic server health check
  - /ready   - Readiness check
  - /status  - Providers, forms and session counts
  - /swagger - API documentation

Examples:
  formfill serve                    # Start on the configured port (default 8080)
  formfill serve --port 3000        # Start on custom port
  formfill serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger, err := newLogger(os.Stdout)
		if err != nil {
			return err
		}

		h, mgr, err := loadConfig()
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}
		mgr.WatchConfig()

		cfg := mgr.Get()
		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") || host == "" {
			host = serveHost
		}
		if cmd.Flags().Changed("port") || port == "" {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: mgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
