package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/formfill/internal/config"
	"github.com/jackzampolin/formfill/internal/home"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file to the home directory",
	Long: `Create the formfill home directory and write a default config.yaml.

API keys in the default config reference OPENAI_API_KEY and GEMINI_API_KEY
through ${ENV_VAR} syntax, so no secret is written to disk.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		path := cfgFile
		if path == "" {
			path = h.ConfigPath()
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(initCmd)
}
