package main

import (
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/svretina/nougat-mcp/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the resolved output settings",
	Long: `Settings prints the effective output settings as YAML, including the
source they were loaded from (` + settings.EnvVar + `, ./settings.json, or
built-in defaults). A settings file that exists but cannot be parsed is an
error, not a silent fallback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Resolve()
		if err != nil {
			return err
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(s)
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
