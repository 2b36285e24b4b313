// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nougat-mcp server and CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/svretina/nougat-mcp/internal/nougat"
	"github.com/svretina/nougat-mcp/internal/parse"
	"github.com/svretina/nougat-mcp/internal/settings"
)

// version is set at build time via ldflags.
var version = "dev"

// logger writes structured logs to stderr. Stdout is reserved for the MCP
// transport and for one-shot parse output.
var logger *slog.Logger

// rootCmd is the base command for nougat-mcp.
var rootCmd = &cobra.Command{
	Use:   "nougat-mcp",
	Short: "Nougat document OCR for AI agents over the Model Context Protocol",
	Long: `nougat-mcp exposes Meta's Nougat OCR model to AI-agent clients. The serve
subcommand runs an MCP server on stdio with two tools: parse_research_paper
transcribes a PDF to markup, get_output_settings reports the effective output
configuration. The parse subcommand runs the same pipeline once from the
command line.

Output settings are resolved from the file named by ` + settings.EnvVar + `,
then ./settings.json, then built-in defaults. The first source found wins.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := new(slog.LevelVar)
		raw := viper.GetString("log_level")
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", raw, err)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("nougat-bin", nougat.DefaultBinary, "Nougat CLI binary to invoke")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, or error")

	viper.BindPFlag("nougat_bin", rootCmd.PersistentFlags().Lookup("nougat-bin"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("NOUGAT_MCP")
	viper.AutomaticEnv()
}

// newHandler assembles the request pipeline shared by serve and parse.
func newHandler() *parse.Handler {
	runner := nougat.NewRunner(viper.GetString("nougat_bin"))
	return parse.NewHandler(runner, settings.Resolve, logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
