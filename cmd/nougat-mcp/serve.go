package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/svretina/nougat-mcp/internal/mcpserver"
	"github.com/svretina/nougat-mcp/internal/settings"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP tools over stdio",
	Long: `Serve runs the MCP server on stdin/stdout for local agent hosts such as
Claude Desktop and Cursor. Each parse request spawns an isolated Nougat
subprocess; the first request after a fresh install may download model
weights, which can take minutes, so configure a generous tool-call timeout
on the client side.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := mcpserver.New(newHandler(), settings.Resolve, logger, version)

		logger.Info("serving MCP on stdio",
			slog.String("version", version),
			slog.String("nougat_bin", viper.GetString("nougat_bin")),
		)
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
