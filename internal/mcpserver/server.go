// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes the transcription pipeline to MCP clients.
// Two tools are served: parse_research_paper runs a PDF through the Nougat
// engine, get_output_settings reports the resolved output configuration.
// Logs go to stderr; stdout belongs to the protocol transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/svretina/nougat-mcp/internal/parse"
	"github.com/svretina/nougat-mcp/internal/settings"
	"github.com/svretina/nougat-mcp/pkg/types"
)

// serverName is the identity reported to MCP clients during the handshake.
const serverName = "Nougat-OCR"

// Server wires the parse handler and settings resolver into an MCP server.
type Server struct {
	mcp     *server.MCPServer
	handler *parse.Handler
	resolve parse.SettingsFunc
	log     *slog.Logger
}

// New builds the MCP server and registers its tools.
func New(handler *parse.Handler, resolve parse.SettingsFunc, log *slog.Logger, version string) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mcp: server.NewMCPServer(serverName, version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		handler: handler,
		resolve: resolve,
		log:     log,
	}
	s.addTools()
	return s
}

// parseArgs are the arguments of the parse_research_paper tool.
type parseArgs struct {
	FilePath     string `json:"file_path"`
	OutputFormat string `json:"output_format,omitempty"`
}

func (s *Server) addTools() {
	parseTool := mcp.NewTool("parse_research_paper",
		mcp.WithDescription("Highly accurate OCR for academic papers and scientific PDFs using Meta's Nougat model. "+
			"Converts visual structures like tables, formulas, and multi-column layouts into clean Markdown. "+
			"The first run may download model weights (~1.4GB) and take several minutes; configure a generous timeout."),
		mcp.WithString("file_path",
			mcp.Description("Absolute path to the PDF file on the local system"),
			mcp.Required(),
		),
		mcp.WithString("output_format",
			mcp.Description(`"default" uses the configured preference, "mmd" returns raw Nougat markup, "md" converts math delimiters for broader Markdown renderer compatibility`),
			mcp.Enum("default", "mmd", "md"),
		),
	)
	s.mcp.AddTool(parseTool, mcp.NewTypedToolHandler(s.parseResearchPaper))

	settingsTool := mcp.NewTool("get_output_settings",
		mcp.WithDescription("Return the resolved output settings and the source they were loaded from, so agents can adapt behavior."),
	)
	s.mcp.AddTool(settingsTool, s.getOutputSettings)
}

func (s *Server) parseResearchPaper(ctx context.Context, req mcp.CallToolRequest, args parseArgs) (*mcp.CallToolResult, error) {
	res, err := s.handler.Handle(ctx, args.FilePath, args.OutputFormat)
	if err != nil {
		s.log.Error("parse failed",
			slog.String("pdf", args.FilePath),
			slog.Any("error", err),
		)
		return mcp.NewToolResultError(clientMessage(err)), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

// outputSettings is the get_output_settings payload.
type outputSettings struct {
	SettingsSource       types.SettingsSource `json:"settings_source"`
	SettingsEnvVar       string               `json:"settings_env_var"`
	DefaultOutputFormat  types.OutputFormat   `json:"default_output_format"`
	MdRewriteTags        bool                 `json:"md_rewrite_tags"`
	MdFixSizedDelimiters bool                 `json:"md_fix_sized_delimiters"`
}

func (s *Server) getOutputSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resolved, err := s.resolve()
	if err != nil {
		return mcp.NewToolResultError(clientMessage(err)), nil
	}

	payload, err := json.MarshalIndent(outputSettings{
		SettingsSource:       resolved.Source,
		SettingsEnvVar:       settings.EnvVar,
		DefaultOutputFormat:  resolved.DefaultOutputFormat,
		MdRewriteTags:        resolved.RewriteTags,
		MdFixSizedDelimiters: resolved.FixSizedDelimiters,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// clientMessage maps an error to the human-readable text surfaced in the
// tool-call failure. Each failure category gets a distinguishable message.
func clientMessage(err error) string {
	var (
		invalid   *types.InvalidInputError
		missing   *types.DependencyMissingError
		execErr   *types.OcrExecutionError
		notFound  *types.OutputNotFoundError
		configErr *types.ConfigError
	)
	switch {
	case errors.As(err, &invalid):
		return "Error: " + invalid.Error()
	case errors.As(err, &missing):
		return fmt.Sprintf("Error: the %q executable was not found on PATH. Install nougat-ocr and make sure its CLI is reachable.", missing.Binary)
	case errors.As(err, &execErr):
		return "Error running Nougat: " + execErr.Diagnostic()
	case errors.As(err, &notFound):
		return "Error: Nougat executed successfully but " + notFound.Error() + "."
	case errors.As(err, &configErr):
		return "Error: " + configErr.Error()
	default:
		return "Error: " + err.Error()
	}
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
