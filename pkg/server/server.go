// Package server provides the MCP server implementation for the Rejseplanen integration.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/NERVsystems/rejseplanenmcp/pkg/config"
	"github.com/NERVsystems/rejseplanenmcp/pkg/rejseplanen"
	"github.com/NERVsystems/rejseplanenmcp/pkg/tools"
	"github.com/NERVsystems/rejseplanenmcp/pkg/tools/prompts"
	"github.com/NERVsystems/rejseplanenmcp/pkg/version"
)

// Server encapsulates the MCP server with the Rejseplanen tools.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	srv    *server.MCPServer
}

// NewServer creates a new Rejseplanen MCP server with all tools registered.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: nil config")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("initializing Rejseplanen MCP server",
		"name", version.Name,
		"version", version.BuildVersion,
		"environment", cfg.Environment)

	srv := server.NewMCPServer(
		version.Name,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	client := rejseplanen.NewClient(append(cfg.ClientOptions(), rejseplanen.WithLogger(logger))...)
	registry := tools.NewRegistry(logger, client, cfg)
	registry.RegisterTools(srv)
	prompts.RegisterJourneyPrompts(srv)

	return &Server{cfg: cfg, logger: logger, srv: srv}, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.srv
}

// Run serves on the configured transport until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Transport == config.TransportStdio {
		return s.RunStdio(ctx, os.Stdin, os.Stdout)
	}
	return s.RunHTTP(ctx)
}

// RunStdio serves MCP over in/out until ctx is canceled or in is closed.
func (s *Server) RunStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving MCP over stdio")

	stdio := server.NewStdioServer(s.srv)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
