package core

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/blackcoderx/camo/pkg/logger"
)

// Server exposes a registry of tools over the MCP stdio transport.
type Server struct {
	mcp      *server.MCPServer
	registry *Registry
	log      logger.Logger
}

// NewServer builds the MCP server and registers every tool in the registry.
func NewServer(version string, registry *Registry, log logger.Logger) *Server {
	s := &Server{
		mcp: server.NewMCPServer("camo", version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		registry: registry,
		log:      log,
	}
	for _, t := range registry.Tools() {
		s.mcp.AddTool(t.Definition(), s.handler(t))
	}
	return s
}

// handler adapts a tool to the transport and is the error boundary: any
// failure from normalization, dispatch, or formatting becomes a single
// flagged textual result. Nothing propagates as a protocol fault.
func (s *Server) handler(t Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = logger.ContextWithLogger(ctx, s.log)
		out, err := t.Execute(ctx, req.GetArguments())
		if err != nil {
			msg := fmt.Sprintf("%s: %v", t.ErrorPrefix(), err)
			s.log.Error("tool call failed", "tool", t.Name(), "error", err)
			return mcp.NewToolResultError(msg), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio runs the server over stdin/stdout until the stream closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}
