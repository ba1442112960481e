// Package core wires the camo tools onto the MCP transport: tool
// registration, call routing, and the error boundary that turns every
// failure into a flagged textual result.
package core

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool represents one callable operation exposed over MCP.
// Each tool advertises a schema and translates an argument bag into a
// single textual result.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string
	// Definition returns the advertised tool schema.
	Definition() mcp.Tool
	// ErrorPrefix returns the prefix applied to failed results, e.g.
	// "Error making request".
	ErrorPrefix() string
	// Execute runs the tool with the given arguments and returns the result.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
