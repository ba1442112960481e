package core

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackcoderx/camo/pkg/logger"
)

// stubTool is a minimal Tool with a scripted outcome.
type stubTool struct {
	name   string
	prefix string
	out    string
	err    error
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) ErrorPrefix() string { return t.prefix }
func (t *stubTool) Definition() mcp.Tool {
	return mcp.NewTool(t.name, mcp.WithDescription("stub"))
}
func (t *stubTool) Execute(_ context.Context, _ map[string]any) (string, error) {
	return t.out, t.err
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestRegistry_RoutesByName(t *testing.T) {
	a := &stubTool{name: "a", out: "from a"}
	b := &stubTool{name: "b", out: "from b"}
	r := NewRegistry(a, b)

	out, err := r.Call(context.Background(), "b", nil)
	require.NoError(t, err)
	assert.Equal(t, "from b", out)

	tools := r.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, "a", tools[0].Name())
	assert.Equal(t, "b", tools[1].Name())
}

func TestRegistry_UnknownTool(t *testing.T) {
	r := NewRegistry(&stubTool{name: "a"})

	_, err := r.Call(context.Background(), "nope", nil)
	require.ErrorIs(t, err, ErrUnknownTool)
	assert.Equal(t, "Unknown tool: nope", err.Error())
}

func TestServer_HandlerSuccess(t *testing.T) {
	tool := &stubTool{name: "echo", out: "all good"}
	srv := NewServer("test", NewRegistry(tool), logger.New(logger.Config{Level: "error"}))

	res, err := srv.handler(tool)(context.Background(), callRequest("echo", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "all good", resultText(t, res))
}

func TestServer_HandlerErrorBoundary(t *testing.T) {
	tool := &stubTool{
		name:   "boom",
		prefix: "Error making request",
		err:    errors.New("connection refused"),
	}
	srv := NewServer("test", NewRegistry(tool), logger.New(logger.Config{Level: "error"}))

	// The failure becomes a flagged result, never a protocol fault.
	res, err := srv.handler(tool)(context.Background(), callRequest("boom", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error making request: connection refused", resultText(t, res))
}
