// Package tools implements the camo tool surface: translating loosely-typed
// call arguments into impersonated HTTP operations and rendering the results.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/blackcoderx/camo/pkg/impersonate"
)

// RequestTool makes a single HTTP request with browser impersonation.
type RequestTool struct{}

// NewRequestTool creates the request tool.
func NewRequestTool() *RequestTool {
	return &RequestTool{}
}

// Name returns the tool name.
func (t *RequestTool) Name() string {
	return "request"
}

// ErrorPrefix returns the prefix for failed results from this tool.
func (t *RequestTool) ErrorPrefix() string {
	return "Error making request"
}

// Definition returns the advertised tool schema.
func (t *RequestTool) Definition() mcp.Tool {
	return mcp.NewTool("request",
		mcp.WithDescription("Make HTTP requests with browser impersonation"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to make the request to"),
		),
		mcp.WithString("method",
			mcp.Description("HTTP method to use"),
			mcp.Enum(Methods()...),
			mcp.DefaultString(string(MethodGet)),
		),
		mcp.WithObject("headers",
			mcp.Description("HTTP headers to include in the request"),
		),
		mcp.WithString("data",
			mcp.Description("Request body data (for POST, PUT, PATCH)"),
		),
		mcp.WithObject("json",
			mcp.Description("JSON data to send in request body (takes priority over data)"),
		),
		mcp.WithObject("params",
			mcp.Description("URL query parameters"),
		),
		mcp.WithString("impersonate",
			mcp.Description("Browser to impersonate"),
			mcp.Enum(impersonate.ProfileNames()...),
			mcp.DefaultString(impersonate.DefaultProfile),
		),
		mcp.WithString("impersonate_os",
			mcp.Description("Operating system to impersonate"),
			mcp.Enum(impersonate.OSNames()...),
			mcp.DefaultString(impersonate.DefaultOS),
		),
		mcp.WithString("proxy",
			mcp.Description("Proxy URL (e.g., http://proxy:8080)"),
		),
		mcp.WithObject("auth",
			mcp.Description("Basic authentication credentials"),
			mcp.Properties(map[string]any{
				"username": map[string]any{"type": "string"},
				"password": map[string]any{"type": "string"},
			}),
		),
		mcp.WithString("bearer_token",
			mcp.Description("Bearer token for authorization"),
		),
		mcp.WithObject("oauth2",
			mcp.Description("Obtain a Bearer token via an OAuth2 flow before the request"),
			mcp.Properties(map[string]any{
				"flow":          map[string]any{"type": "string", "enum": []string{"client_credentials", "password"}},
				"token_url":     map[string]any{"type": "string"},
				"client_id":     map[string]any{"type": "string"},
				"client_secret": map[string]any{"type": "string"},
				"scopes":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"username":      map[string]any{"type": "string"},
				"password":      map[string]any{"type": "string"},
			}),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Request timeout in seconds"),
			mcp.DefaultNumber(30),
		),
		mcp.WithBoolean("follow_redirects",
			mcp.Description("Whether to follow redirects"),
			mcp.DefaultBool(true),
		),
		mcp.WithBoolean("verify",
			mcp.Description("Whether to verify SSL certificates"),
			mcp.DefaultBool(true),
		),
		mcp.WithString("return_format",
			mcp.Description("Format to return response content in"),
			mcp.Enum(ReturnFormats()...),
			mcp.DefaultString(string(FormatText)),
		),
	)
}

// Execute normalizes the arguments, dispatches one HTTP operation, and
// renders the response.
func (t *RequestTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	d, err := NormalizeRequest(args)
	if err != nil {
		return "", err
	}
	resp, err := dispatchRequest(ctx, d)
	if err != nil {
		return "", err
	}
	return FormatResponse(resp, d.Format), nil
}
