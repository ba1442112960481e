package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/blackcoderx/camo/pkg/impersonate"
)

// UploadTool uploads files as multipart form data with browser impersonation.
type UploadTool struct{}

// NewUploadTool creates the upload tool.
func NewUploadTool() *UploadTool {
	return &UploadTool{}
}

// Name returns the tool name.
func (t *UploadTool) Name() string {
	return "upload"
}

// ErrorPrefix returns the prefix for failed results from this tool.
func (t *UploadTool) ErrorPrefix() string {
	return "Error uploading files"
}

// Definition returns the advertised tool schema.
func (t *UploadTool) Definition() mcp.Tool {
	return mcp.NewTool("upload",
		mcp.WithDescription("Upload files with multipart form data and browser impersonation"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to upload to"),
		),
		mcp.WithArray("files",
			mcp.Required(),
			mcp.Description("Files to upload"),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":         map[string]any{"type": "string", "description": "Form field name"},
					"filename":     map[string]any{"type": "string", "description": "File name"},
					"content":      map[string]any{"type": "string", "description": "File content (base64 encoded)"},
					"content_type": map[string]any{"type": "string", "description": "MIME type"},
				},
				"required": []string{"name", "filename", "content"},
			}),
		),
		mcp.WithObject("data",
			mcp.Description("Additional form data"),
		),
		mcp.WithObject("headers",
			mcp.Description("HTTP headers to include"),
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
		mcp.WithNumber("timeout",
			mcp.Description("Request timeout in seconds"),
			mcp.DefaultNumber(30),
		),
	)
}

// Execute normalizes the arguments, issues the multipart POST, and renders
// the response as raw text.
func (t *UploadTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	d, err := NormalizeUpload(args)
	if err != nil {
		return "", err
	}
	resp, err := dispatchUpload(ctx, d)
	if err != nil {
		return "", err
	}
	return FormatResponse(resp, FormatText), nil
}
