package tools

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/blackcoderx/camo/pkg/impersonate"
)

// FormatResponse renders a response into the fixed three-part layout:
// status line, single-line headers dump, blank line, "Content:" label, body.
// Callers string-match this shape; only the body varies by format.
func FormatResponse(resp *impersonate.Response, format ReturnFormat) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status: %d %s\n", resp.StatusCode, resp.ReasonPhrase))
	sb.WriteString("Headers: " + formatHeaders(resp.Headers) + "\n")
	sb.WriteString("\nContent:\n")
	sb.WriteString(renderBody(resp.Body, format))
	return sb.String()
}

// renderBody picks the body view for the requested format. Parse failures
// and a missing rich-text view fall back silently; they are never errors.
func renderBody(body impersonate.Body, format ReturnFormat) string {
	switch format {
	case FormatJSON:
		value, err := body.JSON()
		if err != nil {
			return body.Text()
		}
		pretty, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return body.Text()
		}
		return string(pretty)
	case FormatMarkdown:
		return body.Markdown()
	case FormatPlainText:
		return body.PlainText()
	case FormatRichText:
		if rich, ok := body.(impersonate.RichBody); ok {
			return rich.RichText()
		}
		return body.Markdown()
	default:
		return body.Text()
	}
}

// formatHeaders dumps the header mapping on one line, keys sorted so the
// layout stays deterministic.
func formatHeaders(headers map[string]string) string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q: %q", key, headers[key]))
	}
	sb.WriteByte('}')
	return sb.String()
}
