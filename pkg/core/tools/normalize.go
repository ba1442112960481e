package tools

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/blackcoderx/camo/pkg/impersonate"
)

// DefaultTimeout bounds a call when the caller does not set one.
const DefaultTimeout = 30 * time.Second

// Method is an HTTP method from the fixed seven-element enum.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
)

// Methods returns the method enum in schema order.
func Methods() []string {
	return []string{
		string(MethodGet), string(MethodPost), string(MethodPut), string(MethodPatch),
		string(MethodDelete), string(MethodHead), string(MethodOptions),
	}
}

// ParseMethod upper-cases and validates a method string against the enum.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(s))
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions:
		return m, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMethod, strings.ToUpper(s))
}

// HasBody reports whether the method carries a request body.
func (m Method) HasBody() bool {
	switch m {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// ReturnFormat selects how a response body is rendered.
type ReturnFormat string

const (
	FormatText      ReturnFormat = "text"
	FormatJSON      ReturnFormat = "json"
	FormatMarkdown  ReturnFormat = "markdown"
	FormatPlainText ReturnFormat = "plain_text"
	FormatRichText  ReturnFormat = "rich_text"
)

// ReturnFormats returns the format enum in schema order.
func ReturnFormats() []string {
	return []string{
		string(FormatText), string(FormatJSON), string(FormatMarkdown),
		string(FormatPlainText), string(FormatRichText),
	}
}

// ParseReturnFormat maps a format string onto the enum. Unrecognized values
// behave as "text"; that is contractual, not an error.
func ParseReturnFormat(s string) ReturnFormat {
	switch ReturnFormat(s) {
	case FormatJSON, FormatMarkdown, FormatPlainText, FormatRichText:
		return ReturnFormat(s)
	}
	return FormatText
}

// OAuth2Config describes a token-minting flow executed before dispatch.
type OAuth2Config struct {
	Flow         string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	Username     string
	Password     string
}

// RequestDescriptor is a fully-populated request, ready for dispatch.
type RequestDescriptor struct {
	URL      string
	Method   Method
	Headers  map[string]string
	JSONBody any
	RawBody  string
	Params   map[string]string

	Profile string
	OS      string
	Proxy   string

	Auth   *impersonate.BasicAuth
	OAuth2 *OAuth2Config

	Timeout         time.Duration
	FollowRedirects bool
	Verify          bool
	Format          ReturnFormat
}

// UploadDescriptor is a fully-populated multipart upload. Uploads always
// issue POST.
type UploadDescriptor struct {
	URL     string
	Files   []impersonate.FilePart
	Form    map[string]string
	Headers map[string]string

	Profile string
	OS      string
	Timeout time.Duration
}

// NormalizeRequest validates and defaults a raw argument bag into a
// RequestDescriptor. No network access happens here.
func NormalizeRequest(args map[string]any) (*RequestDescriptor, error) {
	rawURL := stringArg(args, "url", "")
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url", ErrMissingField)
	}

	method, err := ParseMethod(stringArg(args, "method", string(MethodGet)))
	if err != nil {
		return nil, err
	}

	d := &RequestDescriptor{
		URL:             rawURL,
		Method:          method,
		Headers:         stringMapArg(args, "headers"),
		JSONBody:        args["json"],
		RawBody:         stringArg(args, "data", ""),
		Params:          stringMapArg(args, "params"),
		Profile:         stringArg(args, "impersonate", impersonate.DefaultProfile),
		OS:              stringArg(args, "impersonate_os", impersonate.DefaultOS),
		Proxy:           stringArg(args, "proxy", ""),
		Timeout:         durationArg(args, "timeout", DefaultTimeout),
		FollowRedirects: boolArg(args, "follow_redirects", true),
		Verify:          boolArg(args, "verify", true),
		Format:          ParseReturnFormat(stringArg(args, "return_format", "")),
	}

	if raw, ok := args["auth"].(map[string]any); ok {
		auth, err := normalizeBasicAuth(raw)
		if err != nil {
			return nil, err
		}
		d.Auth = auth
	}
	if raw, ok := args["oauth2"].(map[string]any); ok {
		cfg, err := normalizeOAuth2(raw)
		if err != nil {
			return nil, err
		}
		d.OAuth2 = cfg
	}

	// A supplied bearer token always wins over a pre-existing header value.
	if token := stringArg(args, "bearer_token", ""); token != "" {
		if d.Headers == nil {
			d.Headers = make(map[string]string)
		}
		d.Headers["Authorization"] = "Bearer " + token
	}

	return d, nil
}

// NormalizeUpload validates and defaults a raw argument bag into an
// UploadDescriptor, base64-decoding every file's content.
func NormalizeUpload(args map[string]any) (*UploadDescriptor, error) {
	rawURL := stringArg(args, "url", "")
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url", ErrMissingField)
	}

	entries, ok := args["files"].([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("%w: files", ErrMissingField)
	}

	files := make([]impersonate.FilePart, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: files[%d]", ErrMissingField, i)
		}
		name := stringArg(m, "name", "")
		if name == "" {
			return nil, fmt.Errorf("%w: files[%d].name", ErrMissingField, i)
		}
		filename := stringArg(m, "filename", "")
		if filename == "" {
			return nil, fmt.Errorf("%w: files[%d].filename", ErrMissingField, i)
		}
		encoded := stringArg(m, "content", "")
		if encoded == "" {
			return nil, fmt.Errorf("%w: files[%d].content", ErrMissingField, i)
		}
		content, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("%w: files[%d]: %v", ErrInvalidEncoding, i, err)
		}
		files = append(files, impersonate.FilePart{
			Field:       name,
			Filename:    filename,
			Content:     content,
			ContentType: stringArg(m, "content_type", "application/octet-stream"),
		})
	}

	return &UploadDescriptor{
		URL:     rawURL,
		Files:   files,
		Form:    stringMapArg(args, "data"),
		Headers: stringMapArg(args, "headers"),
		Profile: stringArg(args, "impersonate", impersonate.DefaultProfile),
		OS:      stringArg(args, "impersonate_os", impersonate.DefaultOS),
		Timeout: durationArg(args, "timeout", DefaultTimeout),
	}, nil
}

func normalizeBasicAuth(raw map[string]any) (*impersonate.BasicAuth, error) {
	username := stringArg(raw, "username", "")
	if username == "" {
		return nil, fmt.Errorf("%w: auth.username", ErrMissingField)
	}
	password := stringArg(raw, "password", "")
	if password == "" {
		return nil, fmt.Errorf("%w: auth.password", ErrMissingField)
	}
	return &impersonate.BasicAuth{Username: username, Password: password}, nil
}

func normalizeOAuth2(raw map[string]any) (*OAuth2Config, error) {
	cfg := &OAuth2Config{
		Flow:         stringArg(raw, "flow", "client_credentials"),
		TokenURL:     stringArg(raw, "token_url", ""),
		ClientID:     stringArg(raw, "client_id", ""),
		ClientSecret: stringArg(raw, "client_secret", ""),
		Username:     stringArg(raw, "username", ""),
		Password:     stringArg(raw, "password", ""),
	}
	if cfg.TokenURL == "" {
		return nil, fmt.Errorf("%w: oauth2.token_url", ErrMissingField)
	}
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: oauth2.client_id", ErrMissingField)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%w: oauth2.client_secret", ErrMissingField)
	}
	if scopes, ok := raw["scopes"].([]any); ok {
		for _, scope := range scopes {
			if s, ok := scope.(string); ok {
				cfg.Scopes = append(cfg.Scopes, s)
			}
		}
	}
	return cfg, nil
}

// Argument bags arrive loosely typed from the transport; the helpers below
// coerce them with fixed fallbacks.

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func boolArg(args map[string]any, key string, fallback bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return fallback
}

func durationArg(args map[string]any, key string, fallback time.Duration) time.Duration {
	switch v := args[key].(type) {
	case float64:
		return time.Duration(v * float64(time.Second))
	case int:
		return time.Duration(v) * time.Second
	}
	return fallback
}

func stringMapArg(args map[string]any, key string) map[string]string {
	raw, ok := args[key].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}
