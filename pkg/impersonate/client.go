// Package impersonate wraps the TLS fingerprint engine behind a small
// single-use client. Each client is built for exactly one call and carries
// the browser profile, OS flavour, timeout, redirect policy, certificate
// verification and proxy settings for that call.
package impersonate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
)

// Options configure a single-use client.
type Options struct {
	Profile         string
	OS              string
	Timeout         time.Duration
	FollowRedirects bool
	Verify          bool
	Proxy           string
}

// BasicAuth holds a username/password credential pair.
type BasicAuth struct {
	Username string
	Password string
}

// RequestOptions carry the per-request settings for one HTTP operation.
type RequestOptions struct {
	Headers map[string]string
	Params  map[string]string
	Auth    *BasicAuth
	// JSON takes priority over Data when both are set; they are never merged.
	JSON any
	Data string
}

// FilePart is one file in a multipart upload, in submission order.
type FilePart struct {
	Field       string
	Filename    string
	Content     []byte
	ContentType string
}

// Client executes HTTP operations with a browser fingerprint.
type Client struct {
	hc        tls_client.HttpClient
	userAgent string
}

// NewClient builds a client from impersonation and transport settings.
func NewClient(opts Options) (*Client, error) {
	profile, err := lookupProfile(opts.Profile)
	if err != nil {
		return nil, err
	}
	platform, err := lookupPlatform(opts.OS)
	if err != nil {
		return nil, err
	}

	cfg := []tls_client.HttpClientOption{
		tls_client.WithTimeoutMilliseconds(int(opts.Timeout / time.Millisecond)),
		tls_client.WithClientProfile(profile.client),
	}
	if !opts.FollowRedirects {
		cfg = append(cfg, tls_client.WithNotFollowRedirects())
	}
	if !opts.Verify {
		cfg = append(cfg, tls_client.WithInsecureSkipVerify())
	}
	if opts.Proxy != "" {
		cfg = append(cfg, tls_client.WithProxyUrl(opts.Proxy))
	}

	hc, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), cfg...)
	if err != nil {
		return nil, fmt.Errorf("failed to build impersonation client: %w", err)
	}

	return &Client{hc: hc, userAgent: userAgent(profile, platform)}, nil
}

// Get executes a GET request.
func (c *Client) Get(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, opts)
}

// Post executes a POST request.
func (c *Client) Post(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, opts)
}

// Put executes a PUT request.
func (c *Client) Put(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPut, url, opts)
}

// Patch executes a PATCH request.
func (c *Client) Patch(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodPatch, url, opts)
}

// Delete executes a DELETE request.
func (c *Client) Delete(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, opts)
}

// Head executes a HEAD request.
func (c *Client) Head(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodHead, url, opts)
}

// Options executes an OPTIONS request.
func (c *Client) Options(ctx context.Context, url string, opts *RequestOptions) (*Response, error) {
	return c.do(ctx, http.MethodOptions, url, opts)
}

// Upload issues a single POST carrying files and form fields as multipart
// form data. Files are encoded in the order given.
func (c *Client) Upload(ctx context.Context, rawURL string, files []FilePart, form map[string]string, headers map[string]string) (*Response, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("failed to encode file part '%s': %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, fmt.Errorf("failed to encode file part '%s': %w", f.Field, err)
		}
	}
	for _, key := range sortedKeys(form) {
		if err := w.WriteField(key, form[key]); err != nil {
			return nil, fmt.Errorf("failed to encode form field '%s': %w", key, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyHeaders(req, headers)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.roundTrip(req)
}

func (c *Client) do(ctx context.Context, method, rawURL string, opts *RequestOptions) (*Response, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	target, err := mergeParams(rawURL, opts.Params)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	contentType := ""
	if opts.JSON != nil {
		encoded, err := json.Marshal(opts.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	} else if opts.Data != "" {
		body = strings.NewReader(opts.Data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyHeaders(req, opts.Headers)
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if opts.Auth != nil {
		req.SetBasicAuth(opts.Auth.Username, opts.Auth.Password)
	}

	return c.roundTrip(req)
}

func (c *Client) applyHeaders(req *http.Request, headers map[string]string) {
	for _, key := range sortedKeys(headers) {
		req.Header.Set(key, headers[key])
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// roundTrip performs the single network operation. Transport failures are
// returned as-is so callers see the engine's own error.
func (c *Client) roundTrip(req *http.Request) (*Response, error) {
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return newResponse(resp, raw), nil
}

// mergeParams appends query parameters to the URL, keeping any already there.
func mergeParams(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL '%s': %w", rawURL, err)
	}
	q := u.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// sortedKeys keeps header and field order reproducible across calls.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
