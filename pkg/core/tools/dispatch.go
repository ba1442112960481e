package tools

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/blackcoderx/camo/pkg/impersonate"
	"github.com/blackcoderx/camo/pkg/logger"
)

// dispatchRequest builds one fresh impersonation client and executes exactly
// one HTTP operation. It never retries and never inspects transport errors.
func dispatchRequest(ctx context.Context, d *RequestDescriptor) (*impersonate.Response, error) {
	client, err := impersonate.NewClient(impersonate.Options{
		Profile:         d.Profile,
		OS:              d.OS,
		Timeout:         d.Timeout,
		FollowRedirects: d.FollowRedirects,
		Verify:          d.Verify,
		Proxy:           d.Proxy,
	})
	if err != nil {
		return nil, err
	}

	headers := d.Headers
	if d.OAuth2 != nil {
		token, err := mintOAuth2Token(ctx, d.OAuth2)
		if err != nil {
			return nil, err
		}
		if headers == nil {
			headers = make(map[string]string)
		}
		// An explicit bearer_token has already claimed the header; the
		// minted token only fills the gap.
		if _, ok := headers["Authorization"]; !ok {
			headers["Authorization"] = "Bearer " + token
		}
	}

	opts := &impersonate.RequestOptions{
		Headers: headers,
		Params:  d.Params,
		Auth:    d.Auth,
	}
	applyBody(d, opts)

	logger.FromContext(ctx).Debug("dispatching request",
		"method", d.Method, "url", d.URL, "profile", d.Profile, "os", d.OS)

	switch d.Method {
	case MethodGet:
		return client.Get(ctx, d.URL, opts)
	case MethodPost:
		return client.Post(ctx, d.URL, opts)
	case MethodPut:
		return client.Put(ctx, d.URL, opts)
	case MethodPatch:
		return client.Patch(ctx, d.URL, opts)
	case MethodDelete:
		return client.Delete(ctx, d.URL, opts)
	case MethodHead:
		return client.Head(ctx, d.URL, opts)
	case MethodOptions:
		return client.Options(ctx, d.URL, opts)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, d.Method)
}

// applyBody attaches the request body for body-bearing methods. A JSON body
// always wins over raw data; the two are never merged.
func applyBody(d *RequestDescriptor, opts *impersonate.RequestOptions) {
	if !d.Method.HasBody() {
		return
	}
	if d.JSONBody != nil {
		opts.JSON = d.JSONBody
		return
	}
	opts.Data = d.RawBody
}

// dispatchUpload issues the single multipart POST for an upload descriptor.
func dispatchUpload(ctx context.Context, d *UploadDescriptor) (*impersonate.Response, error) {
	client, err := impersonate.NewClient(impersonate.Options{
		Profile:         d.Profile,
		OS:              d.OS,
		Timeout:         d.Timeout,
		FollowRedirects: true,
		Verify:          true,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("dispatching upload",
		"url", d.URL, "files", len(d.Files), "profile", d.Profile, "os", d.OS)

	return client.Upload(ctx, d.URL, d.Files, d.Form, d.Headers)
}

// mintOAuth2Token runs the configured OAuth2 flow and returns an access
// token for Bearer injection.
func mintOAuth2Token(ctx context.Context, cfg *OAuth2Config) (string, error) {
	switch cfg.Flow {
	case "client_credentials":
		conf := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		token, err := conf.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("OAuth2 client_credentials flow failed: %w", err)
		}
		return token.AccessToken, nil
	case "password":
		if cfg.Username == "" {
			return "", fmt.Errorf("%w: oauth2.username (required for password flow)", ErrMissingField)
		}
		if cfg.Password == "" {
			return "", fmt.Errorf("%w: oauth2.password (required for password flow)", ErrMissingField)
		}
		conf := oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: cfg.TokenURL},
			Scopes:       cfg.Scopes,
		}
		token, err := conf.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
		if err != nil {
			return "", fmt.Errorf("OAuth2 password flow failed: %w", err)
		}
		return token.AccessToken, nil
	default:
		return "", fmt.Errorf("unknown oauth2 flow '%s' (supported: client_credentials, password)", cfg.Flow)
	}
}
