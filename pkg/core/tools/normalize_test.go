package tools

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackcoderx/camo/pkg/impersonate"
)

func TestNormalizeRequest_Defaults(t *testing.T) {
	d, err := NormalizeRequest(map[string]any{"url": "http://example.test/get"})
	require.NoError(t, err)

	assert.Equal(t, "http://example.test/get", d.URL)
	assert.Equal(t, MethodGet, d.Method)
	assert.Equal(t, impersonate.DefaultProfile, d.Profile)
	assert.Equal(t, impersonate.DefaultOS, d.OS)
	assert.Equal(t, 30*time.Second, d.Timeout)
	assert.True(t, d.FollowRedirects)
	assert.True(t, d.Verify)
	assert.Equal(t, FormatText, d.Format)
	assert.Nil(t, d.Auth)
	assert.Empty(t, d.Proxy)
}

func TestNormalizeRequest_MissingURL(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "empty bag", args: map[string]any{}},
		{name: "empty url", args: map[string]any{"url": ""}},
		{name: "other args present", args: map[string]any{"method": "POST", "data": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeRequest(tt.args)
			require.ErrorIs(t, err, ErrMissingField)
		})
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{input: "GET", want: MethodGet},
		{input: "get", want: MethodGet},
		{input: "post", want: MethodPost},
		{input: "Delete", want: MethodDelete},
		{input: "OPTIONS", want: MethodOptions},
		{input: "garbage", wantErr: true},
		{input: "TRACE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMethod(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedMethod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestParseMethod_ErrorText(t *testing.T) {
	_, err := ParseMethod("garbage")
	require.Error(t, err)
	assert.Equal(t, "Unsupported HTTP method: GARBAGE", err.Error())
}

func TestNormalizeRequest_BearerOverwritesAuthorization(t *testing.T) {
	d, err := NormalizeRequest(map[string]any{
		"url":          "http://example.test",
		"headers":      map[string]any{"Authorization": "Basic abc123"},
		"bearer_token": "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", d.Headers["Authorization"])
}

func TestNormalizeRequest_BasicAuth(t *testing.T) {
	d, err := NormalizeRequest(map[string]any{
		"url":  "http://example.test",
		"auth": map[string]any{"username": "admin", "password": "secret"},
	})
	require.NoError(t, err)
	require.NotNil(t, d.Auth)
	assert.Equal(t, "admin", d.Auth.Username)
	assert.Equal(t, "secret", d.Auth.Password)

	_, err = NormalizeRequest(map[string]any{
		"url":  "http://example.test",
		"auth": map[string]any{"username": "admin"},
	})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestNormalizeRequest_Timeout(t *testing.T) {
	d, err := NormalizeRequest(map[string]any{"url": "http://example.test", "timeout": float64(5)})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d.Timeout)

	d, err = NormalizeRequest(map[string]any{"url": "http://example.test", "timeout": 2.5})
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, d.Timeout)
}

func TestNormalizeRequest_OAuth2(t *testing.T) {
	d, err := NormalizeRequest(map[string]any{
		"url": "http://example.test",
		"oauth2": map[string]any{
			"token_url":     "http://auth.test/token",
			"client_id":     "cid",
			"client_secret": "cs",
			"scopes":        []any{"api:read", "api:write"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, d.OAuth2)
	assert.Equal(t, "client_credentials", d.OAuth2.Flow)
	assert.Equal(t, []string{"api:read", "api:write"}, d.OAuth2.Scopes)

	_, err = NormalizeRequest(map[string]any{
		"url":    "http://example.test",
		"oauth2": map[string]any{"client_id": "cid", "client_secret": "cs"},
	})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestApplyBody_JSONWinsOverData(t *testing.T) {
	d := &RequestDescriptor{
		Method:   MethodPost,
		JSONBody: map[string]any{"a": float64(1)},
		RawBody:  "raw ignored",
	}
	opts := &impersonate.RequestOptions{}
	applyBody(d, opts)

	assert.Equal(t, map[string]any{"a": float64(1)}, opts.JSON)
	assert.Empty(t, opts.Data)
}

func TestApplyBody_NoBodyForGet(t *testing.T) {
	d := &RequestDescriptor{
		Method:   MethodGet,
		JSONBody: map[string]any{"a": float64(1)},
		RawBody:  "raw",
	}
	opts := &impersonate.RequestOptions{}
	applyBody(d, opts)

	assert.Nil(t, opts.JSON)
	assert.Empty(t, opts.Data)
}

func TestParseReturnFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseReturnFormat("json"))
	assert.Equal(t, FormatMarkdown, ParseReturnFormat("markdown"))
	assert.Equal(t, FormatPlainText, ParseReturnFormat("plain_text"))
	assert.Equal(t, FormatRichText, ParseReturnFormat("rich_text"))
	assert.Equal(t, FormatText, ParseReturnFormat("text"))
	// Unrecognized values silently behave as text.
	assert.Equal(t, FormatText, ParseReturnFormat("yaml"))
	assert.Equal(t, FormatText, ParseReturnFormat(""))
}

func TestNormalizeUpload(t *testing.T) {
	d, err := NormalizeUpload(map[string]any{
		"url": "http://example.test/upload",
		"files": []any{
			map[string]any{
				"name":     "f",
				"filename": "a.txt",
				"content":  base64.StdEncoding.EncodeToString([]byte("hi")),
			},
		},
		"data": map[string]any{"k": "v"},
	})
	require.NoError(t, err)

	require.Len(t, d.Files, 1)
	assert.Equal(t, "f", d.Files[0].Field)
	assert.Equal(t, "a.txt", d.Files[0].Filename)
	assert.Equal(t, []byte("hi"), d.Files[0].Content)
	assert.Equal(t, "application/octet-stream", d.Files[0].ContentType)
	assert.Equal(t, map[string]string{"k": "v"}, d.Form)
	assert.Equal(t, 30*time.Second, d.Timeout)
}

func TestNormalizeUpload_ContentRoundTrip(t *testing.T) {
	original := []byte{0x00, 0x01, 0xFF, 0xFE, 0x7F, 0x80, 0x0A, 0x0D}
	d, err := NormalizeUpload(map[string]any{
		"url": "http://example.test/upload",
		"files": []any{
			map[string]any{
				"name":     "bin",
				"filename": "blob.bin",
				"content":  base64.StdEncoding.EncodeToString(original),
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, original, d.Files[0].Content)
}

func TestNormalizeUpload_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantErr error
	}{
		{
			name:    "missing url",
			args:    map[string]any{"files": []any{map[string]any{"name": "f", "filename": "a", "content": "aGk="}}},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing files",
			args:    map[string]any{"url": "http://example.test"},
			wantErr: ErrMissingField,
		},
		{
			name:    "empty files",
			args:    map[string]any{"url": "http://example.test", "files": []any{}},
			wantErr: ErrMissingField,
		},
		{
			name: "missing filename",
			args: map[string]any{
				"url":   "http://example.test",
				"files": []any{map[string]any{"name": "f", "content": "aGk="}},
			},
			wantErr: ErrMissingField,
		},
		{
			name: "malformed base64",
			args: map[string]any{
				"url":   "http://example.test",
				"files": []any{map[string]any{"name": "f", "filename": "a.txt", "content": "not base64!!"}},
			},
			wantErr: ErrInvalidEncoding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeUpload(tt.args)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeUpload_ImpersonationOS(t *testing.T) {
	// The OS comes from its own key, not the browser-profile key.
	d, err := NormalizeUpload(map[string]any{
		"url":            "http://example.test",
		"files":          []any{map[string]any{"name": "f", "filename": "a.txt", "content": "aGk="}},
		"impersonate":    "firefox_133",
		"impersonate_os": "linux",
	})
	require.NoError(t, err)
	assert.Equal(t, "firefox_133", d.Profile)
	assert.Equal(t, "linux", d.OS)
}
