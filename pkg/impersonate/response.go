package impersonate

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	http "github.com/bogdanfinn/fhttp"
	"github.com/k3a/html2text"
	"golang.org/x/net/html/charset"
)

// Body exposes the decoded views of a response payload.
type Body interface {
	// Text returns the charset-decoded raw body.
	Text() string
	// JSON attempts a structured parse of the body.
	JSON() (any, error)
	// Markdown returns the body converted from HTML to markdown.
	Markdown() string
	// PlainText returns the body with HTML markup stripped.
	PlainText() string
}

// RichBody is implemented by bodies that carry a rich-text rendering.
// The engine's document body does not; formatters fall back to markdown.
type RichBody interface {
	Body
	RichText() string
}

// Response is the outcome of one HTTP operation.
type Response struct {
	StatusCode   int
	ReasonPhrase string
	Headers      map[string]string
	Body         Body
}

func newResponse(resp *http.Response, raw []byte) *Response {
	headers := make(map[string]string, len(resp.Header))
	for key, values := range resp.Header {
		headers[key] = strings.Join(values, ", ")
	}
	return &Response{
		StatusCode:   resp.StatusCode,
		ReasonPhrase: http.StatusText(resp.StatusCode),
		Headers:      headers,
		Body: &documentBody{
			raw:         raw,
			contentType: resp.Header.Get("Content-Type"),
		},
	}
}

// documentBody lazily decodes the wire bytes on first access.
type documentBody struct {
	raw         []byte
	contentType string

	once sync.Once
	text string
}

func (b *documentBody) Text() string {
	b.once.Do(func() {
		r, err := charset.NewReader(bytes.NewReader(b.raw), b.contentType)
		if err != nil {
			b.text = string(b.raw)
			return
		}
		decoded, err := io.ReadAll(r)
		if err != nil {
			b.text = string(b.raw)
			return
		}
		b.text = string(decoded)
	})
	return b.text
}

func (b *documentBody) JSON() (any, error) {
	var value any
	if err := json.Unmarshal(b.raw, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (b *documentBody) Markdown() string {
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(b.Text())
	if err != nil {
		return b.Text()
	}
	return out
}

func (b *documentBody) PlainText() string {
	return html2text.HTML2Text(b.Text())
}
