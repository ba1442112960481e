package tools

import "errors"

// Failure classes produced by argument normalization. Anything raised by the
// impersonation engine (DNS, TCP, TLS, timeout) passes through unmodified;
// the server's error boundary renders every class the same way.
var (
	// ErrMissingField is returned when a required argument is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrUnsupportedMethod is returned for methods outside the fixed enum.
	// Callers string-match the rendered text; keep it verbatim.
	ErrUnsupportedMethod = errors.New("Unsupported HTTP method")

	// ErrInvalidEncoding is returned for malformed base64 file content.
	ErrInvalidEncoding = errors.New("invalid base64 file content")
)
