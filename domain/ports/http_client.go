package ports

import (
	"context"
)

// HTTPClient performs the upstream requests of the fetch engine. The native
// build uses net/http directly; the wasip1 build forwards requests to the
// host through the http_request import.
//
// Do returns an error only when no response was received; non-2xx statuses
// come back as responses. Adapters report such errors as
// *errors.TransportError.
type HTTPClient interface {
	Do(ctx context.Context, req HTTPRequest) (*HTTPResponse, error)
}

// HTTPRequest is one upstream request.
type HTTPRequest struct {
	Headers map[string]string
	Method  string
	URL     string
	Body    []byte

	// Timeout in milliseconds; zero means the adapter default.
	Timeout int

	// MaxBodyBytes caps the response body; zero means the adapter default.
	MaxBodyBytes int64
}

// HTTPResponse is what came back. BodyTruncated is set when the body
// exceeded MaxBodyBytes and was cut.
type HTTPResponse struct {
	Headers       map[string][]string
	Body          []byte
	StatusCode    int
	BodyTruncated bool
}
