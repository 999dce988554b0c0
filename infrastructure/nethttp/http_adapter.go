// Package nethttp provides the native HTTP adapter of the SDK, backed by
// hostfuncs.PerformHTTPRequest.
package nethttp

import (
	"context"
	"net/http"
	"time"

	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/hostfuncs"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// Compile-time interface compliance check
var _ ports.HTTPClient = (*HTTPAdapter)(nil)

// HTTPAdapter implements ports.HTTPClient with net/http. Connections are
// pooled across calls.
type HTTPAdapter struct {
	client         *http.Client
	defaultTimeout time.Duration
}

// NewHTTPAdapter creates an adapter. A zero defaultTimeout means 30 seconds.
func NewHTTPAdapter(defaultTimeout time.Duration) *HTTPAdapter {
	if defaultTimeout <= 0 {
		defaultTimeout = 30 * time.Second
	}
	return &HTTPAdapter{
		client:         &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()},
		defaultTimeout: defaultTimeout,
	}
}

// Do executes req. Failures before a response arrives are returned as
// *errors.TransportError.
func (a *HTTPAdapter) Do(ctx context.Context, req ports.HTTPRequest) (*ports.HTTPResponse, error) {
	resp := hostfuncs.PerformHTTPRequest(ctx, wireformat.NewHTTPRequestWire(req),
		hostfuncs.WithHTTPClient(a.client),
		hostfuncs.WithHTTPRequestTimeout(a.defaultTimeout))
	return resp.ToResponse(req.URL)
}
