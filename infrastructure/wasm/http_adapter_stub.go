//go:build !wasip1

// Package wasm provides adapters that reach the outside world through the
// pokesdk_host module supplied by the WASM host.
package wasm

import (
	"context"
	"time"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/domain/ports"
)

var _ ports.HTTPClient = (*HTTPAdapter)(nil)

// HTTPAdapter is unavailable outside wasip1; every call fails.
type HTTPAdapter struct{}

// NewHTTPAdapter returns an adapter whose calls always fail.
func NewHTTPAdapter(time.Duration) *HTTPAdapter {
	return &HTTPAdapter{}
}

// Do reports that no host is available.
func (a *HTTPAdapter) Do(_ context.Context, req ports.HTTPRequest) (*ports.HTTPResponse, error) {
	return nil, &sdkerrors.TransportError{URL: req.URL, Err: errNoHost}
}
