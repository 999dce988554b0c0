//go:build wasip1

package wasm

import (
	"context"
	"encoding/json"
	"time"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/internal/abi"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// Compile-time interface compliance check
var _ ports.HTTPClient = (*HTTPAdapter)(nil)

// HTTPAdapter implements ports.HTTPClient by delegating to the host.
type HTTPAdapter struct {
	defaultTimeout time.Duration
}

// NewHTTPAdapter creates an adapter. A zero defaultTimeout means 30 seconds.
func NewHTTPAdapter(defaultTimeout time.Duration) *HTTPAdapter {
	if defaultTimeout <= 0 {
		defaultTimeout = 30 * time.Second
	}
	return &HTTPAdapter{defaultTimeout: defaultTimeout}
}

// Do executes req on the host. The context is not propagated; the host
// enforces the request timeout.
func (a *HTTPAdapter) Do(_ context.Context, req ports.HTTPRequest) (*ports.HTTPResponse, error) {
	wireReq := wireformat.NewHTTPRequestWire(req)
	if wireReq.TimeoutMs <= 0 {
		wireReq.TimeoutMs = int(a.defaultTimeout.Milliseconds())
	}

	reqBytes, err := json.Marshal(wireReq)
	if err != nil {
		return nil, &sdkerrors.InternalError{Operation: "marshal http request", Err: err}
	}

	reqPacked := abi.PtrFromBytes(reqBytes)
	respPacked := host_http_request(reqPacked)
	abi.DeallocatePacked(reqPacked)

	respBytes := abi.BytesFromPtr(respPacked)
	abi.DeallocatePacked(respPacked)
	if respBytes == nil {
		return nil, &sdkerrors.TransportError{URL: req.URL, Err: errEmptyHostResponse}
	}

	var wireResp wireformat.HTTPResponseWire
	if err := json.Unmarshal(respBytes, &wireResp); err != nil {
		return nil, &sdkerrors.TransportError{URL: req.URL, Err: err}
	}
	return wireResp.ToResponse(req.URL)
}
