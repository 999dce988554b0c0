package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pokesdk/poke-sdk/wireformat"
)

// HostFunc is a typed host function.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler accepts a JSON payload and returns a JSON payload. It is the form
// every registered host function takes.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler adapts a typed HostFunc into a ByteHandler. A payload that
// does not decode into Req yields a VALIDATION_ERROR response rather than a Go
// error, so the guest always receives parseable JSON.
func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if err := json.Unmarshal(payload, &req); err != nil {
			return NewValidationError("invalid request payload: " + err.Error()).ToJSON(), nil
		}

		respBytes, err := json.Marshal(fn(ctx, req))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return respBytes, nil
	}
}

// HTTPHandler is the http_request host function backed by PerformHTTPRequest.
func HTTPHandler(opts ...HTTPOption) ByteHandler {
	return NewJSONHandler(func(ctx context.Context, req wireformat.HTTPRequestWire) wireformat.HTTPResponseWire {
		return PerformHTTPRequest(ctx, req, opts...)
	})
}
