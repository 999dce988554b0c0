package wireformat

import (
	"time"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/domain/ports"
)

// HTTPRequestWire is the JSON wire format for an HTTP request from Guest to Host.
type HTTPRequestWire struct {
	Headers      map[string]string `json:"headers,omitempty"`
	Method       string            `json:"method"`
	URL          string            `json:"url"`
	Body         []byte            `json:"body,omitempty"`
	TimeoutMs    int               `json:"timeout_ms,omitempty"`
	MaxBodyBytes int64             `json:"max_body_bytes,omitempty"`
}

// HTTPResponseWire is the JSON wire format for an HTTP response from Host to Guest.
// Error is set when no response was received.
type HTTPResponseWire struct {
	Headers       map[string][]string `json:"headers,omitempty"`
	Error         *HTTPErrorWire      `json:"error,omitempty"`
	Body          []byte              `json:"body,omitempty"`
	StatusCode    int                 `json:"status_code"`
	LatencyMs     int64               `json:"latency_ms,omitempty"`
	BodyTruncated bool                `json:"body_truncated,omitempty"`
}

// HTTPErrorWire describes a failed HTTP exchange.
// Codes: "INVALID_REQUEST", "TIMEOUT", "TOO_MANY_REDIRECTS", "HOST_NOT_FOUND",
// "CONNECTION_REFUSED", "READ_BODY_FAILED", "REQUEST_FAILED".
type HTTPErrorWire struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *HTTPErrorWire) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// IsTimeout reports whether the exchange failed because of a timeout.
func (e *HTTPErrorWire) IsTimeout() bool {
	return e != nil && e.Code == "TIMEOUT"
}

// NewHTTPRequestWire converts a port request into its wire form.
func NewHTTPRequestWire(req ports.HTTPRequest) HTTPRequestWire {
	return HTTPRequestWire{
		Headers:      req.Headers,
		Method:       req.Method,
		URL:          req.URL,
		Body:         req.Body,
		TimeoutMs:    req.Timeout,
		MaxBodyBytes: req.MaxBodyBytes,
	}
}

// ToResponse converts the wire response for a request to url into a port
// response. A response carrying Error becomes a *errors.TransportError.
func (w HTTPResponseWire) ToResponse(url string) (*ports.HTTPResponse, error) {
	if w.Error != nil {
		return nil, &sdkerrors.TransportError{
			Err:       w.Error,
			URL:       url,
			Duration:  time.Duration(w.LatencyMs) * time.Millisecond,
			IsTimeout: w.Error.IsTimeout(),
		}
	}
	return &ports.HTTPResponse{
		Headers:       w.Headers,
		Body:          w.Body,
		StatusCode:    w.StatusCode,
		BodyTruncated: w.BodyTruncated,
	}, nil
}
