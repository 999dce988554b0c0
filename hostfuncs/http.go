package hostfuncs

import (
	"bytes"
	"context"
	stdErrors "errors"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/pokesdk/poke-sdk/wireformat"
)

// Error codes reported in wireformat.HTTPErrorWire.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeTimeout           = "TIMEOUT"
	CodeCanceled          = "CANCELED"
	CodeTooManyRedirects  = "TOO_MANY_REDIRECTS"
	CodeHostNotFound      = "HOST_NOT_FOUND"
	CodeConnectionRefused = "CONNECTION_REFUSED"
	CodeReadBodyFailed    = "READ_BODY_FAILED"
	CodeRequestFailed     = "REQUEST_FAILED"
)

const (
	defaultHTTPTimeout  = 30 * time.Second
	defaultMaxBodySize  = 10 * 1024 * 1024
	defaultMaxRedirects = 10
)

var errTooManyRedirects = stdErrors.New("too many redirects")

// HTTPOption configures PerformHTTPRequest.
type HTTPOption func(*httpConfig)

type httpConfig struct {
	client       *http.Client
	timeout      time.Duration
	maxBodySize  int64
	maxRedirects int
}

func defaultHTTPConfig() httpConfig {
	return httpConfig{
		timeout:      defaultHTTPTimeout,
		maxBodySize:  defaultMaxBodySize,
		maxRedirects: defaultMaxRedirects,
	}
}

// WithHTTPRequestTimeout sets the timeout used when the request carries none.
func WithHTTPRequestTimeout(d time.Duration) HTTPOption {
	return func(c *httpConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPMaxBodySize sets the response body limit used when the request
// carries none.
func WithHTTPMaxBodySize(size int64) HTTPOption {
	return func(c *httpConfig) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithHTTPMaxRedirects sets the maximum number of redirects to follow.
// Zero disables redirects.
func WithHTTPMaxRedirects(n int) HTTPOption {
	return func(c *httpConfig) {
		if n >= 0 {
			c.maxRedirects = n
		}
	}
}

// WithHTTPClient performs requests with client instead of a client built per
// call. The client's redirect policy is left untouched.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *httpConfig) {
		c.client = client
	}
}

// PerformHTTPRequest executes req and reports the outcome as a wire response.
// It never returns a Go error: failures before a response arrives are carried
// in the Error field, and any received status is returned as-is.
func PerformHTTPRequest(ctx context.Context, req wireformat.HTTPRequestWire, opts ...HTTPOption) wireformat.HTTPResponseWire {
	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if req.TimeoutMs > 0 {
		cfg.timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}
	if req.MaxBodyBytes > 0 {
		cfg.maxBodySize = req.MaxBodyBytes
	}

	if req.URL == "" {
		return wireformat.HTTPResponseWire{
			Error: &wireformat.HTTPErrorWire{Code: CodeInvalidRequest, Message: "URL is required"},
		}
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), req.URL, body)
	if err != nil {
		return wireformat.HTTPResponseWire{
			Error: &wireformat.HTTPErrorWire{Code: CodeInvalidRequest, Message: err.Error()},
		}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	client := cfg.client
	if client == nil {
		client = newHTTPClient(cfg)
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	latency := time.Since(start)
	if err != nil {
		return wireformat.HTTPResponseWire{
			LatencyMs: latency.Milliseconds(),
			Error:     &wireformat.HTTPErrorWire{Code: classifyHTTPError(ctx, err), Message: err.Error()},
		}
	}
	defer func() { _ = resp.Body.Close() }()

	return readHTTPResponse(ctx, resp, latency, cfg.maxBodySize)
}

func newHTTPClient(cfg httpConfig) *http.Client {
	client := &http.Client{Timeout: cfg.timeout}
	client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if len(via) >= cfg.maxRedirects {
			return errTooManyRedirects
		}
		return nil
	}
	return client
}

func classifyHTTPError(ctx context.Context, err error) string {
	var netErr net.Error
	var dnsErr *net.DNSError
	switch {
	case stdErrors.Is(err, context.DeadlineExceeded), stdErrors.Is(ctx.Err(), context.DeadlineExceeded):
		return CodeTimeout
	case stdErrors.As(err, &netErr) && netErr.Timeout():
		return CodeTimeout
	case stdErrors.Is(err, context.Canceled):
		return CodeCanceled
	case stdErrors.Is(err, errTooManyRedirects):
		return CodeTooManyRedirects
	case stdErrors.As(err, &dnsErr):
		return CodeHostNotFound
	case stdErrors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused
	default:
		return CodeRequestFailed
	}
}

// readHTTPResponse reads at most maxBodySize bytes and flags truncation.
func readHTTPResponse(ctx context.Context, resp *http.Response, latency time.Duration, maxBodySize int64) wireformat.HTTPResponseWire {
	out := wireformat.HTTPResponseWire{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		LatencyMs:  latency.Milliseconds(),
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		code := CodeReadBodyFailed
		if ctx.Err() != nil {
			code = classifyHTTPError(ctx, err)
		}
		out.Error = &wireformat.HTTPErrorWire{Code: code, Message: err.Error()}
		return out
	}

	if int64(len(respBody)) > maxBodySize {
		respBody = respBody[:maxBodySize]
		out.BodyTruncated = true
	}
	out.Body = respBody
	return out
}
