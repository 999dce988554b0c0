package hostfuncs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/pokesdk/poke-sdk/internal/testutil"
	"github.com/pokesdk/poke-sdk/wireformat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Value string `json:"value"`
}

type echoResponse struct {
	Function string `json:"function"`
	Value    string `json:"value"`
}

func echoHandler() ByteHandler {
	return NewJSONHandler(func(ctx context.Context, req echoRequest) echoResponse {
		return echoResponse{Function: FunctionName(ctx), Value: req.Value}
	})
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry(
		WithHandler("echo", echoHandler()),
		WithHandler("http_request", HTTPHandler()),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"echo", "http_request"}, r.Names())
	assert.True(t, r.Has("echo"))
	assert.False(t, r.Has("exec"))
}

func TestNewRegistry_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []RegistryOption
	}{
		{name: "empty name", opts: []RegistryOption{WithHandler("", echoHandler())}},
		{name: "nil handler", opts: []RegistryOption{WithHandler("echo", nil)}},
		{name: "duplicate", opts: []RegistryOption{
			WithHandler("echo", echoHandler()),
			WithHandler("echo", echoHandler()),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(tt.opts...)
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}

func TestInvoke(t *testing.T) {
	r, err := NewRegistry(WithHandler("echo", echoHandler()))
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "echo", []byte(`{"value":"hi"}`))
	require.NoError(t, err)
	testutil.AssertJSONEqual(t, `{"function":"echo","value":"hi"}`, string(out))
}

func TestInvoke_UnknownFunction(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "exec_command", nil)
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "NOT_FOUND", resp.Error)
	assert.Equal(t, 404, resp.Code)
}

func TestInvoke_InvalidPayload(t *testing.T) {
	r, err := NewRegistry(WithHandler("echo", echoHandler()))
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "echo", []byte(`not json`))
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Error)
}

func TestInvoke_HTTPRequest(t *testing.T) {
	upstream := testutil.NewUpstream(t, testutil.Bulbasaur())
	r, err := NewRegistry(WithHandler("http_request", HTTPHandler()))
	require.NoError(t, err)

	payload, err := json.Marshal(wireformat.HTTPRequestWire{Method: http.MethodGet, URL: upstream.BaseURL() + "/pokemon/1"})
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "http_request", payload)
	require.NoError(t, err)

	var resp wireformat.HTTPResponseWire
	require.NoError(t, json.Unmarshal(out, &resp))
	require.Nil(t, resp.Error)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), `"bulbasaur"`)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	r, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithHandler("boom", func(context.Context, []byte) ([]byte, error) {
			panic("handler exploded")
		}),
	)
	require.NoError(t, err)

	out, err := r.Invoke(context.Background(), "boom", nil)
	require.NoError(t, err)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.Equal(t, "panic: handler exploded", resp.Message)
}

func TestMiddlewareOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next ByteHandler) ByteHandler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				order = append(order, name)
				return next(ctx, payload)
			}
		}
	}

	r, err := NewRegistry(
		WithMiddleware(mark("first"), mark("second")),
		WithHandler("echo", echoHandler()),
	)
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), "echo", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r, err := NewRegistry(
		WithMiddleware(LoggingMiddleware(logger)),
		WithHandler("echo", echoHandler()),
	)
	require.NoError(t, err)

	_, err = r.Invoke(context.Background(), "echo", []byte(`{"value":"x"}`))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "host function completed")
	assert.Contains(t, buf.String(), "function=echo")
}

func TestNewPanicError(t *testing.T) {
	assert.Equal(t, "panic: boom", NewPanicError("boom").Message)
	assert.Equal(t, "panic: 42", NewPanicError(42).Message)
	assert.Equal(t, "panic: EOF", NewPanicError(io.EOF).Message)
}
