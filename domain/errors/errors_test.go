package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "transport", err: &TransportError{URL: "u", Err: context.Canceled}, want: KindTransport},
		{name: "not found", err: &NotFoundError{ID: 999999}, want: KindNotFound},
		{name: "malformed", err: &UpstreamMalformedError{Reason: "bad json"}, want: KindUpstreamMalformed},
		{name: "decode", err: &DecodeError{Reason: "unknown key"}, want: KindDecode},
		{name: "config", err: &ConfigError{Field: "base_url"}, want: KindConfig},
		{name: "internal", err: &InternalError{Operation: "export"}, want: KindInternal},
		{name: "plain error", err: stdErrors.New("boom"), want: KindInternal},
		{name: "wrapped", err: fmt.Errorf("fetch: %w", &NotFoundError{ID: 1}), want: KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestTransportError_Messages(t *testing.T) {
	cause := stdErrors.New("connection refused")

	tests := []struct {
		name string
		err  *TransportError
		want string
	}{
		{
			name: "timeout",
			err:  &TransportError{URL: "https://pokeapi.co/api/v2/pokemon/1", IsTimeout: true, Duration: 2 * time.Second},
			want: "request to https://pokeapi.co/api/v2/pokemon/1 timed out after 2s",
		},
		{
			name: "status",
			err:  &TransportError{URL: "https://pokeapi.co/api/v2/pokemon/1", StatusCode: 503},
			want: "upstream https://pokeapi.co/api/v2/pokemon/1 returned status 503",
		},
		{
			name: "cause",
			err:  &TransportError{URL: "https://pokeapi.co/api/v2/pokemon/1", Err: cause},
			want: "request to https://pokeapi.co/api/v2/pokemon/1 failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	err := &TransportError{URL: "u", Err: cause}
	assert.True(t, stdErrors.Is(err, cause))
	assert.False(t, err.Timeout())
}

func TestNotFoundError_Message(t *testing.T) {
	assert.Equal(t, "pokemon 999999 not found", (&NotFoundError{ID: 999999}).Error())
}

func TestUpstreamMalformedError_Unwrap(t *testing.T) {
	cause := stdErrors.New("unexpected EOF")
	err := &UpstreamMalformedError{Reason: "invalid json", Err: cause}

	assert.Equal(t, "malformed upstream response: invalid json: unexpected EOF", err.Error())
	assert.True(t, stdErrors.Is(err, cause))
	assert.Equal(t, "malformed upstream response: id mismatch", (&UpstreamMalformedError{Reason: "id mismatch"}).Error())
}

func TestDecodeError_As(t *testing.T) {
	var wrapped error = fmt.Errorf("binding: %w", &DecodeError{Reason: "missing key \"error\""})

	var de *DecodeError
	require.True(t, stdErrors.As(wrapped, &de))
	assert.Equal(t, "missing key \"error\"", de.Reason)
	assert.Equal(t, `decode envelope: missing key "error"`, de.Error())
}

func TestConfigError_Message(t *testing.T) {
	cause := stdErrors.New("must be a valid URL")

	assert.Equal(t,
		"config validation failed for field 'base_url': must be a valid URL",
		(&ConfigError{Field: "base_url", Err: cause}).Error())
	assert.Equal(t,
		"config validation failed: must be a valid URL",
		(&ConfigError{Err: cause}).Error())
}

func TestFromPanic(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{name: "string", value: "nil map write", want: "internal failure in export: nil map write"},
		{name: "error", value: stdErrors.New("index out of range"), want: "internal failure in export: index out of range"},
		{name: "other", value: 42, want: "internal failure in export: panic: 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromPanic("export", tt.value)
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, KindInternal, KindOf(err))
		})
	}
}
