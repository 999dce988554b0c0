// Package errors provides the failure taxonomy of the SDK.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"time"
)

// Kind categorizes a failure. Kinds are reported in logs and by the CLI;
// they are not part of the wire envelope.
type Kind string

const (
	// KindTransport covers unreachable hosts, timeouts and upstream 5xx/429.
	KindTransport Kind = "transport"

	// KindNotFound means the upstream has no entity for the requested id.
	KindNotFound Kind = "not_found"

	// KindUpstreamMalformed means the upstream answered with an unexpected shape.
	KindUpstreamMalformed Kind = "upstream_malformed"

	// KindDecode means a wire envelope could not be parsed.
	KindDecode Kind = "decode"

	// KindConfig means the SDK configuration is invalid.
	KindConfig Kind = "config"

	// KindInternal means no envelope could be produced at all.
	KindInternal Kind = "internal"
)

// Kinded is implemented by every error type of this package.
type Kinded interface {
	error
	Kind() Kind
}

// KindOf classifies err. Errors outside the taxonomy are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var k Kinded
	if stdErrors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

// TransportError represents a failure to talk to the upstream service.
type TransportError struct {
	Err        error
	URL        string
	StatusCode int
	Duration   time.Duration
	IsTimeout  bool
}

func (e *TransportError) Error() string {
	switch {
	case e.IsTimeout:
		return fmt.Sprintf("request to %s timed out after %v", e.URL, e.Duration)
	case e.StatusCode > 0:
		return fmt.Sprintf("upstream %s returned status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *TransportError) Kind() Kind { return KindTransport }

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	return e.IsTimeout
}

// NotFoundError represents an id with no upstream entity.
type NotFoundError struct {
	ID         uint32
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pokemon %d not found", e.ID)
}

// Kind implements Kinded.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// UpstreamMalformedError represents an upstream response that does not have the
// expected shape.
type UpstreamMalformedError struct {
	Err    error
	Reason string
}

func (e *UpstreamMalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed upstream response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed upstream response: %s", e.Reason)
}

func (e *UpstreamMalformedError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *UpstreamMalformedError) Kind() Kind { return KindUpstreamMalformed }

// DecodeError represents a wire envelope that could not be parsed.
type DecodeError struct {
	Err    error
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode envelope: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode envelope: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *DecodeError) Kind() Kind { return KindDecode }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *ConfigError) Kind() Kind { return KindConfig }

// InternalError represents a failure to produce any envelope, such as a
// recovered panic or an allocation failure at the boundary.
type InternalError struct {
	Err       error
	Operation string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal failure in %s: %v", e.Operation, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Kind implements Kinded.
func (e *InternalError) Kind() Kind { return KindInternal }

// FromPanic converts a recovered panic value into an InternalError.
func FromPanic(operation string, r any) *InternalError {
	var err error
	switch v := r.(type) {
	case error:
		err = v
	case string:
		err = stdErrors.New(v)
	default:
		err = fmt.Errorf("panic: %v", v)
	}
	return &InternalError{Operation: operation, Err: err}
}
