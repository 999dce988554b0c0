// Package jsconv converts between JavaScript host values and SDK types for
// the js/wasm binding. It has no syscall/js dependency so it builds and
// tests on every platform.
package jsconv

import (
	"context"
	"fmt"
	"math"

	"github.com/pokesdk/poke-sdk/domain/entities"
	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// ParseID validates an id received from JavaScript. Numbers must be finite,
// integral and within [0, MaxUint32]; any other value is rejected. Zero is
// passed through so the upstream service decides whether it exists.
func ParseID(v any) (uint32, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint32:
		return n, nil
	case nil:
		return 0, fmt.Errorf("id is required")
	default:
		return 0, fmt.Errorf("id must be a number, got %T", v)
	}

	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0, fmt.Errorf("id must be a finite number")
	case f < 0:
		return 0, fmt.Errorf("id must not be negative, got %v", f)
	case f != math.Trunc(f):
		return 0, fmt.Errorf("id must be an integer, got %v", f)
	case f > math.MaxUint32:
		return 0, fmt.Errorf("id %v is out of range", f)
	}
	return uint32(f), nil
}

// EnvelopeValue renders env as a value tree accepted by js.ValueOf, with the
// same keys and nulls as the text envelope.
func EnvelopeValue(env entities.Envelope) map[string]any {
	m, err := wireformat.ToMap(env)
	if err != nil {
		return FailureValue(wireformat.SerializeFailureMessage)
	}
	return m
}

// FailureValue is the value tree of a Failure carrying message.
func FailureValue(message string) map[string]any {
	msg, _ := entities.Failure(message).Message()
	return map[string]any{"success": false, "pokemon": nil, "error": msg}
}

// Lookup validates arg as an id, calls get and renders the envelope. An
// invalid id or a panic in get yields a Failure value.
func Lookup(ctx context.Context, arg any, get func(context.Context, uint32) entities.Envelope) (out map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			out = FailureValue(sdkerrors.FromPanic("get_pokemon_wasm", r).Error())
		}
	}()

	id, err := ParseID(arg)
	if err != nil {
		return FailureValue(err.Error())
	}
	return EnvelopeValue(get(ctx, id))
}
