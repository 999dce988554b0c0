package jsconv

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/pokesdk/poke-sdk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID_Accepts(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want uint32
	}{
		{name: "float", in: float64(25), want: 25},
		{name: "zero", in: float64(0), want: 0},
		{name: "max", in: float64(math.MaxUint32), want: math.MaxUint32},
		{name: "int", in: 1, want: 1},
		{name: "int64", in: int64(151), want: 151},
		{name: "uint32", in: uint32(7), want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{name: "fractional", in: 1.5},
		{name: "negative", in: float64(-1)},
		{name: "negative int", in: -3},
		{name: "NaN", in: math.NaN()},
		{name: "infinity", in: math.Inf(1)},
		{name: "too large", in: float64(math.MaxUint32) + 1},
		{name: "string", in: "25"},
		{name: "bool", in: true},
		{name: "nil", in: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseID(tt.in)
			assert.Error(t, err)
		})
	}
}

func TestEnvelopeValue(t *testing.T) {
	v := EnvelopeValue(entities.Success(testutil.Unknown()))

	assert.Equal(t, true, v["success"])
	assert.Contains(t, v, "error")
	assert.Nil(t, v["error"])

	p, ok := v["pokemon"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "deoxys-attack", p["name"])
	assert.Contains(t, p, "base_experience")
	assert.Nil(t, p["base_experience"])

	types, ok := p["types"].([]any)
	require.True(t, ok)
	assert.Len(t, types, 1)
}

func TestFailureValue(t *testing.T) {
	assert.Equal(t,
		map[string]any{"success": false, "pokemon": nil, "error": "id must be an integer, got 1.5"},
		FailureValue("id must be an integer, got 1.5"))
	assert.Equal(t, entities.UnknownErrorMessage, FailureValue("")["error"])
}

func TestLookup(t *testing.T) {
	get := func(_ context.Context, id uint32) entities.Envelope {
		if id == 25 {
			return entities.Success(testutil.Pikachu())
		}
		return entities.Failure(fmt.Sprintf("pokemon %d not found", id))
	}

	ok := Lookup(context.Background(), float64(25), get)
	assert.Equal(t, true, ok["success"])

	missing := Lookup(context.Background(), float64(999999), get)
	assert.Equal(t, "pokemon 999999 not found", missing["error"])
	assert.Nil(t, missing["pokemon"])
}

func TestLookup_InvalidIDNeverCallsGet(t *testing.T) {
	called := false
	get := func(context.Context, uint32) entities.Envelope {
		called = true
		return entities.Success(testutil.Pikachu())
	}

	for _, arg := range []any{1.5, float64(-1), "25", nil} {
		out := Lookup(context.Background(), arg, get)
		assert.Equal(t, false, out["success"])
		assert.NotEmpty(t, out["error"])
		assert.Nil(t, out["pokemon"])
	}
	assert.False(t, called)
}

func TestLookup_RecoversPanic(t *testing.T) {
	out := Lookup(context.Background(), float64(1), func(context.Context, uint32) entities.Envelope {
		panic("transport exploded")
	})

	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["error"], "transport exploded")
}
