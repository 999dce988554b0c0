//go:build !wasip1

package wasm

import (
	"context"
	"testing"

	sdkerrors "github.com/pokesdk/poke-sdk/domain/errors"
	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAdapterStub_FailsAsTransport(t *testing.T) {
	resp, err := NewHTTPAdapter(0).Do(context.Background(), ports.HTTPRequest{URL: "https://pokeapi.co/api/v2/pokemon/1"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, sdkerrors.KindTransport, sdkerrors.KindOf(err))
	assert.ErrorIs(t, err, errNoHost)
}
