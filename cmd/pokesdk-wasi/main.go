//go:build wasip1

// Command pokesdk-wasi is the WASI reactor build of the library. Build it with
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o pokesdk.wasm ./cmd/pokesdk-wasi
//
// and load it with `pokesdk wasi` or any host that provides the pokesdk_host
// imports.
package main

import (
	"context"

	pokesdk "github.com/pokesdk/poke-sdk"
	"github.com/pokesdk/poke-sdk/internal/abi"
)

// getPokemonJSON returns a packed reference to the envelope for id. The host
// releases it through deallocate. Zero means no envelope was produced.
//
//go:wasmexport get_pokemon_json
func getPokemonJSON(id uint32) (packed uint64) {
	defer func() {
		if r := recover(); r != nil {
			packed = 0
		}
	}()
	return abi.PtrFromBytes([]byte(pokesdk.GetPokemonJSON(context.Background(), id)))
}

func main() {}
