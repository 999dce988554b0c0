//go:build js && wasm

// Command pokesdk-wasm is the browser binding. Build it with
//
//	GOOS=js GOARCH=wasm go build -o poke_sdk.wasm ./cmd/pokesdk-wasm
//
// It registers a global get_pokemon_wasm(id) that returns a Promise
// resolving to {success, pokemon, error}. The Promise never rejects.
package main

import (
	"context"
	"syscall/js"

	pokesdk "github.com/pokesdk/poke-sdk"
	"github.com/pokesdk/poke-sdk/internal/jsconv"
)

func main() {
	js.Global().Set("get_pokemon_wasm", js.FuncOf(getPokemonWasm))
	select {}
}

func getPokemonWasm(_ js.Value, args []js.Value) any {
	var arg any
	if len(args) > 0 {
		arg = hostValue(args[0])
	}

	executor := js.FuncOf(func(_ js.Value, p []js.Value) any {
		resolve := p[0]
		// The fetch blocks on the network; run it off the event loop.
		go func() {
			out := jsconv.Lookup(context.Background(), arg, pokesdk.GetPokemon)
			resolve.Invoke(js.ValueOf(out))
		}()
		return nil
	})
	defer executor.Release()

	return js.Global().Get("Promise").New(executor)
}

// hostValue maps a JavaScript argument to the Go value jsconv.ParseID
// expects. Non-numbers are described by their JavaScript type name.
func hostValue(v js.Value) any {
	switch v.Type() {
	case js.TypeNumber:
		return v.Float()
	case js.TypeUndefined, js.TypeNull:
		return nil
	default:
		return v.Type().String()
	}
}
