// Package entities provides the core domain types of the SDK: the Pokémon
// resource and the success/failure envelope that every fetch returns.
//
// These types carry the JSON tags of the wire contract. Every binding
// (C ABI, JNI extern pair, WASM) hands out exactly this layout, so the tag
// names must not change.
package entities
