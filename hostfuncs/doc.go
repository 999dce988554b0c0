// Package hostfuncs contains the host-side functions of the SDK: the real HTTP
// executor used by native builds, and the named handler registry that the
// wazero host exposes to the wasip1 guest.
//
// Handlers exchange JSON payloads so that the same function can be called
// in-process or across the WASM boundary.
package hostfuncs
