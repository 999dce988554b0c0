//go:build wasip1

// Package wasm provides adapters that reach the outside world through the
// pokesdk_host module supplied by the WASM host.
package wasm

// host_http_request performs an HTTP exchange on the host. Both arguments are
// packed (ptr<<32)|len references to JSON in guest memory; the result is
// allocated by the host through the guest's allocate export.
//
//go:wasmimport pokesdk_host http_request
func host_http_request(requestPacked uint64) uint64
