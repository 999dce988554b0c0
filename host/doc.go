// Package host runs the wasip1 build of the SDK (cmd/pokesdk-wasi) inside
// wazero.
//
// The guest performs no I/O of its own: HTTP requests and log records cross
// into the pokesdk_host module registered here. Results come back as packed
// (ptr<<32)|len references into guest memory, which the host copies and then
// returns to the guest with its deallocate export.
package host
