//go:build wasip1

package log

import (
	"log/slog"

	"github.com/pokesdk/poke-sdk/internal/abi"
)

//go:wasmimport pokesdk_host log_message
//nolint:revive // snake_case matches the import name
func host_log_message(messagePacked uint64)

// NewWASIHandler returns a HostHandler that forwards records to the host's
// log_message import.
func NewWASIHandler(level slog.Leveler) *HostHandler {
	return NewHostHandler(level, func(data []byte) {
		packed := abi.PtrFromBytes(data)
		if packed == 0 {
			return
		}
		host_log_message(packed)
		abi.DeallocatePacked(packed)
	})
}
