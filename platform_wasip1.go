//go:build wasip1

package pokesdk

import (
	"log/slog"
	"time"

	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/infrastructure/wasm"
	"github.com/pokesdk/poke-sdk/log"
)

func platformHTTPClient(timeout time.Duration) ports.HTTPClient {
	return wasm.NewHTTPAdapter(timeout)
}

func platformLogger(level slog.Level) *slog.Logger {
	return slog.New(log.NewWASIHandler(level))
}
