//go:build !wasip1

package pokesdk

import (
	"log/slog"
	"os"
	"time"

	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/infrastructure/nethttp"
	"github.com/pokesdk/poke-sdk/log"
)

func platformHTTPClient(timeout time.Duration) ports.HTTPClient {
	return nethttp.NewHTTPAdapter(timeout)
}

func platformLogger(level slog.Level) *slog.Logger {
	return log.New(level, os.Stderr)
}
