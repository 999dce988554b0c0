package host

import (
	"log/slog"

	"github.com/pokesdk/poke-sdk/hostfuncs"
)

// Option configures an Executor.
type Option func(*Executor)

// WithHostFunctions replaces the default registry. The registry should
// provide http_request; log_message is always added by the executor.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.registry = registry
	}
}

// WithLogger sets the logger for host diagnostics and replayed guest logs.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEnv sets an environment variable visible to loaded guests, such as
// POKESDK_BASE_URL.
func WithEnv(key, value string) Option {
	return func(e *Executor) {
		if e.env == nil {
			e.env = make(map[string]string)
		}
		e.env[key] = value
	}
}

// WithMemoryLimitPages caps guest memory in 64 KiB pages.
func WithMemoryLimitPages(pages uint32) Option {
	return func(e *Executor) {
		e.memoryLimitPages = pages
	}
}
