package host

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/pokesdk/poke-sdk/hostfuncs"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// ModuleName is the import module the guest links against.
const ModuleName = "pokesdk_host"

// Executor owns a wazero runtime with the pokesdk_host module installed.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	logger   *slog.Logger
	env      map[string]string

	memoryLimitPages uint32
}

// DefaultRegistry returns the registry used when none is supplied: the
// http_request function behind panic recovery and logging middleware.
func DefaultRegistry(logger *slog.Logger, opts ...hostfuncs.HTTPOption) (*hostfuncs.HandlerRegistry, error) {
	return hostfuncs.NewRegistry(
		hostfuncs.WithMiddleware(
			hostfuncs.PanicRecoveryMiddleware(),
			hostfuncs.LoggingMiddleware(logger),
		),
		hostfuncs.WithHandler("http_request", hostfuncs.HTTPHandler(opts...)),
	)
}

// NewExecutor creates a runtime with WASI and the pokesdk_host module.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{logger: log.Discard()}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		reg, err := DefaultRegistry(e.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		e.registry = reg
	}
	if !e.registry.Has("http_request") {
		return nil, fmt.Errorf("host function registry must provide %q", "http_request")
	}
	if e.registry.Has("log_message") {
		return nil, fmt.Errorf("host function %q is reserved", "log_message")
	}

	cfg := wazero.NewRuntimeConfig()
	if e.memoryLimitPages > 0 {
		cfg = cfg.WithMemoryLimitPages(e.memoryLimitPages)
	}
	rt := wazero.NewRuntimeWithConfig(ctx, cfg)
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}
	e.runtime = rt

	if err := e.registerHostFunctions(ctx); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}
	return e, nil
}

// Close releases the runtime and every instance loaded from it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load compiles and instantiates a guest module, running its _initialize
// export when present.
func (e *Executor) Load(ctx context.Context, wasmBytes []byte) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, e.moduleConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &Instance{module: mod}, nil
}

func (e *Executor) moduleConfig() wazero.ModuleConfig {
	cfg := wazero.NewModuleConfig().
		WithName("").
		WithArgs("pokesdk").
		WithStartFunctions().
		WithStderr(os.Stderr).
		WithSysWalltime().
		WithSysNanotime().
		WithSysNanosleep()

	keys := make([]string, 0, len(e.env))
	for k := range e.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cfg = cfg.WithEnv(k, e.env[k])
	}
	return cfg
}
