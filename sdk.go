// Package pokesdk fetches Pokémon from a remote service and returns each
// result as a success/failure envelope. Every binding of the library (C ABI,
// JNI, js/wasm, wasip1) calls through this package.
package pokesdk

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pokesdk/poke-sdk/application/config"
	"github.com/pokesdk/poke-sdk/application/fetch"
	"github.com/pokesdk/poke-sdk/domain/entities"
	"github.com/pokesdk/poke-sdk/domain/ports"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/pokesdk/poke-sdk/wireformat"
)

// SDK is a configured Fetch Engine. It is safe for concurrent use.
type SDK struct {
	fetcher ports.Fetcher
	logger  *slog.Logger

	// err is set when the configuration was invalid; every call then
	// returns it as a Failure.
	err error
}

// Option configures New.
type Option func(*options)

type options struct {
	cfg        *config.Config
	client     ports.HTTPClient
	logger     *slog.Logger
	engineOpts []fetch.Option
}

// WithConfig uses cfg instead of loading from the environment.
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = &cfg }
}

// WithHTTPClient replaces the platform HTTP adapter.
func WithHTTPClient(client ports.HTTPClient) Option {
	return func(o *options) { o.client = client }
}

// WithLogger replaces the platform logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithEngineOptions passes extra options to the Fetch Engine after the
// configuration has been applied.
func WithEngineOptions(opts ...fetch.Option) Option {
	return func(o *options) { o.engineOpts = append(o.engineOpts, opts...) }
}

// New builds an SDK. Without WithConfig, settings come from config.FromEnv.
// An invalid configuration does not fail construction: the returned SDK
// answers every lookup with a Failure describing the problem.
func New(opts ...Option) *SDK {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg := o.cfg
	if cfg == nil {
		loaded, err := config.FromEnv()
		if err != nil {
			return failed(err, pickLogger(o.logger, config.DefaultLogLevel))
		}
		cfg = loaded
	} else if err := cfg.Validate(); err != nil {
		return failed(err, pickLogger(o.logger, config.DefaultLogLevel))
	}

	logger := pickLogger(o.logger, cfg.LogLevel)
	client := o.client
	if client == nil {
		client = platformHTTPClient(cfg.Timeout)
	}

	engineOpts := append([]fetch.Option{fetch.WithConfig(*cfg), fetch.WithLogger(logger)}, o.engineOpts...)
	return &SDK{
		fetcher: fetch.NewEngine(client, engineOpts...),
		logger:  logger,
	}
}

// failed returns an SDK whose every lookup reports err.
func failed(err error, logger *slog.Logger) *SDK {
	return &SDK{
		fetcher: ports.FetcherFunc(func(context.Context, uint32) entities.Envelope {
			return entities.FailureFromError(err)
		}),
		logger: logger,
		err:    err,
	}
}

func pickLogger(logger *slog.Logger, level string) *slog.Logger {
	if logger != nil {
		return logger
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return platformLogger(lvl)
}

// Err reports the configuration error, if any.
func (s *SDK) Err() error {
	return s.err
}

// Logger returns the logger the SDK writes to.
func (s *SDK) Logger() *slog.Logger {
	return s.logger
}

// GetPokemon looks up id and returns exactly one envelope.
func (s *SDK) GetPokemon(ctx context.Context, id uint32) entities.Envelope {
	return s.fetcher.Fetch(ctx, id)
}

// GetPokemonJSON is GetPokemon followed by the text encoding of the envelope.
// It always returns a valid envelope string.
func (s *SDK) GetPokemonJSON(ctx context.Context, id uint32) string {
	return wireformat.EncodeOrFallback(s.GetPokemon(ctx, id))
}

var (
	defaultSDK  *SDK
	defaultOnce sync.Once
)

// Default returns the process-wide SDK, built from the environment on first
// use.
func Default() *SDK {
	defaultOnce.Do(func() {
		defaultSDK = New()
	})
	return defaultSDK
}

// GetPokemon calls Default().GetPokemon.
func GetPokemon(ctx context.Context, id uint32) entities.Envelope {
	return Default().GetPokemon(ctx, id)
}

// GetPokemonJSON calls Default().GetPokemonJSON.
func GetPokemonJSON(ctx context.Context, id uint32) string {
	return Default().GetPokemonJSON(ctx, id)
}
