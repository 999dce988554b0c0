package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pokesdk/poke-sdk/application/config"
	"github.com/pokesdk/poke-sdk/host"
	"github.com/pokesdk/poke-sdk/hostfuncs"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/spf13/cobra"
)

var wasiCmd = &cobra.Command{
	Use:   "wasi MODULE ID",
	Short: "Fetch a Pokémon through the WASI build of the library",
	Long: `Load a pokesdk WASI reactor module, call its get_pokemon_json export
and print the envelope. HTTP requests made by the guest are performed
by this process.

POKESDK_* environment variables are passed through to the guest.

Examples:
  GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o pokesdk.wasm ./cmd/pokesdk-wasi
  pokesdk wasi pokesdk.wasm 25 --format pretty`,
	Args: cobra.ExactArgs(2),
	RunE: runWASI,
}

func init() {
	wasiCmd.Flags().StringVarP(&format, "format", "f", "json",
		"Output format: json, pretty, yaml")
}

func runWASI(cmd *cobra.Command, args []string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unknown format: %s", format)
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	wasmBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read module: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(level, os.Stderr)
	registry, err := host.DefaultRegistry(logger,
		hostfuncs.WithHTTPRequestTimeout(cfg.Timeout),
		hostfuncs.WithHTTPMaxBodySize(cfg.MaxBodyBytes))
	if err != nil {
		return err
	}

	opts := []host.Option{host.WithLogger(logger), host.WithHostFunctions(registry)}
	for k, v := range guestEnv(os.Environ()) {
		opts = append(opts, host.WithEnv(k, v))
	}
	if logLevel != "" {
		opts = append(opts, host.WithEnv(config.EnvPrefix+"_LOG_LEVEL", logLevel))
	}

	executor, err := host.NewExecutor(ctx, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = executor.Close(ctx) }()

	inst, err := executor.Load(ctx, wasmBytes)
	if err != nil {
		return err
	}

	env, err := inst.GetPokemon(ctx, id)
	if err != nil {
		return err
	}
	if err := OutputEnvelope(format, env, cmd.OutOrStdout()); err != nil {
		return err
	}
	if msg, failed := env.Message(); failed {
		return fmt.Errorf("lookup failed: %s", msg)
	}
	return nil
}

// guestEnv selects the POKESDK_* entries of environ.
func guestEnv(environ []string) map[string]string {
	out := make(map[string]string)
	prefix := config.EnvPrefix + "_"
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, prefix) {
			continue
		}
		out[k] = v
	}
	return out
}
