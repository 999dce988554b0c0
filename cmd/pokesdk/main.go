// Command pokesdk looks up Pokémon from the command line using the same
// engine and envelope as the shared library bindings.
package main

import (
	"fmt"
	"os"
	"strconv"

	pokesdk "github.com/pokesdk/poke-sdk"
	"github.com/pokesdk/poke-sdk/application/config"
	"github.com/pokesdk/poke-sdk/log"
	"github.com/spf13/cobra"
)

var (
	// global flags
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pokesdk",
	Short: "Fetch Pokémon records as JSON envelopes",
	Long: `pokesdk fetches Pokémon from the PokéAPI and prints the result
envelope that every binding of the library returns.

Settings come from defaults, an optional config file and POKESDK_*
environment variables, in increasing order of precedence.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Config file (default: $"+config.EnvConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(getCmd, schemaCmd, wasiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration from flags, file and
// environment.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newSDK builds an SDK that logs to stderr.
func newSDK(cfg *config.Config) (*pokesdk.SDK, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	s := pokesdk.New(
		pokesdk.WithConfig(*cfg),
		pokesdk.WithLogger(log.New(level, os.Stderr)),
	)
	return s, s.Err()
}

// parseID parses a dex number argument.
func parseID(arg string) (uint32, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid pokemon id %q: must be an integer between 0 and %d", arg, uint32(1<<32-1))
	}
	return uint32(id), nil
}
