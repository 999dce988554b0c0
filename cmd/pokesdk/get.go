package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// get flags
var format string

var getCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Fetch one Pokémon by national dex number",
	Long: `Fetch one Pokémon and print its envelope.

The command exits non-zero when the envelope is a failure, after printing it.

Examples:
  # Raw envelope, exactly as the shared library returns it
  pokesdk get 25

  # Human-readable summary
  pokesdk get 25 --format pretty

  # Against a local mirror
  POKESDK_BASE_URL=http://localhost:8080/api/v2 pokesdk get 1`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&format, "format", "f", "json",
		"Output format: json, pretty, yaml")
}

func runGet(cmd *cobra.Command, args []string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unknown format: %s", format)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := newSDK(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := s.GetPokemon(ctx, id)
	if err := OutputEnvelope(format, env, cmd.OutOrStdout()); err != nil {
		return err
	}
	if msg, failed := env.Message(); failed {
		return fmt.Errorf("lookup failed: %s", msg)
	}
	return nil
}
