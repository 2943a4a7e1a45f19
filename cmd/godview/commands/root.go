package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	engineConfigPath string
	verbose          bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "godview",
	Short: "GodView - synthetic FX index snapshot engine",
	Long: `GodView Unified CLI

Builds synthetic currency, commodity and index series from daily
market data and publishes a per-symbol trend snapshot.

Usage:
  go run ./cmd/godview [command]

Examples:
  go run ./cmd/godview run --dry-run
  go run ./cmd/godview run --symbols AUD,EUR --output godview.json
  go run ./cmd/godview scheduler start
  go run ./cmd/godview api`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&engineConfigPath, "engine-config", "", "engine YAML (default: ENGINE_CONFIG or embedded)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
