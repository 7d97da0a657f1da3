// hypewave simulates a concert crowd: hype and movement spreading across
// a venue floor, mosh pits opening up, and performers riding the waves.
//
// Usage:
//
//	hypewave venues              - List available venues
//	hypewave play [venue]        - Perform in the terminal viewer
//	hypewave run [venue]         - Run a show headless and write telemetry
//	hypewave serve               - Start SSH server for remote shows
//	hypewave runs [venue]        - Show stored runs
//
// Global flags:
//
//	--config <path>     - Show config YAML (default: search order, then embedded)
//	--preset <name>     - Intensity preset: chill, normal, rowdy, fixed
//	--venues <dir>      - Extra venue YAML directory
//	--fps <rate>        - Frames per second (default: 30)
//	--seed <value>      - Seed for reproducible shows
//	--db <path>         - Run history database (default: ~/.hypewave/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hypewave/internal/venue"
)

var (
	flagConfig   string
	flagPreset   string
	flagVenueDir string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hypewave",
	Short: "Hypewave - a concert crowd in your terminal",
	Long: `Hypewave simulates a concert crowd as two fields over the venue floor:
hype, which spreads in the direction it points, and movement, waves that
bend around hyped-up spots. Balanced, chaotic hype opens mosh pits.

Available commands:
  venues  - Show all available venues
  play    - Perform in the terminal viewer
  run     - Run an unattended show and write telemetry
  serve   - Start SSH server for remote shows
  runs    - View stored runs

Examples:
  hypewave venues
  hypewave play club
  hypewave run festival --ticks 2000 --output ./out
  hypewave serve --ssh :2222
  hypewave runs arena`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		log.SetLevel(level)

		if flagVenueDir != "" {
			n, err := venue.NewLoader(flagVenueDir).RegisterAll()
			if err != nil {
				return err
			}
			log.Debug("loaded venues", "dir", flagVenueDir, "count", n)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to show config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Intensity preset: chill, normal, rowdy, fixed")
	rootCmd.PersistentFlags().StringVar(&flagVenueDir, "venues", "", "Directory with extra venue YAML files")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frames per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hypewave/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(venuesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
