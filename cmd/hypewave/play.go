package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/platform/tui"
	"github.com/vovakirdan/hypewave/internal/storage"
	"github.com/vovakirdan/hypewave/internal/venue"
)

var playCmd = &cobra.Command{
	Use:   "play [venue]",
	Short: "Perform in the terminal viewer",
	Long: `Step on the floor as a performer. Without a venue, a picker opens.

Controls:
  Arrows/WASD  - Move
  Space        - Send a wave (not from a stage)
  Tab          - Switch between hype and movement view
  P            - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot to ~/.hypewave/screenshots
  Q/Ctrl+C     - Quit

Presets:
  chill  - Start calm, five lives, slower pits
  normal - Start at 30% intensity
  rowdy  - Start at 70% intensity, two lives, pits open easily
  fixed  - No build-up, stays at the config's initial level

Examples:
  hypewave play
  hypewave play club
  hypewave play festival --preset rowdy
  hypewave play arena --config ./my-show.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	builder := showBuilder{cfg: cfg, mode: "play", human: true, logger: newLogger("hypewave")}

	if len(args) == 1 {
		if !venue.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown venue %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'hypewave venues' to see available venues.")
			os.Exit(1)
		}
		if err := playVenue(builder, args[0], store, rc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Picker loop: menu -> show or runs board -> menu, until the menu quits.
	for {
		result, err := tui.RunMenu(store, rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		rc = result.Config

		switch {
		case result.Quit:
			return
		case result.WantsRuns:
			back, err := tui.RunRuns(store, "", rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !back {
				return
			}
		default:
			if err := playVenue(builder, result.VenueID, store, rc); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}
}

func playVenue(b showBuilder, venueID string, store *storage.Store, rc core.RuntimeConfig) error {
	sh, err := b.build(venueID)
	if err != nil {
		return err
	}
	return tui.Run(sh, store, rc)
}
