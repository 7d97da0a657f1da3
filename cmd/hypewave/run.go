package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hypewave/internal/core"
	"github.com/vovakirdan/hypewave/internal/storage"
	"github.com/vovakirdan/hypewave/internal/telemetry"
	"github.com/vovakirdan/hypewave/internal/venue"
)

var (
	flagTicks  int
	flagOutput string
	flagNoSave bool
)

var runCmd = &cobra.Command{
	Use:   "run [venue]",
	Short: "Run an unattended show and write telemetry",
	Long: `Run a show with autopilot performers only, as fast as possible.

Every telemetry window is logged and, with --output, appended to
<output>/telemetry.csv next to a config.yaml snapshot. The finished run
is saved to the run history unless --no-save is given.

Examples:
  hypewave run
  hypewave run arena --ticks 5000
  hypewave run festival --seed 7 --output ./runs/festival-7
  hypewave run club --preset rowdy --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Number of crowd ticks to simulate")
	runCmd.Flags().StringVar(&flagOutput, "output", "", "Directory for telemetry.csv and config.yaml")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not store the run in the database")
}

func runHeadless(_ *cobra.Command, args []string) {
	venueID := "club"
	if len(args) == 1 {
		venueID = args[0]
	}
	if !venue.Exists(venueID) {
		fmt.Fprintf(os.Stderr, "Error: unknown venue %q\n", venueID)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger("run")

	out, err := telemetry.NewOutputManager(flagOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		logger.Warn("could not write config snapshot", "error", err)
	}

	builder := showBuilder{
		cfg:    cfg,
		mode:   "run",
		logger: logger,
		onWindow: func(w telemetry.WindowStats) {
			w.Log(logger)
			if err := out.WriteTelemetry(w); err != nil {
				logger.Error("telemetry write failed", "error", err)
			}
		},
	}
	sh, err := builder.build(venueID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sh.Reset(core.RuntimeConfig{TickRate: flagFPS, Seed: flagSeed})
	logger.Info("show started", "venue", venueID, "seed", sh.Seed(), "ticks", flagTicks)

	start := time.Now()
	frame := core.NewInputFrame()
	for sh.Sim().Ticks() < uint64(flagTicks) && !sh.State().GameOver {
		sh.Step(frame)
	}
	sh.Flush()

	rec := sh.Summary()
	logger.Info("show finished",
		"ticks", rec.Ticks,
		"score", rec.Score,
		"peak_hype", rec.PeakHype,
		"pits", rec.Pits,
		"waves", rec.Waves,
		"deaths", rec.Deaths,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if flagNoSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(rec); err != nil {
		logger.Error("could not save run", "error", err)
	}
}
