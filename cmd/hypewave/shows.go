package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hypewave/internal/config"
	"github.com/vovakirdan/hypewave/internal/show"
	"github.com/vovakirdan/hypewave/internal/telemetry"
	"github.com/vovakirdan/hypewave/internal/venue"
)

// loadConfig loads the show config and applies --preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagPreset != "" {
		if err := config.ApplyPreset(&cfg, config.Preset(flagPreset)); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger returns a stderr logger at the level chosen with --log-level.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.GetLevel(),
	})
}

// showBuilder creates shows for one config.
type showBuilder struct {
	cfg      config.Config
	mode     string
	human    bool
	logger   *log.Logger
	onWindow func(telemetry.WindowStats)
}

func (b showBuilder) build(venueID string) (*show.Show, error) {
	v, err := venue.Lookup(venueID)
	if err != nil {
		return nil, err
	}
	return show.New(show.Options{
		Venue:    v,
		Config:   b.cfg,
		Mode:     b.mode,
		Human:    b.human,
		Logger:   b.logger,
		OnWindow: b.onWindow,
	})
}
