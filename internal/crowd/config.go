package crowd

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("crowd: invalid config")

// Config holds the simulation parameters. It is fixed once a Simulator is built.
type Config struct {
	FieldSize int // cells per side

	MaxHype          float64 // hype magnitude ceiling per cell
	HypeDecay        float64 // fraction of hype lost per tick
	HypeTransmission float64 // fraction of hype passed to each downstream neighbor
	MoveDecay        float64 // fraction of movement lost per tick
	WaveDecay        float64 // strength kept by a wave as it moves one cell

	TickInterval float64 // seconds between ticks
	Scale        float64 // world units per cell

	Stages []Stage
}

// DefaultConfig returns a medium-sized field tuned for waves that travel
// a dozen cells and hype that lingers for a few seconds.
func DefaultConfig() Config {
	return Config{
		FieldSize:        48,
		MaxHype:          10,
		HypeDecay:        0.1,
		HypeTransmission: 0.03,
		MoveDecay:        0.8,
		WaveDecay:        0.35,
		TickInterval:     0.05,
		Scale:            1,
	}
}

// Validate checks that the parameters describe a usable field.
func (c Config) Validate() error {
	if c.FieldSize < 3 {
		return fmt.Errorf("%w: field size %d must be at least 3", ErrInvalidConfig, c.FieldSize)
	}
	if !(c.MaxHype > 0) {
		return fmt.Errorf("%w: max hype %g must be positive", ErrInvalidConfig, c.MaxHype)
	}
	rates := []struct {
		name string
		v    float64
	}{
		{"hype decay", c.HypeDecay},
		{"move decay", c.MoveDecay},
	}
	for _, r := range rates {
		if !(r.v >= 0 && r.v <= 1) {
			return fmt.Errorf("%w: %s %g must be within [0, 1]", ErrInvalidConfig, r.name, r.v)
		}
	}
	if !(c.HypeTransmission >= 0) {
		return fmt.Errorf("%w: hype transmission %g must not be negative", ErrInvalidConfig, c.HypeTransmission)
	}
	if !(c.WaveDecay >= 0) {
		return fmt.Errorf("%w: wave decay %g must not be negative", ErrInvalidConfig, c.WaveDecay)
	}
	if !(c.TickInterval > 0) {
		return fmt.Errorf("%w: tick interval %g must be positive", ErrInvalidConfig, c.TickInterval)
	}
	if !(c.Scale > 0) {
		return fmt.Errorf("%w: scale %g must be positive", ErrInvalidConfig, c.Scale)
	}
	for i, s := range c.Stages {
		if !(s.X2 > s.X1 && s.Y2 > s.Y1) {
			return fmt.Errorf("%w: stage %d (%g,%g)-(%g,%g) is empty", ErrInvalidConfig, i, s.X1, s.Y1, s.X2, s.Y2)
		}
	}
	return nil
}
