// Package venue describes the floor a show plays on: field size, world
// scale, stages and performer spawn points.
package venue

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hypewave/internal/crowd"
)

// ErrUnknownVenue is returned when a venue ID is not registered.
var ErrUnknownVenue = errors.New("venue: unknown venue")

// ErrInvalidVenue is wrapped by every layout error returned from Validate.
var ErrInvalidVenue = errors.New("venue: invalid layout")

// Venue is a parsed venue definition. Coordinates are in field space.
type Venue struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	FieldSize int     `yaml:"field_size"`
	Scale     float64 `yaml:"scale"`
	Stages    []Stage `yaml:"stages"`
	Spawns    []Point `yaml:"spawns"`

	FilePath string `yaml:"-"`
}

// Stage is a rectangle where waves die out and performers are safe.
type Stage struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

// Point is a field-space position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Parse decodes a YAML venue and validates it.
func Parse(data []byte) (Venue, error) {
	v := Venue{Scale: 1}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return Venue{}, fmt.Errorf("venue: yaml unmarshal: %w", err)
	}
	if err := v.Validate(); err != nil {
		return Venue{}, err
	}
	return v, nil
}

// Validate checks the layout fits the field.
func (v Venue) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidVenue)
	}
	if v.FieldSize < 8 {
		return fmt.Errorf("%w: %s: field_size %d must be at least 8", ErrInvalidVenue, v.ID, v.FieldSize)
	}
	if !(v.Scale > 0) {
		return fmt.Errorf("%w: %s: scale %g must be positive", ErrInvalidVenue, v.ID, v.Scale)
	}
	hi := float64(v.FieldSize - 1)
	for i, s := range v.Stages {
		if s.X2 <= s.X1 || s.Y2 <= s.Y1 {
			return fmt.Errorf("%w: %s: stage %d is empty", ErrInvalidVenue, v.ID, i)
		}
		if s.X1 < 0 || s.Y1 < 0 || s.X2 > hi || s.Y2 > hi {
			return fmt.Errorf("%w: %s: stage %d leaves the field", ErrInvalidVenue, v.ID, i)
		}
	}
	if len(v.Spawns) == 0 {
		return fmt.Errorf("%w: %s: needs at least one spawn", ErrInvalidVenue, v.ID)
	}
	stages := v.CrowdStages()
	for i, p := range v.Spawns {
		if p.X < 1 || p.Y < 1 || p.X > hi-1 || p.Y > hi-1 {
			return fmt.Errorf("%w: %s: spawn %d is off the floor", ErrInvalidVenue, v.ID, i)
		}
		for _, s := range stages {
			if s.Contains(crowd.V(p.X, p.Y)) {
				return fmt.Errorf("%w: %s: spawn %d is on a stage", ErrInvalidVenue, v.ID, i)
			}
		}
	}
	return nil
}

// CrowdStages converts the stages for the simulator.
func (v Venue) CrowdStages() []crowd.Stage {
	out := make([]crowd.Stage, len(v.Stages))
	for i, s := range v.Stages {
		out[i] = crowd.Stage{X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2}
	}
	return out
}

// Spawn returns the world-space position of spawn i, wrapping around.
func (v Venue) Spawn(i int) crowd.Vec {
	p := v.Spawns[i%len(v.Spawns)]
	return crowd.V(p.X*v.Scale, p.Y*v.Scale)
}
