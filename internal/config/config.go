// Package config provides YAML-based show configuration loading and
// intensity presets.
package config

import "fmt"

// Config contains every tunable of a show apart from the venue layout.
type Config struct {
	Crowd     CrowdConfig     `yaml:"crowd"`
	Performer PerformerConfig `yaml:"performer"`
	Audience  AudienceConfig  `yaml:"audience"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Intensity IntensityConfig `yaml:"intensity"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// CrowdConfig holds the field simulation rates.
type CrowdConfig struct {
	MaxHype          float64 `yaml:"max_hype"`
	HypeDecay        float64 `yaml:"hype_decay"`
	HypeTransmission float64 `yaml:"hype_transmission"`
	MoveDecay        float64 `yaml:"move_decay"`
	WaveDecay        float64 `yaml:"wave_decay"`
	TickInterval     float64 `yaml:"tick_interval"` // seconds
}

// PerformerConfig defines how performers move, pump hype and start pits.
type PerformerConfig struct {
	Speed         float64 `yaml:"speed"`          // world units per second
	HypeAmount    float64 `yaml:"hype_amount"`    // hype pumped per tick while moving
	WaveSize      float64 `yaml:"wave_size"`      // strength of a wave pulse
	PushInfluence float64 `yaml:"push_influence"` // how far crowd movement shoves a performer
	StaunchTime   float64 `yaml:"staunch_time"`   // seconds of wave immunity after making one

	KernelSize   int     `yaml:"kernel_size"`   // cells sampled on each side for pit detection
	PitRadius    float64 `yaml:"pit_radius"`
	PitDuration  float64 `yaml:"pit_duration"`
	PitCooldown  float64 `yaml:"pit_cooldown"`
	PitMagnitude float64 `yaml:"pit_magnitude"` // mean hype needed to start a pit
	PitChaos     float64 `yaml:"pit_chaos"`     // net hype must stay below this
	PushOutTime  float64 `yaml:"push_out_time"` // seconds spent leaving a fresh pit

	Lives        int     `yaml:"lives"`
	RespawnDelay float64 `yaml:"respawn_delay"`
}

// AudienceConfig tunes the crowd member bounce animation.
type AudienceConfig struct {
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
	BounceScale     float64 `yaml:"bounce_scale"`
	HypeBoost       float64 `yaml:"hype_boost"` // extra bounce at max hype, 0.5 = 50%
}

// AutopilotConfig drives computer-controlled performers.
type AutopilotConfig struct {
	Count    int     `yaml:"count"`     // performers in headless runs
	WaveRate float64 `yaml:"wave_rate"` // expected waves per second
	Wander   float64 `yaml:"wander"`    // noise time scale, higher turns faster
	Alpha    float64 `yaml:"alpha"`
	Beta     float64 `yaml:"beta"`
	Octaves  int32   `yaml:"octaves"`
}

// TelemetryConfig controls stats windows for headless runs.
type TelemetryConfig struct {
	Window int `yaml:"window"` // ticks per stats row
}

// Validate checks the values the show cannot run without.
// Crowd rates are checked again by the simulator itself.
func (c Config) Validate() error {
	p := c.Performer
	switch {
	case p.Speed <= 0:
		return fmt.Errorf("config: performer.speed must be positive, got %g", p.Speed)
	case p.KernelSize < 0:
		return fmt.Errorf("config: performer.kernel_size must not be negative, got %d", p.KernelSize)
	case p.PitRadius <= 0 || p.PitDuration <= 0:
		return fmt.Errorf("config: performer pit radius and duration must be positive")
	case p.StaunchTime <= 0:
		return fmt.Errorf("config: performer.staunch_time must be positive, got %g", p.StaunchTime)
	case p.Lives < 1:
		return fmt.Errorf("config: performer.lives must be at least 1, got %d", p.Lives)
	}
	if c.Audience.SpringFrequency <= 0 {
		return fmt.Errorf("config: audience.spring_frequency must be positive, got %g", c.Audience.SpringFrequency)
	}
	if c.Autopilot.Octaves < 1 {
		return fmt.Errorf("config: autopilot.octaves must be at least 1, got %d", c.Autopilot.Octaves)
	}
	if c.Telemetry.Window < 1 {
		return fmt.Errorf("config: telemetry.window must be at least 1, got %d", c.Telemetry.Window)
	}
	return nil
}
