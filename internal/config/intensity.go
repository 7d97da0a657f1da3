package config

import "math"

// IntensityConfig defines how a show builds up over time.
type IntensityConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = chill, 1.0 = rowdy
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the intensity level up.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or ticks at which the level reaches 1
}

// ScalingConfig defines how much performer output grows at full intensity.
type ScalingConfig struct {
	HypeMultiplier float64 `yaml:"hype_multiplier"` // added to hype output at level 1
	WaveMultiplier float64 `yaml:"wave_multiplier"` // added to wave size at level 1
}

// Preset is a named intensity level.
type Preset string

const (
	PresetChill  Preset = "chill"
	PresetNormal Preset = "normal"
	PresetRowdy  Preset = "rowdy"
	PresetFixed  Preset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []Preset{PresetChill, PresetNormal, PresetRowdy, PresetFixed}

// InitialLevelForPreset returns the starting level of a preset.
func InitialLevelForPreset(p Preset) float64 {
	switch p {
	case PresetNormal:
		return 0.3
	case PresetRowdy:
		return 0.7
	default:
		return 0.0
	}
}

// IntensityManager turns progress through a show into output multipliers.
type IntensityManager struct {
	cfg IntensityConfig
}

// NewIntensityManager creates a manager for cfg.
func NewIntensityManager(cfg IntensityConfig) *IntensityManager {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0, 1)
	return &IntensityManager{cfg: cfg}
}

// Level returns the current intensity (0.0 to 1.0).
func (m *IntensityManager) Level(score, ticks int) float64 {
	if !m.cfg.Enabled {
		return m.cfg.InitialLevel
	}

	maxAt := float64(m.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch m.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return m.cfg.InitialLevel
	}

	progress = clampF(progress, 0, 1)
	return m.cfg.InitialLevel + progress*(1-m.cfg.InitialLevel)
}

// Hype scales a performer's hype output.
func (m *IntensityManager) Hype(base float64, score, ticks int) float64 {
	return base * (1 + m.Level(score, ticks)*m.cfg.Scaling.HypeMultiplier)
}

// Wave scales a performer's wave size.
func (m *IntensityManager) Wave(base float64, score, ticks int) float64 {
	return base * (1 + m.Level(score, ticks)*m.cfg.Scaling.WaveMultiplier)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
