package config

import (
	_ "embed"
)

//go:embed defaults/hypewave.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/hypewave.yaml.
func Default() Config {
	return Config{
		Crowd: CrowdConfig{
			MaxHype:          10,
			HypeDecay:        0.1,
			HypeTransmission: 0.03,
			MoveDecay:        0.8,
			WaveDecay:        0.35,
			TickInterval:     0.05,
		},
		Performer: PerformerConfig{
			Speed:         8,
			HypeAmount:    4,
			WaveSize:      3,
			PushInfluence: 0.4,
			StaunchTime:   0.75,
			KernelSize:    2,
			PitRadius:     3,
			PitDuration:   4,
			PitCooldown:   6,
			PitMagnitude:  1,
			PitChaos:      0.5,
			PushOutTime:   0.2,
			Lives:         3,
			RespawnDelay:  2,
		},
		Audience: AudienceConfig{
			SpringFrequency: 6,
			SpringDamping:   0.4,
			BounceScale:     2,
			HypeBoost:       0.5,
		},
		Autopilot: AutopilotConfig{
			Count:    3,
			WaveRate: 0.6,
			Wander:   0.35,
			Alpha:    2,
			Beta:     2,
			Octaves:  3,
		},
		Intensity: IntensityConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 3600,
			},
			Scaling: ScalingConfig{
				HypeMultiplier: 1,
				WaveMultiplier: 0.5,
			},
		},
		Telemetry: TelemetryConfig{
			Window: 100,
		},
	}
}
