package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the show configuration.
// Search order: customPath -> ~/.hypewave/configs/hypewave.yaml ->
// ./configs/hypewave.yaml -> embedded default.
// Files only override the keys they set.
func Load(customPath string) (Config, error) {
	cfg := base()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{userConfigPath("hypewave.yaml"), filepath.Join("configs", "hypewave.yaml")}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := cfg
		if err := yaml.Unmarshal(data, &layered); err == nil && layered.Validate() == nil {
			return layered, nil
		}
	}

	return cfg, nil
}

// base returns the embedded defaults, or the hardcoded ones if the embed
// does not parse.
func base() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default()
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hypewave", "configs", filename)
}

// ApplyPreset adjusts intensity and performer survivability for a preset.
func ApplyPreset(cfg *Config, preset Preset) error {
	switch preset {
	case PresetChill, PresetNormal, PresetRowdy:
		cfg.Intensity.Enabled = true
		cfg.Intensity.InitialLevel = InitialLevelForPreset(preset)
	case PresetFixed:
		cfg.Intensity.Enabled = false
	default:
		return fmt.Errorf("config: unknown preset %q", preset)
	}

	switch preset {
	case PresetChill:
		cfg.Performer.Lives = 5
		cfg.Performer.PitCooldown *= 1.5
	case PresetRowdy:
		cfg.Performer.Lives = 2
		cfg.Performer.PitMagnitude *= 0.75
	}
	return nil
}

// WriteYAML writes the configuration to path.
func (c Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
