package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadArena loads the arena tuning.
// Search order: customPath -> ~/.lastvector/configs/arena.yaml ->
// ./configs/arena.yaml -> embedded default.
func LoadArena(customPath string) (ArenaConfig, error) {
	var cfg ArenaConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/arena.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultArenaYAML, &cfg); err != nil {
		return DefaultArenaConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is
// unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lastvector", "configs", filename)
}

// ApplyArenaPreset modifies the config based on a difficulty preset.
// Presets only touch the spawn pressure: the per-tick physics stays fixed so
// trajectories under a preset remain reproducible for a given seed.
func ApplyArenaPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Spawning.BaseRate = 0.7
		cfg.Spawning.BaseCap = 10
		cfg.Spawning.RampSeconds = 120
	case DifficultyHard:
		cfg.Spawning.BaseRate = 1.4
		cfg.Spawning.BaseCap = 22
		cfg.Spawning.RampSeconds = 60
	case DifficultyFixed:
		// Freeze the ramp: difficulty stays at zero for the whole episode.
		cfg.Spawning.RampSeconds = 0
	}
}
