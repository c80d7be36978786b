package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "fallingsky.yaml"

// LoadFallingSky loads the game configuration.
// Search order: customPath -> ~/.fallingsky/configs/fallingsky.yaml ->
// ./configs/fallingsky.yaml -> embedded default.
// Files may be partial; missing keys keep their default values.
func LoadFallingSky(customPath string) (FallingSkyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FallingSkyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return FallingSkyConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultFallingSkyYAML)
	if err != nil {
		return DefaultFallingSkyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse overlays data on the defaults and validates the result.
func parse(data []byte) (FallingSkyConfig, error) {
	cfg := DefaultFallingSkyConfig()
	defaultTiers := cfg.Bonus.Tiers
	cfg.Bonus.Tiers = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FallingSkyConfig{}, err
	}
	if cfg.Bonus.Tiers == nil {
		cfg.Bonus.Tiers = defaultTiers
	}
	if err := cfg.Validate(); err != nil {
		return FallingSkyConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fallingsky", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FallingSkyConfig, preset DifficultyPreset) {
	switch {
	case preset == "":
		return
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Hard mode also shortens the grace period before locking.
	if preset == DifficultyHard {
		cfg.Timing.MercyTicks = 0
	}
}
