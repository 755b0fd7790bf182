package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlast loads the blast puzzle configuration.
// Search order: customPath -> ~/.blast/configs/blast.yaml -> ./configs/blast.yaml -> embedded default
func LoadBlast(customPath string) (BlastConfig, error) {
	var cfg BlastConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, validateBlast(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blast.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil && validateBlast(cfg) == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blast.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil && validateBlast(cfg) == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultBlastYAML, &cfg); err != nil {
		return DefaultBlastConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// validateBlast rejects configurations the simulation cannot run with.
func validateBlast(cfg BlastConfig) error {
	if cfg.Board.Columns < 1 || cfg.Board.Rows < 1 {
		return fmt.Errorf("config: board must be at least 1x1, got %dx%d", cfg.Board.Columns, cfg.Board.Rows)
	}
	if cfg.Palette.Colors < 1 {
		return fmt.Errorf("config: palette needs at least one color, got %d", cfg.Palette.Colors)
	}
	if cfg.Palette.MinGroupSize < 2 {
		return fmt.Errorf("config: min_group_size must be at least 2, got %d", cfg.Palette.MinGroupSize)
	}
	if cfg.Palette.MinGroupSize > cfg.Board.Columns*cfg.Board.Rows {
		return fmt.Errorf("config: min_group_size %d exceeds board capacity %d",
			cfg.Palette.MinGroupSize, cfg.Board.Columns*cfg.Board.Rows)
	}
	if cfg.Shuffle.GuaranteedColors < 0 {
		return fmt.Errorf("config: guaranteed_colors must not be negative, got %d", cfg.Shuffle.GuaranteedColors)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blast", "configs", filename)
}

// ApplyBlastPreset modifies the config based on a difficulty preset.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the board itself for the preset
	switch preset {
	case DifficultyEasy:
		cfg.Palette.Colors = 5
		cfg.Shuffle.GuaranteedColors = 3
	case DifficultyHard:
		cfg.Palette.Colors = 6
		cfg.Shuffle.GuaranteedColors = 1
	}
}
