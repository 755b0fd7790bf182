package config

import (
	_ "embed"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the default blast configuration.
// Used as the last-resort fallback when the embedded YAML cannot be parsed.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BoardConfig{
			Columns: 10,
			Rows:    10,
		},
		Palette: PaletteConfig{
			Colors:         6,
			MinGroupSize:   2,
			TierThresholds: []int{5, 8, 12},
		},
		Shuffle: ShuffleConfig{
			GuaranteedColors: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraColors:        2,
				GuaranteeReduction: 1,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game mode.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blast", "blast_endless":
		return defaultBlastYAML
	default:
		return nil
	}
}
