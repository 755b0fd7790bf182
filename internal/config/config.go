// Package config provides YAML-based game configuration loading and
// difficulty management for the blast platform.
package config

// BlastConfig contains all configuration for the blast puzzle.
type BlastConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Palette    PaletteConfig    `yaml:"palette"`
	Shuffle    ShuffleConfig    `yaml:"shuffle"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// PaletteConfig defines tile colors and group classification.
type PaletteConfig struct {
	Colors         int   `yaml:"colors"`          // Number of distinct tile colors in play
	MinGroupSize   int   `yaml:"min_group_size"`  // Smallest blastable group
	TierThresholds []int `yaml:"tier_thresholds"` // Group sizes at which the tile icon upgrades
}

// ShuffleConfig defines deadlock-resolution parameters.
type ShuffleConfig struct {
	GuaranteedColors int `yaml:"guaranteed_colors"` // Colors given a guaranteed group per shuffle
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraColors        int `yaml:"extra_colors"`        // Colors added to the palette at max difficulty
	GuaranteeReduction int `yaml:"guarantee_reduction"` // Guaranteed colors removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
