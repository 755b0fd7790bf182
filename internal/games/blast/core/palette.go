package core

// Palette describes the set of colors in play and the rules derived
// from group size: the minimum size a group must reach to be blastable
// and the thresholds that map a group's size to a cosmetic icon tier.
type Palette struct {
	Colors         []Color
	MinGroupSize   int
	TierThresholds []int // Ascending sizes; a group at or above threshold i has tier i+1
}

// DefaultPalette returns a palette with the given number of colors,
// a minimum group size of 2 and the standard icon tiers.
func DefaultPalette(colorCount int) Palette {
	if colorCount < 1 {
		colorCount = 1
	}
	if colorCount > int(ColorCount) {
		colorCount = int(ColorCount)
	}
	return Palette{
		Colors:         AllColors()[:colorCount],
		MinGroupSize:   2,
		TierThresholds: []int{5, 8, 12},
	}
}

// IconTier maps a group size to its icon tier. Tier 0 is the plain
// icon; each threshold met bumps the tier by one. Pure function of size.
func (p Palette) IconTier(size int) int {
	tier := 0
	for _, threshold := range p.TierThresholds {
		if size >= threshold {
			tier++
		}
	}
	return tier
}

// Contains reports whether the color is part of this palette.
func (p Palette) Contains(c Color) bool {
	for _, pc := range p.Colors {
		if pc == c {
			return true
		}
	}
	return false
}
