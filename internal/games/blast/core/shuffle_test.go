package core

import (
	"math/rand"
	"testing"
)

func colorCounts(b *Board) map[Color]int {
	counts := make(map[Color]int)
	for _, tile := range b.Tiles() {
		counts[tile.Color]++
	}
	return counts
}

func settle(b *Board) {
	for _, tile := range b.Tiles() {
		tile.State = TileIdle
	}
}

func TestShufflePreservesColorMultiset(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pal := DefaultPalette(4)

	for trial := 0; trial < 30; trial++ {
		b := NewBoard(6, 6)
		b.Fill(rng, pal)
		settle(b)
		before := colorCounts(b)
		count := b.Count()

		s := NewShuffleResolver(rng, pal)
		result := s.Shuffle(b, 2)
		settle(b)

		if result.EmergencyFixes != 0 {
			// The fallback recolors tiles; multiset equality no
			// longer applies.
			continue
		}
		if b.Count() != count {
			t.Fatalf("trial %d: tile count changed %d -> %d", trial, count, b.Count())
		}
		after := colorCounts(b)
		for c, n := range before {
			if after[c] != n {
				t.Fatalf("trial %d: color %v count %d -> %d", trial, c, n, after[c])
			}
		}
	}
}

func TestShuffleGuaranteedColorsArePlayable(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	pal := DefaultPalette(4)

	for trial := 0; trial < 30; trial++ {
		b := NewBoard(7, 7)
		b.Fill(rng, pal)
		settle(b)

		s := NewShuffleResolver(rng, pal)
		result := s.Shuffle(b, 2)
		settle(b)
		RefreshGroups(b, pal)

		for _, c := range result.GuaranteedColors {
			found := false
			b.ForEach(func(x, y int, tile *Tile) {
				if found || tile == nil || tile.Color != c {
					return
				}
				if FindGroup(b, x, y, pal.MinGroupSize) != nil {
					found = true
				}
			})
			if !found {
				t.Fatalf("trial %d: guaranteed color %v has no playable group", trial, c)
			}
		}
	}
}

func TestShuffleResolvesCheckerboardDeadlock(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	pal := DefaultPalette(2)

	b := boardFromRows(t,
		"RGRG",
		"GRGR",
		"RGRG",
		"GRGR",
	)
	if !Deadlocked(b, pal.MinGroupSize) {
		t.Fatal("checkerboard should start deadlocked")
	}

	s := NewShuffleResolver(rng, pal)
	result := s.Shuffle(b, 1)
	settle(b)

	if Deadlocked(b, pal.MinGroupSize) {
		t.Error("board still deadlocked after shuffle(1)")
	}
	if result.PlacedGuarantees == 0 && result.EmergencyFixes == 0 {
		t.Error("shuffle neither placed a guarantee nor applied the emergency fix")
	}
}

func TestShuffleMovesMatchBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	pal := DefaultPalette(3)
	b := NewBoard(5, 5)
	b.Fill(rng, pal)
	settle(b)

	s := NewShuffleResolver(rng, pal)
	result := s.Shuffle(b, 1)

	for _, m := range result.Moves {
		if b.Get(m.To.X, m.To.Y) != m.Tile {
			t.Errorf("move destination (%d,%d) does not hold the moved tile", m.To.X, m.To.Y)
		}
		if m.Tile.State != TileShuffling {
			t.Errorf("moved tile at (%d,%d) state = %v, want shuffling", m.To.X, m.To.Y, m.Tile.State)
		}
	}

	// Every slot occupied, every tile stamped with its slot.
	b.ForEach(func(x, y int, tile *Tile) {
		if tile == nil {
			t.Fatalf("slot (%d,%d) empty after shuffle", x, y)
		}
		if tile.X != x || tile.Y != y {
			t.Errorf("tile at (%d,%d) carries coords (%d,%d)", x, y, tile.X, tile.Y)
		}
	})
}

func TestShuffleShortfallWithFewEligibleColors(t *testing.T) {
	rng := rand.New(rand.NewSource(41))
	pal := DefaultPalette(3)

	// One green among reds: green can never reach the minimum size,
	// so at most two guarantees (red, and nothing else) are possible.
	b := boardFromRows(t,
		"RRRR",
		"RRGR",
		"RRRR",
	)

	s := NewShuffleResolver(rng, pal)
	result := s.Shuffle(b, 3)

	if result.PlacedGuarantees > 1 {
		t.Errorf("placed %d guarantees with only one eligible color", result.PlacedGuarantees)
	}
	if result.RequestedGuarantees != 3 {
		t.Errorf("requested = %d, want 3", result.RequestedGuarantees)
	}
}

func TestShuffleMinGroupAboveClusterCap(t *testing.T) {
	rng := rand.New(rand.NewSource(47))
	pal := Palette{
		Colors:         AllColors()[:2],
		MinGroupSize:   6, // Above the resolver's preferred cluster cap of 5
		TierThresholds: []int{5, 8, 12},
	}

	b := NewBoard(6, 6)
	b.Fill(rng, pal)
	settle(b)

	s := NewShuffleResolver(rng, pal)
	result := s.Shuffle(b, 1)
	settle(b)
	RefreshGroups(b, pal)

	for _, c := range result.GuaranteedColors {
		found := false
		b.ForEach(func(x, y int, tile *Tile) {
			if found || tile == nil || tile.Color != c {
				return
			}
			if FindGroup(b, x, y, pal.MinGroupSize) != nil {
				found = true
			}
		})
		if !found {
			t.Errorf("guaranteed color %v has no group of size %d", c, pal.MinGroupSize)
		}
	}
}

func TestShuffleNegativeGuarantees(t *testing.T) {
	rng := rand.New(rand.NewSource(59))
	pal := DefaultPalette(3)
	b := NewBoard(5, 5)
	b.Fill(rng, pal)
	settle(b)
	count := b.Count()

	s := NewShuffleResolver(rng, pal)
	result := s.Shuffle(b, -1)

	if result.RequestedGuarantees != 0 {
		t.Errorf("requested = %d, want 0 after clamping", result.RequestedGuarantees)
	}
	if result.PlacedGuarantees != 0 {
		t.Errorf("placed = %d, want 0", result.PlacedGuarantees)
	}
	if b.Count() != count {
		t.Errorf("tile count changed %d -> %d", count, b.Count())
	}
}

func TestFisherYatesIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(53))
	slots := make([]Slot, 20)
	for i := range slots {
		slots[i] = Slot{X: i, Y: i * 2}
	}
	original := make([]Slot, len(slots))
	copy(original, slots)

	fisherYates(rng, slots)

	seen := make(map[Slot]bool, len(slots))
	for _, s := range slots {
		seen[s] = true
	}
	for _, s := range original {
		if !seen[s] {
			t.Fatalf("slot %v lost by shuffle", s)
		}
	}
}
