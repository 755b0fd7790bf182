package core

import (
	"math/rand"
	"testing"
)

func TestFindGroupConnectedComponent(t *testing.T) {
	// Bottom-to-top: R,R,B / R,B,B / B,B,R. The three reds in the
	// bottom-left corner form an L; the red at (2,2) is alone.
	b := boardFromRows(t,
		"RRB",
		"RBB",
		"BBR",
	)

	group := FindGroup(b, 0, 0, 2)
	if len(group) != 3 {
		t.Fatalf("FindGroup(0,0) size = %d, want 3", len(group))
	}
	want := map[[2]int]bool{{0, 0}: true, {1, 0}: true, {0, 1}: true}
	for _, tile := range group {
		if !want[[2]int{tile.X, tile.Y}] {
			t.Errorf("unexpected member (%d,%d)", tile.X, tile.Y)
		}
		if tile.Color != ColorRed {
			t.Errorf("member (%d,%d) color = %v, want red", tile.X, tile.Y, tile.Color)
		}
	}

	// The lone red has no red neighbor: no group.
	if g := FindGroup(b, 2, 2, 2); g != nil {
		t.Errorf("FindGroup(2,2) = %d tiles, want none", len(g))
	}

	// The blues are one 5-cell component.
	if g := FindGroup(b, 2, 0, 2); len(g) != 5 {
		t.Errorf("FindGroup(2,0) size = %d, want 5", len(g))
	}
}

func TestFindGroupEmptyAndOutOfBounds(t *testing.T) {
	b := boardFromRows(t,
		"R.",
		"..",
	)
	if g := FindGroup(b, 1, 0, 2); g != nil {
		t.Error("FindGroup on empty slot returned a group")
	}
	if g := FindGroup(b, -1, 5, 2); g != nil {
		t.Error("FindGroup out of bounds returned a group")
	}
}

func TestFindGroupSkipsNonGroupableTiles(t *testing.T) {
	b := boardFromRows(t,
		"RRR",
	)
	b.Get(1, 0).State = TileFalling

	// The falling tile splits the run; neither end reaches size 2.
	if g := FindGroup(b, 0, 0, 2); g != nil {
		t.Errorf("FindGroup crossed a non-idle tile, got %d members", len(g))
	}
	if g := FindGroup(b, 1, 0, 2); g != nil {
		t.Error("FindGroup seeded on a non-idle tile returned a group")
	}
}

// TestFindGroupMaximality verifies the flood-fill contract on random
// boards: every returned group is color-homogeneous, 4-connected and
// maximal (no excluded neighbor shares the seed color).
func TestFindGroupMaximality(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	pal := DefaultPalette(3)

	for trial := 0; trial < 50; trial++ {
		b := NewBoard(5, 5)
		b.Fill(rng, pal)
		for _, tile := range b.Tiles() {
			tile.State = TileIdle
		}

		b.ForEach(func(x, y int, seed *Tile) {
			group := FindGroup(b, x, y, 2)
			if group == nil {
				return
			}
			members := make(map[[2]int]bool, len(group))
			for _, m := range group {
				if m.Color != seed.Color {
					t.Fatalf("trial %d: group at (%d,%d) not homogeneous", trial, x, y)
				}
				members[[2]int{m.X, m.Y}] = true
			}
			for _, m := range group {
				for _, d := range neighborOffsets {
					nx, ny := m.X+d[0], m.Y+d[1]
					n := b.Get(nx, ny)
					if n != nil && n.Color == seed.Color && !members[[2]int{nx, ny}] {
						t.Fatalf("trial %d: group at (%d,%d) excludes same-color neighbor (%d,%d)",
							trial, x, y, nx, ny)
					}
				}
			}
		})
	}
}

func TestRefreshGroupsCachesMetadata(t *testing.T) {
	pal := DefaultPalette(3) // min 2, tiers at 5, 8, 12
	b := boardFromRows(t,
		"RRRGB",
		"RRGGB",
		"GGGGB",
	)

	RefreshGroups(b, pal)

	// The five reds share one group of size 5, icon tier 1.
	red := b.Get(0, 0)
	if red.GroupSize != 5 || red.IconTier != 1 {
		t.Errorf("red metadata = (size %d, tier %d), want (5, 1)", red.GroupSize, red.IconTier)
	}

	// The greens form a 7-cell region: tier 1.
	green := b.Get(0, 2)
	if green.GroupSize != 7 || green.IconTier != 1 {
		t.Errorf("green metadata = (size %d, tier %d), want (7, 1)", green.GroupSize, green.IconTier)
	}

	// The blue column of 3: plain tier.
	blue := b.Get(4, 0)
	if blue.GroupSize != 3 || blue.IconTier != 0 {
		t.Errorf("blue metadata = (size %d, tier %d), want (3, 0)", blue.GroupSize, blue.IconTier)
	}
}

func TestRefreshGroupsSingletons(t *testing.T) {
	pal := DefaultPalette(3)
	b := boardFromRows(t,
		"RGR",
	)

	RefreshGroups(b, pal)

	for _, tile := range b.Tiles() {
		if tile.GroupSize != 1 || tile.IconTier != 0 {
			t.Errorf("singleton at (%d,%d) metadata = (size %d, tier %d), want (1, 0)",
				tile.X, tile.Y, tile.GroupSize, tile.IconTier)
		}
	}
}
