package core

// neighborOffsets are the 4-connected directions used for group
// detection. Diagonals never form groups.
var neighborOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// FindGroup returns the maximal 4-connected set of same-colored,
// groupable tiles containing the seed at (x, y). It returns nil if the
// seed slot is empty, the seed tile cannot be grouped, or the connected
// set is smaller than minSize.
//
// The search is an iterative breadth-first flood fill; membership of
// the returned set is deterministic for a fixed board even though
// traversal order is not part of the contract.
func FindGroup(b *Board, x, y, minSize int) []*Tile {
	return flood(b, x, y, minSize, true)
}

// flood is the shared fill. With checkState=false lifecycle states are
// ignored; the shuffle resolver uses that to verify a freshly committed
// board whose tiles are still animating.
func flood(b *Board, x, y, minSize int, checkState bool) []*Tile {
	seed := b.Get(x, y)
	if seed == nil || (checkState && !seed.CanBeGrouped()) {
		return nil
	}

	visited := make(map[int]bool, 16)
	visited[b.index(x, y)] = true
	group := []*Tile{seed}

	for head := 0; head < len(group); head++ {
		t := group[head]
		for _, d := range neighborOffsets {
			nx, ny := t.X+d[0], t.Y+d[1]
			if !b.InBounds(nx, ny) || visited[b.index(nx, ny)] {
				continue
			}
			n := b.Get(nx, ny)
			if n == nil || n.Color != seed.Color || (checkState && !n.CanBeGrouped()) {
				continue
			}
			visited[b.index(nx, ny)] = true
			group = append(group, n)
		}
	}

	if len(group) < minSize {
		return nil
	}
	return group
}

// RefreshGroups recomputes the cached group size and icon tier of every
// tile on the board in one amortized row-major pass. Cells already
// claimed by an earlier group in the scan are skipped, so each tile is
// flood-filled at most once.
//
// Tiles whose group falls below the palette minimum are singletons for
// display purposes: size 1, tier 0.
func RefreshGroups(b *Board, pal Palette) {
	seen := make(map[int]bool, b.W*b.H)

	b.ForEach(func(x, y int, t *Tile) {
		if t == nil || seen[b.index(x, y)] {
			return
		}

		group := FindGroup(b, x, y, pal.MinGroupSize)
		if group == nil {
			// Not a legal group; only the seed is settled.
			seen[b.index(x, y)] = true
			t.GroupSize = 1
			t.IconTier = 0
			return
		}

		tier := pal.IconTier(len(group))
		for _, member := range group {
			seen[b.index(member.X, member.Y)] = true
			member.GroupSize = len(group)
			member.IconTier = tier
		}
	})
}
