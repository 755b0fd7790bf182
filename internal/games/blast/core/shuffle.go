package core

import "math/rand"

// ShuffleResult describes the outcome of a guaranteed-match shuffle.
// PlacedGuarantees can fall short of RequestedGuarantees when not
// enough colors have a legal count or when cluster reservation runs out
// of attempts; the shuffle still succeeds with fewer guarantees.
type ShuffleResult struct {
	Moves []Move

	RequestedGuarantees int
	PlacedGuarantees    int
	GuaranteedColors    []Color

	// EmergencyFixes counts tiles recolored by the post-shuffle
	// fallback. Zero in the normal case; when non-zero the board's
	// color multiset differs from the pre-shuffle one by exactly
	// that many tiles.
	EmergencyFixes int
}

// ShuffleResolver recolors and repositions every tile on a deadlocked
// board so that at least N colors have an immediately playable group.
type ShuffleResolver struct {
	rng *rand.Rand
	pal Palette

	// maxAttempts bounds the randomized BFS restarts per guaranteed
	// color before that color's guarantee is abandoned.
	maxAttempts int

	// maxClusterSize caps the size of a reserved cluster.
	maxClusterSize int
}

// NewShuffleResolver creates a shuffle resolver with the standard
// attempt budget (20) and cluster cap (5).
func NewShuffleResolver(rng *rand.Rand, pal Palette) *ShuffleResolver {
	return &ShuffleResolver{
		rng:            rng,
		pal:            pal,
		maxAttempts:    20,
		maxClusterSize: 5,
	}
}

// Shuffle rearranges all tiles on the board and commits the result.
//
// Up to guaranteed distinct colors with a legal tile count are chosen
// uniformly at random; for each, a cluster of mutually adjacent
// positions is reserved via randomized BFS and filled with tiles of
// that color. Every remaining tile is assigned to a remaining position
// after a Fisher-Yates shuffle of the position list, so the board's
// color multiset is preserved (a permutation, not a regeneration).
//
// Moved tiles transition to Shuffling; the animation layer settles
// them back to Idle. After the commit the deadlock check reruns and, if
// the random placement still produced no playable group, an emergency
// fix forces one horizontal run of minimum group size to a single
// color. The caller refreshes group metadata once the tiles settle.
func (s *ShuffleResolver) Shuffle(b *Board, guaranteed int) ShuffleResult {
	if guaranteed < 0 {
		guaranteed = 0
	}
	result := ShuffleResult{RequestedGuarantees: guaranteed}

	tiles := b.Tiles()
	if len(tiles) == 0 {
		return result
	}

	byColor := make(map[Color][]*Tile)
	for _, t := range tiles {
		byColor[t.Color] = append(byColor[t.Color], t)
	}

	// Colors that can actually form a minimum-size group.
	eligible := make([]Color, 0, len(byColor))
	for _, c := range s.pal.Colors {
		if len(byColor[c]) >= s.pal.MinGroupSize {
			eligible = append(eligible, c)
		}
	}
	s.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if guaranteed > len(eligible) {
		guaranteed = len(eligible)
	}

	// Every occupied slot is a candidate position.
	positions := make([]Slot, 0, len(tiles))
	for _, t := range tiles {
		positions = append(positions, Slot{X: t.X, Y: t.Y})
	}

	reserved := make(map[int]bool, len(positions))
	assigned := make(map[*Tile]Slot, len(tiles))

	for _, c := range eligible[:guaranteed] {
		// The cluster cap is a soft preference; it never undercuts
		// the legal minimum, which eligibility already bounds by the
		// color's tile count.
		maxSize := min(len(byColor[c]), s.maxClusterSize)
		if maxSize < s.pal.MinGroupSize {
			maxSize = s.pal.MinGroupSize
		}
		target := s.pal.MinGroupSize + s.rng.Intn(maxSize-s.pal.MinGroupSize+1)

		cluster := s.reserveCluster(b, positions, reserved, target)
		if cluster == nil {
			// Attempt budget exhausted; guarantee fewer colors
			// rather than failing the whole shuffle.
			continue
		}

		for i, slot := range cluster {
			reserved[b.index(slot.X, slot.Y)] = true
			assigned[byColor[c][i]] = slot
		}
		result.PlacedGuarantees++
		result.GuaranteedColors = append(result.GuaranteedColors, c)
	}

	// Everything not reserved or assigned is shuffled uniformly.
	rest := make([]Slot, 0, len(positions))
	for _, slot := range positions {
		if !reserved[b.index(slot.X, slot.Y)] {
			rest = append(rest, slot)
		}
	}
	fisherYates(s.rng, rest)

	i := 0
	for _, t := range tiles {
		if _, ok := assigned[t]; ok {
			continue
		}
		assigned[t] = rest[i]
		i++
	}

	// Commit: rebuild the slot array from the new mapping.
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			b.Clear(x, y)
		}
	}
	for _, t := range tiles {
		slot := assigned[t]
		from := Slot{X: t.X, Y: t.Y}
		b.Set(slot.X, slot.Y, t)
		if from != slot {
			b.Transition(t, TileShuffling)
			result.Moves = append(result.Moves, Move{Tile: t, From: from, To: slot})
		}
	}

	// Random placement can, rarely, still leave the board dead. The
	// check ignores lifecycle states: committed tiles are still
	// Shuffling while their movement animates.
	if deadlocked(b, s.pal.MinGroupSize, false) {
		result.EmergencyFixes = s.emergencyFix(b)
	}
	return result
}

// reserveCluster locates target mutually adjacent, unreserved board
// positions: pick a random unreserved occupied start, flood outward
// over unreserved occupied cells visiting neighbors in random order,
// and accept once the cluster reaches the target size. Returns nil if
// no suitable cluster is found within the attempt budget.
func (s *ShuffleResolver) reserveCluster(b *Board, positions []Slot, reserved map[int]bool, target int) []Slot {
	free := make([]Slot, 0, len(positions))
	for _, slot := range positions {
		if !reserved[b.index(slot.X, slot.Y)] {
			free = append(free, slot)
		}
	}
	if len(free) < target {
		return nil
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		start := free[s.rng.Intn(len(free))]

		visited := map[int]bool{b.index(start.X, start.Y): true}
		cluster := []Slot{start}

		for head := 0; head < len(cluster) && len(cluster) < target; head++ {
			slot := cluster[head]
			order := s.rng.Perm(len(neighborOffsets))
			for _, oi := range order {
				if len(cluster) >= target {
					break
				}
				d := neighborOffsets[oi]
				nx, ny := slot.X+d[0], slot.Y+d[1]
				if !b.InBounds(nx, ny) {
					continue
				}
				idx := b.index(nx, ny)
				if visited[idx] || reserved[idx] || b.Get(nx, ny) == nil {
					continue
				}
				visited[idx] = true
				cluster = append(cluster, Slot{X: nx, Y: ny})
			}
		}

		if len(cluster) == target {
			return cluster
		}
	}
	return nil
}

// emergencyFix forces horizontal runs of minimum group size to a single
// color until the board is playable again, scanning row-major and
// recoloring as few tiles as possible. With the usual minimum of 2 this
// changes exactly one tile. Returns the number of recolored tiles.
func (s *ShuffleResolver) emergencyFix(b *Board) int {
	minSize := s.pal.MinGroupSize
	fixes := 0

	for y := 0; y < b.H; y++ {
		for x := 0; x+minSize <= b.W; x += minSize {
			lead := b.Get(x, y)
			if lead == nil {
				continue
			}
			run := true
			for i := 1; i < minSize; i++ {
				if b.Get(x+i, y) == nil {
					run = false
					break
				}
			}
			if !run {
				continue
			}
			for i := 1; i < minSize; i++ {
				t := b.Get(x+i, y)
				if t.Color != lead.Color {
					t.Color = lead.Color
					fixes++
				}
			}
			if !deadlocked(b, minSize, false) {
				return fixes
			}
		}
	}
	return fixes
}

// fisherYates performs the standard in-place shuffle: for i from the
// last index down to 1, swap element i with a uniform element at
// index <= i.
func fisherYates(rng *rand.Rand, slots []Slot) {
	for i := len(slots) - 1; i >= 1; i-- {
		j := rng.Intn(i + 1)
		slots[i], slots[j] = slots[j], slots[i]
	}
}
