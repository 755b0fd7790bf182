package core

import "math/rand"

// Slot is a board coordinate.
type Slot struct {
	X, Y int
}

// Move records a tile that changed position during gravity or shuffle.
type Move struct {
	Tile *Tile
	From Slot
	To   Slot
}

// GravityResolver compacts columns after a blast and refills the
// vacated top slots with new tiles.
type GravityResolver struct {
	rng *rand.Rand
	pal Palette
}

// NewGravityResolver creates a gravity resolver drawing refill colors
// from the given palette.
func NewGravityResolver(rng *rand.Rand, pal Palette) *GravityResolver {
	return &GravityResolver{rng: rng, pal: pal}
}

// Apply compacts every column downward and refills the gaps at the top.
//
// Compaction is a stable partition, not a sort: a write cursor walks
// each column from the bottom, skipping slots that are already in
// place, and each occupied slot above a gap moves down to the cursor.
// Tiles only ever move strictly down and two tiles in the same column
// never swap relative order. After compaction, rows−cursor slots at the
// top of the column are empty and each is filled with a new Spawning
// tile of uniform-random palette color.
//
// Moved tiles transition to Falling; the caller's animation layer
// settles them back to Idle.
func (g *GravityResolver) Apply(b *Board) (fell, spawned []Move) {
	for x := 0; x < b.W; x++ {
		write := 0
		for y := 0; y < b.H; y++ {
			t := b.Get(x, y)
			if t == nil {
				continue
			}
			if y != write {
				b.Clear(x, y)
				b.Set(x, write, t)
				b.Transition(t, TileFalling)
				fell = append(fell, Move{
					Tile: t,
					From: Slot{X: x, Y: y},
					To:   Slot{X: x, Y: write},
				})
			}
			write++
		}

		for y := write; y < b.H; y++ {
			t := &Tile{
				X:     x,
				Y:     y,
				Color: g.pal.Colors[g.rng.Intn(len(g.pal.Colors))],
				State: TileSpawning,
			}
			b.Set(x, y, t)
			spawned = append(spawned, Move{
				Tile: t,
				// New tiles drop in from above the top row.
				From: Slot{X: x, Y: b.H + (y - write)},
				To:   Slot{X: x, Y: y},
			})
		}
	}
	return fell, spawned
}
