package core

import "math/rand"

// StateObserver receives every tile lifecycle transition on a board.
// The animation layer uses it to pick which effect to play; for Falling
// and Shuffling tiles it is expected to transition the tile back to
// Idle itself once the effect finishes.
type StateObserver func(t *Tile, from, to TileState)

// Board is the grid store: a dense columns×rows slot array where each
// slot holds at most one tile. Slots are stored in row-major order:
// index = y*W + x, with y=0 the bottom row.
//
// Invariant: every occupied slot's tile carries the slot's own
// coordinates. The invariant may be violated transiently inside a
// pipeline phase but holds at every phase boundary.
type Board struct {
	W, H  int
	slots []*Tile

	observer StateObserver
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(columns, rows int) *Board {
	return &Board{
		W:     columns,
		H:     rows,
		slots: make([]*Tile, columns*rows),
	}
}

func (b *Board) index(x, y int) int {
	return y*b.W + x
}

// InBounds reports whether (x, y) is a valid slot coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Get returns the tile at (x, y), or nil if the slot is empty.
// Out-of-bounds coordinates return nil; neighbor probing at the border
// is an expected query, not an error.
func (b *Board) Get(x, y int) *Tile {
	if !b.InBounds(x, y) {
		return nil
	}
	return b.slots[b.index(x, y)]
}

// Set places a tile into the slot at (x, y) and stamps the tile with
// the slot's coordinates. Out-of-bounds coordinates are ignored.
func (b *Board) Set(x, y int, t *Tile) {
	if !b.InBounds(x, y) {
		return
	}
	b.slots[b.index(x, y)] = t
	if t != nil {
		t.X = x
		t.Y = y
	}
}

// Clear empties the slot at (x, y). Out-of-bounds coordinates are ignored.
func (b *Board) Clear(x, y int) {
	if !b.InBounds(x, y) {
		return
	}
	b.slots[b.index(x, y)] = nil
}

// ForEach calls fn for every slot in row-major order, bottom row first.
// Empty slots are passed as nil.
func (b *Board) ForEach(fn func(x, y int, t *Tile)) {
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			fn(x, y, b.slots[b.index(x, y)])
		}
	}
}

// Tiles returns all tiles currently on the board in row-major order.
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, len(b.slots))
	for _, t := range b.slots {
		if t != nil {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// Count returns the number of occupied slots.
func (b *Board) Count() int {
	n := 0
	for _, t := range b.slots {
		if t != nil {
			n++
		}
	}
	return n
}

// Observe registers the observer notified on every tile transition.
// At most one observer is bound; a later call replaces the earlier one.
func (b *Board) Observe(fn StateObserver) {
	b.observer = fn
}

// Transition moves a tile to a new lifecycle state and notifies the
// bound observer. A transition to the tile's current state is a no-op.
func (b *Board) Transition(t *Tile, to TileState) {
	if t == nil || t.State == to {
		return
	}
	from := t.State
	t.State = to
	if b.observer != nil {
		b.observer(t, from, to)
	}
}

// Fill populates every empty slot with a new Spawning tile whose color
// is drawn uniformly at random from the palette.
func (b *Board) Fill(rng *rand.Rand, pal Palette) []*Tile {
	spawned := make([]*Tile, 0, len(b.slots))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			if b.Get(x, y) != nil {
				continue
			}
			t := &Tile{
				X:     x,
				Y:     y,
				Color: pal.Colors[rng.Intn(len(pal.Colors))],
				State: TileSpawning,
			}
			b.Set(x, y, t)
			spawned = append(spawned, t)
		}
	}
	return spawned
}
