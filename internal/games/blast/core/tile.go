package core

// TileState is the lifecycle state of a tile.
//
// Tiles are created Spawning, settle to Idle, and leave Idle only while
// an effect is in flight: Blasting tiles are destroyed when the blast
// finishes, Falling and Shuffling tiles return to Idle once their
// movement completes. Only Idle tiles take part in group detection or
// player interaction.
type TileState int

const (
	TileSpawning TileState = iota
	TileIdle
	TileBlasting
	TileFalling
	TileShuffling
)

// String returns a human-readable name for the state.
func (s TileState) String() string {
	switch s {
	case TileSpawning:
		return "spawning"
	case TileIdle:
		return "idle"
	case TileBlasting:
		return "blasting"
	case TileFalling:
		return "falling"
	case TileShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

// Tile is a single colored cell entity. The board owns every tile it
// contains; adjacency is always computed from coordinates, tiles never
// reference each other.
type Tile struct {
	X, Y  int
	Color Color
	State TileState

	// Cached group metadata, recomputed after every board mutation.
	GroupSize int
	IconTier  int
}

// CanBeGrouped reports whether the tile may join a group.
func (t *Tile) CanBeGrouped() bool {
	return t.State == TileIdle
}

// CanInteract reports whether the player may select this tile.
func (t *Tile) CanInteract() bool {
	return t.State == TileIdle
}
