package core

// Deadlocked reports whether no legal group exists anywhere on the
// board. It scans in row-major order and short-circuits on the first
// cell whose flood fill reaches the minimum group size, so the common
// (playable) case answers quickly; a genuinely dead board costs one
// bounded flood fill per cell. The check only runs once per pipeline
// cycle, never per frame.
func Deadlocked(b *Board, minSize int) bool {
	return deadlocked(b, minSize, true)
}

func deadlocked(b *Board, minSize int, checkState bool) bool {
	dead := true
	b.ForEach(func(x, y int, t *Tile) {
		if !dead || t == nil || (checkState && !t.CanBeGrouped()) {
			return
		}
		if flood(b, x, y, minSize, checkState) != nil {
			dead = false
		}
	})
	return dead
}
