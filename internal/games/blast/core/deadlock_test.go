package core

import (
	"math/rand"
	"testing"
)

func TestDeadlockedSingleColorBoard(t *testing.T) {
	b := boardFromRows(t,
		"RRRR",
		"RRRR",
		"RRRR",
		"RRRR",
	)
	if Deadlocked(b, 2) {
		t.Error("single-color board reported deadlocked")
	}
}

func TestDeadlockedCheckerboard(t *testing.T) {
	b := boardFromRows(t,
		"RGRG",
		"GRGR",
		"RGRG",
		"GRGR",
	)
	if !Deadlocked(b, 2) {
		t.Error("checkerboard with no adjacent pair reported playable")
	}
}

func TestDeadlockedEmptyBoard(t *testing.T) {
	if !Deadlocked(NewBoard(4, 4), 2) {
		t.Error("empty board reported playable")
	}
}

// TestDeadlockedBruteForce cross-checks the short-circuiting scan
// against an exhaustive per-cell check on small random boards.
func TestDeadlockedBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(4242))
	pal := DefaultPalette(3)

	for trial := 0; trial < 200; trial++ {
		b := NewBoard(4, 4)
		b.Fill(rng, pal)
		for _, tile := range b.Tiles() {
			tile.State = TileIdle
		}
		// Knock out a few random tiles so gaps are covered too.
		for i := 0; i < rng.Intn(5); i++ {
			b.Clear(rng.Intn(4), rng.Intn(4))
		}

		anyGroup := false
		b.ForEach(func(x, y int, tile *Tile) {
			if FindGroup(b, x, y, pal.MinGroupSize) != nil {
				anyGroup = true
			}
		})

		if got := Deadlocked(b, pal.MinGroupSize); got == anyGroup {
			t.Fatalf("trial %d: Deadlocked() = %v but anyGroup = %v", trial, got, anyGroup)
		}
	}
}
