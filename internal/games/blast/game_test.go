package blast

import (
	"os"
	"path/filepath"
	"testing"

	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

func testRuntime(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// stepIdle advances the game with no input until the pipeline returns
// to Idle and every effect has finished.
func stepIdle(t *testing.T, g *Game, maxSteps int) {
	t.Helper()
	for i := 0; i < maxSteps; i++ {
		if g.pipeline.Phase() == core.PhaseIdle && g.anim == animNone {
			return
		}
		g.Step(platformcore.NewInputFrame())
	}
	t.Fatalf("pipeline did not settle within %d steps (phase %v)", maxSteps, g.pipeline.Phase())
}

func TestDeterministicReset(t *testing.T) {
	g1 := New()
	g1.Reset(testRuntime(12345))

	g2 := New()
	g2.Reset(testRuntime(12345))

	b1 := g1.pipeline.Board()
	b2 := g2.pipeline.Board()
	if b1.W != b2.W || b1.H != b2.H {
		t.Fatalf("board dimensions differ: %dx%d vs %dx%d", b1.W, b1.H, b2.W, b2.H)
	}

	b1.ForEach(func(x, y int, tile *core.Tile) {
		other := b2.Get(x, y)
		if tile == nil || other == nil {
			t.Fatalf("missing tile at (%d, %d)", x, y)
		}
		if tile.Color != other.Color {
			t.Errorf("color mismatch at (%d, %d): %v vs %v", x, y, tile.Color, other.Color)
		}
	})
}

func TestCursorClamping(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	cols := g.pipeline.Board().W
	rows := g.pipeline.Board().H

	// Walk far past the right edge
	for i := 0; i < cols*2; i++ {
		in := platformcore.NewInputFrame()
		in.Set(platformcore.ActionRight)
		g.Step(in)
	}
	if g.cursorX != cols-1 {
		t.Errorf("cursorX = %d, expected clamp at %d", g.cursorX, cols-1)
	}

	// Walk far past the top edge (Up raises board y)
	for i := 0; i < rows*2; i++ {
		in := platformcore.NewInputFrame()
		in.Set(platformcore.ActionUp)
		g.Step(in)
	}
	if g.cursorY != rows-1 {
		t.Errorf("cursorY = %d, expected clamp at %d", g.cursorY, rows-1)
	}
}

func TestBlastCycle(t *testing.T) {
	g := New()
	g.Reset(testRuntime(99))

	// Move the cursor onto a known group
	group := core.GreedyPick(g.pipeline.Board(), g.pipeline.Palette())
	if group == nil {
		t.Fatal("freshly shuffled board must have a legal group")
	}
	g.cursorX = group[0].X
	g.cursorY = group[0].Y

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionBlast)
	g.Step(in)

	if g.pipeline.Phase() != core.PhaseBlasting {
		t.Fatalf("phase after blast input = %v, expected blasting", g.pipeline.Phase())
	}
	if g.anim != animBlast {
		t.Fatalf("anim = %v, expected blast effect", g.anim)
	}
	if g.movesLeft != classicMoves-1 {
		t.Errorf("movesLeft = %d, expected %d", g.movesLeft, classicMoves-1)
	}

	stepIdle(t, g, 300)

	wantScore := len(group) * (len(group) - 1)
	if g.score != wantScore {
		t.Errorf("score = %d, expected %d for a group of %d", g.score, wantScore, len(group))
	}
	if g.blasts != 1 {
		t.Errorf("blasts = %d, expected 1", g.blasts)
	}
	if g.largestGroup != len(group) {
		t.Errorf("largestGroup = %d, expected %d", g.largestGroup, len(group))
	}

	// Board must be full again after refill
	b := g.pipeline.Board()
	if b.Count() != b.W*b.H {
		t.Errorf("board has %d tiles after refill, expected %d", b.Count(), b.W*b.H)
	}
}

func TestInputIgnoredWhileProcessing(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))

	group := core.GreedyPick(g.pipeline.Board(), g.pipeline.Palette())
	g.cursorX = group[0].X
	g.cursorY = group[0].Y

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionBlast)
	g.Step(in)

	// A second blast press mid-effect must not spend a move
	movesBefore := g.movesLeft
	g.Step(in)
	if g.movesLeft != movesBefore {
		t.Errorf("movesLeft changed while processing: %d -> %d", movesBefore, g.movesLeft)
	}
}

func TestClassicGameOver(t *testing.T) {
	g := New()
	g.Reset(testRuntime(3))

	g.movesLeft = 0
	g.Step(platformcore.NewInputFrame())

	if !g.gameOver {
		t.Error("game should end when the move budget is spent")
	}
	if !g.State().GameOver {
		t.Error("State should report game over")
	}

	// Further blast input is ignored
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionBlast)
	g.Step(in)
	if g.pipeline.Phase() != core.PhaseIdle {
		t.Error("blast input after game over should be ignored")
	}
}

func TestEndlessNeverEnds(t *testing.T) {
	g := NewEndless()
	g.Reset(testRuntime(11))

	g.movesLeft = 0 // Irrelevant in endless mode
	g.Step(platformcore.NewInputFrame())

	if g.gameOver {
		t.Error("endless mode must not end on move count")
	}
}

func TestPauseBlocksPlay(t *testing.T) {
	g := New()
	g.Reset(testRuntime(5))

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionPause)
	g.Step(in)

	if !g.paused {
		t.Fatal("pause action should pause the game")
	}

	group := core.GreedyPick(g.pipeline.Board(), g.pipeline.Palette())
	g.cursorX = group[0].X
	g.cursorY = group[0].Y

	blast := platformcore.NewInputFrame()
	blast.Set(platformcore.ActionBlast)
	g.Step(blast)
	if g.pipeline.Phase() != core.PhaseIdle {
		t.Error("blast input while paused should be ignored")
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60, Seed: 1})

	if !g.tooSmall {
		t.Error("10x5 screen should be too small for a 10x10 board")
	}
	if !g.State().Paused {
		t.Error("too-small screen should report paused state")
	}
}

func TestStatsAfterPlay(t *testing.T) {
	g := New()
	g.Reset(testRuntime(21))

	for i := 0; i < 3; i++ {
		group := core.GreedyPick(g.pipeline.Board(), g.pipeline.Palette())
		if group == nil {
			t.Fatal("board should stay playable")
		}
		g.cursorX = group[0].X
		g.cursorY = group[0].Y

		in := platformcore.NewInputFrame()
		in.Set(platformcore.ActionBlast)
		g.Step(in)
		stepIdle(t, g, 300)
	}

	stats := g.Stats()
	if stats.Mode != "blast" {
		t.Errorf("stats mode = %q, expected blast", stats.Mode)
	}
	if stats.Blasts != 3 {
		t.Errorf("stats blasts = %d, expected 3", stats.Blasts)
	}
	if stats.Score != g.score {
		t.Errorf("stats score = %d, expected %d", stats.Score, g.score)
	}
	if stats.LargestGroup < g.pipeline.Palette().MinGroupSize {
		t.Errorf("largest group = %d, below minimum group size", stats.LargestGroup)
	}
}

func TestEndlessDifficultyGrowsPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blast.yaml")
	yaml := `
board:
  columns: 8
  rows: 8
palette:
  colors: 4
  min_group_size: 2
  tier_thresholds: [5, 8, 12]
shuffle:
  guaranteed_colors: 2
difficulty:
  enabled: true
  initial_level: 0.0
  progression:
    type: score
    max_at: 100
  scaling:
    extra_colors: 2
    guarantee_reduction: 1
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
	defer SetConfigPath("")

	g := NewEndless()
	g.Reset(testRuntime(13))

	if g.paletteColors != 4 {
		t.Fatalf("starting colors = %d, expected 4", g.paletteColors)
	}

	g.score = 1000 // Past max_at
	g.applyDifficulty()

	if g.paletteColors != 6 {
		t.Errorf("colors at max difficulty = %d, expected 6", g.paletteColors)
	}
	if len(g.pipeline.Palette().Colors) != 6 {
		t.Errorf("pipeline palette has %d colors, expected 6", len(g.pipeline.Palette().Colors))
	}
}

func TestRenderRoundTrip(t *testing.T) {
	g := New()
	g.Reset(testRuntime(17))

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	// Cursor brackets must be on screen
	foundBracket := false
	for y := 0; y < screen.Height() && !foundBracket; y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) == '[' {
				foundBracket = true
				break
			}
		}
	}
	if !foundBracket {
		t.Error("rendered screen should show the cursor")
	}

	// Rendering mid-effect must not panic
	group := core.GreedyPick(g.pipeline.Board(), g.pipeline.Palette())
	g.cursorX = group[0].X
	g.cursorY = group[0].Y
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionBlast)
	g.Step(in)
	for i := 0; i < 100; i++ {
		g.Step(platformcore.NewInputFrame())
		g.Render(screen)
	}
}

func TestRegistryRegistration(t *testing.T) {
	for _, mode := range []string{"blast", "blast_endless"} {
		g := New()
		if mode == "blast_endless" {
			g = NewEndless()
		}
		if g.ID() != mode {
			t.Errorf("ID() = %q, expected %q", g.ID(), mode)
		}
		if g.Title() == "" {
			t.Errorf("%s has empty title", mode)
		}
	}
}
