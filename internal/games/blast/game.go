// Package blast provides the tile-collapse puzzle game for the platform.
// The pure simulation lives in the core subpackage; this package maps
// input to moves, drives the pipeline from animation ticks and renders
// the board.
package blast

import (
	"github.com/vovakirdan/tui-blast/internal/config"
	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeClassic GameMode = iota // Fixed number of moves, score as high as possible
	ModeEndless                 // Play forever, palette grows with score
)

// classicMoves is the move budget in classic mode.
const classicMoves = 25

// Animation durations in ticks (at 60 ticks per second).
const (
	blastDuration    = 18
	fallTicksPerRow  = 3
	fallMinDuration  = 12
	fallMaxDuration  = 48
	shuffleDuration  = 30
	shuffleNoticeTTL = 120 // How long the "no moves" banner stays up
)

// animPhase tracks which visual effect is currently playing.
type animPhase int

const (
	animNone animPhase = iota
	animBlast
	animFall
	animShuffle
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = ""
	}
}

func init() {
	registry.Register("blast", func() registry.Game {
		return New()
	})
	registry.Register("blast_endless", func() registry.Game {
		return NewEndless()
	})
}

// Game implements the blast puzzle on top of the simulation core.
type Game struct {
	mode GameMode

	pipeline *core.Pipeline
	tick     uint64

	// Cursor position in board coordinates (y = 0 is the bottom row)
	cursorX int
	cursorY int

	// Current animation effect
	anim         animPhase
	animTicks    int
	animDuration int
	fell         []core.Move
	spawned      []core.Move
	shuffleMoves []core.Move
	noticeTicks  int // Remaining ticks for the shuffle banner

	// Scoring and session stats
	score        int
	blasts       int
	largestGroup int
	movesLeft    int // Classic mode only

	// Configuration
	runtime    platformcore.RuntimeConfig
	cfg        config.BlastConfig
	difficulty *config.DifficultyManager

	// Endless mode palette growth
	paletteColors int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic mode blast game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewEndless creates an endless mode blast game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "blast_endless"
	}
	return "blast"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Blast (Endless)"
	}
	return "Blast"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBlast(configPath)
	if err != nil {
		cfg = config.DefaultBlastConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlastPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.score = 0
	g.blasts = 0
	g.largestGroup = 0
	g.movesLeft = classicMoves
	g.gameOver = false
	g.paused = false
	g.anim = animNone
	g.animTicks = 0
	g.fell = nil
	g.spawned = nil
	g.shuffleMoves = nil
	g.noticeTicks = 0
	g.paletteColors = cfg.Palette.Colors

	g.pipeline = core.NewPipeline(core.Config{
		Columns:          cfg.Board.Columns,
		Rows:             cfg.Board.Rows,
		Palette:          g.buildPalette(cfg.Palette.Colors),
		GuaranteedColors: cfg.Shuffle.GuaranteedColors,
		Seed:             runtime.Seed,
	})
	g.pipeline.Subscribe(g.onEvent)
	g.pipeline.Start()

	g.cursorX = cfg.Board.Columns / 2
	g.cursorY = cfg.Board.Rows / 2

	g.checkScreenSize()
}

// buildPalette constructs the simulation palette from the config,
// clamped to the colors the renderer can show.
func (g *Game) buildPalette(colors int) core.Palette {
	if colors < 1 {
		colors = 1
	}
	if colors > int(core.ColorCount) {
		colors = int(core.ColorCount)
	}
	pal := core.Palette{
		Colors:         core.AllColors()[:colors],
		MinGroupSize:   g.cfg.Palette.MinGroupSize,
		TierThresholds: g.cfg.Palette.TierThresholds,
	}
	if pal.MinGroupSize < 2 {
		pal.MinGroupSize = 2
	}
	return pal
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW := g.cfg.Board.Columns*cellWidth + 4
	minH := g.cfg.Board.Rows + hudHeight + 4
	g.tooSmall = g.runtime.ScreenW < minW || g.runtime.ScreenH < minH
}

// onEvent reacts to pipeline events by starting the matching visual
// effect and accumulating score. Events arrive synchronously from
// pipeline calls made in Step.
func (g *Game) onEvent(e core.Event) {
	switch ev := e.(type) {
	case core.BlastStartedEvent:
		g.anim = animBlast
		g.animTicks = 0
		g.animDuration = blastDuration
	case core.BlastCompleteEvent:
		g.score += ev.Score
		g.blasts++
		if ev.Cleared > g.largestGroup {
			g.largestGroup = ev.Cleared
		}
	case core.GravityCompleteEvent:
		g.anim = animFall
		g.animTicks = 0
		g.animDuration = fallDuration(ev.Fell, ev.Spawned)
		g.fell = ev.Fell
		g.spawned = ev.Spawned
	case core.ShuffleCompleteEvent:
		g.anim = animShuffle
		g.animTicks = 0
		g.animDuration = shuffleDuration
		g.shuffleMoves = ev.Result.Moves
		g.noticeTicks = shuffleNoticeTTL
	case core.PipelineIdleEvent:
		g.anim = animNone
		g.fell = nil
		g.spawned = nil
		g.shuffleMoves = nil
	}
}

// fallDuration scales the falling effect with the longest drop.
func fallDuration(fell, spawned []core.Move) int {
	maxDist := 0
	for _, m := range fell {
		if d := m.From.Y - m.To.Y; d > maxDist {
			maxDist = d
		}
	}
	for _, m := range spawned {
		if d := m.From.Y - m.To.Y; d > maxDist {
			maxDist = d
		}
	}
	d := maxDist * fallTicksPerRow
	if d < fallMinDuration {
		d = fallMinDuration
	}
	if d > fallMaxDuration {
		d = fallMaxDuration
	}
	return d
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	if g.noticeTicks > 0 {
		g.noticeTicks--
	}

	// Advance the running effect; completion hands control back to the
	// pipeline, whose events may immediately start the next effect.
	if g.anim != animNone {
		g.animTicks++
		if g.animTicks >= g.animDuration {
			g.finishAnimation()
		}
		return platformcore.StepResult{State: g.State()}
	}

	if g.gameOver {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)

	// Classic mode ends when the move budget is spent and the board
	// has settled.
	if g.mode == ModeClassic && g.movesLeft <= 0 && g.pipeline.Phase() == core.PhaseIdle && g.anim == animNone {
		g.gameOver = true
	}

	return platformcore.StepResult{State: g.State()}
}

// finishAnimation settles the board and signals phase completion.
func (g *Game) finishAnimation() {
	finished := g.anim
	g.anim = animNone
	g.animTicks = 0

	switch finished {
	case animBlast:
		g.pipeline.CompleteBlast()
	case animFall:
		g.fell = nil
		g.spawned = nil
		g.pipeline.CompleteGravity()
	case animShuffle:
		g.shuffleMoves = nil
		g.pipeline.CompleteShuffle()
	}

	// Endless mode hardens the board as the score grows.
	if g.mode == ModeEndless && g.pipeline.Phase() == core.PhaseIdle {
		g.applyDifficulty()
	}
}

// applyDifficulty grows the palette and weakens shuffle guarantees in
// endless mode.
func (g *Game) applyDifficulty() {
	colors := g.difficulty.Colors(g.cfg.Palette.Colors, int(core.ColorCount), g.score, int(g.tick))
	if colors != g.paletteColors {
		g.paletteColors = colors
		g.pipeline.SetPalette(g.buildPalette(colors))
	}
	g.pipeline.SetGuaranteedColors(g.difficulty.GuaranteedColors(g.cfg.Shuffle.GuaranteedColors, g.score, int(g.tick)))
}

// handleInput moves the cursor and requests blasts.
func (g *Game) handleInput(in platformcore.InputFrame) {
	cols := g.pipeline.Board().W
	rows := g.pipeline.Board().H

	// Board y grows upward, so the Up action raises y.
	switch {
	case in.Has(platformcore.ActionUp):
		g.cursorY = platformcore.Clamp(g.cursorY+1, 0, rows-1)
	case in.Has(platformcore.ActionDown):
		g.cursorY = platformcore.Clamp(g.cursorY-1, 0, rows-1)
	case in.Has(platformcore.ActionLeft):
		g.cursorX = platformcore.Clamp(g.cursorX-1, 0, cols-1)
	case in.Has(platformcore.ActionRight):
		g.cursorX = platformcore.Clamp(g.cursorX+1, 0, cols-1)
	}

	if in.Has(platformcore.ActionBlast) || in.Has(platformcore.ActionConfirm) {
		g.tryBlast()
	}
}

// tryBlast requests a blast for the group under the cursor.
func (g *Game) tryBlast() {
	group := g.pipeline.EvaluateMove(g.cursorX, g.cursorY)
	if group == nil {
		return
	}
	ok, err := g.pipeline.RequestBlast(group)
	if err != nil || !ok {
		return
	}
	if g.mode == ModeClassic {
		g.movesLeft--
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Stats returns session statistics for persistence.
func (g *Game) Stats() platformcore.SessionStats {
	return platformcore.SessionStats{
		Mode:         g.ID(),
		Score:        g.score,
		Blasts:       g.blasts,
		LargestGroup: g.largestGroup,
		Shuffles:     g.pipeline.Shuffles(),
		Ticks:        g.tick,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrow keys/WASD: Move cursor | Space: Blast | P: Pause | R: Restart | Q: Quit"
}
