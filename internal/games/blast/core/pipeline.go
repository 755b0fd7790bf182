// Package core implements the grid simulation engine of the blast
// puzzle: board state, connected-group detection, deadlock detection,
// the blast→gravity→refill→shuffle pipeline and the guaranteed-match
// shuffle. It is pure logic with no platform dependencies; rendering,
// animation timing and input mapping live in the layers above.
package core

import (
	"errors"
	"math/rand"
)

// ErrInvalidGroup is returned when a blast is requested for a group
// that is empty, below the minimum size, or contains tiles that cannot
// currently be grouped.
var ErrInvalidGroup = errors.New("core: invalid group")

// Phase is the pipeline orchestrator's position in the blast cycle.
type Phase int

const (
	// PhaseIdle accepts player moves.
	PhaseIdle Phase = iota
	// PhaseBlasting waits for the blast effect to finish.
	PhaseBlasting
	// PhaseGravity waits for falling and spawned tiles to settle.
	PhaseGravity
	// PhaseShuffling waits for the shuffle movement to finish.
	PhaseShuffling
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBlasting:
		return "blasting"
	case PhaseGravity:
		return "gravity"
	case PhaseShuffling:
		return "shuffling"
	default:
		return "unknown"
	}
}

// Config holds the externally supplied parameters of a pipeline.
type Config struct {
	Columns, Rows int
	Palette       Palette

	// GuaranteedColors is how many colors a deadlock-resolving
	// shuffle must try to give an immediately playable group.
	GuaranteedColors int

	Seed int64
}

// Pipeline owns the board and sequences the blast cycle:
//
//	Idle → Blasting → Gravity → (Shuffling) → Idle
//
// Each phase mutates the board, emits a completion event and then waits
// for an external completion call before the next phase starts; the
// animation layer supplies those calls once its effects finish. While
// any phase other than Idle is active, move requests are rejected, not
// queued — the processing lock is what keeps a second move from
// flood-filling a board that is mid-mutation.
//
// The pipeline is single-threaded by construction: it never runs two
// phases concurrently and expects all calls from one goroutine.
type Pipeline struct {
	board *Board
	pal   Palette
	rng   *rand.Rand

	gravity *GravityResolver
	shuffle *ShuffleResolver

	guaranteedColors int

	phase     Phase
	blasting  []*Tile
	listeners []Listener

	// shuffles counts deadlock-resolving shuffles this game.
	shuffles int
}

// NewPipeline creates a pipeline with an empty board. Call Start to
// populate it.
func NewPipeline(cfg Config) *Pipeline {
	rng := rand.New(rand.NewSource(cfg.Seed))
	p := &Pipeline{
		board:            NewBoard(cfg.Columns, cfg.Rows),
		pal:              cfg.Palette,
		rng:              rng,
		gravity:          NewGravityResolver(rng, cfg.Palette),
		shuffle:          NewShuffleResolver(rng, cfg.Palette),
		guaranteedColors: cfg.GuaranteedColors,
		phase:            PhaseIdle,
	}
	p.board.Observe(func(t *Tile, from, to TileState) {
		p.emit(TileStateChangedEvent{Tile: t, From: from, To: to})
	})
	return p
}

// Board returns the pipeline's board. Callers outside the core read it
// for display and settle animated tiles via Board.Transition; they must
// not place or remove tiles.
func (p *Pipeline) Board() *Board {
	return p.board
}

// Palette returns the active palette.
func (p *Pipeline) Palette() Palette {
	return p.pal
}

// SetPalette swaps the active palette. Takes effect on the next refill
// or shuffle; tiles already on the board keep their colors.
func (p *Pipeline) SetPalette(pal Palette) {
	p.pal = pal
	p.gravity = NewGravityResolver(p.rng, pal)
	p.shuffle = NewShuffleResolver(p.rng, pal)
}

// SetGuaranteedColors adjusts how many colors future deadlock shuffles
// try to guarantee.
func (p *Pipeline) SetGuaranteedColors(n int) {
	p.guaranteedColors = n
}

// Phase returns the pipeline's current phase.
func (p *Pipeline) Phase() Phase {
	return p.phase
}

// Shuffles returns how many deadlock-resolving shuffles have run.
func (p *Pipeline) Shuffles() int {
	return p.shuffles
}

// Subscribe registers a listener for pipeline events.
func (p *Pipeline) Subscribe(fn Listener) {
	p.listeners = append(p.listeners, fn)
}

func (p *Pipeline) emit(e Event) {
	for _, fn := range p.listeners {
		fn(e)
	}
}

// Start fills the board with uniform-random tiles, resolves any
// opening deadlock by shuffling, and computes the initial group
// metadata. Spawned tiles start in the Spawning state; the animation
// layer (or SettleTiles) moves them to Idle.
func (p *Pipeline) Start() {
	p.board.Fill(p.rng, p.pal)
	p.SettleTiles()
	RefreshGroups(p.board, p.pal)
	if Deadlocked(p.board, p.pal.MinGroupSize) {
		p.runShuffle()
		p.CompleteShuffle()
	}
}

// EvaluateMove is the read-only query for a candidate move: it returns
// the group at (x, y) or nil if the cell holds no legal group. Always
// answerable, even mid-pipeline (non-Idle tiles simply cannot group).
func (p *Pipeline) EvaluateMove(x, y int) []*Tile {
	return FindGroup(p.board, x, y, p.pal.MinGroupSize)
}

// validateGroup checks that a group may be blasted right now.
func (p *Pipeline) validateGroup(group []*Tile) error {
	if len(group) < p.pal.MinGroupSize {
		return ErrInvalidGroup
	}
	for _, t := range group {
		if t == nil || !t.CanBeGrouped() {
			return ErrInvalidGroup
		}
	}
	return nil
}

// RequestBlast starts a blast cycle for the given group. It returns
// ErrInvalidGroup for an illegal group and false (with nil error) when
// the pipeline is already processing; in both cases the board is
// untouched.
func (p *Pipeline) RequestBlast(group []*Tile) (bool, error) {
	if p.phase != PhaseIdle {
		return false, nil
	}
	if err := p.validateGroup(group); err != nil {
		return false, err
	}

	p.phase = PhaseBlasting
	p.blasting = group
	for _, t := range group {
		p.board.Transition(t, TileBlasting)
	}
	p.emit(BlastStartedEvent{Group: group})
	return true, nil
}

// CompleteBlast is called by the animation layer once the removal
// effect has finished. The blasted tiles' slots are cleared, gravity
// compacts and refills the columns, and the pipeline waits in the
// Gravity phase for the movement animation to complete.
func (p *Pipeline) CompleteBlast() {
	if p.phase != PhaseBlasting {
		return
	}

	n := len(p.blasting)
	for _, t := range p.blasting {
		p.board.Clear(t.X, t.Y)
	}
	p.blasting = nil
	p.emit(BlastCompleteEvent{Cleared: n, Score: blastScore(n)})

	fell, spawned := p.gravity.Apply(p.board)
	p.phase = PhaseGravity
	p.emit(GravityCompleteEvent{Fell: fell, Spawned: spawned})
}

// CompleteGravity is called once every falling and spawned tile has
// visually settled. Remaining unsettled tiles are forced to Idle so a
// late animation cannot wedge the board. Group metadata is refreshed;
// if the board is deadlocked a shuffle runs and the pipeline waits in
// the Shuffling phase, otherwise the cycle ends.
func (p *Pipeline) CompleteGravity() {
	if p.phase != PhaseGravity {
		return
	}
	p.SettleTiles()
	RefreshGroups(p.board, p.pal)

	if Deadlocked(p.board, p.pal.MinGroupSize) {
		p.runShuffle()
		return
	}

	p.phase = PhaseIdle
	p.emit(PipelineIdleEvent{})
}

// CompleteShuffle is called once the shuffle movement has finished.
func (p *Pipeline) CompleteShuffle() {
	if p.phase != PhaseShuffling {
		return
	}
	p.SettleTiles()
	RefreshGroups(p.board, p.pal)
	p.phase = PhaseIdle
	p.emit(PipelineIdleEvent{})
}

// runShuffle performs the guaranteed-match shuffle and reports
// shortfalls.
func (p *Pipeline) runShuffle() {
	p.phase = PhaseShuffling
	p.shuffles++

	result := p.shuffle.Shuffle(p.board, p.guaranteedColors)
	if result.PlacedGuarantees < result.RequestedGuarantees {
		p.emit(ShuffleShortfallEvent{
			Requested: result.RequestedGuarantees,
			Placed:    result.PlacedGuarantees,
		})
	}
	p.emit(ShuffleCompleteEvent{Result: result})
}

// SettleTiles transitions every Spawning, Falling and Shuffling tile to
// Idle. The animation layer normally settles tiles one by one as their
// effects finish; headless drivers and phase completions use this to
// settle whatever is left.
func (p *Pipeline) SettleTiles() {
	for _, t := range p.board.Tiles() {
		switch t.State {
		case TileSpawning, TileFalling, TileShuffling:
			p.board.Transition(t, TileIdle)
		}
	}
}

// blastScore is the score awarded for blasting a group of n tiles.
// Larger groups pay quadratically more.
func blastScore(n int) int {
	return n * (n - 1)
}
