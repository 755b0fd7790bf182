package core

// Event is a notification emitted by the pipeline. The animation layer
// consumes events to drive visuals; each event is delivered to every
// registered listener exactly once, in the order it was emitted.
type Event interface {
	pipelineEvent()
}

// BlastStartedEvent is emitted when a valid group begins blasting.
// Member tiles are in the Blasting state; the animation layer plays the
// removal effect and calls Pipeline.CompleteBlast when done.
type BlastStartedEvent struct {
	Group []*Tile
}

func (BlastStartedEvent) pipelineEvent() {}

// BlastCompleteEvent is emitted once the blasted tiles have been
// cleared from the board, immediately before gravity runs.
type BlastCompleteEvent struct {
	Cleared int
	Score   int
}

func (BlastCompleteEvent) pipelineEvent() {}

// GravityCompleteEvent carries every tile that changed position during
// compaction and refill. Fell tiles moved down within their column;
// Spawned tiles are new. The animation layer moves them visually,
// settles each tile back to Idle, and calls Pipeline.CompleteGravity.
type GravityCompleteEvent struct {
	Fell    []Move
	Spawned []Move
}

func (GravityCompleteEvent) pipelineEvent() {}

// ShuffleCompleteEvent is emitted after a deadlock-resolving shuffle
// has been committed to the board. The animation layer plays the
// movement and calls Pipeline.CompleteShuffle.
type ShuffleCompleteEvent struct {
	Result ShuffleResult
}

func (ShuffleCompleteEvent) pipelineEvent() {}

// ShuffleShortfallEvent is emitted when reservation placed fewer
// guaranteed colors than requested. A soft condition: the shuffle still
// committed, just with weaker guarantees.
type ShuffleShortfallEvent struct {
	Requested int
	Placed    int
}

func (ShuffleShortfallEvent) pipelineEvent() {}

// TileStateChangedEvent reports a single tile lifecycle transition.
type TileStateChangedEvent struct {
	Tile *Tile
	From TileState
	To   TileState
}

func (TileStateChangedEvent) pipelineEvent() {}

// PipelineIdleEvent is emitted when a full blast cycle has finished and
// the pipeline accepts moves again.
type PipelineIdleEvent struct{}

func (PipelineIdleEvent) pipelineEvent() {}

// Listener receives pipeline events.
type Listener func(Event)
