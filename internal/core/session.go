package core

// SessionStats summarizes a finished (or in-progress) game session.
// Games that track per-session statistics expose them through
// SessionReporter so the platform can persist them.
type SessionStats struct {
	Mode         string
	Score        int
	Blasts       int
	LargestGroup int
	Shuffles     int
	Ticks        uint64
}

// SessionReporter is implemented by games that track session statistics.
type SessionReporter interface {
	Stats() SessionStats
}
