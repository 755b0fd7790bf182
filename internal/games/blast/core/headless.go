package core

// AutoStep plays one full blast cycle synchronously: it picks a group
// with the given policy, requests the blast and immediately fires every
// completion. Returns false when no move was played (no legal group and
// the policy declined, which cannot happen on a post-shuffle board).
//
// Used by the headless simulator and by tests; an interactive front end
// drives the same completions from its animation ticks instead.
func (p *Pipeline) AutoStep(pick func(*Board, Palette) []*Tile) bool {
	if p.phase != PhaseIdle {
		return false
	}
	group := pick(p.board, p.pal)
	if group == nil {
		return false
	}
	ok, err := p.RequestBlast(group)
	if !ok || err != nil {
		return false
	}
	p.CompleteBlast()
	p.CompleteGravity()
	if p.phase == PhaseShuffling {
		p.CompleteShuffle()
	}
	return true
}

// GreedyPick returns the largest legal group on the board, scanning
// row-major and keeping the first of equal-sized candidates.
func GreedyPick(b *Board, pal Palette) []*Tile {
	seen := make(map[int]bool, b.W*b.H)
	var best []*Tile

	b.ForEach(func(x, y int, t *Tile) {
		if t == nil || seen[b.index(x, y)] {
			return
		}
		group := FindGroup(b, x, y, pal.MinGroupSize)
		if group == nil {
			seen[b.index(x, y)] = true
			return
		}
		for _, member := range group {
			seen[b.index(member.X, member.Y)] = true
		}
		if len(group) > len(best) {
			best = group
		}
	})
	return best
}
