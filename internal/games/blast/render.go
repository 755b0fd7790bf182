package blast

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

const (
	cellWidth = 3 // Each board cell is 3 characters wide
	hudHeight = 3
)

// tierRunes maps a tile's icon tier to its glyph. Bigger groups show
// flashier icons.
var tierRunes = [...]rune{'●', '◆', '▲', '★'}

// blastRunes cycle while a group is being destroyed.
var blastRunes = [...]rune{'✶', '✳', '·'}

// tileColor maps a simulation color to a screen color.
func tileColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorCyan:
		return platformcore.ColorCyan
	default:
		return platformcore.ColorWhite
	}
}

// tileRune picks the glyph for a tile from its cached icon tier.
func tileRune(t *core.Tile) rune {
	tier := t.IconTier
	if tier < 0 {
		tier = 0
	}
	if tier >= len(tierRunes) {
		tier = len(tierRunes) - 1
	}
	return tierRunes[tier]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	board := g.pipeline.Board()
	boardW := board.W*cellWidth + 2
	boardH := board.H + 2

	boardX := (g.runtime.ScreenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	dst.DrawBox(platformcore.NewRect(boardX, boardY, boardW, boardH))
	g.renderTiles(dst, boardX, boardY)
	g.renderCursor(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	msg := "Window too small"
	y := g.runtime.ScreenH / 2
	dst.DrawText((g.runtime.ScreenW-len(msg))/2, y, msg)

	hint := "Please resize terminal"
	dst.DrawText((g.runtime.ScreenW-len(hint))/2, y+1, hint)
}

// renderHUD draws the score line and mode info.
func (g *Game) renderHUD(dst *platformcore.Screen, boardX, boardW int) {
	title := "BLAST"
	if g.mode == ModeEndless {
		title = "BLAST (ENDLESS)"
	}
	dst.DrawText(boardX+(boardW-len(title))/2, 0, title)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", g.score))

	var infoStr string
	if g.mode == ModeClassic {
		infoStr = fmt.Sprintf("Moves: %d", g.movesLeft)
	} else {
		infoStr = fmt.Sprintf("Colors: %d", g.paletteColors)
	}
	infoX := boardX + boardW - len(infoStr)
	if infoX < boardX {
		infoX = boardX
	}
	dst.DrawText(infoX, 1, infoStr)

	// Size of the group under the cursor, when the board is idle
	if g.pipeline.Phase() == core.PhaseIdle && !g.gameOver {
		group := g.pipeline.EvaluateMove(g.cursorX, g.cursorY)
		groupStr := "Group: -"
		if group != nil {
			groupStr = fmt.Sprintf("Group: %d (+%d)", len(group), len(group)*(len(group)-1))
		}
		dst.DrawText(boardX, 2, groupStr)
	}

	if g.pipeline.Shuffles() > 0 {
		shufStr := fmt.Sprintf("Shuffles: %d", g.pipeline.Shuffles())
		shufX := boardX + boardW - len(shufStr)
		if shufX < boardX {
			shufX = boardX
		}
		dst.DrawText(shufX, 2, shufStr)
	}
}

// cellOrigin returns the screen position of a board cell. Board rows
// grow upward while screen rows grow downward, so y is flipped.
func (g *Game) cellOrigin(boardX, boardY, x, y int) (int, int) {
	px := boardX + 1 + x*cellWidth
	py := boardY + 1 + (g.pipeline.Board().H - 1 - y)
	return px, py
}

// renderTiles draws every tile, interpolating the ones that are
// visually in flight.
func (g *Game) renderTiles(dst *platformcore.Screen, boardX, boardY int) {
	board := g.pipeline.Board()

	// Tiles animated this frame are drawn from their move records, not
	// their (already final) board coordinates.
	moving := g.movingTiles()

	board.ForEach(func(x, y int, t *core.Tile) {
		if t == nil || moving[t] {
			return
		}
		px, py := g.cellOrigin(boardX, boardY, x, y)
		if t.State == core.TileBlasting {
			r := blastRunes[(g.animTicks/4)%len(blastRunes)]
			dst.SetCell(px+1, py, r, tileColor(t.Color))
			return
		}
		dst.SetCell(px+1, py, tileRune(t), tileColor(t.Color))
	})

	g.renderMoves(dst, boardX, boardY)
}

// movingTiles collects the tiles currently drawn at interpolated
// positions.
func (g *Game) movingTiles() map[*core.Tile]bool {
	if g.anim != animFall && g.anim != animShuffle {
		return nil
	}
	moving := make(map[*core.Tile]bool)
	for _, m := range g.fell {
		moving[m.Tile] = true
	}
	for _, m := range g.spawned {
		moving[m.Tile] = true
	}
	for _, m := range g.shuffleMoves {
		moving[m.Tile] = true
	}
	return moving
}

// renderMoves draws in-flight tiles between their old and new slots.
func (g *Game) renderMoves(dst *platformcore.Screen, boardX, boardY int) {
	if g.anim != animFall && g.anim != animShuffle {
		return
	}

	progress := 1.0
	if g.animDuration > 0 {
		progress = float64(g.animTicks) / float64(g.animDuration)
	}
	if progress > 1.0 {
		progress = 1.0
	}

	rows := g.pipeline.Board().H
	draw := func(m core.Move) {
		fx := float64(m.From.X) + (float64(m.To.X)-float64(m.From.X))*progress
		fy := float64(m.From.Y) + (float64(m.To.Y)-float64(m.From.Y))*progress
		x := int(fx + 0.5)
		y := int(fy + 0.5)
		if y >= rows { // Spawned tiles start above the top border
			return
		}
		px, py := g.cellOrigin(boardX, boardY, x, y)
		dst.SetCell(px+1, py, tileRune(m.Tile), tileColor(m.Tile.Color))
	}

	for _, m := range g.fell {
		draw(m)
	}
	for _, m := range g.spawned {
		draw(m)
	}
	for _, m := range g.shuffleMoves {
		draw(m)
	}
}

// renderCursor draws the selection brackets.
func (g *Game) renderCursor(dst *platformcore.Screen, boardX, boardY int) {
	if g.gameOver || g.paused {
		return
	}
	px, py := g.cellOrigin(boardX, boardY, g.cursorX, g.cursorY)
	dst.SetCell(px, py, '[', platformcore.ColorWhite)
	dst.SetCell(px+2, py, ']', platformcore.ColorWhite)
}

// renderOverlays draws pause/game-over dialogs and the shuffle banner.
func (g *Game) renderOverlays(dst *platformcore.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		scoreStr := fmt.Sprintf("Final score: %d", g.score)
		groupStr := fmt.Sprintf("Largest group: %d", g.largestGroup)
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", scoreStr, groupStr, "Press R to restart")
		return
	}

	if g.anim == animShuffle || g.noticeTicks > 0 {
		banner := "No moves left - shuffling!"
		dst.DrawTextColored(centerX-len(banner)/2, boardY+boardH, banner, platformcore.ColorBrightYellow)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if len(line) > maxLen {
			maxLen = len(line)
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	boxX := centerX - boxW/2
	boxY := centerY - boxH/2

	// Clear area behind overlay
	for y := boxY; y < boxY+boxH; y++ {
		for x := boxX; x < boxX+boxW; x++ {
			dst.Set(x, y, ' ')
		}
	}

	dst.DrawBox(platformcore.Rect{X: boxX, Y: boxY, W: boxW, H: boxH})

	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, boxY+1+i, line)
	}
}
