package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
)

const hudHeight = 2

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	grid := bfcore.Composite(g.state)
	play := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight)
	board := core.NewRect(play.X+(play.W-grid.Width())/2, play.Y, grid.Width(), grid.Height())
	if !play.ContainsRect(board) {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", grid.Width(), grid.Height()+hudHeight))
		return
	}

	ox, oy := board.X, board.Y
	drawGrid(dst, grid, ox, oy)

	// Panel label above the next piece
	dst.DrawTextColor(ox+bfcore.WorldWidth+4, oy+1, "Next", core.ColorGray)

	switch {
	case g.state.IsDead():
		g.renderOverlay(dst, "You Are Dead", fmt.Sprintf("Score: %d  Press R to restart", g.state.Score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawGrid copies the filled cells of grid onto dst at (ox, oy).
func drawGrid(dst *core.Screen, grid bfcore.Grid, ox, oy int) {
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			c := grid.At(bfcore.P(x, y))
			if !c.Filled {
				continue
			}
			dst.SetCell(ox+x, oy+y, core.ScreenCell{Rune: c.Glyph, Color: c.Color})
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Next: %s", g.Title(), g.state.Score, g.state.Next().Name())
	if g.state.IsDead() {
		hud += "  -- You Are Dead"
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColor(box.X+(boxW-len(line1))/2, box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-len(line2))/2, box.Y+3, line2)
}
