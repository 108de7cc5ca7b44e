package core

import platform "github.com/vovakirdan/blockfall/internal/core"

// Glyphs used by the composite.
var (
	borderCell = Block('+', platform.ColorGray)
	dangerCell = Block('-', platform.ColorGray)
	ghostCell  = Block('~', platform.ColorGray)
)

// playOrigin is where world cell (0,0) lands inside the composite.
var playOrigin = P(1, 1)

// Ghost returns the position where the active piece would rest after a hard drop.
func Ghost(s State) Position {
	return HardDrop(s).Position
}

func toGhost(c Cell) Cell {
	if !c.Filled {
		return c
	}
	return ghostCell
}

// Composite builds the renderable grid for a state: the bordered playfield
// with the danger band, locked cells and active piece, plus a side panel
// holding the next piece. The ghost is drawn last, so where it overlaps the
// active piece the ghost wins.
func Composite(s State) Grid {
	w, h := s.World.Width(), s.World.Height()

	buf := EmptyGrid(w+2+PanelWidth, h+2).
		DrawRectOutline(P(0, 0), w+2, h+2, borderCell)

	buf = buf.Draw(P(w+4, 2), s.Next().Cells())
	buf = buf.DrawRect(playOrigin, w, min(DeathZoneHeight, h), dangerCell)
	buf = buf.Draw(playOrigin, s.World)

	buf = buf.Draw(playOrigin.Add(s.Position), s.Block.Cells())

	ghost := s.Block.Cells().Map(toGhost)
	return buf.Draw(playOrigin.Add(Ghost(s)), ghost)
}
