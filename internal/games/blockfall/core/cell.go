package core

import platform "github.com/vovakirdan/blockfall/internal/core"

// Cell is a single grid cell: either empty or a block with a glyph and color.
type Cell struct {
	Filled bool           // Whether the cell is occupied
	Glyph  rune           // Valid only when Filled is true
	Color  platform.Color // Valid only when Filled is true
}

// OutOfBounds is what CellAt reports for positions outside a grid.
// It is occupied so that collision tests treat the grid edge as a wall.
var OutOfBounds = Cell{Filled: true, Glyph: '#', Color: platform.ColorGray}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// Block returns an occupied cell with the given glyph and color.
func Block(glyph rune, color platform.Color) Cell {
	return Cell{Filled: true, Glyph: glyph, Color: color}
}

// Rune returns the glyph to display for the cell ('.' when empty).
func (c Cell) Rune() rune {
	if !c.Filled {
		return '.'
	}
	return c.Glyph
}
