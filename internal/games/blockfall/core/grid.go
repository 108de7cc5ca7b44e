package core

import (
	"strings"

	platform "github.com/vovakirdan/blockfall/internal/core"
)

// Grid is a fixed-size rectangular buffer of cells stored in row-major order.
//
// A Grid is an immutable value: every transformation returns a new Grid and
// the receiver is never modified, so grids can be shared between states.
type Grid struct {
	w     int
	h     int
	cells []Cell
}

// EmptyGrid creates a w x h grid with all cells empty.
// Negative dimensions are treated as zero.
func EmptyGrid(w, h int) Grid {
	w = max(w, 0)
	h = max(h, 0)
	return Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// GridFromRows builds a grid from text rows where '#' marks an occupied cell.
// The grid is as wide as the longest row; short rows are padded with empty cells.
func GridFromRows(glyph rune, color platform.Color, rows ...string) Grid {
	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	g := EmptyGrid(w, len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' {
				g.cells[g.index(P(x, y))] = Block(glyph, color)
			}
		}
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return g.w
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return g.h
}

func (g Grid) index(p Position) int {
	return p.Y*g.w + p.X
}

// InBounds returns true if the position lies inside the grid.
func (g Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// At returns the cell at p, or an empty cell when p is out of bounds.
func (g Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return EmptyCell()
	}
	return g.cells[g.index(p)]
}

// CellAt returns the cell at p. Positions outside the grid report OutOfBounds,
// which is occupied.
func (g Grid) CellAt(p Position) Cell {
	if !g.InBounds(p) {
		return OutOfBounds
	}
	return g.cells[g.index(p)]
}

// IsOccupied reports whether CellAt(p) is filled.
func (g Grid) IsOccupied(p Position) bool {
	return g.CellAt(p).Filled
}

// FilledCount returns the number of occupied cells.
func (g Grid) FilledCount() int {
	count := 0
	for _, c := range g.cells {
		if c.Filled {
			count++
		}
	}
	return count
}

func (g Grid) clone() Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return Grid{w: g.w, h: g.h, cells: cells}
}

// Draw overlays src onto a copy of g with src's top-left corner at origin.
// Empty source cells are transparent and cells landing outside g are clipped.
func (g Grid) Draw(origin Position, src Grid) Grid {
	out := g.clone()
	for y := 0; y < src.h; y++ {
		for x := 0; x < src.w; x++ {
			c := src.cells[src.index(P(x, y))]
			if !c.Filled {
				continue
			}
			target := origin.Add(P(x, y))
			if !out.InBounds(target) {
				continue
			}
			out.cells[out.index(target)] = c
		}
	}
	return out
}

// DrawRect fills a w x h rectangle starting at origin with cell.
func (g Grid) DrawRect(origin Position, w, h int, cell Cell) Grid {
	out := g.clone()
	for y := origin.Y; y < origin.Y+h; y++ {
		for x := origin.X; x < origin.X+w; x++ {
			if p := P(x, y); out.InBounds(p) {
				out.cells[out.index(p)] = cell
			}
		}
	}
	return out
}

// DrawRectOutline sets the border cells of a w x h rectangle starting at origin.
func (g Grid) DrawRectOutline(origin Position, w, h int, cell Cell) Grid {
	out := g.clone()
	for y := origin.Y; y < origin.Y+h; y++ {
		for x := origin.X; x < origin.X+w; x++ {
			edge := x == origin.X || x == origin.X+w-1 || y == origin.Y || y == origin.Y+h-1
			if p := P(x, y); edge && out.InBounds(p) {
				out.cells[out.index(p)] = cell
			}
		}
	}
	return out
}

// Map returns a grid of the same size with fn applied to every cell.
func (g Grid) Map(fn func(Cell) Cell) Grid {
	out := EmptyGrid(g.w, g.h)
	for i, c := range g.cells {
		out.cells[i] = fn(c)
	}
	return out
}

// RotateCW returns the grid rotated a quarter turn clockwise.
func (g Grid) RotateCW() Grid {
	out := EmptyGrid(g.h, g.w)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.cells[out.index(P(g.h-1-y, x))] = g.cells[g.index(P(x, y))]
		}
	}
	return out
}

// RotateCCW returns the grid rotated a quarter turn counter-clockwise.
func (g Grid) RotateCCW() Grid {
	out := EmptyGrid(g.h, g.w)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			out.cells[out.index(P(y, g.w-1-x))] = g.cells[g.index(P(x, y))]
		}
	}
	return out
}

// Equal returns true if both grids have the same dimensions and contents.
func (g Grid) Equal(other Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as text, one line per row, '.' for empty cells.
func (g Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.w*g.h + g.h)
	for y := 0; y < g.h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.w; x++ {
			sb.WriteRune(g.cells[g.index(P(x, y))].Rune())
		}
	}
	return sb.String()
}
