package core

// IsColliding reports whether shape placed at pos overlaps the world.
//
// An occupied shape cell collides when it lands left or right of the world,
// below the bottom row, or on an occupied world cell. Cells above the top row
// never collide, so pieces may spawn and rotate partially out of view.
func IsColliding(pos Position, shape Grid, world Grid) bool {
	for y := 0; y < shape.h; y++ {
		for x := 0; x < shape.w; x++ {
			if !shape.cells[shape.index(P(x, y))].Filled {
				continue
			}
			target := pos.Add(P(x, y))
			if target.X < 0 || target.X >= world.w {
				return true
			}
			if target.Y < 0 {
				continue
			}
			if world.IsOccupied(target) {
				return true
			}
		}
	}
	return false
}

// SpawnPosition returns where a freshly spawned piece is placed:
// horizontally centered on the world, on the top row.
func SpawnPosition(world Grid, p Piece) Position {
	return P(world.Width()/2-p.Width()/2, 0)
}

// ClearFullRows removes every completely occupied row and shifts the rows
// above it down. Returns the new world and the number of rows removed.
func ClearFullRows(world Grid) (Grid, int) {
	out := EmptyGrid(world.w, world.h)
	cleared := 0
	dst := world.h - 1
	for y := world.h - 1; y >= 0; y-- {
		if world.rowFull(y) {
			cleared++
			continue
		}
		copy(out.cells[dst*world.w:(dst+1)*world.w], world.cells[y*world.w:(y+1)*world.w])
		dst--
	}
	return out, cleared
}

func (g Grid) rowFull(y int) bool {
	if g.w == 0 {
		return false
	}
	for x := 0; x < g.w; x++ {
		if !g.cells[g.index(P(x, y))].Filled {
			return false
		}
	}
	return true
}
