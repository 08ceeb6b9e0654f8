package world

// Grid is a fixed-size occupancy map of dug cells.
// A cell never reverts to undug once marked.
type Grid struct {
	width  int
	height int
	cells  []bool
}

// NewGrid allocates a width x height grid with every cell undug.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// InBounds returns true if p addresses a cell of the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// IsPassable returns true if p is inside the grid and dug.
func (g *Grid) IsPassable(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	return g.cells[p.Y*g.width+p.X]
}

// Mark digs p. It returns true only if the cell was inside the grid and
// previously undug.
func (g *Grid) Mark(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	i := p.Y*g.width + p.X
	if g.cells[i] {
		return false
	}
	g.cells[i] = true
	return true
}

// Count returns the number of dug cells.
func (g *Grid) Count() int {
	n := 0
	for _, dug := range g.cells {
		if dug {
			n++
		}
	}
	return n
}

// Scan walks the even-aligned cells starting at start along axis, which must
// be two cells north or two cells east, and returns the first dug cell for
// which valid returns true. Crossing the top edge continues at the bottom one
// column pair to the right; crossing the right edge continues at the left one
// row pair up. The scan fails once it arrives back at start, so valid is
// called at most once per even cell.
func (g *Grid) Scan(start Point, axis Vector, valid func(Point) bool) (Point, bool) {
	if !g.InBounds(start) || (axis != DigDirections[0] && axis != DigDirections[1]) {
		return Point{}, false
	}
	p := start
	for {
		if g.IsPassable(p) && valid(p) {
			return p, true
		}
		p = p.Add(axis)
		if p.X >= g.width {
			p.X -= g.width
			p.Y -= 2
			if p.Y < 0 {
				p.Y += g.height
			}
		} else if p.Y < 0 {
			p.Y += g.height
			p.X += 2
			if p.X >= g.width {
				p.X -= g.width
			}
		}
		if p == start {
			return Point{}, false
		}
	}
}
