package world

// Point is a cell position on the grid.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns the point displaced by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Vector is a movement step.
type Vector struct {
	X, Y int
}

// Reverse returns the vector pointing the opposite way.
func (v Vector) Reverse() Vector {
	return Vector{X: -v.X, Y: -v.Y}
}

// Half returns the midpoint step of an even vector.
func (v Vector) Half() Vector {
	return Vector{X: v.X / 2, Y: v.Y / 2}
}

// Scale multiplies both components by n.
func (v Vector) Scale(n int) Vector {
	return Vector{X: v.X * n, Y: v.Y * n}
}

// Compass directions in clockwise order starting at north.
var (
	North = Vector{X: 0, Y: -1}
	East  = Vector{X: 1, Y: 0}
	South = Vector{X: 0, Y: 1}
	West  = Vector{X: -1, Y: 0}
)

// RunDirections are the unit steps runners walk corridors with.
var RunDirections = [4]Vector{North, East, South, West}

// DigDirections are the two-cell steps diggers carve with, so that a wall
// cell always separates neighbouring corridor cells.
var DigDirections = [4]Vector{North.Scale(2), East.Scale(2), South.Scale(2), West.Scale(2)}

// DirectionIndex returns the position of v in dirs, or -1.
func DirectionIndex(dirs [4]Vector, v Vector) int {
	for i, d := range dirs {
		if d == v {
			return i
		}
	}
	return -1
}
