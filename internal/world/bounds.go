package world

// Bounds is a rectangle constraining legal positions.
// Top and Left are inclusive, Right and Bottom exclusive.
type Bounds struct {
	Top, Right, Bottom, Left int
}

// DefaultBounds returns the bounds used when none are given.
func DefaultBounds() Bounds {
	return Bounds{Top: 0, Right: 100, Bottom: 100, Left: 0}
}

// Contains returns true if the point lies inside the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom
}
