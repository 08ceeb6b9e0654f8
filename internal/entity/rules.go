package entity

import "github.com/samdwyer/mazeband/internal/world"

// Rule decides whether a destination cell is legal.
type Rule func(next world.Point) bool

// WithinBounds rejects destinations outside b.
func WithinBounds(b world.Bounds) Rule {
	return b.Contains
}

// Undug accepts destinations inside the maze that are not yet corridors.
// Diggers use it so corridors never merge into loops.
func Undug(m *world.Maze) Rule {
	return func(next world.Point) bool {
		return m.InBounds(next) && !m.IsPassable(next)
	}
}

// Dug accepts only existing corridor cells.
func Dug(m *world.Maze) Rule {
	return m.IsPassable
}
