// Package entity provides the moving things that dig and walk a maze.
package entity

import "github.com/samdwyer/mazeband/internal/world"

// Movable is anything with a position and a vector that may step along it.
type Movable interface {
	CanMove() bool
	NextPosition() world.Point
	Advance()
}

// Mover is a position and vector whose moves are checked against an ordered
// list of rules. Every rule must accept the destination for a move to be legal.
type Mover struct {
	pos   world.Point
	vec   world.Vector
	rules []Rule
}

// NewMover creates a mover at pos heading along vec.
func NewMover(pos world.Point, vec world.Vector, rules ...Rule) *Mover {
	return &Mover{pos: pos, vec: vec, rules: rules}
}

// Position returns the current position.
func (m *Mover) Position() world.Point { return m.pos }

// Vector returns the current vector.
func (m *Mover) Vector() world.Vector { return m.vec }

// SetPosition moves the entity without checking rules.
func (m *Mover) SetPosition(p world.Point) { m.pos = p }

// SetVector changes the heading.
func (m *Mover) SetVector(v world.Vector) { m.vec = v }

// NextPosition returns where the next move would land. It has no side effects.
func (m *Mover) NextPosition() world.Point {
	return m.pos.Add(m.vec)
}

// CanMove applies the rules in order and stops at the first rejection.
func (m *Mover) CanMove() bool {
	next := m.NextPosition()
	for _, rule := range m.rules {
		if !rule(next) {
			return false
		}
	}
	return true
}

// CanMoveAlong reports whether v would be legal, restoring the current
// vector afterwards.
func (m *Mover) CanMoveAlong(v world.Vector) bool {
	orig := m.vec
	m.vec = v
	ok := m.CanMove()
	m.vec = orig
	return ok
}

// Advance steps along the vector unconditionally.
func (m *Mover) Advance() {
	m.pos = m.NextPosition()
}

// Move advances only if the move is legal.
func (m *Mover) Move() bool {
	if !m.CanMove() {
		return false
	}
	m.Advance()
	return true
}

var _ Movable = (*Mover)(nil)
