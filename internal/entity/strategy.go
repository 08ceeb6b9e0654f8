package entity

import (
	"math/rand"

	"github.com/samdwyer/mazeband/internal/world"
)

// Strategy picks a runner's next heading. It returns false when no direction
// is legal.
type Strategy interface {
	PickDirection(r *Runner) bool
}

// RandomTurns chooses uniformly among the open directions other than the way
// back, and only turns around at dead ends.
type RandomTurns struct {
	rng *rand.Rand
}

// NewRandomTurns creates a random-turn strategy.
func NewRandomTurns(rng *rand.Rand) *RandomTurns {
	return &RandomTurns{rng: rng}
}

// PickDirection implements Strategy.
func (s *RandomTurns) PickDirection(r *Runner) bool {
	reverse := r.Vector().Reverse()
	var available []world.Vector
	for _, dir := range world.RunDirections {
		if dir == reverse {
			continue
		}
		if r.CanMoveAlong(dir) {
			available = append(available, dir)
		}
	}
	if len(available) == 0 {
		if !r.CanMoveAlong(reverse) {
			return false
		}
		r.SetVector(reverse)
		return true
	}
	r.SetVector(available[s.rng.Intn(len(available))])
	return true
}

// RightHand keeps a hand on the right-hand wall: it turns right if it can,
// otherwise goes straight, then left, then back.
type RightHand struct{}

// PickDirection implements Strategy.
func (RightHand) PickDirection(r *Runner) bool {
	n := len(world.RunDirections)
	entry := world.DirectionIndex(world.RunDirections, r.Vector())
	if entry < 0 {
		entry = 0
	}
	// Clockwise from the entry heading is a right turn; each further
	// candidate rotates back counter-clockwise.
	for turn := 0; turn < n; turn++ {
		dir := world.RunDirections[(entry+1-turn+n)%n]
		if r.CanMoveAlong(dir) {
			r.SetVector(dir)
			return true
		}
	}
	return false
}
