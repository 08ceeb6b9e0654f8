// Package game provides the interactive maze loop and headless simulation.
package game

// State represents the current game state.
type State int

const (
	// StateDigging is while the digger is still carving the maze. Runners
	// cannot be spawned yet.
	StateDigging State = iota
	// StateReady is once the maze is fully dug and runners may be spawned.
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateDigging:
		return "digging"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
