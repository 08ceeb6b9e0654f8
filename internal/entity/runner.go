package entity

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/mazeband/internal/schedule"
	"github.com/samdwyer/mazeband/internal/world"
)

var (
	// ErrMazeNotDug is returned when a runner is placed before digging ends.
	ErrMazeNotDug = errors.New("maze is still being dug")
	// ErrNoCorridor is returned when a runner has no corridor to start on.
	ErrNoCorridor = errors.New("maze has no corridor to start on")
)

// Runner walks the existing corridors of a maze towards its exit, choosing
// its turns with a Strategy.
type Runner struct {
	*Mover
	id       string
	maze     *world.Maze
	strategy Strategy
	paint    world.Paint
	steps    int
	enclosed bool
}

// NewRunner places a runner on a random corridor cell with a random heading.
func NewRunner(m *world.Maze, strategy Strategy, paint world.Paint, rng *rand.Rand) (*Runner, error) {
	if !m.Finished() {
		return nil, ErrMazeNotDug
	}
	start, ok := m.FindOpenLocation(func(world.Point) bool { return true })
	if !ok {
		return nil, ErrNoCorridor
	}
	vector := world.RunDirections[rng.Intn(len(world.RunDirections))]
	return NewRunnerAt(m, strategy, paint, start, vector)
}

// NewRunnerAt places a runner at start heading along vector.
func NewRunnerAt(m *world.Maze, strategy Strategy, paint world.Paint, start world.Point, vector world.Vector) (*Runner, error) {
	if !m.Finished() {
		return nil, ErrMazeNotDug
	}
	if !m.IsPassable(start) {
		return nil, ErrNoCorridor
	}
	r := &Runner{
		Mover:    NewMover(start, vector, Dug(m)),
		id:       uuid.NewString(),
		maze:     m,
		strategy: strategy,
		paint:    paint,
	}
	m.Surface().Fill(start, paint)
	return r, nil
}

// ID returns the runner's unique identifier.
func (r *Runner) ID() string { return r.id }

// Paint returns the paint the runner is drawn with.
func (r *Runner) Paint() world.Paint { return r.paint }

// Steps returns the number of moves made.
func (r *Runner) Steps() int { return r.steps }

// Enclosed returns true if the runner stopped because no move was legal.
func (r *Runner) Enclosed() bool { return r.enclosed }

// AtExit returns true when the runner stands on the maze exit.
func (r *Runner) AtExit() bool {
	return r.Position() == r.maze.Exit
}

// AtIntersection returns true if more than two directions are open from the
// current cell. The vector is left unchanged.
func (r *Runner) AtIntersection() bool {
	open := 0
	for _, dir := range world.RunDirections {
		if r.CanMoveAlong(dir) {
			open++
		}
	}
	return open > 2
}

// PickDirection asks the strategy for a new heading.
func (r *Runner) PickDirection() bool {
	return r.strategy.PickDirection(r)
}

// Move re-picks the heading when blocked or at an intersection, then steps
// one cell. It returns false if the runner is walled in on all four sides.
func (r *Runner) Move() bool {
	if !r.CanMove() || r.AtIntersection() {
		if !r.PickDirection() {
			r.enclosed = true
			return false
		}
	}
	surface := r.maze.Surface()
	surface.Fill(r.Position(), r.maze.TileAt(r.Position()).Paint())
	r.Advance()
	r.steps++
	surface.Fill(r.Position(), r.paint)
	return true
}

// Step moves once unless the exit has been reached. It returns false once
// the runner is at the exit or cannot move.
func (r *Runner) Step() bool {
	if r.AtExit() {
		return false
	}
	if !r.Move() {
		return false
	}
	return !r.AtExit()
}

// Run schedules the runner to step every interval until it stops.
func (r *Runner) Run(s schedule.Scheduler, interval time.Duration) schedule.Handle {
	return s.Schedule(r.Step, interval)
}
