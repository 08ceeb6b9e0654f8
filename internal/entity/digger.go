package entity

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazeband/internal/schedule"
	"github.com/samdwyer/mazeband/internal/telemetry"
	"github.com/samdwyer/mazeband/internal/world"
)

const (
	// turnThreshold is exceeded by 20% of rolls; the digger then changes
	// direction even when it could carry on.
	turnThreshold = 0.80
	// relocateThreshold is exceeded by 5% of rolls; the digger then jumps
	// to another corridor to start a new branch.
	relocateThreshold = 0.95

	// digMargin keeps corridors off the top and left edges.
	digMargin = 2
)

// DigStats summarizes a digger's work.
type DigStats struct {
	Steps       int
	Relocations int
	Corridors   int
}

// Digger carves corridors into a maze with a random walk, two cells per
// step, and relocates to an existing corridor when it runs into a dead end.
type Digger struct {
	*Mover
	maze        *world.Maze
	rng         *rand.Rand
	done        bool
	steps       int
	relocations int
}

// NewDigger creates a digger at start heading along vector. If start is not a
// corridor the digger relocates immediately, and is born done when the maze
// has nowhere left to dig.
func NewDigger(m *world.Maze, start world.Point, vector world.Vector, rng *rand.Rand) *Digger {
	bounds := m.Bounds()
	bounds.Top, bounds.Left = digMargin, digMargin
	d := &Digger{
		Mover: NewMover(start, vector, Undug(m), WithinBounds(bounds)),
		maze:  m,
		rng:   rng,
	}
	if !m.IsPassable(start) && !d.PickNewLocation() {
		d.finish()
	}
	return d
}

// NewExitDigger creates a digger starting at the maze exit heading west.
func NewExitDigger(m *world.Maze, rng *rand.Rand) *Digger {
	return NewDigger(m, m.Exit, world.DigDirections[3], rng)
}

// PickDirection chooses uniformly among the legal dig directions. It returns
// false, leaving the vector on the last direction tried, if none is legal.
func (d *Digger) PickDirection() bool {
	var available []world.Vector
	for _, dir := range world.DigDirections {
		d.SetVector(dir)
		if d.CanMove() {
			available = append(available, dir)
		}
	}
	if len(available) == 0 {
		return false
	}
	d.SetVector(available[d.rng.Intn(len(available))])
	return true
}

// PickNewLocation moves the digger to a corridor cell from which at least one
// direction can be dug. On failure the previous position and vector are kept.
func (d *Digger) PickNewLocation() bool {
	origPos, origVec := d.Position(), d.Vector()
	_, ok := d.maze.FindOpenLocation(func(p world.Point) bool {
		d.SetPosition(p)
		return d.PickDirection()
	})
	if !ok {
		d.SetPosition(origPos)
		d.SetVector(origVec)
		return false
	}
	d.relocations++
	return true
}

// Move performs one digging step. It returns false once the maze is
// completely dug.
func (d *Digger) Move() bool {
	if d.done {
		return false
	}
	if d.rng.Float64() > turnThreshold || !d.CanMove() {
		if !d.PickDirection() && !d.PickNewLocation() {
			d.finish()
			return false
		}
	}
	if d.rng.Float64() > relocateThreshold {
		d.PickNewLocation()
	}

	d.maze.Dig(d.Position().Add(d.Vector().Half()))
	d.Advance()
	d.maze.Dig(d.Position())
	d.steps++
	return true
}

// Done returns true once digging is complete.
func (d *Digger) Done() bool {
	return d.done
}

// Stats returns the work done so far.
func (d *Digger) Stats() DigStats {
	return DigStats{
		Steps:       d.steps,
		Relocations: d.relocations,
		Corridors:   d.maze.CorridorCount(),
	}
}

// Run schedules the digger to move every interval until the maze is dug.
func (d *Digger) Run(s schedule.Scheduler, interval time.Duration) schedule.Handle {
	return s.Schedule(d.Move, interval)
}

func (d *Digger) finish() {
	d.done = true
	d.maze.Finish()
}

// Dig digs the whole maze from its exit without pausing between steps.
func Dig(ctx context.Context, m *world.Maze, rng *rand.Rand) DigStats {
	tracer := telemetry.Tracer("entity")
	_, span := tracer.Start(ctx, "maze.dig")
	defer span.End()

	startTime := time.Now()

	d := NewExitDigger(m, rng)
	for d.Move() {
	}
	stats := d.Stats()

	span.SetAttributes(
		attribute.Int("maze.width", m.Width),
		attribute.Int("maze.height", m.Height),
		attribute.Int("dig.steps", stats.Steps),
		attribute.Int("dig.relocations", stats.Relocations),
		attribute.Int("dig.corridors", stats.Corridors),
		attribute.Int64("dig.duration_ms", time.Since(startTime).Milliseconds()),
	)
	return stats
}
