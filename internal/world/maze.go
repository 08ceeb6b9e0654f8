package world

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// Default maze dimensions
	DefaultWidth  = 100
	DefaultHeight = 100
)

var (
	// ErrOddDimensions is returned when a maze is not sized in even cells.
	ErrOddDimensions = errors.New("maze width and height must be positive even numbers")
	// ErrExitOutOfBounds is returned when the exit lies outside the grid.
	ErrExitOutOfBounds = errors.New("maze exit is outside the grid")
)

// Maze owns the occupancy grid, the exit cell and the drawing surface
// corridors are painted on.
type Maze struct {
	Width  int
	Height int
	Exit   Point

	grid     *Grid
	surface  Surface
	rng      *rand.Rand
	finished bool
}

// Option customizes a maze at construction.
type Option func(*Maze)

// WithExit overrides the default exit cell.
func WithExit(p Point) Option {
	return func(m *Maze) {
		m.Exit = p
	}
}

// WithSurface sets the surface corridors are drawn on.
func WithSurface(s Surface) Option {
	return func(m *Maze) {
		if s != nil {
			m.surface = s
		}
	}
}

// DefaultExit returns the exit used when none is given: next to the right
// edge on an even row a quarter of the way down.
func DefaultExit(width, height int) Point {
	return Point{X: width - 2, Y: (height / 4) * 2}
}

// NewMaze allocates a width x height maze and digs its exit.
// A nil rng is replaced by one seeded from the clock.
func NewMaze(width, height int, rng *rand.Rand, opts ...Option) (*Maze, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrOddDimensions, width, height)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &Maze{
		Width:   width,
		Height:  height,
		Exit:    DefaultExit(width, height),
		surface: NopSurface{},
		rng:     rng,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.Exit.X < 0 || m.Exit.X >= width || m.Exit.Y < 0 || m.Exit.Y >= height {
		return nil, fmt.Errorf("%w: (%d,%d)", ErrExitOutOfBounds, m.Exit.X, m.Exit.Y)
	}

	m.Reset()
	return m, nil
}

// Reset discards every corridor, digs the exit again and repaints the
// whole surface.
func (m *Maze) Reset() {
	m.grid = NewGrid(m.Width, m.Height)
	m.finished = false
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.surface.Fill(Point{X: x, Y: y}, PaintWall)
		}
	}
	m.grid.Mark(m.Exit)
	m.surface.Fill(m.Exit, PaintExit)
}

// Surface returns the surface the maze draws on.
func (m *Maze) Surface() Surface {
	return m.surface
}

// Bounds returns the rectangle covering the whole grid.
func (m *Maze) Bounds() Bounds {
	return Bounds{Top: 0, Right: m.Width, Bottom: m.Height, Left: 0}
}

// InBounds returns true if p is a cell of the maze.
func (m *Maze) InBounds(p Point) bool {
	return m.grid.InBounds(p)
}

// IsPassable returns true if p is a dug cell. Cells outside the grid are
// never passable.
func (m *Maze) IsPassable(p Point) bool {
	return m.grid.IsPassable(p)
}

// Dig marks p as a corridor and paints it. It returns false if p is outside
// the grid or already dug.
func (m *Maze) Dig(p Point) bool {
	if !m.grid.Mark(p) {
		return false
	}
	m.surface.Fill(p, m.TileAt(p).Paint())
	return true
}

// TileAt returns the tile at the given position.
func (m *Maze) TileAt(p Point) Tile {
	switch {
	case !m.grid.IsPassable(p):
		return TileWall
	case p == m.Exit:
		return TileExit
	default:
		return TileFloor
	}
}

// CorridorCount returns the number of dug cells, exit included.
func (m *Maze) CorridorCount() int {
	return m.grid.Count()
}

// Finish records that digging is complete.
func (m *Maze) Finish() {
	m.finished = true
}

// Finished returns true once a digger has exhausted the maze.
func (m *Maze) Finished() bool {
	return m.finished
}

// FindOpenLocation picks a random even-aligned cell and scans north or east
// from it, wrapping at the edges, for a dug cell accepted by valid. It returns
// false after a full sweep finds nothing.
func (m *Maze) FindOpenLocation(valid func(Point) bool) (Point, bool) {
	start := Point{
		X: m.rng.Intn(m.Width/2) * 2,
		Y: m.rng.Intn(m.Height/2) * 2,
	}
	axis := DigDirections[m.rng.Intn(2)] // north or east
	return m.grid.Scan(start, axis, valid)
}

// String renders the maze one row per line.
func (m *Maze) String() string {
	var b strings.Builder
	b.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteRune(m.TileAt(Point{X: x, Y: y}).Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
