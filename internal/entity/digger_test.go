package entity

import (
	"context"
	"math/rand"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/mazeband/internal/world"
)

func newTestMaze(t *testing.T, width, height int, seed int64, opts ...world.Option) *world.Maze {
	t.Helper()
	m, err := world.NewMaze(width, height, rand.New(rand.NewSource(seed)), opts...)
	if err != nil {
		t.Fatalf("NewMaze(%d, %d) error = %v", width, height, err)
	}
	return m
}

// reachable returns every passable cell 4-connected to start.
func reachable(m *world.Maze, start world.Point) map[world.Point]bool {
	seen := map[world.Point]bool{start: true}
	queue := []world.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, dir := range world.RunDirections {
			next := p.Add(dir)
			if m.IsPassable(next) && !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

func TestMoverNextPositionIsPure(t *testing.T) {
	m := NewMover(world.Point{X: 3, Y: 4}, world.Vector{X: 1, Y: 0})

	for i := 0; i < 3; i++ {
		if got := m.NextPosition(); got != (world.Point{X: 4, Y: 4}) {
			t.Fatalf("NextPosition() = %v, want (4,4)", got)
		}
	}
	if got := m.Position(); got != (world.Point{X: 3, Y: 4}) {
		t.Errorf("Position() after NextPosition() = %v, want (3,4)", got)
	}
}

func TestMoverWithoutRulesAlwaysMoves(t *testing.T) {
	m := NewMover(world.Point{}, world.Vector{X: -5, Y: -5})
	if !m.Move() {
		t.Fatal("Move() with no rules should succeed")
	}
	if got := m.Position(); got != (world.Point{X: -5, Y: -5}) {
		t.Errorf("Position() = %v, want (-5,-5)", got)
	}
}

func TestMoverBoundsRule(t *testing.T) {
	tests := []struct {
		name string
		pos  world.Point
		vec  world.Vector
		want bool
	}{
		{"inside", world.Point{X: 50, Y: 50}, world.Vector{X: 1, Y: 0}, true},
		{"right edge exclusive", world.Point{X: 99, Y: 50}, world.Vector{X: 1, Y: 0}, false},
		{"bottom edge exclusive", world.Point{X: 50, Y: 99}, world.Vector{X: 0, Y: 1}, false},
		{"left edge inclusive", world.Point{X: 1, Y: 50}, world.Vector{X: -1, Y: 0}, true},
		{"top edge inclusive", world.Point{X: 50, Y: 1}, world.Vector{X: 0, Y: -1}, true},
		{"past left", world.Point{X: 0, Y: 50}, world.Vector{X: -1, Y: 0}, false},
		{"past top", world.Point{X: 50, Y: 0}, world.Vector{X: 0, Y: -1}, false},
	}

	for _, tt := range tests {
		m := NewMover(tt.pos, tt.vec, WithinBounds(world.DefaultBounds()))
		if got := m.CanMove(); got != tt.want {
			t.Errorf("%s: CanMove() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMoverRulesShortCircuit(t *testing.T) {
	var calls []string
	reject := func(world.Point) bool { calls = append(calls, "reject"); return false }
	accept := func(world.Point) bool { calls = append(calls, "accept"); return true }

	m := NewMover(world.Point{}, world.Vector{X: 1}, reject, accept)
	if m.Move() {
		t.Fatal("Move() should fail when a rule rejects")
	}
	if len(calls) != 1 || calls[0] != "reject" {
		t.Errorf("rules evaluated = %v, want [reject]", calls)
	}
	if m.Position() != (world.Point{}) {
		t.Error("rejected Move() should not change position")
	}
}

func TestDiggerScenarioFourByFour(t *testing.T) {
	m := newTestMaze(t, 4, 4, 1, world.WithExit(world.Point{X: 2, Y: 0}))
	d := NewExitDigger(m, rand.New(rand.NewSource(1)))

	for i := 0; d.Move(); i++ {
		if i > 100 {
			t.Fatal("digger did not finish on a 4x4 grid")
		}
	}

	for _, p := range []world.Point{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}} {
		if !m.IsPassable(p) {
			t.Errorf("cell %v should be dug", p)
		}
	}
	if got := m.CorridorCount(); got != 3 {
		t.Errorf("CorridorCount() = %d, want 3", got)
	}
	if !m.Finished() {
		t.Error("maze should be marked finished")
	}
	if d.Move() {
		t.Error("Move() after completion should return false")
	}
}

func TestDiggerNeverMergesCorridors(t *testing.T) {
	m := newTestMaze(t, 20, 16, 3)
	d := NewExitDigger(m, rand.New(rand.NewSource(3)))

	for step := 0; ; step++ {
		pos, vec := d.Position(), d.Vector()
		for _, dir := range world.DigDirections {
			d.SetVector(dir)
			if m.IsPassable(pos.Add(dir)) && d.CanMove() {
				t.Fatalf("step %d: CanMove() true towards dug cell %v", step, pos.Add(dir))
			}
		}
		d.SetVector(vec)

		if !d.Move() {
			break
		}
	}
}

func TestDigConnectsEveryCorridorToExit(t *testing.T) {
	sizes := []struct{ width, height int }{
		{4, 4}, {10, 10}, {20, 12}, {32, 32}, {6, 40},
	}

	for _, size := range sizes {
		for seed := int64(1); seed <= 5; seed++ {
			m := newTestMaze(t, size.width, size.height, seed)
			Dig(context.Background(), m, rand.New(rand.NewSource(seed)))

			seen := reachable(m, m.Exit)
			if len(seen) != m.CorridorCount() {
				t.Errorf("%dx%d seed %d: %d of %d corridors reachable from exit",
					size.width, size.height, seed, len(seen), m.CorridorCount())
			}
		}
	}
}

func TestDigFillsEveryEvenCellInBounds(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m := newTestMaze(t, 24, 18, seed)
		Dig(context.Background(), m, rand.New(rand.NewSource(seed)))

		for y := digMargin; y < m.Height; y += 2 {
			for x := digMargin; x < m.Width; x += 2 {
				if !m.IsPassable(world.Point{X: x, Y: y}) {
					t.Errorf("seed %d: even cell (%d,%d) left undug", seed, x, y)
				}
			}
		}
	}
}

func TestDigProducesTree(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		m := newTestMaze(t, 30, 20, seed)
		Dig(context.Background(), m, rand.New(rand.NewSource(seed)))

		edges := 0
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				p := world.Point{X: x, Y: y}
				if !m.IsPassable(p) {
					continue
				}
				oddX, oddY := x%2 != 0, y%2 != 0
				if oddX && oddY {
					t.Fatalf("seed %d: cell %v with two odd coordinates dug", seed, p)
				}
				// Half-step cells join two dug even cells along their odd axis.
				if oddX && !(m.IsPassable(world.Point{X: x - 1, Y: y}) && m.IsPassable(world.Point{X: x + 1, Y: y})) {
					t.Errorf("seed %d: half-step %v not between two corridors", seed, p)
				}
				if oddY && !(m.IsPassable(world.Point{X: x, Y: y - 1}) && m.IsPassable(world.Point{X: x, Y: y + 1})) {
					t.Errorf("seed %d: half-step %v not between two corridors", seed, p)
				}
				if m.IsPassable(p.Add(world.East)) {
					edges++
				}
				if m.IsPassable(p.Add(world.South)) {
					edges++
				}
			}
		}
		if edges != m.CorridorCount()-1 {
			t.Errorf("seed %d: %d adjacencies for %d corridors, want a tree", seed, edges, m.CorridorCount())
		}
	}
}

func TestDigReproducibility(t *testing.T) {
	seed := int64(12345)

	m1 := newTestMaze(t, 40, 30, seed)
	m2 := newTestMaze(t, 40, 30, seed)
	s1 := Dig(context.Background(), m1, rand.New(rand.NewSource(seed)))
	s2 := Dig(context.Background(), m2, rand.New(rand.NewSource(seed)))

	if s1 != s2 {
		t.Errorf("stats mismatch: %+v != %+v", s1, s2)
	}
	if m1.String() != m2.String() {
		t.Error("mazes dug with the same seed should be identical")
	}
}

func TestDigDifferentSeeds(t *testing.T) {
	m1 := newTestMaze(t, 40, 30, 12345)
	m2 := newTestMaze(t, 40, 30, 54321)
	Dig(context.Background(), m1, rand.New(rand.NewSource(12345)))
	Dig(context.Background(), m2, rand.New(rand.NewSource(54321)))

	if m1.String() == m2.String() {
		t.Error("mazes dug with different seeds should not be identical")
	}
}

func TestNewDiggerRelocatesOffCorridor(t *testing.T) {
	m := newTestMaze(t, 10, 10, 1)
	d := NewDigger(m, world.Point{X: 4, Y: 4}, world.DigDirections[0], rand.New(rand.NewSource(1)))

	if d.Done() {
		t.Fatal("digger should have found the exit to start from")
	}
	if d.Position() != m.Exit {
		t.Errorf("Position() = %v, want exit %v", d.Position(), m.Exit)
	}
	if !d.CanMove() {
		t.Error("relocated digger should face a legal direction")
	}
}

func TestPickNewLocationRestoresStateOnFailure(t *testing.T) {
	m := newTestMaze(t, 4, 4, 1, world.WithExit(world.Point{X: 0, Y: 0}))
	start, vec := m.Exit, world.DigDirections[1]
	d := &Digger{
		Mover: NewMover(start, vec, Undug(m), WithinBounds(world.Bounds{Top: digMargin, Right: 4, Bottom: 4, Left: digMargin})),
		maze:  m,
		rng:   rand.New(rand.NewSource(1)),
	}

	if d.PickNewLocation() {
		t.Fatal("PickNewLocation() should fail when nothing can be dug")
	}
	if d.Position() != start || d.Vector() != vec {
		t.Errorf("state after failure = %v %v, want %v %v", d.Position(), d.Vector(), start, vec)
	}
}

// recordSpans routes spans from the global provider into a recorder for the
// rest of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return recorder
}

func TestDigRecordsSpan(t *testing.T) {
	recorder := recordSpans(t)
	m := newTestMaze(t, 20, 12, 7)
	stats := Dig(context.Background(), m, rand.New(rand.NewSource(7)))

	ended := recorder.Ended()
	if len(ended) != 1 || ended[0].Name() != "maze.dig" {
		t.Fatalf("recorded %d spans, want one maze.dig", len(ended))
	}
	attrs := map[attribute.Key]int64{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value.AsInt64()
	}

	want := map[attribute.Key]int64{
		"maze.width":      20,
		"maze.height":     12,
		"dig.steps":       int64(stats.Steps),
		"dig.relocations": int64(stats.Relocations),
		"dig.corridors":   int64(m.CorridorCount()),
	}
	for key, v := range want {
		if got, ok := attrs[key]; !ok || got != v {
			t.Errorf("%s = %d (present %v), want %d", key, got, ok, v)
		}
	}
}
