package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/mazeband/internal/entity"
	"github.com/samdwyer/mazeband/internal/gamedata"
	"github.com/samdwyer/mazeband/internal/schedule"
	"github.com/samdwyer/mazeband/internal/telemetry"
	"github.com/samdwyer/mazeband/internal/ui"
	"github.com/samdwyer/mazeband/internal/world"
)

// activeRunner is a runner being driven by the game loop.
type activeRunner struct {
	runner *entity.Runner
	def    *gamedata.RunnerDef
	handle schedule.Handle
	span   trace.Span
}

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      logrus.FieldLogger
	screen   *ui.Screen
	renderer *ui.Renderer
	registry *gamedata.RunnerRegistry
	rng      *rand.Rand
	seed     int64

	maze        *world.Maze
	loop        *schedule.Loop
	digger      *entity.Digger
	digSpan     trace.Span
	runners     []*activeRunner
	state       State
	running     bool
	lastButtons tcell.ButtonMask
	message     string
}

// New creates a new game instance on the terminal.
func New(cfg Config, log logrus.FieldLogger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(cfg, log, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(cfg Config, log logrus.FieldLogger, screen *ui.Screen) (*Game, error) {
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}
	registry, err := gamedata.LoadRunnerRegistry()
	if err != nil {
		return nil, err
	}
	rng, seed := cfg.RNG()

	return &Game{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		renderer: ui.NewRenderer(screen, palette),
		registry: registry,
		rng:      rng,
		seed:     seed,
		loop:     schedule.NewLoop(),
		state:    StateDigging,
		running:  true,
	}, nil
}

// Run executes the main game loop. Terminal events and scheduler ticks are
// handled on this goroutine only.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()

	if err := g.newMaze(ctx); err != nil {
		return err
	}

	events := g.screen.Events()
	ticker := time.NewTicker(g.cfg.TickResolution)
	defer ticker.Stop()

	for g.running {
		select {
		case <-ctx.Done():
			g.running = false
		case ev, ok := <-events:
			if !ok {
				g.running = false
				break
			}
			g.handleEvent(ctx, ev)
		case now := <-ticker.C:
			g.tick(now)
		}
	}

	g.stopAll()
	return nil
}

// newMaze abandons the current maze and starts digging a new one.
func (g *Game) newMaze(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	defer initSpan.End()

	g.stopAll()
	g.screen.Clear()

	width, height := g.mazeSize()
	opts := []world.Option{world.WithSurface(g.renderer)}
	if g.cfg.Exit != nil {
		opts = append(opts, world.WithExit(*g.cfg.Exit))
	}
	m, err := world.NewMaze(width, height, g.rng, opts...)
	if err != nil {
		initSpan.RecordError(err)
		return fmt.Errorf("failed to create maze: %w", err)
	}
	g.maze = m
	g.state = StateDigging

	_, g.digSpan = tracer.Start(ctx, "maze.dig")
	g.digger = entity.NewExitDigger(m, g.rng)
	g.digger.Run(g.loop, g.cfg.DigInterval)

	initSpan.SetAttributes(
		attribute.Int64("game.seed", g.seed),
		attribute.Int("maze.width", width),
		attribute.Int("maze.height", height),
		attribute.Int("maze.exit_x", m.Exit.X),
		attribute.Int("maze.exit_y", m.Exit.Y),
	)
	g.log.WithFields(logrus.Fields{
		"seed":   g.seed,
		"width":  width,
		"height": height,
	}).Info("digging maze")
	g.setMessage("digging...")
	return nil
}

// mazeSize returns the configured dimensions, filling unset ones from the
// terminal while leaving a row for the status line.
func (g *Game) mazeSize() (int, int) {
	width, height := g.cfg.Width, g.cfg.Height
	screenWidth, screenHeight := g.screen.Size()
	if width == 0 {
		width = evenAtLeast(screenWidth, 4)
	}
	if height == 0 {
		height = evenAtLeast(screenHeight-1, 4)
	}
	return width, height
}

func evenAtLeast(n, floor int) int {
	n -= n % 2
	if n < floor {
		return floor
	}
	return n
}

// tick advances every scheduled entity that is due and redraws.
func (g *Game) tick(now time.Time) {
	g.loop.Advance(now)

	if g.state == StateDigging && g.maze.Finished() {
		g.finishDigging()
	}
	g.reapRunners()
	g.paintRunners()

	g.renderer.RenderMessage(g.status(), g.maze.Height)
	g.renderer.Show()
}

// paintRunners draws every live runner on top of the maze. A runner leaving a
// cell repaints it as plain corridor, which would hide another runner there.
func (g *Game) paintRunners() {
	for _, ar := range g.runners {
		g.renderer.Fill(ar.runner.Position(), ar.runner.Paint())
	}
}

// redraw repaints the whole screen after the terminal changed size.
func (g *Game) redraw() {
	g.renderer.Render(g.maze)
	g.paintRunners()
	g.renderer.RenderMessage(g.status(), g.maze.Height)
	g.screen.Sync()
}

func (g *Game) finishDigging() {
	g.state = StateReady
	stats := g.digger.Stats()
	if g.digSpan != nil {
		g.digSpan.SetAttributes(
			attribute.Int("dig.steps", stats.Steps),
			attribute.Int("dig.relocations", stats.Relocations),
			attribute.Int("dig.corridors", stats.Corridors),
		)
		g.digSpan.End()
		g.digSpan = nil
	}
	g.log.WithFields(logrus.Fields{
		"steps":       stats.Steps,
		"relocations": stats.Relocations,
		"corridors":   stats.Corridors,
	}).Info("maze completely dug")
	g.setMessage("maze dug: click for a runner, shift-click for a wall follower")
}

// reapRunners drops runners whose tasks have stopped.
func (g *Game) reapRunners() {
	active := g.runners[:0]
	for _, ar := range g.runners {
		if !ar.handle.Stopped() {
			active = append(active, ar)
			continue
		}
		g.endRunner(ar)
	}
	for i := len(active); i < len(g.runners); i++ {
		g.runners[i] = nil
	}
	g.runners = active
}

func (g *Game) endRunner(ar *activeRunner) {
	r := ar.runner
	outcome := "stopped"
	switch {
	case r.AtExit():
		outcome = "exit"
	case r.Enclosed():
		outcome = "enclosed"
	}

	ar.span.SetAttributes(
		attribute.String("runner.outcome", outcome),
		attribute.Int("runner.steps", r.Steps()),
	)
	ar.span.End()

	entry := g.log.WithFields(logrus.Fields{
		"runner_id": r.ID(),
		"kind":      ar.def.ID,
		"steps":     r.Steps(),
	})
	if outcome == "enclosed" {
		entry.Warn("runner walled in")
	} else {
		entry.Infof("runner %s", outcome)
	}
	g.setMessage(fmt.Sprintf("%s finished after %d steps", ar.def.Name, r.Steps()))
}

// spawnRunner starts a runner of the given kind. A start on a corridor cell
// is used as is; otherwise the runner is placed at random.
func (g *Game) spawnRunner(ctx context.Context, def *gamedata.RunnerDef, start *world.Point) {
	if def == nil {
		return
	}
	if g.state != StateReady {
		g.setMessage("still digging...")
		return
	}

	strategy, err := newStrategy(def, g.rng)
	if err != nil {
		g.log.WithError(err).Error("cannot build runner")
		return
	}

	var r *entity.Runner
	if start != nil && g.maze.IsPassable(*start) {
		vector := world.RunDirections[g.rng.Intn(len(world.RunDirections))]
		r, err = entity.NewRunnerAt(g.maze, strategy, world.Paint(def.ID), *start, vector)
	} else {
		r, err = entity.NewRunner(g.maze, strategy, world.Paint(def.ID), g.rng)
	}
	if err != nil {
		g.log.WithError(err).Warn("cannot place runner")
		return
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "runner.run")
	span.SetAttributes(
		attribute.String("runner.id", r.ID()),
		attribute.String("runner.kind", def.ID),
		attribute.Int("runner.start_x", r.Position().X),
		attribute.Int("runner.start_y", r.Position().Y),
	)

	g.runners = append(g.runners, &activeRunner{
		runner: r,
		def:    def,
		handle: r.Run(g.loop, g.cfg.RunInterval),
		span:   span,
	})
	g.log.WithFields(logrus.Fields{
		"runner_id": r.ID(),
		"kind":      def.ID,
		"x":         r.Position().X,
		"y":         r.Position().Y,
	}).Info("runner spawned")
	g.setMessage(def.Name + " running")
}

// handleEvent processes a single terminal event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		g.redraw()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'r':
			g.spawnRunner(ctx, g.registry.ForModifier(false), nil)
		case 'R':
			g.spawnRunner(ctx, g.registry.ForModifier(true), nil)
		case 'n', 'N':
			if err := g.newMaze(ctx); err != nil {
				g.log.WithError(err).Error("cannot dig new maze")
				g.running = false
			}
		}
	}
}

// handleMouseEvent spawns a runner on the press of the primary button.
// Holding shift selects the modifier runner.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && g.lastButtons&tcell.Button1 == 0
	g.lastButtons = buttons
	if !pressed {
		return
	}

	x, y := ev.Position()
	start := world.Point{X: x, Y: y}
	shift := ev.Modifiers()&tcell.ModShift != 0
	g.spawnRunner(ctx, g.registry.ForModifier(shift), &start)
}

func (g *Game) setMessage(msg string) {
	g.message = msg
}

func (g *Game) status() string {
	return fmt.Sprintf("[%s] runners:%d  %s  (r/R runner, n new maze, q quit)",
		g.state, len(g.runners), g.message)
}

// stopAll cancels every scheduled entity and closes open spans.
func (g *Game) stopAll() {
	g.loop.StopAll()
	g.reapRunners()
	if g.digSpan != nil {
		g.digSpan.SetAttributes(attribute.Bool("dig.abandoned", true))
		g.digSpan.End()
		g.digSpan = nil
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
