package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazeband/internal/entity"
	"github.com/samdwyer/mazeband/internal/gamedata"
	"github.com/samdwyer/mazeband/internal/schedule"
	"github.com/samdwyer/mazeband/internal/telemetry"
	"github.com/samdwyer/mazeband/internal/world"
)

// RunnerResult reports how a single headless runner fared.
type RunnerResult struct {
	ID          string      `json:"id"`
	Kind        string      `json:"kind"`
	Start       world.Point `json:"start"`
	Steps       int         `json:"steps"`
	ReachedExit bool        `json:"reached_exit"`
	Enclosed    bool        `json:"enclosed"`
}

// SimulationResult is the outcome of digging a maze and racing runners
// through it without a terminal.
type SimulationResult struct {
	Seed        int64          `json:"seed"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Exit        world.Point    `json:"exit"`
	Corridors   int            `json:"corridors"`
	DigSteps    int            `json:"dig_steps"`
	Relocations int            `json:"relocations"`
	Runners     []RunnerResult `json:"runners"`

	Maze *world.Maze `json:"-"`
}

// NewSimulationMaze digs a complete maze for cfg without pausing between
// steps. Unset dimensions fall back to world.DefaultWidth/DefaultHeight.
func NewSimulationMaze(ctx context.Context, cfg Config) (*SimulationResult, error) {
	rng, seed := cfg.RNG()

	width, height := cfg.Width, cfg.Height
	if width == 0 {
		width = world.DefaultWidth
	}
	if height == 0 {
		height = world.DefaultHeight
	}
	var opts []world.Option
	if cfg.Exit != nil {
		opts = append(opts, world.WithExit(*cfg.Exit))
	}
	m, err := world.NewMaze(width, height, rng, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maze: %w", err)
	}
	stats := entity.Dig(ctx, m, rng)

	return &SimulationResult{
		Seed:        seed,
		Width:       width,
		Height:      height,
		Exit:        m.Exit,
		Corridors:   stats.Corridors,
		DigSteps:    stats.Steps,
		Relocations: stats.Relocations,
		Maze:        m,
	}, nil
}

// Simulate digs a maze and runs one runner of each kind through it until
// every runner has stopped or cfg.MaxRunnerSteps rounds have passed.
// Runners all start from the same corridor cell facing the same way.
func Simulate(ctx context.Context, cfg Config, kinds []string, log logrus.FieldLogger) (*SimulationResult, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "simulate")
	defer span.End()

	registry, err := gamedata.LoadRunnerRegistry()
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		for _, def := range registry.All() {
			kinds = append(kinds, def.ID)
		}
	}
	defs, err := registry.Resolve(kinds)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result, err := NewSimulationMaze(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	m := result.Maze
	log.WithFields(logrus.Fields{
		"seed":        result.Seed,
		"width":       result.Width,
		"height":      result.Height,
		"corridors":   result.Corridors,
		"relocations": result.Relocations,
	}).Debug("maze dug")

	// Runners draw their own randomness from a source derived from the seed
	// so adding a runner kind does not change the maze.
	rng := rand.New(rand.NewSource(result.Seed + 1))
	start, ok := m.FindOpenLocation(func(world.Point) bool { return true })
	if !ok {
		return nil, entity.ErrNoCorridor
	}
	vector := world.RunDirections[rng.Intn(len(world.RunDirections))]

	loop := schedule.NewLoop()
	runners := make([]*entity.Runner, 0, len(defs))
	for _, def := range defs {
		strategy, err := newStrategy(def, rng)
		if err != nil {
			return nil, err
		}
		r, err := entity.NewRunnerAt(m, strategy, world.Paint(def.ID), start, vector)
		if err != nil {
			return nil, err
		}
		r.Run(loop, 0)
		runners = append(runners, r)
	}
	rounds := loop.Drain(cfg.MaxRunnerSteps)
	loop.StopAll()

	for i, r := range runners {
		rr := RunnerResult{
			ID:          r.ID(),
			Kind:        defs[i].ID,
			Start:       start,
			Steps:       r.Steps(),
			ReachedExit: r.AtExit(),
			Enclosed:    r.Enclosed(),
		}
		result.Runners = append(result.Runners, rr)
		log.WithFields(logrus.Fields{
			"runner_id":    rr.ID,
			"kind":         rr.Kind,
			"steps":        rr.Steps,
			"reached_exit": rr.ReachedExit,
		}).Info("runner finished")
	}

	span.SetAttributes(
		attribute.Int64("game.seed", result.Seed),
		attribute.Int("simulate.runners", len(runners)),
		attribute.Int("simulate.rounds", rounds),
	)
	return result, nil
}
