package game

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/mazeband/internal/entity"
	"github.com/samdwyer/mazeband/internal/gamedata"
)

// newStrategy builds the turn strategy named by a runner definition.
func newStrategy(def *gamedata.RunnerDef, rng *rand.Rand) (entity.Strategy, error) {
	switch def.Strategy {
	case gamedata.StrategyRandom:
		return entity.NewRandomTurns(rng), nil
	case gamedata.StrategyRightHand:
		return entity.RightHand{}, nil
	default:
		return nil, fmt.Errorf("%w: %s uses strategy %q", gamedata.ErrUnknownRunner, def.ID, def.Strategy)
	}
}
