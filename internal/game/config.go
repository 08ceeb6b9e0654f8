package game

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/samdwyer/mazeband/internal/gamedata"
	"github.com/samdwyer/mazeband/internal/world"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible mazes.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	// Maze dimensions; must be even. Zero fits the maze to the terminal,
	// or uses world.DefaultWidth/DefaultHeight when there is no terminal.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Exit overrides the default exit cell.
	Exit *world.Point `yaml:"exit,omitempty"`

	DigInterval    time.Duration `yaml:"dig_interval"`    // Pause between digger steps
	RunInterval    time.Duration `yaml:"run_interval"`    // Pause between runner steps
	TickResolution time.Duration `yaml:"tick_resolution"` // How often the game loop wakes up

	// MaxRunnerSteps caps headless runs. Zero means no cap.
	MaxRunnerSteps int `yaml:"max_runner_steps"`
}

// Environment variables that override configuration values.
const (
	EnvSeed        = "MAZEBAND_SEED"
	EnvWidth       = "MAZEBAND_WIDTH"
	EnvHeight      = "MAZEBAND_HEIGHT"
	EnvDigInterval = "MAZEBAND_DIG_INTERVAL"
	EnvRunInterval = "MAZEBAND_RUN_INTERVAL"
)

// ErrInvalidConfig is returned for configuration values that cannot work.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns the embedded defaults.
func DefaultConfig() (Config, error) {
	return gamedata.Load[Config]("defaults.yaml")
}

// LoadConfig layers the embedded defaults, the YAML file at path (if any)
// and environment overrides, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		if err := gamedata.LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail deep inside the maze.
func (c Config) Validate() error {
	if c.Width < 0 || c.Width%2 != 0 {
		return fmt.Errorf("%w: width %d must be even", ErrInvalidConfig, c.Width)
	}
	if c.Height < 0 || c.Height%2 != 0 {
		return fmt.Errorf("%w: height %d must be even", ErrInvalidConfig, c.Height)
	}
	if c.DigInterval < 0 || c.RunInterval < 0 {
		return fmt.Errorf("%w: intervals must not be negative", ErrInvalidConfig)
	}
	if c.TickResolution <= 0 {
		return fmt.Errorf("%w: tick resolution must be positive", ErrInvalidConfig)
	}
	if c.MaxRunnerSteps < 0 {
		return fmt.Errorf("%w: max runner steps must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RNG returns a random source for the configured seed, generating one from
// the clock when the seed is 0, along with the seed used.
func (c Config) RNG() (*rand.Rand, int64) {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, EnvSeed, err)
		}
		c.Seed = seed
	}
	for key, dst := range map[string]*int{EnvWidth: &c.Width, EnvHeight: &c.Height} {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s must be an integer: %v", ErrInvalidConfig, key, err)
			}
			*dst = n
		}
	}
	for key, dst := range map[string]*time.Duration{EnvDigInterval: &c.DigInterval, EnvRunInterval: &c.RunInterval} {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%w: %s must be a duration: %v", ErrInvalidConfig, key, err)
			}
			*dst = d
		}
	}
	return nil
}
