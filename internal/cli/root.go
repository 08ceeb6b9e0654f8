// Package cli implements the cobra commands for mazeband.
//
// The root command plays the interactive game; solve and render run
// headless and print their results.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/samdwyer/mazeband/internal/game"
	"github.com/samdwyer/mazeband/internal/logger"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootFlags holds the persistent flags shared by every command.
type rootFlags struct {
	configPath string
	seed       int64
	width      int
	height     int
	logLevel   string
	logFormat  string
	logFile    string
	jsonOutput bool
}

// NewRootCommand creates the root command with every subcommand registered.
// Running it without a subcommand starts the interactive game.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}
	play := newPlayCommand(flags)

	rootCmd := &cobra.Command{
		Use:   "mazeband",
		Short: "Dig a maze in the terminal and watch runners find the exit",
		Long: `mazeband digs a random maze one step at a time, then lets you drop
runners into it. A click spawns a runner that turns at random; a
shift-click spawns one that keeps its right hand on the wall.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
		RunE:          play.RunE,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file layered over the defaults")
	pf.Int64Var(&flags.seed, "seed", 0, "Random seed; 0 picks one from the clock")
	pf.IntVar(&flags.width, "width", 0, "Maze width in cells (even)")
	pf.IntVar(&flags.height, "height", 0, "Maze height in cells (even)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format (text or json)")
	pf.StringVar(&flags.logFile, "log-file", "", "Append logs to this file instead of stderr")
	pf.BoolVar(&flags.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(play)
	rootCmd.AddCommand(newSolveCommand(flags))
	rootCmd.AddCommand(newRenderCommand(flags))

	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, rootCmd *cobra.Command) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		asJSON, _ := rootCmd.PersistentFlags().GetBool("json")
		printError(rootCmd.ErrOrStderr(), err, asJSON)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error, asJSON bool) {
	if !asJSON {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	data, _ := json.MarshalIndent(map[string]any{
		"error": map[string]any{"message": err.Error()},
	}, "", "  ")
	fmt.Fprintln(w, string(data))
}

// loadConfig layers the --config file, the environment and any flags set on
// the command line.
func (f *rootFlags) loadConfig(cmd *cobra.Command) (game.Config, error) {
	cfg, err := game.LoadConfig(f.configPath)
	if err != nil {
		return game.Config{}, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("width") {
		cfg.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = f.height
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// newLogger builds the command logger. Logs go to --log-file when set and to
// out otherwise, and are dropped when out is nil. The returned close function
// releases the file.
func (f *rootFlags) newLogger(out io.Writer) (*logrus.Logger, func(), error) {
	closeFn := func() {}
	if f.logFile == "" && out == nil {
		return logger.Discard(), closeFn, nil
	}
	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = file
		closeFn = func() { file.Close() }
	}
	log := logger.New(logger.Options{
		Level:  f.logLevel,
		Format: f.logFormat,
		Output: out,
	})
	return log, closeFn, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
