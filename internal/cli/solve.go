package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mazeband/internal/game"
)

type solveFlags struct {
	showMaze bool
}

func newSolveCommand(root *rootFlags) *cobra.Command {
	flags := &solveFlags{}

	cmd := &cobra.Command{
		Use:   "solve [kind...]",
		Short: "Race runners through a maze without a terminal",
		Long: `Dig a maze without pausing, then run one runner of each kind given
from a shared start until every runner has stopped. With no kinds, every
known runner kind runs.

Examples:
  mazeband solve --seed 42
  mazeband solve right-hand --width 40 --height 20 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := root.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			result, err := game.Simulate(cmd.Context(), cfg, args, log)
			if err != nil {
				return err
			}
			if root.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			printSolve(cmd.OutOrStdout(), result, flags.showMaze)
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.showMaze, "show", false, "Print the maze before the results")
	return cmd
}

func printSolve(w io.Writer, result *game.SimulationResult, showMaze bool) {
	if showMaze {
		fmt.Fprint(w, result.Maze.String())
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "seed %d, %dx%d, exit (%d,%d), %d corridors\n",
		result.Seed, result.Width, result.Height, result.Exit.X, result.Exit.Y, result.Corridors)
	for _, rr := range result.Runners {
		outcome := "gave up"
		switch {
		case rr.ReachedExit:
			outcome = "reached exit"
		case rr.Enclosed:
			outcome = "walled in"
		}
		fmt.Fprintf(w, "%-12s from (%d,%d): %s after %d steps\n",
			rr.Kind, rr.Start.X, rr.Start.Y, outcome, rr.Steps)
	}
}
