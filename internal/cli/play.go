package cli

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/mazeband/internal/game"
)

func newPlayCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Dig a maze and spawn runners interactively",
		Long: `Dig a maze in the terminal, then spawn runners into it.

Controls:
  click        spawn a random-turn runner at the cell (or anywhere if it is a wall)
  shift-click  spawn a right-hand runner
  r / R        spawn a random-turn / right-hand runner at random
  n            dig a new maze
  q, Esc       quit

The terminal is taken over while playing, so logs are dropped unless
--log-file is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := flags.newLogger(nil)
			if err != nil {
				return err
			}
			defer closeLog()

			g, err := game.New(cfg, log)
			if err != nil {
				return err
			}
			return g.Run(cmd.Context())
		},
	}
}
