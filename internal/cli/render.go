package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samdwyer/mazeband/internal/game"
	"github.com/samdwyer/mazeband/internal/world"
)

// renderOutput is the JSON form of a rendered maze.
type renderOutput struct {
	Seed      int64       `json:"seed"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Exit      world.Point `json:"exit"`
	Corridors int         `json:"corridors"`
	Rows      []string    `json:"rows"`
}

func newRenderCommand(root *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Dig a maze and print it as text",
		Long: `Dig a maze without pausing and print it, one row per line.
Walls are '#', corridors '.' and the exit 'E'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			result, err := game.NewSimulationMaze(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			text := result.Maze.String()
			if !root.jsonOutput {
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), renderOutput{
				Seed:      result.Seed,
				Width:     result.Width,
				Height:    result.Height,
				Exit:      result.Exit,
				Corridors: result.Corridors,
				Rows:      strings.Split(strings.TrimSuffix(text, "\n"), "\n"),
			})
		},
	}
}
