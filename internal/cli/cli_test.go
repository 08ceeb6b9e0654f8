package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazeband/internal/game"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRenderPrintsMaze(t *testing.T) {
	out, _, err := execute(t, "render", "--seed", "3", "--width", "10", "--height", "8")
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 8)
	for _, row := range rows {
		assert.Len(t, row, 10)
	}
	assert.Equal(t, byte('E'), rows[4][8], "default exit")
}

func TestRenderIsReproducible(t *testing.T) {
	first, _, err := execute(t, "render", "--seed", "99", "--width", "30", "--height", "20")
	require.NoError(t, err)
	second, _, err := execute(t, "render", "--seed", "99", "--width", "30", "--height", "20")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderJSON(t *testing.T) {
	out, _, err := execute(t, "render", "--seed", "3", "--width", "10", "--height", "8", "--json")
	require.NoError(t, err)

	var got renderOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, int64(3), got.Seed)
	assert.Len(t, got.Rows, 8)
	assert.Positive(t, got.Corridors)
}

func TestRenderUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 3\nwidth: 12\nheight: 6\nexit:\n  x: 2\n  y: 0\n"), 0o644))

	out, _, err := execute(t, "render", "--config", path)
	require.NoError(t, err)

	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 6)
	assert.Equal(t, "##E#########", rows[0])
}

func TestSolveJSON(t *testing.T) {
	out, stderr, err := execute(t, "solve", "right-hand", "--seed", "5", "--width", "24", "--height", "16", "--json")
	require.NoError(t, err)

	var result game.SimulationResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Runners, 1)
	assert.Equal(t, "right-hand", result.Runners[0].Kind)
	assert.True(t, result.Runners[0].ReachedExit)
	assert.Contains(t, stderr, "runner finished")
}

func TestSolveText(t *testing.T) {
	out, _, err := execute(t, "solve", "--seed", "5", "--width", "24", "--height", "16", "--show", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "seed 5, 24x16")
	assert.Contains(t, out, "random")
	assert.Contains(t, out, "right-hand")
	assert.Contains(t, out, "reached exit")
}

func TestSolveLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mazeband.log")
	_, stderr, err := execute(t, "solve", "right-hand", "--seed", "5", "--width", "24", "--height", "16",
		"--log-file", path, "--log-format", "json")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"runner finished"`)
}

func TestSolveUnknownKind(t *testing.T) {
	_, _, err := execute(t, "solve", "minotaur", "--seed", "1", "--width", "10", "--height", "10")
	assert.ErrorContains(t, err, "minotaur")
}

func TestInvalidDimensions(t *testing.T) {
	_, _, err := execute(t, "render", "--width", "11")
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestExecuteReportsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"text", []string{"render", "--width", "11"}, "Error: invalid configuration"},
		{"json", []string{"render", "--width", "11", "--json"}, `"message": "invalid configuration`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCommand()
			var stderr bytes.Buffer
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&stderr)
			cmd.SetArgs(tt.args)

			assert.Equal(t, 1, Execute(context.Background(), cmd))
			assert.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestPlayLoggerTarget(t *testing.T) {
	flags := &rootFlags{}
	log, closeLog, err := flags.newLogger(nil)
	require.NoError(t, err)
	closeLog()
	assert.Equal(t, io.Discard, log.Out, "the terminal belongs to the game")

	flags.logFile = filepath.Join(t.TempDir(), "play.log")
	log, closeLog, err = flags.newLogger(nil)
	require.NoError(t, err)
	log.Info("digging maze")
	closeLog()

	data, err := os.ReadFile(flags.logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digging maze")
}
