package ui

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/mazeband/internal/gamedata"
	"github.com/samdwyer/mazeband/internal/world"
)

func newTestRenderer(t *testing.T) (*Screen, *Renderer) {
	t.Helper()
	screen, err := NewSimulationScreen(20, 10)
	require.NoError(t, err)
	t.Cleanup(screen.Close)

	palette, err := gamedata.LoadPalette()
	require.NoError(t, err)
	return screen, NewRenderer(screen, palette)
}

func TestRendererFillUsesPalette(t *testing.T) {
	screen, renderer := newTestRenderer(t)

	renderer.Fill(world.Point{X: 3, Y: 4}, world.PaintExit)
	renderer.Fill(world.Point{X: 5, Y: 4}, world.Paint("right-hand"))

	r, _ := screen.Content(3, 4)
	assert.Equal(t, 'E', r)
	r, _ = screen.Content(5, 4)
	assert.Equal(t, '@', r)
}

func TestRendererAsMazeSurface(t *testing.T) {
	screen, renderer := newTestRenderer(t)

	m, err := world.NewMaze(6, 4, rand.New(rand.NewSource(1)), world.WithSurface(renderer))
	require.NoError(t, err)
	m.Dig(world.Point{X: 2, Y: 2})

	r, _ := screen.Content(0, 0)
	assert.Equal(t, '#', r, "undug cells are drawn as walls")
	r, _ = screen.Content(m.Exit.X, m.Exit.Y)
	assert.Equal(t, 'E', r)
	r, _ = screen.Content(2, 2)
	assert.Equal(t, ' ', r, "corridors are drawn blank")

	renderer.Render(m)
	r, _ = screen.Content(2, 2)
	assert.Equal(t, ' ', r)
}

func TestRenderMessage(t *testing.T) {
	screen, renderer := newTestRenderer(t)

	renderer.RenderMessage("dug", 9)
	r, _ := screen.Content(0, 9)
	assert.Equal(t, 'd', r)
	r, _ = screen.Content(3, 9)
	assert.Equal(t, ' ', r)
}

func TestScreenCloseStopsEventForwarding(t *testing.T) {
	screen, err := NewSimulationScreen(10, 5)
	require.NoError(t, err)

	events := screen.Events()
	sim, ok := screen.screen.(tcell.SimulationScreen)
	require.True(t, ok)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	// Nobody reads the pending key; Close must still return.
	screen.Close()

	_, open := <-events
	assert.False(t, open, "events channel should be closed")
}
