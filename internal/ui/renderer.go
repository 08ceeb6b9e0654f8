package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazeband/internal/gamedata"
	"github.com/samdwyer/mazeband/internal/world"
)

// Renderer draws maze cells onto the screen. It implements world.Surface.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Fill draws a single cell with the paint's glyph and style.
func (r *Renderer) Fill(p world.Point, paint world.Paint) {
	def := r.palette.Lookup(paint)
	r.screen.SetContent(p.X, p.Y, def.GlyphRune(), def.Style())
}

// Render redraws every cell of the maze.
func (r *Renderer) Render(m *world.Maze) {
	r.screen.Clear()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := world.Point{X: x, Y: y}
			r.Fill(p, m.TileAt(p).Paint())
		}
	}
}

// RenderMessage displays a message on row y, blanking the rest of the row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	width, _ := r.screen.Size()
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
		i++
	}
	for ; i < width; i++ {
		r.screen.SetContent(i, y, ' ', style)
	}
}

// Show flushes pending drawing to the terminal.
func (r *Renderer) Show() {
	r.screen.Show()
}

var _ world.Surface = (*Renderer)(nil)
