package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazeband/internal/world"
)

// PaintDef describes how one kind of cell is drawn.
type PaintDef struct {
	Paint      world.Paint `yaml:"paint"`
	Glyph      string      `yaml:"glyph"`
	Color      string      `yaml:"color"`
	Background string      `yaml:"background,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (p *PaintDef) GlyphRune() rune {
	if len(p.Glyph) == 0 {
		return '?'
	}
	return rune(p.Glyph[0])
}

// Style returns the tcell style for the paint. Unparseable colors fall back
// to the terminal defaults.
func (p *PaintDef) Style() tcell.Style {
	style := tcell.StyleDefault
	if fg, err := ParseHexColor(p.Color); err == nil {
		style = style.Foreground(fg)
	}
	if p.Background != "" {
		if bg, err := ParseHexColor(p.Background); err == nil {
			style = style.Background(bg)
		}
	}
	return style
}

// PaletteFile represents the structure of palette.yaml.
type PaletteFile struct {
	Paints []PaintDef `yaml:"paints"`
}

// Palette maps paints to their definitions.
type Palette struct {
	paints map[world.Paint]*PaintDef
}

// NewPalette creates a palette from paint definitions.
func NewPalette(defs []PaintDef) *Palette {
	p := &Palette{paints: make(map[world.Paint]*PaintDef, len(defs))}
	for i := range defs {
		p.paints[defs[i].Paint] = &defs[i]
	}
	return p
}

// LoadPalette loads the embedded palette.yaml.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.yaml")
	if err != nil {
		return nil, err
	}
	return NewPalette(file.Paints), nil
}

// Lookup returns the definition for paint, or a plain '?' when unknown.
func (p *Palette) Lookup(paint world.Paint) *PaintDef {
	if def, ok := p.paints[paint]; ok {
		return def
	}
	return &PaintDef{Paint: paint, Glyph: "?", Color: "#FFFFFF"}
}
