package world

// Paint names what a cell should be drawn as.
// Runner kinds use their registry ID as paint.
type Paint string

const (
	PaintWall     Paint = "wall"
	PaintCorridor Paint = "corridor"
	PaintExit     Paint = "exit"
)

// Surface receives cell-level drawing updates. Calls are fire and forget.
type Surface interface {
	Fill(p Point, paint Paint)
}

// NopSurface discards all drawing.
type NopSurface struct{}

// Fill does nothing.
func (NopSurface) Fill(Point, Paint) {}

// SurfaceFunc adapts a function to the Surface interface.
type SurfaceFunc func(p Point, paint Paint)

// Fill calls f(p, paint).
func (f SurfaceFunc) Fill(p Point, paint Paint) {
	f(p, paint)
}
