// Package world provides maze occupancy state and the value types entities move with.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall represents an undug cell.
	TileWall Tile = '#'
	// TileFloor represents a dug corridor cell.
	TileFloor Tile = '.'
	// TileExit marks the maze exit.
	TileExit Tile = 'E'
)

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}

// Paint returns the surface paint used to draw the tile.
func (t Tile) Paint() Paint {
	switch t {
	case TileFloor:
		return PaintCorridor
	case TileExit:
		return PaintExit
	default:
		return PaintWall
	}
}
