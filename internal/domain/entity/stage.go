// Package entity holds the stage model the playing scene walks around in.
package entity

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileGoal
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage represents the current stage's tile data. Spawn is in tile units.
type Stage struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int
}

// GetTile returns the tile at the given tile coordinates.
// Everything outside the stage is a solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// IsSolid checks if the tile at tile coordinates blocks movement
func (s *Stage) IsSolid(tx, ty int) bool {
	return s.GetTile(tx, ty).Solid
}

// IsGoal checks if the tile at tile coordinates is a goal
func (s *Stage) IsGoal(tx, ty int) bool {
	return s.GetTile(tx, ty).Type == TileGoal
}

// PixelSize returns the stage size in pixels
func (s *Stage) PixelSize() (int, int) {
	return s.Width * s.TileSize, s.Height * s.TileSize
}
