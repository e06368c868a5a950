package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/younwookim/sceneloop/internal/domain/entity"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
)

var ErrEmptyStage = errors.New("stage has no collision rows")

// LoadStage converts a StageConfig into a Stage entity.
// The widest collision row sets the stage width; short rows are padded
// with empty tiles.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	if len(cfg.Layers.Collision) == 0 {
		return nil, ErrEmptyStage
	}
	if cfg.Size.TileSize <= 0 {
		return nil, fmt.Errorf("stage %s: tile size must be positive, got %d", cfg.ID, cfg.Size.TileSize)
	}

	tileWidth := 0
	for _, row := range cfg.Layers.Collision {
		if n := len([]rune(row)); n > tileWidth {
			tileWidth = n
		}
	}
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range []rune(row) {
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}

			var tileType entity.TileType
			switch mapping.Type {
			case "wall":
				tileType = entity.TileWall
			case "goal":
				tileType = entity.TileGoal
			default:
				tileType = entity.TileEmpty
			}

			tiles[y][x] = entity.Tile{
				Type:  tileType,
				Solid: mapping.Solid,
			}
		}
	}

	stage := &entity.Stage{
		Name:     cfg.Name,
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}
	if stage.IsSolid(stage.SpawnX, stage.SpawnY) {
		return nil, fmt.Errorf("stage %s: spawn (%d,%d) is inside a wall", cfg.ID, stage.SpawnX, stage.SpawnY)
	}
	return stage, nil
}

// ReadStage reads the named stage through loader and builds it. ctx is
// checked between the read and the build.
func ReadStage(ctx context.Context, loader *config.Loader, name string) (*entity.Stage, error) {
	cfg, err := loader.LoadStage(name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadStage(cfg)
}
