package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/sceneloop/internal/domain/entity"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
)

func TestLoadStage(t *testing.T) {
	mapping := map[string]config.TileMappingConfig{
		"#": {Type: "wall", Solid: true},
		".": {Type: "empty", Solid: false},
		"G": {Type: "goal", Solid: false},
	}

	t.Run("loads basic stage", func(t *testing.T) {
		cfg := &config.StageConfig{
			ID:          "box",
			Name:        "Box",
			Size:        config.StageSizeConfig{TileSize: 16},
			PlayerSpawn: config.PositionConfig{X: 1, Y: 1},
			Layers: config.LayersConfig{
				Collision: []string{
					"###",
					"#.#",
					"###",
				},
			},
			TileMapping: mapping,
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		assert.Equal(t, "Box", stage.Name)
		assert.Equal(t, 3, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16, stage.TileSize)
		assert.Equal(t, 1, stage.SpawnX)
		assert.Equal(t, 1, stage.SpawnY)
		assert.True(t, stage.IsSolid(0, 0))
		assert.False(t, stage.IsSolid(1, 1))
	})

	t.Run("maps goal tiles", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{TileSize: 8},
			Layers:      config.LayersConfig{Collision: []string{".G"}},
			TileMapping: mapping,
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		assert.True(t, stage.IsGoal(1, 0))
		assert.Equal(t, entity.TileGoal, stage.GetTile(1, 0).Type)
		assert.False(t, stage.GetTile(1, 0).Solid)
	})

	t.Run("pads short rows and ignores unknown glyphs", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size: config.StageSizeConfig{TileSize: 16},
			Layers: config.LayersConfig{
				Collision: []string{
					"....",
					".?",
				},
			},
			TileMapping: mapping,
		}

		stage, err := LoadStage(cfg)
		require.NoError(t, err)

		assert.Equal(t, 4, stage.Width)
		assert.Equal(t, entity.TileEmpty, stage.GetTile(1, 1).Type)
		assert.Equal(t, entity.TileEmpty, stage.GetTile(3, 1).Type)
		assert.False(t, stage.IsSolid(3, 1))
	})

	t.Run("rejects empty layout", func(t *testing.T) {
		_, err := LoadStage(&config.StageConfig{Size: config.StageSizeConfig{TileSize: 16}})
		assert.ErrorIs(t, err, ErrEmptyStage)
	})

	t.Run("rejects bad tile size", func(t *testing.T) {
		_, err := LoadStage(&config.StageConfig{
			Layers: config.LayersConfig{Collision: []string{"."}},
		})
		assert.Error(t, err)
	})

	t.Run("rejects spawn inside wall", func(t *testing.T) {
		cfg := &config.StageConfig{
			Size:        config.StageSizeConfig{TileSize: 16},
			Layers:      config.LayersConfig{Collision: []string{"#."}},
			TileMapping: mapping,
		}
		_, err := LoadStage(cfg)
		assert.Error(t, err)
	})
}

func TestLoadStage_Demo(t *testing.T) {
	cfg, err := config.NewLoader("../../../cmd/game/configs").LoadStage("demo")
	require.NoError(t, err)

	stage, err := LoadStage(cfg)
	require.NoError(t, err)

	w, h := stage.PixelSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	goals := 0
	for y := 0; y < stage.Height; y++ {
		for x := 0; x < stage.Width; x++ {
			if stage.IsGoal(x, y) {
				goals++
			}
		}
	}
	assert.Equal(t, 1, goals)
}

func TestReadStage(t *testing.T) {
	loader := config.NewLoader("../../../cmd/game/configs")

	stage, err := ReadStage(context.Background(), loader, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Demo Maze", stage.Name)

	_, err = ReadStage(context.Background(), loader, "missing")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ReadStage(ctx, loader, "demo")
	assert.ErrorIs(t, err, context.Canceled)
}
