// Package playing provides the main gameplay scene: walk a cursor through a
// tile maze to the goal.
package playing

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/system"
	"github.com/younwookim/sceneloop/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG     = color.RGBA{26, 26, 46, 255}
	colorWall   = color.RGBA{80, 80, 100, 255}
	colorGoal   = color.RGBA{255, 215, 0, 255}
	colorPlayer = color.RGBA{100, 200, 100, 255}
	colorTrail  = color.RGBA{100, 200, 100, 60}
)

// StageLoader loads a stage by name. It runs off the game goroutine and
// should honor ctx.
type StageLoader func(ctx context.Context, name string) (*entity.Stage, error)

// Session is the run state that outlives a single Playing instance, so
// pushing the pause scene and popping back resumes where the player was.
type Session struct {
	Stage  string
	X, Y   int
	Moves  int
	Active bool
}

// Reset forgets the current run.
func (s *Session) Reset() {
	*s = Session{Stage: s.Stage}
}

// Playing is the gameplay scene.
type Playing struct {
	scene.Base

	nav     scene.Navigator
	input   system.Controls
	load    StageLoader
	session *Session
	log     zerolog.Logger
	screenW int
	screenH int

	blocking bool
	cancel   context.CancelFunc
	done     chan struct{}
	stage    *entity.Stage
	loadErr  error

	visited map[[2]int]bool
	leaving bool
}

// New creates a playing scene for session.Stage.
func New(nav scene.Navigator, input system.Controls, load StageLoader, session *Session, screenW, screenH int, log zerolog.Logger) *Playing {
	return &Playing{
		nav:     nav,
		input:   input,
		load:    load,
		session: session,
		log:     log,
		screenW: screenW,
		screenH: screenH,
	}
}

// SetBlocking makes Create wait for the stage, so the scene is ready on its
// first tick. Recorded and replayed runs need this to line up tick for tick.
func (p *Playing) SetBlocking(blocking bool) {
	p.blocking = blocking
}

// Create starts loading the stage in the background.
func (p *Playing) Create() error {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	name := p.session.Stage
	var stage *entity.Stage
	g.Go(func() error {
		s, err := p.load(ctx, name)
		if err != nil {
			return fmt.Errorf("load stage %s: %w", name, err)
		}
		stage = s
		return nil
	})

	go func() {
		defer close(p.done)
		// stage is only read after done is closed
		err := g.Wait()
		p.stage, p.loadErr = stage, err
	}()
	if p.blocking {
		<-p.done
	}
	return nil
}

// IsReady reports whether the stage load has finished, successfully or not.
func (p *Playing) IsReady() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Start fails when the stage could not be loaded. Otherwise it places the
// player at the spawn point, or where the session left off.
func (p *Playing) Start() error {
	if p.loadErr != nil {
		return p.loadErr
	}

	if !p.session.Active {
		p.session.X, p.session.Y = p.stage.SpawnX, p.stage.SpawnY
		p.session.Moves = 0
		p.session.Active = true
	}
	p.visited = map[[2]int]bool{{p.session.X, p.session.Y}: true}
	p.log.Debug().
		Str("stage", p.stage.Name).
		Int("x", p.session.X).
		Int("y", p.session.Y).
		Msg("stage started")
	return nil
}

// Stage returns the loaded stage, or nil before the scene is ready.
func (p *Playing) Stage() *entity.Stage {
	return p.stage
}

// Position returns the player's tile position.
func (p *Playing) Position() (int, int) {
	return p.session.X, p.session.Y
}

// Update moves the player one tile per repeat and handles the menu keys.
func (p *Playing) Update() error {
	if p.leaving {
		return nil
	}

	switch {
	case p.input.IsTriggered(system.ActionMenu):
		p.leaving = true
		p.nav.SnapForBackground()
		return p.nav.Push(scene.PauseID)
	case p.input.IsTriggered(system.ActionCancel):
		return p.finish("quit")
	}

	dx, dy := 0, 0
	switch {
	case p.input.IsRepeated(system.ActionLeft):
		dx = -1
	case p.input.IsRepeated(system.ActionRight):
		dx = 1
	case p.input.IsRepeated(system.ActionUp):
		dy = -1
	case p.input.IsRepeated(system.ActionDown):
		dy = 1
	}
	if dx == 0 && dy == 0 {
		return nil
	}

	nx, ny := p.session.X+dx, p.session.Y+dy
	if p.stage.IsSolid(nx, ny) {
		return nil
	}
	p.session.X, p.session.Y = nx, ny
	p.session.Moves++
	p.visited[[2]int{nx, ny}] = true

	if p.stage.IsGoal(nx, ny) {
		return p.finish("goal")
	}
	return nil
}

func (p *Playing) finish(reason string) error {
	p.leaving = true
	p.log.Info().Str("reason", reason).Int("moves", p.session.Moves).Msg("run finished")
	p.session.Reset()
	return p.nav.GoTo(scene.TitleID)
}

// Terminate cancels a load still in flight and waits for it to return.
func (p *Playing) Terminate() error {
	if p.cancel != nil {
		p.cancel()
		<-p.done
	}
	return nil
}

// Draw renders the maze with the camera following the player.
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	if p.stage == nil {
		return
	}

	ts := p.stage.TileSize
	pw, ph := p.stage.PixelSize()

	// Calculate camera offset, clamped to stage bounds
	camX := clamp(p.session.X*ts+ts/2-p.screenW/2, 0, max(pw-p.screenW, 0))
	camY := clamp(p.session.Y*ts+ts/2-p.screenH/2, 0, max(ph-p.screenH, 0))

	p.drawTiles(screen, camX, camY)

	for pos := range p.visited {
		ebitenutil.DrawRect(screen, float64(pos[0]*ts-camX+ts/4), float64(pos[1]*ts-camY+ts/4), float64(ts/2), float64(ts/2), colorTrail)
	}
	ebitenutil.DrawRect(screen, float64(p.session.X*ts-camX+2), float64(p.session.Y*ts-camY+2), float64(ts-4), float64(ts-4), colorPlayer)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  Moves: %d", p.stage.Name, p.session.Moves), 4, p.screenH-16)
}

func (p *Playing) drawTiles(screen *ebiten.Image, camX, camY int) {
	ts := p.stage.TileSize
	startTileX := camX / ts
	startTileY := camY / ts
	endTileX := (camX+p.screenW)/ts + 1
	endTileY := (camY+p.screenH)/ts + 1

	for ty := startTileY; ty <= endTileY && ty < p.stage.Height; ty++ {
		for tx := startTileX; tx <= endTileX && tx < p.stage.Width; tx++ {
			tile := p.stage.GetTile(tx, ty)

			var c color.Color
			switch tile.Type {
			case entity.TileWall:
				c = colorWall
			case entity.TileGoal:
				c = colorGoal
			default:
				continue
			}

			x := float64(tx*ts - camX)
			y := float64(ty*ts - camY)
			ebitenutil.DrawRect(screen, x, y, float64(ts), float64(ts), c)
		}
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
