// Package pause provides the pause overlay shown on top of a snapshot of the
// scene that pushed it.
package pause

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/system"
)

// FadeTicks is how long the overlay takes to fade out after resuming.
const FadeTicks = 15

var colorOverlay = color.RGBA{0, 0, 0, 140}

// Pause waits for the player to resume, then fades out and pops back.
type Pause struct {
	scene.Base

	nav     scene.Navigator
	input   system.Controls
	screenW int
	screenH int

	background *ebiten.Image
	fade       int
	leaving    bool
}

// New creates a pause scene.
func New(nav scene.Navigator, input system.Controls, screenW, screenH int) *Pause {
	return &Pause{nav: nav, input: input, screenW: screenW, screenH: screenH}
}

// Start picks up the blurred snapshot taken by the previous scene.
func (p *Pause) Start() error {
	p.background = p.nav.BackgroundImage()
	return nil
}

// Update resumes on Menu, Cancel or Confirm and runs the fade.
func (p *Pause) Update() error {
	if p.leaving {
		if p.fade > 0 {
			p.fade--
		}
		return nil
	}

	if p.input.IsTriggered(system.ActionMenu) ||
		p.input.IsTriggered(system.ActionCancel) ||
		p.input.IsTriggered(system.ActionConfirm) {
		p.leaving = true
		p.fade = FadeTicks
		return p.nav.Pop()
	}
	return nil
}

// IsBusy holds the transition until the fade is done.
func (p *Pause) IsBusy() bool {
	return p.leaving && p.fade > 0
}

// Opacity returns the overlay opacity in [0, 1].
func (p *Pause) Opacity() float64 {
	if !p.leaving {
		return 1
	}
	return float64(p.fade) / FadeTicks
}

// Draw renders the snapshot and the overlay.
func (p *Pause) Draw(screen *ebiten.Image) {
	if p.background != nil {
		screen.DrawImage(p.background, nil)
	}

	a := p.Opacity()
	c := colorOverlay
	c.A = uint8(float64(c.A) * a)
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), c)

	if a == 1 {
		ebitenutil.DebugPrintAt(screen, "PAUSED\n\nPress ESC to resume", p.screenW/2-50, p.screenH/2-20)
	}
}
