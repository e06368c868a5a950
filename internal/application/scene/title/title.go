// Package title provides the title menu scene.
package title

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/system"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorTitle    = color.RGBA{255, 215, 0, 255}
	colorItem     = color.RGBA{200, 200, 220, 255}
	colorSelected = color.RGBA{100, 200, 100, 255}
	colorCursor   = color.RGBA{60, 60, 90, 255}
)

// Menu entries
const (
	ItemStart = iota
	ItemOptions
	ItemQuit
)

var items = []string{"Start", "Options", "Quit"}

// Sound plays menu feedback.
type Sound interface {
	Beep(freq float64, d time.Duration)
}

// Title is the first scene: a three-entry menu.
type Title struct {
	scene.Base

	nav     scene.Navigator
	input   system.Controls
	sound   Sound
	face    text.Face
	log     zerolog.Logger
	screenW int
	screenH int

	cursor int
	chosen bool
}

// New creates a title scene.
func New(nav scene.Navigator, input system.Controls, sound Sound, face text.Face, screenW, screenH int, log zerolog.Logger) *Title {
	return &Title{
		nav:     nav,
		input:   input,
		sound:   sound,
		face:    face,
		log:     log,
		screenW: screenW,
		screenH: screenH,
	}
}

// Start puts the cursor back on Options when returning from there.
func (t *Title) Start() error {
	if t.nav.IsPreviousScene(scene.OptionsID) {
		t.cursor = ItemOptions
	}
	return nil
}

// Cursor returns the selected menu entry.
func (t *Title) Cursor() int {
	return t.cursor
}

// Update moves the cursor and acts on the choice. Once a choice is made the
// menu ignores input until the scene is replaced.
func (t *Title) Update() error {
	if t.chosen {
		return nil
	}

	switch {
	case t.input.IsRepeated(system.ActionDown):
		t.move(1)
	case t.input.IsRepeated(system.ActionUp):
		t.move(-1)
	case t.input.IsTriggered(system.ActionConfirm):
		return t.choose()
	}
	return nil
}

func (t *Title) move(d int) {
	t.cursor = (t.cursor + d + len(items)) % len(items)
	t.sound.Beep(660, 40*time.Millisecond)
}

func (t *Title) choose() error {
	t.chosen = true
	t.sound.Beep(990, 80*time.Millisecond)
	t.log.Debug().Str("item", items[t.cursor]).Msg("title menu")

	switch t.cursor {
	case ItemStart:
		return t.nav.GoTo(scene.PlayingID)
	case ItemOptions:
		return t.nav.Push(scene.OptionsID)
	default:
		t.nav.Exit()
		return nil
	}
}

// Draw renders the title and the menu.
func (t *Title) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	drawText(screen, t.face, "SCENE LOOP", float64(t.screenW/2-35), float64(t.screenH/3), colorTitle)

	baseY := t.screenH/2 + 10
	for i, item := range items {
		y := float64(baseY + i*20)
		c := colorItem
		if i == t.cursor {
			ebitenutil.DrawRect(screen, float64(t.screenW/2-50), y-3, 100, 18, colorCursor)
			c = colorSelected
		}
		drawText(screen, t.face, item, float64(t.screenW/2-len(item)*7/2), y, c)
	}

	ebitenutil.DebugPrintAt(screen, "Arrows: Select | Enter: OK", 10, t.screenH-20)
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
