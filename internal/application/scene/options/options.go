// Package options provides the settings scene. Leaving it writes the
// settings file in the background; the scene stays busy until the write is
// done, so the next scene never starts against a half-written file.
package options

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/rs/zerolog"

	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/system"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{20, 30, 40, 255}
	colorItem     = color.RGBA{200, 200, 220, 255}
	colorSelected = color.RGBA{100, 200, 100, 255}
	colorBarBG    = color.RGBA{60, 60, 60, 255}
	colorBarFG    = color.RGBA{100, 200, 100, 255}
	colorSaving   = color.RGBA{255, 215, 0, 255}
)

// Rows
const (
	RowVolume = iota
	RowShowFPS
	RowBack
	rowCount
)

const volumeStep = 0.1

// Sound plays feedback and applies the volume.
type Sound interface {
	Beep(freq float64, d time.Duration)
	SetVolume(v float64)
}

// Store holds the live settings and persists them.
type Store interface {
	Get() config.Settings
	Set(s config.Settings)
	Save() error
}

// Options edits volume and the FPS counter.
type Options struct {
	scene.Base

	nav     scene.Navigator
	input   system.Controls
	sound   Sound
	store   Store
	face    text.Face
	log     zerolog.Logger
	screenW int
	screenH int

	settings config.Settings
	cursor   int
	leaving  bool
	blocking bool
	saving   bool
	saved    chan error
	saveErr  error
}

// New creates an options scene.
func New(nav scene.Navigator, input system.Controls, sound Sound, store Store, face text.Face, screenW, screenH int, log zerolog.Logger) *Options {
	return &Options{
		nav:     nav,
		input:   input,
		sound:   sound,
		store:   store,
		face:    face,
		log:     log,
		screenW: screenW,
		screenH: screenH,
	}
}

// Create takes a working copy of the current settings.
func (o *Options) Create() error {
	o.settings = o.store.Get()
	return nil
}

// Settings returns the working copy.
func (o *Options) Settings() config.Settings {
	return o.settings
}

// Cursor returns the selected row.
func (o *Options) Cursor() int {
	return o.cursor
}

// Update edits the selected row.
func (o *Options) Update() error {
	if o.leaving {
		return nil
	}

	switch {
	case o.input.IsTriggered(system.ActionCancel):
		return o.leave()
	case o.input.IsRepeated(system.ActionDown):
		o.cursor = (o.cursor + 1) % rowCount
		o.sound.Beep(660, 40*time.Millisecond)
	case o.input.IsRepeated(system.ActionUp):
		o.cursor = (o.cursor + rowCount - 1) % rowCount
		o.sound.Beep(660, 40*time.Millisecond)
	case o.input.IsRepeated(system.ActionRight):
		o.adjust(1)
	case o.input.IsRepeated(system.ActionLeft):
		o.adjust(-1)
	case o.input.IsTriggered(system.ActionConfirm):
		switch o.cursor {
		case RowShowFPS:
			o.settings.ShowFPS = !o.settings.ShowFPS
			o.store.Set(o.settings)
		case RowBack:
			return o.leave()
		}
	}
	return nil
}

func (o *Options) adjust(dir int) {
	switch o.cursor {
	case RowVolume:
		v := o.settings.Volume + float64(dir)*volumeStep
		o.settings.Volume = math.Round(math.Min(math.Max(v, 0), 1)*10) / 10
		o.sound.SetVolume(o.settings.Volume)
		o.sound.Beep(880, 40*time.Millisecond)
	case RowShowFPS:
		o.settings.ShowFPS = dir > 0
	}
	o.store.Set(o.settings)
}

func (o *Options) leave() error {
	o.leaving = true
	return o.nav.Pop()
}

// SetBlocking makes Stop write the settings file before returning, so the
// scene is never busy. Recorded and replayed runs need this to line up tick
// for tick.
func (o *Options) SetBlocking(blocking bool) {
	o.blocking = blocking
}

// Stop starts writing the settings file. It runs when leaving is first
// requested, whatever asked for it.
func (o *Options) Stop() error {
	o.store.Set(o.settings)
	o.saving = true
	o.saved = make(chan error, 1)
	go func() {
		o.saved <- o.store.Save()
	}()
	if o.blocking {
		o.finishSave(<-o.saved)
	}
	return nil
}

// IsBusy reports whether the settings file is still being written.
func (o *Options) IsBusy() bool {
	if !o.saving {
		return false
	}
	select {
	case err := <-o.saved:
		o.finishSave(err)
		return false
	default:
		return true
	}
}

func (o *Options) finishSave(err error) {
	o.saving = false
	o.saveErr = err
	if err != nil {
		o.log.Error().Err(err).Msg("save settings")
	} else {
		o.log.Debug().Msg("settings saved")
	}
}

// Terminate waits for a save still in flight and reports a failed save as a
// lifecycle failure.
func (o *Options) Terminate() error {
	if o.saving {
		o.saveErr = <-o.saved
		o.saving = false
	}
	if o.saveErr != nil {
		return fmt.Errorf("save settings: %w", o.saveErr)
	}
	return nil
}

// Draw renders the rows.
func (o *Options) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	ebitenutil.DebugPrintAt(screen, "OPTIONS", o.screenW/2-21, 30)

	x := float64(o.screenW/2 - 90)
	for row := 0; row < rowCount; row++ {
		y := float64(80 + row*30)
		c := colorItem
		if row == o.cursor {
			c = colorSelected
			drawText(screen, o.face, ">", x-14, y, c)
		}

		switch row {
		case RowVolume:
			drawText(screen, o.face, "Volume", x, y, c)
			ebitenutil.DrawRect(screen, x+80, y+2, 100, 8, colorBarBG)
			ebitenutil.DrawRect(screen, x+80, y+2, 100*o.settings.Volume, 8, colorBarFG)
		case RowShowFPS:
			state := "Off"
			if o.settings.ShowFPS {
				state = "On"
			}
			drawText(screen, o.face, "Show FPS", x, y, c)
			drawText(screen, o.face, state, x+80, y, c)
		case RowBack:
			drawText(screen, o.face, "Back", x, y, c)
		}
	}

	if o.saving {
		drawText(screen, o.face, "Saving...", float64(o.screenW-80), float64(o.screenH-24), colorSaving)
	}
	ebitenutil.DebugPrintAt(screen, "Left/Right: Change | X: Back", 10, o.screenH-20)
}

func drawText(dst *ebiten.Image, face text.Face, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
