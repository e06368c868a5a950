// Package render implements the frame, loading and error drawing for the
// scene manager on top of ebiten.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
)

const (
	defaultLoadingDelay = 20
	defaultBlurScale    = 4
	lineHeight          = 14
	errorWrapWidth      = 40
)

// Colors for rendering
var (
	colorBG           = color.RGBA{0, 0, 0, 255}
	colorLoadingText  = color.RGBA{200, 200, 220, 255}
	colorErrorOverlay = color.RGBA{0, 0, 0, 200}
	colorErrorTitle   = color.RGBA{255, 110, 110, 255}
	colorErrorText    = color.RGBA{235, 235, 235, 255}
)

// Renderer draws scenes into an offscreen frame. The frame is presented to
// the screen by Present, so the last rendered frame is always available for
// snapshots.
type Renderer struct {
	width, height int
	frame         *ebiten.Image
	face          text.Face

	loadingDelay int
	blurScale    int
	loading      bool
	loadingCount int

	errName    string
	errMessage string

	showFPS func() bool
}

// NewRenderer creates a renderer for the configured screen size.
func NewRenderer(display config.DisplayConfig, cfg config.RenderConfig) *Renderer {
	r := &Renderer{
		width:        display.ScreenWidth,
		height:       display.ScreenHeight,
		face:         text.NewGoXFace(basicfont.Face7x13),
		loadingDelay: cfg.LoadingDelay,
		blurScale:    cfg.BlurScale,
	}
	if r.loadingDelay <= 0 {
		r.loadingDelay = defaultLoadingDelay
	}
	if r.blurScale <= 1 {
		r.blurScale = defaultBlurScale
	}
	return r
}

// SetShowFPS installs the predicate deciding whether the FPS counter is drawn.
func (r *Renderer) SetShowFPS(fn func() bool) {
	r.showFPS = fn
}

// Face returns the text face used for overlays. Scenes may share it.
func (r *Renderer) Face() text.Face {
	return r.face
}

// Layout returns the logical screen size.
func (r *Renderer) Layout() (int, int) {
	return r.width, r.height
}

func (r *Renderer) ensureFrame() *ebiten.Image {
	if r.frame == nil {
		r.frame = ebiten.NewImage(r.width, r.height)
	}
	return r.frame
}

// Render draws one frame of a started scene.
func (r *Renderer) Render(s scene.Scene) {
	frame := r.ensureFrame()
	frame.Fill(colorBG)
	s.Draw(frame)
}

// StartLoading resets the loading indicator for a freshly created scene.
func (r *Renderer) StartLoading() {
	r.loading = true
	r.loadingCount = 0
}

// UpdateLoading advances the loading indicator. The text only appears once
// loading has lasted longer than the configured delay, so quick loads do not
// flash it.
func (r *Renderer) UpdateLoading() {
	r.loadingCount++
}

// EndLoading hides the loading indicator.
func (r *Renderer) EndLoading() {
	r.loading = false
	r.loadingCount = 0
}

// LoadingVisible reports whether the loading text is currently drawn.
func (r *Renderer) LoadingVisible() bool {
	return r.loading && r.loadingCount > r.loadingDelay
}

// PrintError records the fatal error shown over the last frame.
func (r *Renderer) PrintError(name, message string) {
	r.errName = name
	r.errMessage = message
}

// ErrorShown returns the error currently displayed, if any.
func (r *Renderer) ErrorShown() (name, message string, ok bool) {
	return r.errName, r.errMessage, r.errName != ""
}

// CaptureSnapshot returns a copy of the last rendered frame.
func (r *Renderer) CaptureSnapshot(scene.Scene) *ebiten.Image {
	if r.frame == nil {
		return nil
	}
	snap := ebiten.NewImage(r.width, r.height)
	snap.DrawImage(r.frame, nil)
	return snap
}

// Blur returns a blurred copy of img, made by downsampling and scaling back
// up with linear filtering.
func (r *Renderer) Blur(img *ebiten.Image) *ebiten.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	sw, sh := max(w/r.blurScale, 1), max(h/r.blurScale, 1)

	small := ebiten.NewImage(sw, sh)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(w), float64(sh)/float64(h))
	op.Filter = ebiten.FilterLinear
	small.DrawImage(img, op)

	out := ebiten.NewImage(w, h)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
	op.Filter = ebiten.FilterLinear
	out.DrawImage(small, op)
	small.Deallocate()
	return out
}

// Present copies the frame to the screen and draws the overlays.
func (r *Renderer) Present(screen *ebiten.Image) {
	screen.Fill(colorBG)
	if r.frame != nil {
		screen.DrawImage(r.frame, nil)
	}

	if r.LoadingVisible() {
		dots := strings.Repeat(".", (r.loadingCount/15)%4)
		r.drawText(screen, "Now Loading"+dots, float64(r.width-110), float64(r.height-24), colorLoadingText)
	}

	if r.showFPS != nil && r.showFPS() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()), 4, 4)
	}

	if r.errName != "" {
		r.drawError(screen)
	}
}

func (r *Renderer) drawError(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(r.width), float64(r.height), colorErrorOverlay)

	y := float64(r.height)/2 - lineHeight*2
	r.drawText(screen, r.errName, 12, y, colorErrorTitle)
	for _, line := range wrap(r.errMessage, errorWrapWidth) {
		y += lineHeight
		r.drawText(screen, line, 12, y, colorErrorText)
	}
}

func (r *Renderer) drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, r.face, op)
}

// wrap breaks s into lines of at most width runes, splitting on spaces
// where possible.
func wrap(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > width {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = nil
				}
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(line) == 0:
				line = w
			case len(line)+1+len(w) <= width:
				line = append(append(line, ' '), w...)
			default:
				lines = append(lines, string(line))
				line = w
			}
		}
		if len(line) > 0 {
			lines = append(lines, string(line))
		}
	}
	return lines
}
