package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/sceneloop/internal/application/scene"
)

// RenderSink draws frames and the loading/error overlays.
type RenderSink interface {
	// Render draws one frame of a started scene.
	Render(s scene.Scene)

	// StartLoading is called right after a new scene's Create returns.
	StartLoading()

	// UpdateLoading is called instead of Render while the scene is not started.
	UpdateLoading()

	// EndLoading is called right after the scene's Start returns.
	EndLoading()

	// PrintError shows the fatal error overlay.
	PrintError(name, message string)

	// CaptureSnapshot returns a copy of the last rendered frame.
	CaptureSnapshot(s scene.Scene) *ebiten.Image

	// Blur returns a blurred copy of img.
	Blur(img *ebiten.Image) *ebiten.Image
}

// InputSource samples input once per simulation tick.
type InputSource interface {
	Update()
}

// AudioSink silences playback when the loop halts.
type AudioSink interface {
	StopAll()
}

// Host is the environment running the frame callback.
type Host interface {
	// Terminate asks the host to end the process after a graceful exit.
	Terminate()
}

// Requirement is a capability that must be present before the loop starts.
type Requirement struct {
	Name  string
	Check func() error
}

type nopRender struct{}

func (nopRender) Render(scene.Scene) {}
func (nopRender) StartLoading() {}
func (nopRender) UpdateLoading() {}
func (nopRender) EndLoading() {}
func (nopRender) PrintError(string, string) {}
func (nopRender) CaptureSnapshot(scene.Scene) *ebiten.Image { return nil }
func (nopRender) Blur(img *ebiten.Image) *ebiten.Image { return img }

type nopInput struct{}

func (nopInput) Update() {}

type nopAudio struct{}

func (nopAudio) StopAll() {}

type nopHost struct{}

func (nopHost) Terminate() {}
