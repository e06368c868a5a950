// Package host runs the scene manager inside ebiten's game loop.
package host

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

var errNotAttached = errors.New("host: no loop attached")

// Loop is the frame callback driven by the host.
type Loop interface {
	Tick() error
}

// Screen presents the last rendered frame.
type Screen interface {
	Present(screen *ebiten.Image)
	Layout() (int, int)
}

// Host implements ebiten.Game. It calls Loop.Tick from Update and ends the
// process once Terminate has been called.
//
// A loop halted by a failure keeps the window open, so the error overlay
// stays visible until the player closes it.
type Host struct {
	loop       Loop
	screen     Screen
	log        zerolog.Logger
	terminated bool
	failed     bool
}

var _ ebiten.Game = (*Host)(nil)

// New creates a host presenting frames through screen.
func New(screen Screen, log zerolog.Logger) *Host {
	return &Host{screen: screen, log: log}
}

// Attach sets the loop to drive. The manager needs the host before it can be
// constructed, so the two are wired in this order.
func (h *Host) Attach(loop Loop) {
	h.loop = loop
}

// Terminate asks ebiten to end the game after the current Update.
func (h *Host) Terminate() {
	h.terminated = true
}

// Terminated reports whether Terminate was called.
func (h *Host) Terminated() bool {
	return h.terminated
}

// Update runs one frame of the loop.
func (h *Host) Update() error {
	if h.terminated {
		return ebiten.Termination
	}
	if h.loop == nil {
		return errNotAttached
	}

	if err := h.loop.Tick(); err != nil {
		if !h.failed {
			h.failed = true
			h.log.Warn().Err(err).Msg("loop halted, close the window to quit")
		}
		return nil
	}
	if h.terminated {
		return ebiten.Termination
	}
	return nil
}

// Draw presents the last rendered frame.
func (h *Host) Draw(screen *ebiten.Image) {
	h.screen.Present(screen)
}

// Layout returns the logical screen size regardless of the window size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return h.screen.Layout()
}
