// Package scene defines the Scene lifecycle contract for game screens.
//
// Each game screen (title, options, playing, pause, etc.) implements the
// Scene interface. The scene manager drives every scene along one forward
// path: Create, then Start once IsReady reports true, Update once per tick,
// and finally Stop and Terminate when it is replaced.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen (title, options, playing, pause, etc.)
//
// Scenes never replace themselves directly. They ask the Navigator they were
// constructed with to go somewhere else, and the manager applies the
// transition on a later tick.
type Scene interface {
	// Create begins setup. It is called exactly once, right after construction.
	// Asynchronous work may keep IsReady false after it returns.
	Create() error

	// IsReady reports whether setup has finished and Start may be called.
	IsReady() bool

	// Start is called once, on the first tick where IsReady is true.
	Start() error

	// IsBusy reports work that must finish before this scene can be replaced.
	// It does not stop Update or Draw.
	IsBusy() bool

	// Update advances one fixed simulation tick. Only called after Start.
	Update() error

	// Stop is called once when the first transition away from this scene is
	// requested, before Terminate.
	Stop() error

	// Terminate is the final teardown. The instance is discarded afterwards.
	Terminate() error

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)
}

// Navigator is the view of the scene manager handed to scenes.
type Navigator interface {
	// GoTo requests a transition to id.
	GoTo(id ID) error

	// Push records the current scene on the navigation stack and goes to id.
	Push(id ID) error

	// Pop goes back to the last pushed scene, or exits when the stack is empty.
	Pop() error

	// Exit requests the final transition.
	Exit()

	// IsNextScene reports whether id is the pending transition target.
	IsNextScene(id ID) bool

	// IsPreviousScene reports whether id is the last terminated scene.
	IsPreviousScene(id ID) bool

	// SnapForBackground captures and blurs the last rendered frame.
	SnapForBackground()

	// BackgroundImage returns the last snapshot, or nil.
	BackgroundImage() *ebiten.Image
}

// Base provides the default lifecycle behavior. Embed it and override what
// the scene needs.
type Base struct{}

// Create does nothing.
func (Base) Create() error { return nil }

// IsReady returns true.
func (Base) IsReady() bool { return true }

// Start does nothing.
func (Base) Start() error { return nil }

// IsBusy returns false.
func (Base) IsBusy() bool { return false }

// Update does nothing.
func (Base) Update() error { return nil }

// Stop does nothing.
func (Base) Stop() error { return nil }

// Terminate does nothing.
func (Base) Terminate() error { return nil }

// Draw does nothing.
func (Base) Draw(*ebiten.Image) {}
