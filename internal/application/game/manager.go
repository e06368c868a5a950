// Package game provides the scene manager that drives the top-level loop.
//
// The host calls Tick once per displayed frame. Each Tick drains the elapsed
// time in fixed steps; every step samples input, applies at most one scene
// transition and updates the current scene. Exactly one render follows,
// however many steps ran.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/state"
	"github.com/younwookim/sceneloop/internal/domain/clock"
)

// Options configures a Manager. Nil collaborators are replaced by no-ops.
type Options struct {
	Step         time.Duration
	MaxDelta     time.Duration
	Source       clock.Source
	Logger       zerolog.Logger
	Render       RenderSink
	Input        InputSource
	Audio        AudioSink
	Host         Host
	Requirements []Requirement
}

// Manager owns the current scene, the pending transition target, the
// navigation stack and the clock. It is the only writer of that state.
type Manager struct {
	registry     *scene.Registry
	clock        *clock.Clock
	source       clock.Source
	log          zerolog.Logger
	render       RenderSink
	input        InputSource
	audio        AudioSink
	host         Host
	requirements []Requirement

	current       scene.Scene
	currentID     scene.ID
	currentState  state.Lifecycle
	stopRequested bool
	pending       scene.ID
	previous      scene.ID
	stack         scene.Stack

	initialized bool
	exiting     bool
	stopped     bool
	fault       error
	err         error

	background *ebiten.Image
	frames     int
	ticks      int
}

var _ scene.Navigator = (*Manager)(nil)

// New creates a manager for the scenes in registry.
func New(registry *scene.Registry, opts Options) (*Manager, error) {
	if registry == nil {
		return nil, errors.New("game: nil registry")
	}

	m := &Manager{
		registry:     registry,
		clock:        clock.New(opts.Step, opts.MaxDelta),
		source:       opts.Source,
		log:          opts.Logger,
		render:       opts.Render,
		input:        opts.Input,
		audio:        opts.Audio,
		host:         opts.Host,
		requirements: opts.Requirements,
	}
	if m.source == nil {
		m.source = clock.System{}
	}
	if m.render == nil {
		m.render = nopRender{}
	}
	if m.input == nil {
		m.input = nopInput{}
	}
	if m.audio == nil {
		m.audio = nopAudio{}
	}
	if m.host == nil {
		m.host = nopHost{}
	}
	return m, nil
}

// Run initializes the manager and requests the initial scene. The host then
// calls Tick once per frame. Failures halt the manager through the same path
// as a failing frame and are returned. The error overlay is printed at that
// point, so the host must still present frames for it to be seen.
func (m *Manager) Run(initial scene.ID) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = m.halt(categorize("run", panicError(r)))
		}
	}()

	if err := m.initialize(initial); err != nil {
		return m.halt(categorize("initialize", err))
	}
	if err := m.GoTo(initial); err != nil {
		return m.halt(&Error{Kind: KindInitialization, Op: "goto", Scene: initial, Err: err})
	}
	return nil
}

func (m *Manager) initialize(initial scene.ID) error {
	if m.initialized {
		return &Error{Kind: KindInitialization, Op: "initialize", Err: ErrAlreadyInitialized}
	}
	for _, req := range m.requirements {
		if req.Check == nil {
			continue
		}
		if err := req.Check(); err != nil {
			return &Error{Kind: KindInitialization, Op: "require " + req.Name, Err: err}
		}
	}
	if !m.registry.Has(initial) {
		return &Error{Kind: KindInitialization, Op: "initialize", Scene: initial, Err: ErrUnknownScene}
	}

	m.clock.Reset(m.source.Now())
	m.initialized = true
	m.log.Info().
		Str("initial", string(initial)).
		Dur("step", m.clock.Step()).
		Dur("max_delta", m.clock.MaxDelta()).
		Msg("scene loop initialized")
	return nil
}

// Tick runs one frame. It returns the failure that halted the loop, if any;
// once halted, Tick does nothing and keeps returning that failure.
func (m *Manager) Tick() (err error) {
	if m.stopped {
		return m.err
	}

	defer func() {
		if r := recover(); r != nil {
			err = m.halt(categorize("frame", panicError(r)))
		}
	}()

	m.frames++
	m.clock.Advance(m.source.Now())

	for !m.stopped && m.clock.DrainStep() {
		if err := m.step(); err != nil {
			return m.halt(categorize("frame", err))
		}
	}
	if m.stopped {
		return m.err
	}

	m.renderScene()
	return nil
}

func (m *Manager) step() error {
	m.input.Update()

	if err := m.changeScene(); err != nil {
		return err
	}
	if !m.stopped {
		if err := m.updateScene(); err != nil {
			return err
		}
	}
	m.ticks++
	return m.takeFault()
}

// changeScene applies the pending transition unless the current scene is busy.
func (m *Manager) changeScene() error {
	if !m.isSceneChanging() || m.isCurrentSceneBusy() {
		return nil
	}

	from := m.currentID
	if m.current != nil {
		if err := m.stopCurrent(); err != nil {
			return err
		}
		terr := m.current.Terminate()
		m.setState(state.Terminated)
		m.dropCurrent()
		if terr != nil {
			return lifecycleError("terminate", from, terr)
		}
	}

	next := m.pending
	m.pending = scene.None

	if next != scene.None {
		s, err := m.registry.New(next, m)
		if err != nil {
			return lifecycleError("construct", next, err)
		}
		m.current = s
		m.currentID = next
		m.currentState = state.Uninitialized
		m.stopRequested = false

		if err := s.Create(); err != nil {
			// Never created, so there is nothing to stop or terminate.
			m.current = nil
			m.currentID = scene.None
			return lifecycleError("create", next, err)
		}
		m.setState(state.Created)
		m.render.StartLoading()
	}

	m.log.Debug().
		Str("from", string(from)).
		Str("to", string(next)).
		Bool("exiting", m.exiting).
		Msg("scene transition")

	if m.exiting {
		m.stopped = true
		m.log.Info().Int("frames", m.frames).Int("ticks", m.ticks).Msg("scene loop finished")
		m.host.Terminate()
	}
	return nil
}

// updateScene starts the current scene once it is ready, then updates it.
func (m *Manager) updateScene() error {
	if m.current == nil {
		return nil
	}

	if m.currentState == state.Created && m.current.IsReady() {
		if err := m.current.Start(); err != nil {
			return lifecycleError("start", m.currentID, err)
		}
		m.setState(state.Started)
		m.render.EndLoading()
	}

	if m.currentState == state.Started {
		if err := m.current.Update(); err != nil {
			return lifecycleError("update", m.currentID, err)
		}
	}
	return nil
}

func (m *Manager) renderScene() {
	switch {
	case m.current == nil:
	case m.currentState == state.Started:
		m.render.Render(m.current)
	default:
		m.render.UpdateLoading()
	}
}

func (m *Manager) setState(next state.Lifecycle) {
	if !m.currentState.CanAdvanceTo(next) {
		panic(fmt.Sprintf("scene %s: illegal lifecycle step %s -> %s", m.currentID, m.currentState, next))
	}
	m.currentState = next
}

// dropCurrent empties the current slot once its scene is terminated.
func (m *Manager) dropCurrent() {
	m.previous = m.currentID
	m.current = nil
	m.currentID = scene.None
}

// stopCurrent calls Stop on the current scene the first time it is needed.
func (m *Manager) stopCurrent() error {
	if m.current == nil || m.stopRequested {
		return nil
	}
	m.stopRequested = true
	if err := m.current.Stop(); err != nil {
		return lifecycleError("stop", m.currentID, err)
	}
	return nil
}

// requestStop is stopCurrent for navigation calls made from inside a scene.
// The failure is also kept so the frame boundary sees it even if the scene
// ignores the returned error.
func (m *Manager) requestStop() error {
	err := m.stopCurrent()
	if err != nil && m.fault == nil {
		m.fault = err
	}
	return err
}

func (m *Manager) takeFault() error {
	err := m.fault
	m.fault = nil
	return err
}

// halt is the single failure path: silence audio, stop scheduling, show the
// error overlay. Failures raised while reporting are logged and dropped.
func (m *Manager) halt(err *Error) error {
	if m.err == nil {
		m.err = err
	}

	m.bestEffort("stop audio", m.audio.StopAll)
	m.stopped = true

	m.log.Error().
		Err(err.Err).
		Str("kind", err.Kind.String()).
		Str("op", err.Op).
		Str("scene", string(err.Scene)).
		Msg("scene loop halted")

	m.bestEffort("print error", func() {
		m.render.PrintError(err.Kind.String(), err.Message())
	})
	return m.err
}

func (m *Manager) bestEffort(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Warn().Str("step", what).Interface("panic", r).Msg("error while reporting failure")
		}
	}()
	fn()
}

// GoTo requests a transition to id. Only the last request made before the
// next transition check survives. The current scene is stopped on the first
// request.
func (m *Manager) GoTo(id scene.ID) error {
	if m.exiting {
		return ErrExiting
	}
	if !m.registry.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	if m.pending != scene.None && m.pending != id {
		m.log.Debug().Str("dropped", string(m.pending)).Str("scene", string(id)).Msg("pending scene replaced")
	}
	m.pending = id
	return m.requestStop()
}

// Push remembers the current scene on the navigation stack and goes to id.
func (m *Manager) Push(id scene.ID) error {
	if m.current == nil {
		return ErrNoCurrentScene
	}
	if m.exiting {
		return ErrExiting
	}
	if !m.registry.Has(id) {
		return fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	m.stack.Push(m.currentID)
	m.log.Debug().Str("from", string(m.currentID)).Str("to", string(id)).Int("depth", m.stack.Len()).Msg("scene pushed")
	return m.GoTo(id)
}

// Pop goes back to the most recently pushed scene, or exits when the stack
// is empty.
func (m *Manager) Pop() error {
	if m.exiting {
		return ErrExiting
	}

	id, ok := m.stack.Pop()
	if !ok {
		m.Exit()
		return nil
	}
	m.log.Debug().Str("to", string(id)).Int("depth", m.stack.Len()).Msg("scene popped")
	return m.GoTo(id)
}

// Exit requests the final transition. The loop halts once it is applied, and
// no further navigation is accepted.
func (m *Manager) Exit() {
	if m.exiting {
		return
	}
	m.pending = scene.None
	m.exiting = true
	m.log.Debug().Str("scene", string(m.currentID)).Msg("exit requested")
	_ = m.requestStop()
}

// ClearStack forgets all navigation history.
func (m *Manager) ClearStack() {
	m.stack.Clear()
}

// StackDepth returns the number of scenes Pop can return to.
func (m *Manager) StackDepth() int {
	return m.stack.Len()
}

// IsNextScene reports whether id is the pending transition target.
func (m *Manager) IsNextScene(id scene.ID) bool {
	return id != scene.None && m.pending == id
}

// IsPreviousScene reports whether id was the last terminated scene.
func (m *Manager) IsPreviousScene(id scene.ID) bool {
	return id != scene.None && m.previous == id
}

// PreviousScene returns the ID of the last terminated scene.
func (m *Manager) PreviousScene() scene.ID {
	return m.previous
}

// Current returns the ID of the current scene, or scene.None.
func (m *Manager) Current() scene.ID {
	return m.currentID
}

// CurrentState returns the lifecycle state of the current scene.
func (m *Manager) CurrentState() state.Lifecycle {
	return m.currentState
}

// IsCurrentSceneStarted reports whether the current scene has started.
func (m *Manager) IsCurrentSceneStarted() bool {
	return m.current != nil && m.currentState == state.Started
}

func (m *Manager) isSceneChanging() bool {
	return m.exiting || m.pending != scene.None
}

func (m *Manager) isCurrentSceneBusy() bool {
	return m.current != nil && m.current.IsBusy()
}

// SnapForBackground captures the last rendered frame and blurs it, for
// scenes that draw the previous screen behind themselves.
func (m *Manager) SnapForBackground() {
	m.background = m.render.Blur(m.render.CaptureSnapshot(m.current))
}

// BackgroundImage returns the last background snapshot, or nil.
func (m *Manager) BackgroundImage() *ebiten.Image {
	return m.background
}

// Stop halts frame processing and silences audio. It does not interrupt a
// frame in progress and does not terminate the current scene.
func (m *Manager) Stop() {
	m.bestEffort("stop audio", m.audio.StopAll)
	m.stopped = true
}

// Shutdown stops the loop and tears down the current scene outside the
// normal transition path. Only a created or started scene is torn down, so a
// scene is never terminated twice. It is safe to call more than once.
func (m *Manager) Shutdown() error {
	m.Stop()
	if m.current == nil {
		return nil
	}
	if m.currentState != state.Created && m.currentState != state.Started {
		m.current = nil
		m.currentID = scene.None
		return nil
	}

	id := m.currentID
	err := m.stopCurrent()
	if terr := m.current.Terminate(); terr != nil && err == nil {
		err = lifecycleError("terminate", id, terr)
	}
	m.setState(state.Terminated)
	m.dropCurrent()
	m.log.Info().Str("scene", string(id)).Msg("scene loop shut down")
	return err
}

// Stopped reports whether the loop has halted.
func (m *Manager) Stopped() bool {
	return m.stopped
}

// Exiting reports whether Exit has been requested.
func (m *Manager) Exiting() bool {
	return m.exiting
}

// Err returns the failure that halted the loop, or nil.
func (m *Manager) Err() error {
	return m.err
}

// FrameCount returns the number of frames processed.
func (m *Manager) FrameCount() int {
	return m.frames
}

// TickCount returns the number of simulation ticks run.
func (m *Manager) TickCount() int {
	return m.ticks
}

// Alpha returns the render interpolation factor for the current frame.
func (m *Manager) Alpha() float64 {
	return m.clock.Alpha()
}
