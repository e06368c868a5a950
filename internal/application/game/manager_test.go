package game

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/sceneloop/internal/application/scene"
	"github.com/younwookim/sceneloop/internal/application/state"
	"github.com/younwookim/sceneloop/internal/domain/clock"
)

const testStep = 10 * time.Millisecond

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// recorder collects lifecycle and collaborator calls in order
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

// lifecycle returns only scene lifecycle events
func (r *recorder) lifecycle() []string {
	var out []string
	for _, e := range r.events {
		for _, p := range []string{"create(", "start(", "stop(", "terminate("} {
			if strings.HasPrefix(e, p) {
				out = append(out, e)
			}
		}
	}
	return out
}

// behavior configures every instance built for one scene ID
type behavior struct {
	notReadyFor  int
	busy         bool
	createErr    error
	startErr     error
	updateErr    error
	stopErr      error
	terminateErr error
	updatePanic  any
	onUpdate     func(nav scene.Navigator)
}

// mockScene is a test double for scene.Scene
type mockScene struct {
	id         scene.ID
	b          *behavior
	rec        *recorder
	nav        scene.Navigator
	readyCalls int
	updates    int
}

func (s *mockScene) Create() error {
	s.rec.add("create(%s)", s.id)
	return s.b.createErr
}

func (s *mockScene) IsReady() bool {
	s.readyCalls++
	return s.readyCalls > s.b.notReadyFor
}

func (s *mockScene) Start() error {
	s.rec.add("start(%s)", s.id)
	return s.b.startErr
}

func (s *mockScene) IsBusy() bool {
	return s.b.busy
}

func (s *mockScene) Update() error {
	s.updates++
	s.rec.add("update(%s)", s.id)
	if s.b.updatePanic != nil {
		panic(s.b.updatePanic)
	}
	if s.b.onUpdate != nil {
		s.b.onUpdate(s.nav)
	}
	return s.b.updateErr
}

func (s *mockScene) Stop() error {
	s.rec.add("stop(%s)", s.id)
	return s.b.stopErr
}

func (s *mockScene) Terminate() error {
	s.rec.add("terminate(%s)", s.id)
	return s.b.terminateErr
}

func (s *mockScene) Draw(*ebiten.Image) {}

type mockRender struct {
	rec          *recorder
	renders      int
	loading      int
	errName      string
	errMessage   string
	panicOnPrint bool
}

func (r *mockRender) Render(s scene.Scene) {
	r.renders++
	r.rec.add("render(%s)", s.(*mockScene).id)
}

func (r *mockRender) StartLoading() { r.rec.add("startLoading") }

func (r *mockRender) UpdateLoading() {
	r.loading++
	r.rec.add("updateLoading")
}

func (r *mockRender) EndLoading() { r.rec.add("endLoading") }

func (r *mockRender) PrintError(name, message string) {
	r.rec.add("printError(%s)", name)
	r.errName = name
	r.errMessage = message
	if r.panicOnPrint {
		panic("overlay unavailable")
	}
}

func (r *mockRender) CaptureSnapshot(s scene.Scene) *ebiten.Image {
	id := scene.None
	if ms, ok := s.(*mockScene); ok {
		id = ms.id
	}
	r.rec.add("capture(%s)", id)
	return nil
}

func (r *mockRender) Blur(img *ebiten.Image) *ebiten.Image {
	r.rec.add("blur")
	return img
}

type mockInput struct{ updates int }

func (i *mockInput) Update() { i.updates++ }

type mockAudio struct{ stops int }

func (a *mockAudio) StopAll() { a.stops++ }

type mockHost struct{ terminated int }

func (h *mockHost) Terminate() { h.terminated++ }

type harness struct {
	rec       *recorder
	src       *clock.Manual
	render    *mockRender
	input     *mockInput
	audio     *mockAudio
	host      *mockHost
	behaviors map[scene.ID]*behavior
	built     map[scene.ID][]*mockScene
	m         *Manager
}

func newHarness(t *testing.T, ids ...scene.ID) *harness {
	t.Helper()
	rec := &recorder{}
	h := &harness{
		rec:       rec,
		src:       clock.NewManual(epoch),
		render:    &mockRender{rec: rec},
		input:     &mockInput{},
		audio:     &mockAudio{},
		host:      &mockHost{},
		behaviors: make(map[scene.ID]*behavior),
		built:     make(map[scene.ID][]*mockScene),
	}

	reg := scene.NewRegistry()
	for _, id := range ids {
		id := id
		h.behaviors[id] = &behavior{}
		require.NoError(t, reg.Register(id, func(nav scene.Navigator) scene.Scene {
			s := &mockScene{id: id, b: h.behaviors[id], rec: rec, nav: nav}
			h.built[id] = append(h.built[id], s)
			return s
		}))
	}

	m, err := New(reg, Options{
		Step:   testStep,
		Source: h.src,
		Render: h.render,
		Input:  h.input,
		Audio:  h.audio,
		Host:   h.host,
	})
	require.NoError(t, err)
	h.m = m
	return h
}

// frame advances time by n steps and runs one Tick
func (h *harness) frame(n int) error {
	h.src.Add(time.Duration(n) * testStep)
	return h.m.Tick()
}

func (h *harness) latest(id scene.ID) *mockScene {
	list := h.built[id]
	if len(list) == 0 {
		return nil
	}
	return list[len(list)-1]
}

func TestNew_NilRegistry(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestRun_StartsInitialScene(t *testing.T) {
	h := newHarness(t, "menu")

	require.NoError(t, h.m.Run("menu"))
	assert.True(t, h.m.IsNextScene("menu"))
	assert.Empty(t, h.built["menu"], "factory is invoked lazily")

	require.NoError(t, h.frame(1))
	assert.Equal(t, scene.ID("menu"), h.m.Current())
	assert.Equal(t, state.Started, h.m.CurrentState())
	assert.True(t, h.m.IsCurrentSceneStarted())
	assert.False(t, h.m.IsNextScene("menu"))
	assert.Equal(t,
		[]string{"create(menu)", "startLoading", "start(menu)", "endLoading", "update(menu)", "render(menu)"},
		h.rec.events)
}

func TestTick_BeforeRunRendersNothing(t *testing.T) {
	h := newHarness(t, "menu")

	require.NoError(t, h.frame(1))
	assert.Equal(t, 0, h.render.renders)
	assert.Equal(t, 0, h.render.loading)
	assert.Equal(t, scene.None, h.m.Current())
}

func TestTick_MultipleStepsOneRender(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))

	require.NoError(t, h.frame(3))
	assert.Equal(t, 3, h.input.updates)
	assert.Equal(t, 3, h.latest("menu").updates)
	assert.Equal(t, 1, h.render.renders)
	assert.Equal(t, 3, h.m.TickCount())
	assert.Equal(t, 1, h.m.FrameCount())

	// Less than a step: no tick, still one render
	h.src.Add(testStep / 2)
	require.NoError(t, h.m.Tick())
	assert.Equal(t, 3, h.latest("menu").updates)
	assert.Equal(t, 2, h.render.renders)
}

func TestTick_StallIsClamped(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))

	h.src.Add(5 * time.Second)
	require.NoError(t, h.m.Tick())
	assert.Equal(t, int(clock.DefaultMaxDelta/testStep), h.m.TickCount())
	assert.Equal(t, 1, h.render.renders)
}

func TestGoTo_LastRequestWins(t *testing.T) {
	h := newHarness(t, "menu", "a", "b")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.GoTo("a"))
	require.NoError(t, h.m.GoTo("b"))
	assert.True(t, h.m.IsNextScene("b"))
	assert.False(t, h.m.IsNextScene("a"))

	require.NoError(t, h.frame(1))
	assert.Empty(t, h.built["a"], "superseded target is never constructed")
	assert.Len(t, h.built["b"], 1)
	assert.Equal(t, scene.ID("b"), h.m.Current())
	assert.True(t, h.m.IsPreviousScene("menu"))

	// Stop fires once even though two requests were made
	assert.Equal(t,
		[]string{"create(menu)", "start(menu)", "stop(menu)", "terminate(menu)", "create(b)", "start(b)"},
		h.rec.lifecycle())
}

func TestGoTo_UnknownScene(t *testing.T) {
	h := newHarness(t, "menu")

	err := h.m.GoTo("missing")
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.False(t, h.m.IsNextScene("missing"))
}

func TestScenario_PushPop(t *testing.T) {
	h := newHarness(t, "menu", "options")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.Push("options"))
	assert.Equal(t, 1, h.m.StackDepth())
	require.NoError(t, h.frame(1))
	assert.Equal(t, scene.ID("options"), h.m.Current())

	require.NoError(t, h.m.Pop())
	require.NoError(t, h.frame(1))

	assert.Equal(t, []string{
		"create(menu)", "start(menu)",
		"stop(menu)", "terminate(menu)",
		"create(options)", "start(options)",
		"stop(options)", "terminate(options)",
		"create(menu)", "start(menu)",
	}, h.rec.lifecycle())
	assert.Equal(t, scene.ID("menu"), h.m.Current())
	assert.Equal(t, scene.ID("options"), h.m.PreviousScene())
	assert.True(t, h.m.IsPreviousScene("options"))
	assert.Equal(t, 0, h.m.StackDepth())
	assert.Len(t, h.built["menu"], 2, "popping builds a fresh instance")
}

func TestPush_RequiresCurrentScene(t *testing.T) {
	h := newHarness(t, "menu", "options")
	require.NoError(t, h.m.Run("menu"))

	err := h.m.Push("options")
	assert.ErrorIs(t, err, ErrNoCurrentScene)
	assert.Equal(t, 0, h.m.StackDepth())
}

func TestPush_UnknownSceneLeavesStackUntouched(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	err := h.m.Push("missing")
	assert.ErrorIs(t, err, ErrUnknownScene)
	assert.Equal(t, 0, h.m.StackDepth())
}

func TestPop_EmptyStackExits(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.Pop())
	assert.True(t, h.m.Exiting())

	require.NoError(t, h.frame(1))
	assert.True(t, h.m.Stopped())
	assert.Equal(t, 1, h.host.terminated)
	assert.Equal(t, []string{"create(menu)", "start(menu)", "stop(menu)", "terminate(menu)"}, h.rec.lifecycle())
}

func TestExit_IsTerminal(t *testing.T) {
	h := newHarness(t, "menu", "options")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))
	require.NoError(t, h.m.Push("options"))
	require.NoError(t, h.frame(1))

	h.m.Exit()
	assert.ErrorIs(t, h.m.GoTo("menu"), ErrExiting)
	assert.ErrorIs(t, h.m.Push("menu"), ErrExiting)
	assert.ErrorIs(t, h.m.Pop(), ErrExiting)
	assert.False(t, h.m.IsNextScene("menu"))

	require.NoError(t, h.frame(1))
	assert.True(t, h.m.Stopped())
	assert.NoError(t, h.m.Err())
	assert.Equal(t, scene.None, h.m.Current())
	assert.True(t, h.m.IsPreviousScene("options"))
	assert.Equal(t, 1, h.host.terminated)
	assert.Len(t, h.built["menu"], 1)

	// Further frames are no-ops
	before := len(h.rec.events)
	frames := h.m.FrameCount()
	require.NoError(t, h.frame(3))
	assert.Len(t, h.rec.events, before)
	assert.Equal(t, frames, h.m.FrameCount())
	assert.Equal(t, 1, h.host.terminated)
}

func TestExit_StopsWithinFrame(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))
	renders := h.render.renders

	h.m.Exit()
	require.NoError(t, h.frame(4))
	assert.Equal(t, 2, h.m.TickCount(), "no ticks after the exit transition")
	assert.Equal(t, renders, h.render.renders)
}

func TestBusy_BlocksTransition(t *testing.T) {
	h := newHarness(t, "menu", "options")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	h.behaviors["menu"].busy = true
	require.NoError(t, h.m.GoTo("options"))
	h.m.Exit()

	for i := 0; i < 5; i++ {
		require.NoError(t, h.frame(1))
	}
	assert.Equal(t, scene.ID("menu"), h.m.Current())
	assert.False(t, h.m.Stopped())
	assert.Equal(t, 6, h.latest("menu").updates, "busy does not block update")
	assert.Equal(t, 6, h.render.renders, "busy does not block render")
	assert.NotContains(t, h.rec.lifecycle(), "terminate(menu)")

	h.behaviors["menu"].busy = false
	require.NoError(t, h.frame(1))
	assert.True(t, h.m.Stopped())
	assert.Empty(t, h.built["options"], "exit discards the pending target")
	assert.Equal(t, []string{"create(menu)", "start(menu)", "stop(menu)", "terminate(menu)"}, h.rec.lifecycle())
}

func TestScenario_LoadingScene(t *testing.T) {
	h := newHarness(t, "loader")
	h.behaviors["loader"].notReadyFor = 3
	require.NoError(t, h.m.Run("loader"))

	for i := 1; i <= 3; i++ {
		require.NoError(t, h.frame(1))
		assert.Equal(t, state.Created, h.m.CurrentState(), "frame %d", i)
		assert.Equal(t, i, h.render.loading, "frame %d", i)
		assert.Equal(t, 0, h.render.renders, "frame %d", i)
	}

	require.NoError(t, h.frame(1))
	assert.Equal(t, state.Started, h.m.CurrentState())
	assert.Equal(t, 3, h.render.loading)
	assert.Equal(t, 1, h.render.renders)
	assert.Equal(t, 1, h.latest("loader").updates)
	assert.Equal(t, []string{"create(loader)", "start(loader)"}, h.rec.lifecycle())
}

func TestNavigationFromScene(t *testing.T) {
	h := newHarness(t, "menu", "options")
	h.behaviors["menu"].onUpdate = func(nav scene.Navigator) {
		if !nav.IsNextScene("options") {
			require.NoError(t, nav.Push("options"))
		}
	}
	h.behaviors["options"].onUpdate = func(nav scene.Navigator) {
		if nav.IsPreviousScene("menu") {
			require.NoError(t, nav.Pop())
		}
	}
	require.NoError(t, h.m.Run("menu"))

	require.NoError(t, h.frame(3))
	assert.Equal(t, []string{
		"create(menu)", "start(menu)", "stop(menu)",
		"terminate(menu)", "create(options)", "start(options)", "stop(options)",
		"terminate(options)", "create(menu)", "start(menu)", "stop(menu)",
	}, h.rec.lifecycle())
}

func TestLifecycleError_HaltsLoop(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *behavior)
		op    string
	}{
		{"create", func(b *behavior) { b.createErr = errors.New("boom") }, "create"},
		{"start", func(b *behavior) { b.startErr = errors.New("boom") }, "start"},
		{"update", func(b *behavior) { b.updateErr = errors.New("boom") }, "update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "menu")
			tt.setup(h.behaviors["menu"])
			require.NoError(t, h.m.Run("menu"))

			err := h.frame(1)
			require.Error(t, err)
			assert.Equal(t, KindSceneLifecycle, KindOf(err))

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.op, e.Op)
			assert.Equal(t, scene.ID("menu"), e.Scene)

			assert.True(t, h.m.Stopped())
			assert.Equal(t, 1, h.audio.stops)
			assert.Equal(t, "SceneLifecycleError", h.render.errName)
			assert.Contains(t, h.render.errMessage, "boom")
			assert.Equal(t, 0, h.render.renders)

			// Never resumes
			before := len(h.rec.events)
			assert.Equal(t, err, h.frame(1))
			assert.Len(t, h.rec.events, before)
		})
	}
}

func TestLifecycleError_TerminateAndStop(t *testing.T) {
	h := newHarness(t, "menu", "options")
	h.behaviors["menu"].terminateErr = errors.New("teardown failed")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.GoTo("options"))
	err := h.frame(1)
	require.Error(t, err)
	assert.Equal(t, KindSceneLifecycle, KindOf(err))
	assert.Empty(t, h.built["options"], "no create after a failed terminate")
}

func TestStopError_FromSceneNavigation(t *testing.T) {
	h := newHarness(t, "menu", "options")
	h.behaviors["menu"].stopErr = errors.New("cannot stop")
	h.behaviors["menu"].onUpdate = func(nav scene.Navigator) {
		_ = nav.GoTo("options") // error ignored by the scene
	}
	require.NoError(t, h.m.Run("menu"))

	err := h.frame(1)
	require.Error(t, err)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "stop", e.Op)
	assert.True(t, h.m.Stopped())
}

func TestPanic_IsUnknownFailure(t *testing.T) {
	h := newHarness(t, "menu")
	h.behaviors["menu"].updatePanic = "nil map"
	require.NoError(t, h.m.Run("menu"))

	err := h.frame(1)
	require.Error(t, err)
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "UnknownFailure", h.render.errName)
	assert.Contains(t, h.render.errMessage, "nil map")
	assert.Equal(t, 1, h.audio.stops)
	assert.True(t, h.m.Stopped())
}

func TestHalt_SecondaryFailureIsSwallowed(t *testing.T) {
	h := newHarness(t, "menu")
	h.behaviors["menu"].createErr = errors.New("boom")
	h.render.panicOnPrint = true
	require.NoError(t, h.m.Run("menu"))

	var err error
	assert.NotPanics(t, func() { err = h.frame(1) })
	assert.Equal(t, KindSceneLifecycle, KindOf(err))
	assert.Equal(t, err, h.m.Err())
}

func TestRun_InitializationErrors(t *testing.T) {
	t.Run("requirement", func(t *testing.T) {
		h := newHarness(t, "menu")
		h.m.requirements = []Requirement{{Name: "shaders", Check: func() error { return errors.New("unsupported") }}}

		err := h.m.Run("menu")
		require.Error(t, err)
		assert.Equal(t, KindInitialization, KindOf(err))
		assert.Equal(t, "InitializationError", h.render.errName)
		assert.Contains(t, h.render.errMessage, "shaders")
		assert.True(t, h.m.Stopped())
		assert.Equal(t, 1, h.audio.stops)

		assert.Equal(t, err, h.frame(1))
		assert.Empty(t, h.built["menu"])
	})

	t.Run("unknown initial scene", func(t *testing.T) {
		h := newHarness(t, "menu")

		err := h.m.Run("missing")
		assert.Equal(t, KindInitialization, KindOf(err))
		assert.ErrorIs(t, err, ErrUnknownScene)
	})

	t.Run("run twice", func(t *testing.T) {
		h := newHarness(t, "menu")
		require.NoError(t, h.m.Run("menu"))

		err := h.m.Run("menu")
		assert.ErrorIs(t, err, ErrAlreadyInitialized)
	})
}

func TestSnapForBackground(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))
	before := h.m.TickCount()

	h.m.SnapForBackground()
	assert.Nil(t, h.m.BackgroundImage())
	assert.Equal(t, []string{"capture(menu)", "blur"}, h.rec.events[len(h.rec.events)-2:])
	assert.Equal(t, before, h.m.TickCount())
	assert.Equal(t, scene.ID("menu"), h.m.Current())
}

func TestStop_HaltsWithoutTerminating(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	h.m.Stop()
	assert.True(t, h.m.Stopped())
	assert.Equal(t, 1, h.audio.stops)

	require.NoError(t, h.frame(1))
	assert.Equal(t, 1, h.latest("menu").updates)
	assert.NotContains(t, h.rec.lifecycle(), "terminate(menu)")
}

func TestShutdown(t *testing.T) {
	h := newHarness(t, "menu")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.Shutdown())
	assert.True(t, h.m.Stopped())
	assert.Equal(t, scene.None, h.m.Current())
	assert.True(t, h.m.IsPreviousScene("menu"))
	assert.Equal(t, []string{"create(menu)", "start(menu)", "stop(menu)", "terminate(menu)"}, h.rec.lifecycle())

	require.NoError(t, h.m.Shutdown())
	assert.Len(t, h.rec.lifecycle(), 4)
}

func TestShutdown_AfterTerminateFailure(t *testing.T) {
	h := newHarness(t, "menu", "options")
	h.behaviors["menu"].terminateErr = errors.New("boom")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))

	require.NoError(t, h.m.GoTo("options"))
	require.Error(t, h.frame(1))
	assert.Equal(t, scene.None, h.m.Current())
	assert.Equal(t, state.Terminated, h.m.CurrentState())

	require.NoError(t, h.m.Shutdown())
	assert.Equal(t, []string{"create(menu)", "start(menu)", "stop(menu)", "terminate(menu)"}, h.rec.lifecycle())
}

func TestShutdown_AfterCreateFailure(t *testing.T) {
	h := newHarness(t, "menu")
	h.behaviors["menu"].createErr = errors.New("boom")
	require.NoError(t, h.m.Run("menu"))
	require.Error(t, h.frame(1))
	assert.Equal(t, scene.None, h.m.Current())

	require.NoError(t, h.m.Shutdown())
	assert.Equal(t, []string{"create(menu)"}, h.rec.lifecycle(), "a scene that was never created is not torn down")
}

func TestShutdown_BeforeStart(t *testing.T) {
	h := newHarness(t, "menu")
	h.behaviors["menu"].notReadyFor = 5
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))
	assert.Equal(t, state.Created, h.m.CurrentState())

	require.NoError(t, h.m.Shutdown())
	assert.Equal(t, []string{"create(menu)", "stop(menu)", "terminate(menu)"}, h.rec.lifecycle())
	assert.Equal(t, state.Terminated, h.m.CurrentState())
}

func TestClearStack(t *testing.T) {
	h := newHarness(t, "menu", "options")
	require.NoError(t, h.m.Run("menu"))
	require.NoError(t, h.frame(1))
	require.NoError(t, h.m.Push("options"))
	require.NoError(t, h.frame(1))

	h.m.ClearStack()
	assert.Equal(t, 0, h.m.StackDepth())

	require.NoError(t, h.m.Pop())
	assert.True(t, h.m.Exiting())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "UnknownFailure", KindUnknown.String())
	assert.Equal(t, "InitializationError", KindInitialization.String())
	assert.Equal(t, "SceneLifecycleError", KindSceneLifecycle.String())
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestError_Format(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Kind: KindSceneLifecycle, Op: "create", Scene: "menu", Err: cause}

	assert.Equal(t, "SceneLifecycleError: create menu: disk full", err.Error())
	assert.Equal(t, "create menu: disk full", err.Message())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("frame: %w", err)
	assert.Equal(t, KindSceneLifecycle, KindOf(wrapped))
}
