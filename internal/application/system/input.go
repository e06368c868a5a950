package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/sceneloop/internal/application/replay"
	"github.com/younwookim/sceneloop/internal/infrastructure/config"
)

// Action is a logical input, independent of the physical key.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm
	ActionCancel
	ActionMenu
	actionCount
)

// String returns the string representation of the action
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// InputState holds the actions held during one tick
type InputState struct {
	Up      bool
	Down    bool
	Left    bool
	Right   bool
	Confirm bool
	Cancel  bool
	Menu    bool
}

// Held reports whether a is held in this state
func (s InputState) Held(a Action) bool {
	switch a {
	case ActionUp:
		return s.Up
	case ActionDown:
		return s.Down
	case ActionLeft:
		return s.Left
	case ActionRight:
		return s.Right
	case ActionConfirm:
		return s.Confirm
	case ActionCancel:
		return s.Cancel
	case ActionMenu:
		return s.Menu
	default:
		return false
	}
}

// Sampler reads the raw input state
type Sampler func() InputState

// InputSystem samples input once per simulation tick. Edge detection is done
// against the previous tick, not the previous display frame, so a press is
// triggered on exactly one tick even when a frame runs several ticks.
type InputSystem struct {
	sample   Sampler
	cur      InputState
	prev     InputState
	held     [actionCount]int
	delay    int
	interval int
	recorder *replay.Recorder
}

// Controls is the read side of the input system used by scenes.
type Controls interface {
	IsPressed(a Action) bool
	IsTriggered(a Action) bool
	IsRepeated(a Action) bool
}

var _ Controls = (*InputSystem)(nil)

// NewInputSystem creates a new input system
func NewInputSystem(cfg config.InputConfig, sample Sampler) *InputSystem {
	delay := cfg.RepeatDelay
	if delay <= 0 {
		delay = 24
	}
	interval := cfg.RepeatInterval
	if interval <= 0 {
		interval = 6
	}
	return &InputSystem{
		sample:   sample,
		delay:    delay,
		interval: interval,
	}
}

// Record makes every sampled tick go to rec as well
func (s *InputSystem) Record(rec *replay.Recorder) {
	s.recorder = rec
}

// Update samples the input for the next tick
func (s *InputSystem) Update() {
	s.prev = s.cur
	s.cur = s.sample()

	for a := Action(0); a < actionCount; a++ {
		if s.cur.Held(a) {
			s.held[a]++
		} else {
			s.held[a] = 0
		}
	}

	if s.recorder != nil {
		s.recorder.RecordFrame(ToFrameInput(s.cur))
	}
}

// State returns the input held this tick
func (s *InputSystem) State() InputState {
	return s.cur
}

// IsPressed reports whether a is held this tick
func (s *InputSystem) IsPressed(a Action) bool {
	return s.cur.Held(a)
}

// IsTriggered reports whether a went down this tick
func (s *InputSystem) IsTriggered(a Action) bool {
	return s.cur.Held(a) && !s.prev.Held(a)
}

// IsReleased reports whether a went up this tick
func (s *InputSystem) IsReleased(a Action) bool {
	return !s.cur.Held(a) && s.prev.Held(a)
}

// IsRepeated reports a menu-style key repeat: the first tick, then every
// interval ticks once the action has been held past the delay.
func (s *InputSystem) IsRepeated(a Action) bool {
	n := s.held[a]
	if n == 0 {
		return false
	}
	if n == 1 {
		return true
	}
	return n > s.delay && (n-s.delay)%s.interval == 0
}

// HeldTicks returns how many consecutive ticks a has been held
func (s *InputSystem) HeldTicks(a Action) int {
	return s.held[a]
}

// DefaultBindings maps each action to its keyboard keys
func DefaultBindings() map[Action][]ebiten.Key {
	return map[Action][]ebiten.Key{
		ActionUp:      {ebiten.KeyArrowUp, ebiten.KeyW},
		ActionDown:    {ebiten.KeyArrowDown, ebiten.KeyS},
		ActionLeft:    {ebiten.KeyArrowLeft, ebiten.KeyA},
		ActionRight:   {ebiten.KeyArrowRight, ebiten.KeyD},
		ActionConfirm: {ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyZ},
		ActionCancel:  {ebiten.KeyX, ebiten.KeyBackspace},
		ActionMenu:    {ebiten.KeyEscape},
	}
}

// KeyboardSampler reads the live keyboard through ebiten
func KeyboardSampler(bindings map[Action][]ebiten.Key) Sampler {
	anyPressed := func(a Action) bool {
		for _, k := range bindings[a] {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return func() InputState {
		return InputState{
			Up:      anyPressed(ActionUp),
			Down:    anyPressed(ActionDown),
			Left:    anyPressed(ActionLeft),
			Right:   anyPressed(ActionRight),
			Confirm: anyPressed(ActionConfirm),
			Cancel:  anyPressed(ActionCancel),
			Menu:    anyPressed(ActionMenu),
		}
	}
}

// ReplaySampler plays recorded ticks back. onEnd is called once, on the
// first tick after the recording runs out; from then on nothing is held.
func ReplaySampler(r *replay.Replayer, onEnd func()) Sampler {
	ended := false
	return func() InputState {
		fi, ok := r.Next()
		if !ok {
			if !ended {
				ended = true
				if onEnd != nil {
					onEnd()
				}
			}
			return InputState{}
		}
		return FromFrameInput(fi)
	}
}

// ToFrameInput converts a tick's state to its recorded form
func ToFrameInput(s InputState) replay.FrameInput {
	return replay.FrameInput{
		U:  s.Up,
		D:  s.Down,
		L:  s.Left,
		R:  s.Right,
		OK: s.Confirm,
		C:  s.Cancel,
		M:  s.Menu,
	}
}

// FromFrameInput converts a recorded tick back to an input state
func FromFrameInput(fi replay.FrameInput) InputState {
	return InputState{
		Up:      fi.U,
		Down:    fi.D,
		Left:    fi.L,
		Right:   fi.R,
		Confirm: fi.OK,
		Cancel:  fi.C,
		Menu:    fi.M,
	}
}
