package scenetest

import "github.com/younwookim/sceneloop/internal/application/system"

// Controls is a hand-driven input view. Tap makes actions trigger for the
// next tick only; call Clear between ticks.
type Controls struct {
	pressed map[system.Action]bool
}

var _ system.Controls = (*Controls)(nil)

// Tap presses actions for one tick.
func (c *Controls) Tap(actions ...system.Action) {
	c.pressed = make(map[system.Action]bool, len(actions))
	for _, a := range actions {
		c.pressed[a] = true
	}
}

// Clear releases everything.
func (c *Controls) Clear() {
	c.pressed = nil
}

func (c *Controls) IsPressed(a system.Action) bool   { return c.pressed[a] }
func (c *Controls) IsTriggered(a system.Action) bool { return c.pressed[a] }
func (c *Controls) IsRepeated(a system.Action) bool  { return c.pressed[a] }
