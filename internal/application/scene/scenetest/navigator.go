// Package scenetest provides a recording Navigator for scene tests.
package scenetest

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/sceneloop/internal/application/scene"
)

// Navigator records every navigation request instead of acting on it.
type Navigator struct {
	Calls      []string
	Next       scene.ID
	Previous   scene.ID
	Exited     bool
	Snapped    bool
	Background *ebiten.Image
	Err        error

	// OnLeave, when set, runs for every GoTo, Push, Pop and Exit, the way the
	// manager calls Stop on the requesting scene.
	OnLeave func()
}

var _ scene.Navigator = (*Navigator)(nil)

func (n *Navigator) leave() {
	if n.OnLeave != nil {
		n.OnLeave()
	}
}

func (n *Navigator) GoTo(id scene.ID) error {
	n.Calls = append(n.Calls, fmt.Sprintf("goto %s", id))
	n.Next = id
	n.leave()
	return n.Err
}

func (n *Navigator) Push(id scene.ID) error {
	n.Calls = append(n.Calls, fmt.Sprintf("push %s", id))
	n.Next = id
	n.leave()
	return n.Err
}

func (n *Navigator) Pop() error {
	n.Calls = append(n.Calls, "pop")
	n.leave()
	return n.Err
}

func (n *Navigator) Exit() {
	n.Calls = append(n.Calls, "exit")
	n.Exited = true
	n.leave()
}

func (n *Navigator) IsNextScene(id scene.ID) bool     { return n.Next == id }
func (n *Navigator) IsPreviousScene(id scene.ID) bool { return n.Previous == id }

func (n *Navigator) SnapForBackground() {
	n.Calls = append(n.Calls, "snap")
	n.Snapped = true
}

func (n *Navigator) BackgroundImage() *ebiten.Image { return n.Background }

// Last returns the most recent call, or "".
func (n *Navigator) Last() string {
	if len(n.Calls) == 0 {
		return ""
	}
	return n.Calls[len(n.Calls)-1]
}
