package state

// Lifecycle is the position of a scene on its single forward path.
type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Created
	Started
	Terminated
)

// String returns the string representation of the lifecycle state
func (s Lifecycle) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Created:
		return "Created"
	case Started:
		return "Started"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// CanAdvanceTo reports whether next is a legal successor of s.
// Any live state may go straight to Terminated; otherwise states advance
// one step at a time and are never revisited.
func (s Lifecycle) CanAdvanceTo(next Lifecycle) bool {
	switch {
	case s == Terminated:
		return false
	case next == Terminated:
		return s != Uninitialized
	default:
		return next == s+1
	}
}
