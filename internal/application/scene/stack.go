package scene

// Stack is the navigation history used for push/pop "back" semantics.
// It holds IDs only; popping an ID leads to a freshly constructed scene.
type Stack struct {
	ids []ID
}

// Push appends id to the top of the stack.
func (s *Stack) Push(id ID) {
	s.ids = append(s.ids, id)
}

// Pop removes and returns the top ID.
func (s *Stack) Pop() (ID, bool) {
	if len(s.ids) == 0 {
		return None, false
	}
	last := len(s.ids) - 1
	id := s.ids[last]
	s.ids = s.ids[:last]
	return id, true
}

// Peek returns the top ID without removing it.
func (s *Stack) Peek() (ID, bool) {
	if len(s.ids) == 0 {
		return None, false
	}
	return s.ids[len(s.ids)-1], true
}

// Len returns the number of entries.
func (s *Stack) Len() int {
	return len(s.ids)
}

// Contains reports whether id is anywhere on the stack.
func (s *Stack) Contains(id ID) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Clear empties the stack.
func (s *Stack) Clear() {
	s.ids = s.ids[:0]
}
