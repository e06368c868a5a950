package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ID identifies a kind of scene. Two requests for the same ID refer to the
// same factory, so IDs are what navigation compares and what the stack stores.
type ID string

// None is the empty ID. It never names a registered scene.
const None ID = ""

// Constructor builds a fresh scene instance.
type Constructor func(nav Navigator) Scene

var (
	// ErrEmptyID is returned when registering the empty ID.
	ErrEmptyID = errors.New("scene: empty id")

	// ErrDuplicateID is returned when an ID is registered twice.
	ErrDuplicateID = errors.New("scene: duplicate id")

	// ErrNotRegistered is returned when constructing an unknown ID.
	ErrNotRegistered = errors.New("scene: not registered")
)

// Registry maps scene IDs to their constructors.
type Registry struct {
	ctors map[ID]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[ID]Constructor)}
}

// Register adds a constructor for id.
func (r *Registry) Register(id ID, ctor Constructor) error {
	if id == None {
		return ErrEmptyID
	}
	if ctor == nil {
		return fmt.Errorf("scene %q: nil constructor", id)
	}
	if _, ok := r.ctors[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	r.ctors[id] = ctor
	return nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.ctors[id]
	return ok
}

// New constructs a scene for id.
func (r *Registry) New(id ID, nav Navigator) (Scene, error) {
	ctor, ok := r.ctors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, id)
	}
	s := ctor(nav)
	if s == nil {
		return nil, fmt.Errorf("scene %q: constructor returned nil", id)
	}
	return s, nil
}

// IDs returns the registered IDs in sorted order.
func (r *Registry) IDs() []ID {
	ids := make([]ID, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
