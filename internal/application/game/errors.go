package game

import (
	"errors"
	"fmt"

	"github.com/younwookim/sceneloop/internal/application/scene"
)

// Navigation errors returned by the Manager. Check them with errors.Is.
var (
	// ErrNoCurrentScene is returned by Push when there is no scene to come back to.
	ErrNoCurrentScene = errors.New("sceneloop: no current scene")

	// ErrExiting is returned when navigation is requested after Exit.
	ErrExiting = errors.New("sceneloop: exiting")

	// ErrUnknownScene is returned when an ID is not in the registry.
	ErrUnknownScene = errors.New("sceneloop: unknown scene")

	// ErrAlreadyInitialized is returned when Run is called twice.
	ErrAlreadyInitialized = errors.New("sceneloop: already initialized")
)

// Kind categorizes failures that halt the loop.
type Kind int

const (
	// KindUnknown is any failure that does not fit another category,
	// including recovered panics.
	KindUnknown Kind = iota

	// KindInitialization means a required capability was unavailable at startup.
	KindInitialization

	// KindSceneLifecycle means a scene lifecycle method failed.
	KindSceneLifecycle
)

// String returns the category name shown on the error overlay.
func (k Kind) String() string {
	switch k {
	case KindInitialization:
		return "InitializationError"
	case KindSceneLifecycle:
		return "SceneLifecycleError"
	default:
		return "UnknownFailure"
	}
}

// Error is a categorized failure.
type Error struct {
	Kind  Kind
	Op    string
	Scene scene.ID
	Err   error
}

// Message describes the failure without the category prefix.
func (e *Error) Message() string {
	if e.Scene != scene.None {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Scene, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the category of err. Uncategorized errors are KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func lifecycleError(op string, id scene.ID, err error) error {
	return &Error{Kind: KindSceneLifecycle, Op: op, Scene: id, Err: err}
}

// categorize wraps err as KindUnknown unless it already carries a category.
func categorize(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnknown, Op: op, Err: err}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", r)
}
