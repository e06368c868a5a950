package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScene struct {
	Base
	n int
}

func newStub(n int) Constructor {
	return func(Navigator) Scene { return &stubScene{n: n} }
}

func TestBase_Defaults(t *testing.T) {
	var s Scene = Base{}

	assert.True(t, s.IsReady())
	assert.False(t, s.IsBusy())
	assert.NoError(t, s.Create())
	assert.NoError(t, s.Start())
	assert.NoError(t, s.Update())
	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Terminate())
}

func TestRegistry_RegisterAndNew(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("menu", newStub(1)))
	require.NoError(t, r.Register("options", newStub(2)))

	assert.True(t, r.Has("menu"))
	assert.False(t, r.Has("missing"))
	assert.Equal(t, []ID{"menu", "options"}, r.IDs())

	s, err := r.New("options", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, s.(*stubScene).n)

	// Every call builds a new instance
	s2, err := r.New("options", nil)
	require.NoError(t, err)
	assert.NotSame(t, s, s2)
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register(None, newStub(0)), ErrEmptyID)
	assert.Error(t, r.Register("nil", nil))

	require.NoError(t, r.Register("menu", newStub(1)))
	assert.ErrorIs(t, r.Register("menu", newStub(1)), ErrDuplicateID)

	_, err := r.New("missing", nil)
	assert.ErrorIs(t, err, ErrNotRegistered)

	require.NoError(t, r.Register("broken", func(Navigator) Scene { return nil }))
	_, err = r.New("broken", nil)
	assert.Error(t, err)
}

func TestStack_LIFO(t *testing.T) {
	var s Stack

	_, ok := s.Pop()
	assert.False(t, ok, "empty stack pops nothing")

	s.Push("a")
	s.Push("b")
	s.Push("c")
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("b"))

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, ID("c"), top)

	for _, want := range []ID{"c", "b", "a"} {
		got, ok := s.Pop()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, s.Len())
}

func TestStack_Clear(t *testing.T) {
	var s Stack
	s.Push("a")
	s.Push("b")

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("a"))

	_, ok := s.Peek()
	assert.False(t, ok)
}
