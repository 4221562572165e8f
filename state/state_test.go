package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langcore/state"
	"langcore/value"
)

func TestGlobalBindAndEval(t *testing.T) {
	s := state.Empty()
	s.Bind("x", value.Int(1))

	v, err := s.Eval("x")
	require.NoError(t, err)
	i, _ := v.ToInt()
	assert.Equal(t, int64(1), i)
}

func TestEvalUnbound(t *testing.T) {
	s := state.Empty()
	_, err := s.Eval("nope")
	assert.ErrorIs(t, err, state.ErrUnboundName)
}

func TestEnterBypassesPushedFrames(t *testing.T) {
	s := state.Empty()
	s.Bind("g", value.Int(1))

	pushed := s.Push([]string{"a"})
	pushed.BindInTop("a", value.Int(2))

	callee := pushed.Enter([]string{"x"})
	callee.BindInTop("x", value.Int(3))

	// "a" is a pattern-bound name; it must not be visible inside the
	// call frame Enter creates (invariant I4).
	_, err := callee.Eval("a")
	assert.ErrorIs(t, err, state.ErrUnboundName)

	v, err := callee.Eval("x")
	require.NoError(t, err)
	i, _ := v.ToInt()
	assert.Equal(t, int64(3), i)

	v, err = callee.Eval("g")
	require.NoError(t, err)
	i, _ = v.ToInt()
	assert.Equal(t, int64(1), i)
}

func TestLeaveRestoresCallerLocalChainAtopMutatedGlobal(t *testing.T) {
	s := state.Empty()
	s.Bind("g", value.Int(1))

	caller := s.Push([]string{"a"})
	caller.BindInTop("a", value.Int(10))

	callee := caller.Enter([]string{"n"})
	callee.BindInTop("n", value.Int(20))
	callee.Update("g", value.Int(99)) // mutate the shared global

	restored := state.Leave(caller, callee)

	// Caller's pattern-bound name "a" is visible again.
	v, err := restored.Eval("a")
	require.NoError(t, err)
	i, _ := v.ToInt()
	assert.Equal(t, int64(10), i)

	// The global mutation persists across the call.
	v, err = restored.Eval("g")
	require.NoError(t, err)
	i, _ = v.ToInt()
	assert.Equal(t, int64(99), i)

	assert.Equal(t, caller.Depth(), restored.Depth())
	assert.Equal(t, caller.ScopeNames(), restored.ScopeNames())
}

func TestPushDropRoundTrip(t *testing.T) {
	s := state.Empty()
	before := s.Depth()

	pushed := s.Push([]string{"a", "b"})
	assert.Equal(t, before+1, pushed.Depth())

	dropped := pushed.Drop()
	assert.Equal(t, before, dropped.Depth())
}

func TestDropWithoutPushPanics(t *testing.T) {
	s := state.Empty()
	assert.Panics(t, func() { s.Drop() })
}

func TestUpdateUnboundNameDefinesItGlobally(t *testing.T) {
	s := state.Empty()
	s.Update("new", value.Int(7))
	v, err := s.Eval("new")
	require.NoError(t, err)
	i, _ := v.ToInt()
	assert.Equal(t, int64(7), i)
}
