// Package state implements the scoped lexical environment (State) and the
// shared input/output resource (IO) threaded through both the AST
// interpreter and the stack machine.
//
// The frame chain follows the enclosing-scope idiom of the teacher's
// object.Environment (see evaluator.extendFunctionEnv in the retrieval
// pack), generalized to the dual discipline spec.md requires: call frames
// (enter/leave) bypass any pending pattern frames (push/drop) so a
// function called from inside a case body never sees the match-bound
// names on its return path.
package state

import (
	"errors"
	"fmt"

	"langcore/value"
)

// ErrUnboundName is returned by Eval when a name is not bound in any
// reachable frame, including the global frame.
var ErrUnboundName = errors.New("state: unbound name")

// Frame is one lexical scope: a fixed name set and a partial bindings
// function over that set, chained to an enclosing frame.
type Frame struct {
	names     map[string]bool
	bindings  map[string]value.Value
	enclosing *Frame
	isGlobal  bool
}

// State is a stack of lexical frames with a mandatory global frame at
// the bottom (invariant I1).
type State struct {
	top    *Frame
	global *Frame
}

// Empty returns a fresh State holding only the (empty) global frame.
func Empty() *State {
	g := &Frame{
		names:    map[string]bool{},
		bindings: map[string]value.Value{},
		isGlobal: true,
	}
	return &State{top: g, global: g}
}

func newFrame(names []string, enclosing *Frame) *Frame {
	f := &Frame{
		names:     make(map[string]bool, len(names)),
		bindings:  make(map[string]value.Value, len(names)),
		enclosing: enclosing,
	}
	for _, n := range names {
		f.names[n] = true
	}
	return f
}

// frameFor walks the chain starting at f looking for the innermost frame
// whose scope contains name, falling through to the global frame
// (invariants I2/I3).
func frameFor(f *Frame, global *Frame, name string) *Frame {
	for cur := f; cur != nil; cur = cur.enclosing {
		if cur.names[name] || cur.isGlobal {
			return cur
		}
	}
	return global
}

// Eval returns the value bound to name in the innermost frame whose
// scope contains it, falling through to the global frame. Evaluating an
// unbound name is a hard failure.
func (s *State) Eval(name string) (value.Value, error) {
	f := frameFor(s.top, s.global, name)
	v, ok := f.bindings[name]
	if !ok {
		return value.Value{}, fmt.Errorf("%w: %s", ErrUnboundName, name)
	}
	return v, nil
}

// Update mutates (functionally, by replacing the binding map entry) the
// innermost frame whose scope contains name, falling through to global.
func (s *State) Update(name string, v value.Value) {
	f := frameFor(s.top, s.global, name)
	f.bindings[name] = v
	if f.isGlobal {
		f.names[name] = true
	}
}

// Bind installs v for name directly in the global frame, defining name
// in its scope if it was not already present. Used to seed globals
// before execution begins.
func (s *State) Bind(name string, v value.Value) {
	s.global.names[name] = true
	s.global.bindings[name] = v
}

// Enter pushes a new frame whose scope is names directly onto the
// global frame of the current state, discarding any intermediate
// locals (invariant I4) — this is the calling-convention frame for
// function entry.
func (s *State) Enter(names []string) *State {
	f := newFrame(names, s.global)
	return &State{top: f, global: s.global}
}

// Leave restores the local chain of caller atop the (possibly mutated)
// global frame reached from callee (invariant I5).
func Leave(caller, callee *State) *State {
	return &State{top: caller.top, global: callee.global}
}

// Push introduces a pattern-match frame with the given scope names atop
// the current local chain (invariant I6), preserving the global tail.
func (s *State) Push(names []string) *State {
	f := newFrame(names, s.top)
	return &State{top: f, global: s.global}
}

// Drop pops the top local frame. It panics (spec §7's internal
// inconsistency) when the top frame is the global frame; it does not
// check that the top frame was installed by Push, so a frame made by
// Enter is dropped as well.
func (s *State) Drop() *State {
	if s.top == nil || s.top.enclosing == nil {
		panic("state: Drop without matching Push")
	}
	return &State{top: s.top.enclosing, global: s.global}
}

// BindInTop installs v for name in the current top frame directly,
// without walking the chain. Used by function entry (to bind arguments
// into the frame Enter just created) and by pattern-frame installation.
func (s *State) BindInTop(name string, v value.Value) {
	s.top.names[name] = true
	s.top.bindings[name] = v
}

// Depth reports how many frames are chained above the global frame,
// used by property tests checking invariant P4 (call-frame restoration).
func (s *State) Depth() int {
	n := 0
	for f := s.top; f != nil && !f.isGlobal; f = f.enclosing {
		n++
	}
	return n
}

// ScopeNames returns the name set of the top frame, used by property
// tests checking invariant P4.
func (s *State) ScopeNames() map[string]bool {
	return s.top.names
}
