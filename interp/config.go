// Package interp implements the direct (tree-walking) execution path:
// the expression evaluator (C4), the continuation-as-AST statement
// evaluator (C5), and the structural pattern matcher (C6).
//
// The expression evaluator's big switch-on-node-type dispatch is
// grounded on the teacher's evaluator.Eval (evaluator/evaluator.go).
// The statement evaluator has no teacher analogue — the teacher's
// block/program evaluator is a plain loop over statements with no
// notion of an explicit continuation argument — and is built directly
// from spec.md §4.5's transition table, trampolined with a loop instead
// of native recursion so nested Seq right-spines don't grow the Go
// call stack (spec §9's "avoids native-stack growth" guidance).
package interp

import (
	"errors"

	"github.com/rs/zerolog"

	"langcore/ast"
	"langcore/state"
	"langcore/toolconfig"
	"langcore/value"
)

// Config is the 4-tuple (State, input queue, output log, last value)
// threaded through every evaluation step (spec.md §3).
type Config struct {
	State *state.State
	IO    *state.IO
	Last  *value.Value
}

// ErrVoidCallUsedAsValue is returned when a call producing no result —
// a builtin such as write, or a user function that ends without
// returning a value — is used in expression position (spec §4.4's open
// question, resolved per spec.md as a hard error).
var ErrVoidCallUsedAsValue = errors.New("interp: call with no result used as a value")

// ErrUnknownFunction is a dispatch error: Call/ExprStmt names a function
// that is neither a user definition nor a builtin.
var ErrUnknownFunction = errors.New("interp: unknown function")

// ErrControlDepthExceeded mirrors machine.ErrControlDepthExceeded: a
// user-call recursion deeper than MaxControlDepth (SPEC_FULL §2) is
// rejected instead of growing the Go call stack without limit.
var ErrControlDepthExceeded = errors.New("interp: control stack depth exceeded")

// Interp holds the fixed set of user definitions resolved by name, the
// logger used for call/builtin tracing, and the recursive user-call
// depth ceiling (0 means unlimited).
type Interp struct {
	Defs            map[string]*ast.Definition
	Log             zerolog.Logger
	MaxControlDepth int
	depth           int
}

// New builds an Interp with no logger output (zerolog.Nop()) and no
// depth ceiling unless the caller sets Log/MaxControlDepth explicitly.
func New(defs []ast.Definition) *Interp {
	it := &Interp{
		Defs: make(map[string]*ast.Definition, len(defs)),
		Log:  zerolog.Nop(),
	}
	for i := range defs {
		it.Defs[defs[i].Name] = &defs[i]
	}
	return it
}

// NewWithConfig is New with cfg's MaxControlDepth enforced.
func NewWithConfig(defs []ast.Definition, cfg toolconfig.Config) *Interp {
	it := New(defs)
	it.MaxControlDepth = cfg.MaxControlDepth
	return it
}
