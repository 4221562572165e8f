// Package builtin implements the fixed table of primitive operations
// over value.Value and the shared state.IO (spec.md §4.3).
//
// The map-of-closures dispatch shape is grounded on the teacher's
// evaluator.builtins table (evaluator/evaluator.go) and its VM-side
// counterpart (compiler.compileBuiltinCall / vm.OP_BUILTIN in
// vm/vm.go) — both of which hold a small fixed name→implementation
// table consulted by both the tree-walker and the bytecode path. Here
// a single table serves both interp and machine directly, since
// spec.md requires the two execution paths to be observationally
// identical.
package builtin

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"langcore/state"
	"langcore/value"
)

// ErrUnknownBuiltin is returned when a name outside the fixed table is
// dispatched as a builtin (a dispatch error, spec §7).
var ErrUnknownBuiltin = errors.New("builtin: unknown function")

// ErrArity is returned when a builtin is invoked with the wrong number
// of arguments.
var ErrArity = errors.New("builtin: wrong number of arguments")

// Func is the shape of one builtin implementation: given the shared IO
// and already-evaluated arguments, it returns (result, hasResult, err).
// hasResult is false for calls like write that produce no value — a
// caller expecting one in that case is a hard failure (spec §4.3).
type Func func(io *state.IO, args []value.Value) (value.Value, bool, error)

// Table is the fixed dispatch table, indexed by name.
var Table = map[string]Func{
	"read":     read,
	"write":    write,
	".elem":    elem,
	".length":  length,
	".array":   array,
	"isArray":  isArray,
	"isString": isString,
}

// Names lists the builtin table's keys in a stable compiler-friendly
// order (read, write, .elem, .length, .array, isArray, isString),
// matching the order they appear in spec §4.3.
var Names = []string{"read", "write", ".elem", ".length", ".array", "isArray", "isString"}

// Dispatch invokes the named builtin, logging the call at debug level
// (SPEC_FULL §2 — the spec's non-contractual "Builtin:" trace becomes
// an explicit opt-in debug log here instead of unconditional stdout).
func Dispatch(log zerolog.Logger, io *state.IO, name string, args []value.Value) (value.Value, bool, error) {
	fn, ok := Table[name]
	if !ok {
		return value.Value{}, false, fmt.Errorf("%w: %s", ErrUnknownBuiltin, name)
	}
	log.Debug().Str("builtin", name).Int("argc", len(args)).Msg("builtin call")
	return fn(io, args)
}

func read(io *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 0 {
		return value.Value{}, false, fmt.Errorf("%w: read takes 0 arguments, got %d", ErrArity, len(args))
	}
	i, err := io.Read()
	if err != nil {
		return value.Value{}, false, err
	}
	return value.Int(i), true, nil
}

func write(io *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, false, fmt.Errorf("%w: write takes 1 argument, got %d", ErrArity, len(args))
	}
	i, err := args[0].ToInt()
	if err != nil {
		return value.Value{}, false, err
	}
	io.Write(i)
	return value.Value{}, false, nil
}

func elem(_ *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 2 {
		return value.Value{}, false, fmt.Errorf("%w: .elem takes 2 arguments, got %d", ErrArity, len(args))
	}
	idx, err := args[1].ToInt()
	if err != nil {
		return value.Value{}, false, err
	}
	v, err := args[0].Elem(idx)
	if err != nil {
		return value.Value{}, false, err
	}
	return v, true, nil
}

func length(_ *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, false, fmt.Errorf("%w: .length takes 1 argument, got %d", ErrArity, len(args))
	}
	n, err := args[0].Len()
	if err != nil {
		return value.Value{}, false, err
	}
	return value.Int(n), true, nil
}

func array(_ *state.IO, args []value.Value) (value.Value, bool, error) {
	return value.Array(args), true, nil
}

func isArray(_ *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, false, fmt.Errorf("%w: isArray takes 1 argument, got %d", ErrArity, len(args))
	}
	return value.Bool(args[0].IsArray()), true, nil
}

func isString(_ *state.IO, args []value.Value) (value.Value, bool, error) {
	if len(args) != 1 {
		return value.Value{}, false, fmt.Errorf("%w: isString takes 1 argument, got %d", ErrArity, len(args))
	}
	return value.Bool(args[0].IsString()), true, nil
}
