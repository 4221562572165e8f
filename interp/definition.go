package interp

import (
	"fmt"

	"github.com/rs/zerolog"

	"langcore/ast"
	"langcore/builtin"
	"langcore/state"
	"langcore/toolconfig"
	"langcore/value"
)

// call dispatches to a user-defined function or a builtin (spec §4.4's
// env.definition). It returns the config after the call, whether a
// result was produced, and any error.
//
// Function entry builds the callee's initial state by Enter(args ∪
// locals) then binds each argument name to its value (spec §4.5,
// "Function entry"), runs the body with a Skip continuation, and
// restores the caller's local chain atop the callee's (possibly
// mutated) global frame via state.Leave.
func (it *Interp) call(cfg Config, name string, args []value.Value) (Config, bool, error) {
	if def, ok := it.Defs[name]; ok {
		return it.callUser(cfg, def, args)
	}
	if _, ok := builtin.Table[name]; ok {
		v, hasResult, err := builtin.Dispatch(it.Log, cfg.IO, name, args)
		if err != nil {
			return cfg, false, err
		}
		if !hasResult {
			return cfg, false, nil
		}
		return withLast(cfg, v), true, nil
	}
	return cfg, false, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
}

func (it *Interp) callUser(cfg Config, def *ast.Definition, args []value.Value) (Config, bool, error) {
	if len(args) != len(def.Args) {
		return cfg, false, fmt.Errorf("interp: %s expects %d arguments, got %d", def.Name, len(def.Args), len(args))
	}
	if it.MaxControlDepth > 0 && it.depth >= it.MaxControlDepth {
		return cfg, false, fmt.Errorf("%w: limit %d", ErrControlDepthExceeded, it.MaxControlDepth)
	}

	it.Log.Debug().Str("call", def.Name).Int("argc", len(args)).Msg("user call")
	it.depth++
	defer func() { it.depth-- }()

	scope := make([]string, 0, len(def.Args)+len(def.Locals))
	scope = append(scope, def.Args...)
	scope = append(scope, def.Locals...)
	calleeState := cfg.State.Enter(scope)
	for i, a := range def.Args {
		calleeState.BindInTop(a, args[i])
	}

	calleeCfg := Config{State: calleeState, IO: cfg.IO}
	calleeCfg, err := it.Exec(calleeCfg, def.Body, &ast.Skip{})
	if err != nil {
		return cfg, false, err
	}

	restored := state.Leave(cfg.State, calleeCfg.State)
	result := Config{State: restored, IO: cfg.IO, Last: calleeCfg.Last}
	return result, calleeCfg.Last != nil, nil
}

// Run executes program against input and returns the accumulated
// output log — the AST-interpreter side of the top-level entry point
// described in spec §6.
func Run(program ast.Program, input []int64) ([]int64, error) {
	return RunWithLogger(program, input, zerolog.Nop())
}

// RunWithLogger is Run with caller-supplied tracing (SPEC_FULL §2);
// the CLI's --trace flag feeds a non-Nop logger through here.
func RunWithLogger(program ast.Program, input []int64, log zerolog.Logger) ([]int64, error) {
	it := New(program.Definitions)
	it.Log = log
	return runWith(it, program, input)
}

// RunWithConfig is Run with both caller-supplied tracing and cfg's
// MaxControlDepth ceiling enforced (SPEC_FULL §2), the form the CLI
// uses so a toolconfig file's limits actually reach the AST path.
func RunWithConfig(program ast.Program, input []int64, log zerolog.Logger, cfg toolconfig.Config) ([]int64, error) {
	it := NewWithConfig(program.Definitions, cfg)
	it.Log = log
	return runWith(it, program, input)
}

func runWith(it *Interp, program ast.Program, input []int64) ([]int64, error) {
	io := state.NewIO(input)
	cfg := Config{State: state.Empty(), IO: io}
	_, err := it.Exec(cfg, program.Main, &ast.Skip{})
	if err != nil {
		return nil, err
	}
	return io.Output(), nil
}
