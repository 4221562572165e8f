package machine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"langcore/builtin"
	"langcore/state"
	"langcore/toolconfig"
	"langcore/value"
)

// Internal-inconsistency errors (spec §7's "compiler/codegen bug"
// class) panic rather than return, matching the teacher's vm.go
// "Stack overflow"/"Stack underflow" panics for the same class of bug.
const errStackUnderflow = "machine: value stack underflow"

// ErrUnknownCallee is a dispatch error: CALL names a function that is
// neither a resolvable user label nor a known builtin.
var ErrUnknownCallee = errors.New("machine: unknown function or builtin")

// ErrVoidCallUsedAsValue mirrors interp.ErrVoidCallUsedAsValue: a CALL
// with is_proc=false (to a builtin, or to a user function that reached
// END or RET without a value) produced no result but its result was
// expected on the value stack.
var ErrVoidCallUsedAsValue = errors.New("machine: call with no result used as a value")

// ErrControlDepthExceeded/ErrValueDepthExceeded enforce toolconfig's
// MaxControlDepth/MaxValueDepth ceilings (SPEC_FULL §2): a runaway
// recursive user call or an unbounded value-stack build-up returns
// these instead of growing vstack/ctrl without limit.
var ErrControlDepthExceeded = errors.New("machine: control stack depth exceeded")
var ErrValueDepthExceeded = errors.New("machine: value stack depth exceeded")

// ctrlEntry is one control-stack entry: where to resume, which caller
// state to restore atop the callee's (possibly mutated) global frame
// (invariant I5), and whether the call site that pushed this entry
// expects the callee to leave a value on vstack (mirrors the builtin
// CALL branch's IsProc/hasResult check, generalized to user calls).
type ctrlEntry struct {
	resume    int
	caller    *state.State
	wantValue bool
	callee    string
}

// VM executes a compiled []Instr program (spec §4.7). The zero value is
// ready to use, logging nothing (zerolog.Nop()) and enforcing no depth
// ceiling (MaxControlDepth/MaxValueDepth of 0 means unlimited).
type VM struct {
	Log             zerolog.Logger
	MaxControlDepth int
	MaxValueDepth   int
}

// New returns a VM with no logger output unless Log is set explicitly
// and no depth ceiling; use NewWithConfig to apply toolconfig's limits.
func New() *VM {
	return &VM{Log: zerolog.Nop()}
}

// NewWithConfig returns a VM with cfg's MaxControlDepth/MaxValueDepth
// enforced and no logger output unless Log is set explicitly.
func NewWithConfig(cfg toolconfig.Config) *VM {
	return &VM{Log: zerolog.Nop(), MaxControlDepth: cfg.MaxControlDepth, MaxValueDepth: cfg.MaxValueDepth}
}

// Run executes prog against input and returns the accumulated output
// log — the stack-machine side of the top-level entry point that must
// be observationally equivalent to interp.Run (spec §8 P1).
func (m *VM) Run(prog []Instr, input []int64) ([]int64, error) {
	labels, err := scanLabels(prog)
	if err != nil {
		return nil, err
	}

	io := state.NewIO(input)
	st := state.Empty()

	var ctrl []ctrlEntry
	var vstack []value.Value

	push := func(v value.Value) error {
		if m.MaxValueDepth > 0 && len(vstack) >= m.MaxValueDepth {
			return fmt.Errorf("%w: limit %d", ErrValueDepthExceeded, m.MaxValueDepth)
		}
		vstack = append(vstack, v)
		return nil
	}
	pop := func() value.Value {
		n := len(vstack)
		if n == 0 {
			panic(errStackUnderflow)
		}
		v := vstack[n-1]
		vstack = vstack[:n-1]
		return v
	}

	ip := 0
	for ip < len(prog) {
		instr := prog[ip]

		switch instr.Op {

		case OpLabel:
			ip++

		case OpConst:
			if err := push(value.Int(instr.Int)); err != nil {
				return nil, err
			}
			ip++

		case OpString:
			if err := push(value.String(instr.Str)); err != nil {
				return nil, err
			}
			ip++

		case OpSexp:
			children := make([]value.Value, instr.N)
			for i := instr.N - 1; i >= 0; i-- {
				children[i] = pop()
			}
			if err := push(value.Sexp(instr.Str, children)); err != nil {
				return nil, err
			}
			ip++

		case OpBinop:
			r := pop()
			l := pop()
			v, err := applyBinop(instr.BinOp, l, r)
			if err != nil {
				return nil, err
			}
			if err := push(v); err != nil {
				return nil, err
			}
			ip++

		case OpLd:
			v, err := st.Eval(instr.Str)
			if err != nil {
				return nil, err
			}
			if err := push(v); err != nil {
				return nil, err
			}
			ip++

		case OpSt:
			v := pop()
			st.Update(instr.Str, v)
			ip++

		case OpSta:
			rhs := pop()
			idxs := make([]value.Value, instr.N)
			for i := instr.N - 1; i >= 0; i-- {
				idxs[i] = pop()
			}
			current, err := st.Eval(instr.Str)
			if err != nil {
				return nil, err
			}
			updated, err := value.SubstitutePath(current, idxs, rhs)
			if err != nil {
				return nil, err
			}
			st.Update(instr.Str, updated)
			ip++

		case OpJmp:
			target, ok := labels[instr.Label]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnresolvedTarget, instr.Label)
			}
			ip = target

		case OpCjmp:
			top, err := pop().ToInt()
			if err != nil {
				return nil, err
			}
			zero := top == 0
			jump := (instr.Suffix == "z" && zero) || (instr.Suffix == "nz" && !zero)
			if jump {
				target, ok := labels[instr.Label]
				if !ok {
					return nil, fmt.Errorf("%w: %s", ErrUnresolvedTarget, instr.Label)
				}
				ip = target
			} else {
				ip++
			}

		case OpBegin:
			scope := make([]string, 0, len(instr.Args)+len(instr.Locals))
			scope = append(scope, instr.Args...)
			scope = append(scope, instr.Locals...)
			callee := st.Enter(scope)
			for _, name := range instr.Args {
				callee.BindInTop(name, pop())
			}
			st = callee
			ip++

		case OpEnd, OpRet:
			if len(ctrl) == 0 {
				return io.Output(), nil
			}
			n := len(ctrl)
			top := ctrl[n-1]
			ctrl = ctrl[:n-1]

			// OpEnd means the body fell off its end without an explicit
			// Return — never a value. OpRet carries its own HasVal,
			// mirroring interp.callUser's calleeCfg.Last != nil check so
			// both execution paths agree on whether this call produced a
			// result (spec §8 P1).
			hasVal := instr.Op == OpRet && instr.HasVal
			switch {
			case hasVal && !top.wantValue:
				pop()
			case !hasVal && top.wantValue:
				return nil, fmt.Errorf("%w: %s", ErrVoidCallUsedAsValue, top.callee)
			}

			st = state.Leave(top.caller, st)
			ip = top.resume

		case OpCall:
			if target, ok := labels[instr.Name]; ok {
				if m.MaxControlDepth > 0 && len(ctrl) >= m.MaxControlDepth {
					return nil, fmt.Errorf("%w: limit %d", ErrControlDepthExceeded, m.MaxControlDepth)
				}
				m.Log.Debug().Str("call", instr.Name).Int("argc", instr.N).Msg("user call")
				ctrl = append(ctrl, ctrlEntry{resume: ip + 1, caller: st, wantValue: !instr.IsProc, callee: instr.Name})
				ip = target
				continue
			}
			name := stripLabelPrefix(instr.Name)
			if _, ok := builtin.Table[name]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCallee, instr.Name)
			}
			args := make([]value.Value, instr.N)
			for i := instr.N - 1; i >= 0; i-- {
				args[i] = pop()
			}
			v, hasResult, err := builtin.Dispatch(m.Log, io, name, args)
			if err != nil {
				return nil, err
			}
			if !instr.IsProc {
				if !hasResult {
					return nil, fmt.Errorf("%w: %s", ErrVoidCallUsedAsValue, instr.Name)
				}
				if err := push(v); err != nil {
					return nil, err
				}
			}
			ip++

		case OpDrop:
			pop()
			ip++

		case OpDup:
			n := len(vstack)
			if n == 0 {
				panic(errStackUnderflow)
			}
			if err := push(vstack[n-1]); err != nil {
				return nil, err
			}
			ip++

		case OpSwap:
			n := len(vstack)
			if n < 2 {
				panic(errStackUnderflow)
			}
			vstack[n-1], vstack[n-2] = vstack[n-2], vstack[n-1]
			ip++

		case OpTag:
			v := pop()
			if v.IsSexp() {
				if tag, err := v.Tag(); err == nil && tag == instr.Str {
					if err := push(value.Int(1)); err != nil {
						return nil, err
					}
					ip++
					continue
				}
			}
			if err := push(value.Int(0)); err != nil {
				return nil, err
			}
			ip++

		case OpEnter:
			vals := make([]value.Value, len(instr.Names))
			for i := len(instr.Names) - 1; i >= 0; i-- {
				vals[i] = pop()
			}
			next := st.Push(instr.Names)
			for i, name := range instr.Names {
				next.BindInTop(name, vals[i])
			}
			st = next
			ip++

		case OpLeave:
			st = st.Drop()
			ip++

		default:
			return nil, fmt.Errorf("machine: unknown instruction %v", instr.Op)
		}
	}

	return io.Output(), nil
}

func applyBinop(op string, l, r value.Value) (value.Value, error) {
	li, err := l.ToInt()
	if err != nil {
		return value.Value{}, err
	}
	ri, err := r.ToInt()
	if err != nil {
		return value.Value{}, err
	}
	switch op {
	case "+":
		return value.Int(li + ri), nil
	case "-":
		return value.Int(li - ri), nil
	case "*":
		return value.Int(li * ri), nil
	case "/":
		if ri == 0 {
			return value.Value{}, fmt.Errorf("machine: division by zero")
		}
		return value.Int(li / ri), nil
	case "%":
		if ri == 0 {
			return value.Value{}, fmt.Errorf("machine: division by zero")
		}
		return value.Int(li % ri), nil
	case "<":
		return value.Bool(li < ri), nil
	case "<=":
		return value.Bool(li <= ri), nil
	case ">":
		return value.Bool(li > ri), nil
	case ">=":
		return value.Bool(li >= ri), nil
	case "==":
		return value.Bool(li == ri), nil
	case "!=":
		return value.Bool(li != ri), nil
	case "&&":
		return value.Bool(li != 0 && ri != 0), nil
	case "!!":
		return value.Bool(li != 0 || ri != 0), nil
	default:
		return value.Value{}, fmt.Errorf("machine: unknown binary operator %q", op)
	}
}
