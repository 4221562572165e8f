package compiler

import (
	"fmt"

	"langcore/ast"
	"langcore/builtin"
	"langcore/machine"
)

// compileExpr lowers an expression, leaving its value on top of the
// value stack (spec §4.8).
func (c *Compiler) compileExpr(e ast.Expr) ([]machine.Instr, error) {
	switch expr := e.(type) {

	case *ast.Const:
		return []machine.Instr{machine.Const(expr.Value)}, nil

	case *ast.Str:
		return []machine.Instr{machine.String(expr.Value)}, nil

	case *ast.Var:
		return []machine.Instr{machine.Ld(expr.Name)}, nil

	case *ast.ArrayLit:
		code, err := c.compileExprList(expr.Elems)
		if err != nil {
			return nil, err
		}
		code = append(code, machine.Call(".array", len(expr.Elems), false))
		return code, nil

	case *ast.SexpLit:
		code, err := c.compileExprList(expr.Elems)
		if err != nil {
			return nil, err
		}
		code = append(code, machine.Sexp(expr.Tag, len(expr.Elems)))
		return code, nil

	case *ast.Elem:
		return c.compileExprList([]ast.Expr{expr.Container, expr.Index}, machine.Call(".elem", 2, false))

	case *ast.Length:
		return c.compileExprList([]ast.Expr{expr.Container}, machine.Call(".length", 1, false))

	case *ast.Binop:
		l, err := c.compileExpr(expr.Left)
		if err != nil {
			return nil, err
		}
		r, err := c.compileExpr(expr.Right)
		if err != nil {
			return nil, err
		}
		out := append(l, r...)
		out = append(out, machine.Binop(expr.Op))
		return out, nil

	case *ast.Call:
		return c.compileCall(expr.Name, expr.Args, false)

	default:
		return nil, fmt.Errorf("compiler: unknown expression node %T", e)
	}
}

// compileExprList compiles es left to right, concatenating their code,
// then appends trailer (when given) — used for builtin-backed forms
// (.array, .elem, .length) that take their evaluated arguments in
// source order.
func (c *Compiler) compileExprList(es []ast.Expr, trailer ...machine.Instr) ([]machine.Instr, error) {
	var out []machine.Instr
	for _, e := range es {
		code, err := c.compileExpr(e)
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	out = append(out, trailer...)
	return out, nil
}

// compileCall lowers a user/builtin call. For a user function the
// arguments are compiled in reverse so the first argument ends up on top
// of the stack, per spec §4.7's BEGIN contract; for a builtin they are
// compiled in source order.
func (c *Compiler) compileCall(name string, args []ast.Expr, isProc bool) ([]machine.Instr, error) {
	// User calls push arguments in reverse so BEGIN's positional pop
	// (first pop binds the first argument name) lines up directly; a
	// builtin reached through this generic call form instead pushes in
	// natural order and relies on CALL's builtin branch to reverse the
	// popped values back into source order (spec §4.7/§4.8 — the two
	// builtin entry points, this one and the dedicated Array/Elem/
	// Length lowering in compileExpr, agree on that convention).
	if !isUserCallTarget(name) {
		code, err := c.compileExprList(args)
		if err != nil {
			return nil, err
		}
		code = append(code, machine.Call(name, len(args), isProc))
		return code, nil
	}

	var out []machine.Instr
	for i := len(args) - 1; i >= 0; i-- {
		code, err := c.compileExpr(args[i])
		if err != nil {
			return nil, err
		}
		out = append(out, code...)
	}
	out = append(out, machine.Call(funcLabel(name), len(args), isProc))
	return out, nil
}

// isUserCallTarget reports whether name should be resolved through the
// "L"-prefixed label namespace rather than called as a builtin
// directly. Builtin names are a fixed, closed set (spec §4.3); any
// other name is assumed to be a user function.
func isUserCallTarget(name string) bool {
	_, ok := builtin.Table[name]
	return !ok
}
