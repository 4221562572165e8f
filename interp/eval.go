package interp

import (
	"fmt"

	"langcore/ast"
	"langcore/builtin"
	"langcore/value"
)

// Eval evaluates expr, threading cfg left to right. On success the
// returned Config always has a non-nil Last (spec §4.4).
func (it *Interp) Eval(cfg Config, expr ast.Expr) (Config, error) {
	switch e := expr.(type) {

	case *ast.Const:
		return withLast(cfg, value.Int(e.Value)), nil

	case *ast.Str:
		return withLast(cfg, value.String(e.Value)), nil

	case *ast.Var:
		v, err := cfg.State.Eval(e.Name)
		if err != nil {
			return cfg, err
		}
		return withLast(cfg, v), nil

	case *ast.ArrayLit:
		vals, cfg2, err := it.evalList(cfg, e.Elems)
		if err != nil {
			return cfg, err
		}
		return withLast(cfg2, value.Array(vals)), nil

	case *ast.SexpLit:
		vals, cfg2, err := it.evalList(cfg, e.Elems)
		if err != nil {
			return cfg, err
		}
		return withLast(cfg2, value.Sexp(e.Tag, vals)), nil

	case *ast.Elem:
		cfg1, err := it.Eval(cfg, e.Container)
		if err != nil {
			return cfg, err
		}
		container := *cfg1.Last
		cfg2, err := it.Eval(cfg1, e.Index)
		if err != nil {
			return cfg, err
		}
		v, _, err := builtin.Dispatch(it.Log, cfg2.IO, ".elem", []value.Value{container, *cfg2.Last})
		if err != nil {
			return cfg, err
		}
		return withLast(cfg2, v), nil

	case *ast.Length:
		cfg1, err := it.Eval(cfg, e.Container)
		if err != nil {
			return cfg, err
		}
		v, _, err := builtin.Dispatch(it.Log, cfg1.IO, ".length", []value.Value{*cfg1.Last})
		if err != nil {
			return cfg, err
		}
		return withLast(cfg1, v), nil

	case *ast.Binop:
		return it.evalBinop(cfg, e)

	case *ast.Call:
		args, cfg2, err := it.evalList(cfg, e.Args)
		if err != nil {
			return cfg, err
		}
		cfg3, hasResult, err := it.call(cfg2, e.Name, args)
		if err != nil {
			return cfg, err
		}
		if !hasResult {
			return cfg, fmt.Errorf("%w: %s", ErrVoidCallUsedAsValue, e.Name)
		}
		return cfg3, nil

	default:
		return cfg, fmt.Errorf("interp: unknown expression node %T", expr)
	}
}

func withLast(cfg Config, v value.Value) Config {
	cfg.Last = &v
	return cfg
}

// evalList evaluates a left-to-right list of expressions, threading cfg
// through each (spec §4.4: children/args evaluated left to right).
func (it *Interp) evalList(cfg Config, exprs []ast.Expr) ([]value.Value, Config, error) {
	vals := make([]value.Value, 0, len(exprs))
	cur := cfg
	for _, e := range exprs {
		next, err := it.Eval(cur, e)
		if err != nil {
			return nil, cfg, err
		}
		vals = append(vals, *next.Last)
		cur = next
	}
	return vals, cur, nil
}

func (it *Interp) evalBinop(cfg Config, e *ast.Binop) (Config, error) {
	cfgL, err := it.Eval(cfg, e.Left)
	if err != nil {
		return cfg, err
	}
	cfgR, err := it.Eval(cfgL, e.Right)
	if err != nil {
		return cfg, err
	}
	l, err := cfgL.Last.ToInt()
	if err != nil {
		return cfg, err
	}
	r, err := cfgR.Last.ToInt()
	if err != nil {
		return cfg, err
	}

	var result value.Value
	switch e.Op {
	case "+":
		result = value.Int(l + r)
	case "-":
		result = value.Int(l - r)
	case "*":
		result = value.Int(l * r)
	case "/":
		if r == 0 {
			return cfg, fmt.Errorf("interp: division by zero")
		}
		result = value.Int(l / r)
	case "%":
		if r == 0 {
			return cfg, fmt.Errorf("interp: division by zero")
		}
		result = value.Int(l % r)
	case "<":
		result = value.Bool(l < r)
	case "<=":
		result = value.Bool(l <= r)
	case ">":
		result = value.Bool(l > r)
	case ">=":
		result = value.Bool(l >= r)
	case "==":
		result = value.Bool(l == r)
	case "!=":
		result = value.Bool(l != r)
	case "&&":
		result = value.Bool(l != 0 && r != 0)
	case "!!":
		result = value.Bool(l != 0 || r != 0)
	default:
		return cfg, fmt.Errorf("interp: unknown binary operator %q", e.Op)
	}
	return withLast(cfgR, result), nil
}
