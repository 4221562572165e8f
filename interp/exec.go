package interp

import (
	"fmt"

	"langcore/ast"
)

// Exec evaluates stmt with continuation k — "what to do after stmt"
// (spec §4.5). It is trampolined: rather than recursing on each
// transition (which spec §9 notes would grow the native stack
// proportionally to nested Seq depth), it loops, rewriting the current
// (stmt, k) pair in place, and only returns when a Return statement is
// reached or both stmt and k have reduced to Skip.
func (it *Interp) Exec(cfg Config, stmt, k ast.Stmt) (Config, error) {
	for {
		switch s := stmt.(type) {

		case *ast.Skip:
			if _, ok := k.(*ast.Skip); ok {
				// Falling off the end without a Return produces no
				// result, matching the stack machine's END.
				cfg.Last = nil
				return cfg, nil
			}
			stmt, k = k, &ast.Skip{}

		case *ast.Assign:
			next, err := it.execAssign(cfg, s)
			if err != nil {
				return cfg, err
			}
			cfg = next
			stmt, k = &ast.Skip{}, k

		case *ast.Seq:
			stmt, k = s.First, ast.Join(s.Second, k)

		case *ast.If:
			next, err := it.Eval(cfg, s.Cond)
			if err != nil {
				return cfg, err
			}
			cfg = next
			truthy, err := cfg.Last.Truthy()
			if err != nil {
				return cfg, err
			}
			if truthy {
				stmt = s.Then
			} else {
				stmt = s.Else
			}

		case *ast.While:
			next, err := it.Eval(cfg, s.Cond)
			if err != nil {
				return cfg, err
			}
			cfg = next
			truthy, err := cfg.Last.Truthy()
			if err != nil {
				return cfg, err
			}
			if !truthy {
				stmt = &ast.Skip{}
			} else {
				stmt, k = s.Body, ast.Join(s, k)
			}

		case *ast.Repeat:
			// Post-test loop: run Body at least once, then repeat while
			// Cond evaluates to zero (spec §4.5, §8 boundary behavior).
			desugared := &ast.Seq{
				First: s.Body,
				Second: &ast.While{
					Cond: &ast.Binop{Op: "==", Left: s.Cond, Right: &ast.Const{Value: 0}},
					Body: s.Body,
				},
			}
			stmt = desugared

		case *ast.Case:
			next, branch, bindings, frameNames, err := it.execCase(cfg, s)
			if err != nil {
				return cfg, err
			}
			cfg = next
			if branch == nil {
				stmt = &ast.Skip{}
				continue
			}
			cfg.State = cfg.State.Push(frameNames)
			for _, name := range frameNames {
				cfg.State.BindInTop(name, bindings[name])
			}
			stmt = &ast.Seq{First: branch.Body, Second: &ast.Leave{}}

		case *ast.Leave:
			cfg.State = cfg.State.Drop()
			stmt, k = &ast.Skip{}, k

		case *ast.ExprStmt:
			args, cfg2, err := it.evalList(cfg, s.Args)
			if err != nil {
				return cfg, err
			}
			cfg3, _, err := it.call(cfg2, s.Name, args)
			if err != nil {
				return cfg, err
			}
			cfg = cfg3
			stmt, k = &ast.Skip{}, k

		case *ast.Return:
			if s.Value == nil {
				cfg.Last = nil
				return cfg, nil
			}
			next, err := it.Eval(cfg, s.Value)
			if err != nil {
				return cfg, err
			}
			return next, nil

		default:
			return cfg, fmt.Errorf("interp: unknown statement node %T", stmt)
		}
	}
}

// execAssign implements both plain assignment (Indices empty) and
// indexed assignment into a composite along an index path (spec §4.5).
func (it *Interp) execAssign(cfg Config, s *ast.Assign) (Config, error) {
	if len(s.Indices) == 0 {
		next, err := it.Eval(cfg, s.Rhs)
		if err != nil {
			return cfg, err
		}
		next.State.Update(s.Name, *next.Last)
		return next, nil
	}

	idxVals, cfg2, err := it.evalList(cfg, s.Indices)
	if err != nil {
		return cfg, err
	}
	cfg3, err := it.Eval(cfg2, s.Rhs)
	if err != nil {
		return cfg, err
	}
	rhs := *cfg3.Last

	current, err := cfg3.State.Eval(s.Name)
	if err != nil {
		return cfg, err
	}
	updated, err := substitutePath(current, idxVals, rhs)
	if err != nil {
		return cfg, err
	}
	cfg3.State.Update(s.Name, updated)
	return cfg3, nil
}
