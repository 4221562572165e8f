package compiler

import (
	"fmt"

	"langcore/ast"
	"langcore/machine"
)

// compileStmt lowers a statement, emitting code with control transfers
// (spec §4.8). Unlike expressions, statements leave the value stack at
// the same depth it had on entry.
func (c *Compiler) compileStmt(s ast.Stmt) ([]machine.Instr, error) {
	switch stmt := s.(type) {

	case *ast.Skip:
		return nil, nil

	case *ast.Assign:
		return c.compileAssign(stmt)

	case *ast.Seq:
		first, err := c.compileStmt(stmt.First)
		if err != nil {
			return nil, err
		}
		second, err := c.compileStmt(stmt.Second)
		if err != nil {
			return nil, err
		}
		return append(first, second...), nil

	case *ast.If:
		return c.compileIf(stmt)

	case *ast.While:
		return c.compileWhile(stmt)

	case *ast.Repeat:
		return c.compileRepeat(stmt)

	case *ast.Case:
		return c.compileCase(stmt)

	case *ast.Leave:
		return []machine.Instr{machine.Leave()}, nil

	case *ast.ExprStmt:
		return c.compileCall(stmt.Name, stmt.Args, true)

	case *ast.Return:
		if stmt.Value == nil {
			return []machine.Instr{machine.Ret(false)}, nil
		}
		code, err := c.compileExpr(stmt.Value)
		if err != nil {
			return nil, err
		}
		return append(code, machine.Ret(true)), nil

	default:
		return nil, fmt.Errorf("compiler: unknown statement node %T", s)
	}
}

// compileAssign lowers Assign(x, [], e) → e; ST x, and
// Assign(x, idxs, e) → idxs...; e; STA(x, |idxs|) (spec §4.8).
func (c *Compiler) compileAssign(s *ast.Assign) ([]machine.Instr, error) {
	if len(s.Indices) == 0 {
		code, err := c.compileExpr(s.Rhs)
		if err != nil {
			return nil, err
		}
		return append(code, machine.St(s.Name)), nil
	}

	idxCode, err := c.compileExprList(s.Indices)
	if err != nil {
		return nil, err
	}
	rhsCode, err := c.compileExpr(s.Rhs)
	if err != nil {
		return nil, err
	}
	out := append(idxCode, rhsCode...)
	out = append(out, machine.Sta(s.Name, len(s.Indices)))
	return out, nil
}

// compileIf lowers If(c,t,e): fresh Lelse, Lfi;
// cond; CJMP z Lelse; then; JMP Lfi; LABEL Lelse; else; LABEL Lfi.
func (c *Compiler) compileIf(s *ast.If) ([]machine.Instr, error) {
	lelse := c.label()
	lfi := c.label()

	cond, err := c.compileExpr(s.Cond)
	if err != nil {
		return nil, err
	}
	then, err := c.compileStmt(s.Then)
	if err != nil {
		return nil, err
	}
	els, err := c.compileStmt(s.Else)
	if err != nil {
		return nil, err
	}

	var out []machine.Instr
	out = append(out, cond...)
	out = append(out, machine.Cjmp("z", lelse))
	out = append(out, then...)
	out = append(out, machine.Jmp(lfi))
	out = append(out, machine.Label(lelse))
	out = append(out, els...)
	out = append(out, machine.Label(lfi))
	return out, nil
}

// compileWhile lowers While(c,b): fresh Lcheck, Lloop;
// JMP Lcheck; LABEL Lloop; body; LABEL Lcheck; cond; CJMP nz Lloop.
func (c *Compiler) compileWhile(s *ast.While) ([]machine.Instr, error) {
	lcheck := c.label()
	lloop := c.label()

	body, err := c.compileStmt(s.Body)
	if err != nil {
		return nil, err
	}
	cond, err := c.compileExpr(s.Cond)
	if err != nil {
		return nil, err
	}

	var out []machine.Instr
	out = append(out, machine.Jmp(lcheck))
	out = append(out, machine.Label(lloop))
	out = append(out, body...)
	out = append(out, machine.Label(lcheck))
	out = append(out, cond...)
	out = append(out, machine.Cjmp("nz", lloop))
	return out, nil
}

// compileRepeat lowers Repeat(body,cond): fresh Lloop;
// LABEL Lloop; body; cond; CJMP z Lloop. Post-test loop: the body
// always runs at least once before cond is first checked.
func (c *Compiler) compileRepeat(s *ast.Repeat) ([]machine.Instr, error) {
	lloop := c.label()

	body, err := c.compileStmt(s.Body)
	if err != nil {
		return nil, err
	}
	cond, err := c.compileExpr(s.Cond)
	if err != nil {
		return nil, err
	}

	var out []machine.Instr
	out = append(out, machine.Label(lloop))
	out = append(out, body...)
	out = append(out, cond...)
	out = append(out, machine.Cjmp("z", lloop))
	return out, nil
}
