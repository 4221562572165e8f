package compiler

import (
	"langcore/ast"
	"langcore/machine"
)

// compileCase lowers Case(e, branches) per spec §4.8: the scrutinee is
// pushed once and kept on the stack across every branch attempt (each
// attempt works against a DUP'd copy); the first matching branch binds
// its pattern's variables via ENTER, runs its body, and LEAVEs the
// pattern frame; if no branch matches, execution falls through with
// the scrutinee discarded and nothing else changed (a silent no-op).
//
// Each branch's failure label is a fresh label except the last, which
// reuses the shared tail label Lend — both a failed final branch and a
// successful branch's post-body JMP land there.
func (c *Compiler) compileCase(s *ast.Case) ([]machine.Instr, error) {
	lend := c.label()

	scrutinee, err := c.compileExpr(s.Scrutinee)
	if err != nil {
		return nil, err
	}

	var out []machine.Instr
	out = append(out, scrutinee...)

	for i := range s.Branches {
		br := &s.Branches[i]

		failLabel := lend
		if i < len(s.Branches)-1 {
			failLabel = c.label()
		}

		out = append(out, machine.Dup())
		matchCode, err := c.genMatch(br.Pat, failLabel)
		if err != nil {
			return nil, err
		}
		out = append(out, matchCode...)
		out = append(out, machine.Enter(ast.Vars(br.Pat)))

		body, err := c.compileStmt(br.Body)
		if err != nil {
			return nil, err
		}
		out = append(out, body...)
		out = append(out, machine.Leave())
		out = append(out, machine.Jmp(lend))

		if i < len(s.Branches)-1 {
			out = append(out, machine.Label(failLabel))
		}
	}

	out = append(out, machine.Label(lend))
	out = append(out, machine.Drop())
	return out, nil
}

// genMatch compiles pattern p assuming one value ("cur") sits on top of
// the stack. On a successful match it leaves exactly vars(p) values on
// the stack, in left-to-right order, ready for a single ENTER; on
// failure it fully unwinds whatever it consumed of cur and jumps to
// failLabel, leaving the stack exactly as it was before cur was pushed
// (spec §4.8's pattern-test/bindings, collapsed into one consuming
// pass since this implementation tests and destructures in lockstep
// rather than traversing the pattern twice).
func (c *Compiler) genMatch(p ast.Pattern, failLabel string) ([]machine.Instr, error) {
	switch pat := p.(type) {

	case *ast.Wildcard:
		return []machine.Instr{machine.Drop()}, nil

	case *ast.Ident:
		return nil, nil

	case *ast.SexpPat:
		return c.genMatchSexp(pat, failLabel)

	default:
		return nil, nil
	}
}

// genMatchSexp stashes cur in a scratch variable ($mN) rather than
// reaching children via repeated DUPs of the stack top: once the first
// child binds any variable, its bound value sits on top of cur, so a
// DUP aimed at "the stack top" would duplicate that binding instead of
// cur for every child after it. Reading cur back out of the scratch
// variable for every .elem access sidesteps the stack position
// entirely — it works the same whether a child binds zero vars
// (Wildcard) or several (a nested SexpPat), and regardless of which
// child in the list that happens at.
func (c *Compiler) genMatchSexp(pat *ast.SexpPat, failLabel string) ([]machine.Instr, error) {
	tmp := c.tempVar()
	lfailTag := c.label()
	ltagOK := c.label()

	var out []machine.Instr
	out = append(out, machine.St(tmp))
	out = append(out, machine.Ld(tmp))
	out = append(out, machine.Tag(pat.Tag))
	out = append(out, machine.Cjmp("z", lfailTag))
	out = append(out, machine.Jmp(ltagOK))
	out = append(out, machine.Label(lfailTag))
	out = append(out, machine.Jmp(failLabel))
	out = append(out, machine.Label(ltagOK))

	// boundSoFar tracks how many values earlier children have already
	// left on the stack, so a later child's failure path knows exactly
	// how many of them to DROP before unwinding to failLabel.
	boundSoFar := 0
	for i := 0; i < len(pat.Sub); i++ {
		out = append(out, machine.Ld(tmp))
		out = append(out, machine.Const(int64(i)))
		out = append(out, machine.Call(".elem", 2, false))

		lchildFail := c.label()
		lafter := c.label()

		subCode, err := c.genMatch(pat.Sub[i], lchildFail)
		if err != nil {
			return nil, err
		}
		out = append(out, subCode...)
		out = append(out, machine.Jmp(lafter))
		out = append(out, machine.Label(lchildFail))
		for k := 0; k < boundSoFar; k++ {
			out = append(out, machine.Drop())
		}
		out = append(out, machine.Jmp(failLabel))
		out = append(out, machine.Label(lafter))

		boundSoFar += len(ast.Vars(pat.Sub[i]))
	}

	return out, nil
}
