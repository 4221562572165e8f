// Package compiler lowers the AST into a linear []machine.Instr
// program (spec §4.8), sharing the label-allocator idiom the teacher's
// SymbolTable uses for variable slots (compiler/symtable.go) but
// applied to jump/call targets instead.
package compiler

import (
	"fmt"
	"strconv"

	"langcore/ast"
	"langcore/machine"
)

// Compiler holds the monotonic label counter shared across an entire
// program compile — both control-flow labels and user-function labels
// are drawn from the same "L<n>" namespace (spec §4.8), though
// function labels use the function's own name rather than a number.
type Compiler struct {
	n int
}

// New returns a ready-to-use Compiler.
func New() *Compiler {
	return &Compiler{}
}

// label allocates a fresh "L<n>" control-flow label.
func (c *Compiler) label() string {
	c.n++
	return "L" + strconv.Itoa(c.n)
}

// funcLabel is the label a user function's entry point compiles to —
// its name prefixed with "L" so user calls share the label namespace
// with control-flow labels (spec §4.8).
func funcLabel(name string) string {
	return "L" + name
}

// tempVar allocates a fresh scratch variable name for pattern-match
// lowering (genMatchSexp): it shares the counter with label(), so the
// two never collide with each other, and its "$" prefix keeps it out
// of the way of any name a concrete surface syntax could ever produce
// (there is no parser in this tree, so nothing else can ever bind or
// read a "$"-prefixed name). It lives out its days as a stray global
// binding once the case is done; nothing ever reads it again.
func (c *Compiler) tempVar() string {
	c.n++
	return "$m" + strconv.Itoa(c.n)
}

// Compile lowers an entire Program: main body first (terminated with
// END), then every definition's block, per spec §4.8's "Program"
// lowering rule.
func Compile(prog ast.Program) ([]machine.Instr, error) {
	c := New()

	var out []machine.Instr
	mainCode, err := c.compileStmt(prog.Main)
	if err != nil {
		return nil, fmt.Errorf("compiler: main body: %w", err)
	}
	out = append(out, mainCode...)
	out = append(out, machine.End())

	for _, def := range prog.Definitions {
		defCode, err := c.compileDefinition(def)
		if err != nil {
			return nil, fmt.Errorf("compiler: function %s: %w", def.Name, err)
		}
		out = append(out, defCode...)
	}

	return out, nil
}

// compileDefinition lowers LABEL Lname; BEGIN(name, args, locals);
// body; END.
func (c *Compiler) compileDefinition(def ast.Definition) ([]machine.Instr, error) {
	body, err := c.compileStmt(def.Body)
	if err != nil {
		return nil, err
	}
	out := []machine.Instr{
		machine.Label(funcLabel(def.Name)),
		machine.Begin(def.Name, def.Args, def.Locals),
	}
	out = append(out, body...)
	out = append(out, machine.End())
	return out, nil
}
