package machine

import (
	"fmt"

	"langcore/builtin"
)

// Verify statically checks property P6 over a compiled program: every
// LABEL appears exactly once, and every JMP/CJMP/CALL target resolves
// — to a label for JMP/CJMP, and to either a label (user function) or
// a known builtin name for CALL. It is a direct encoding of a named
// testable property, not part of spec.md's operation list, in the
// spirit of the teacher's SymbolTable.Resolve defensive pass over a
// different kind of binding.
func Verify(prog []Instr) error {
	labels, err := scanLabels(prog)
	if err != nil {
		return err
	}

	for _, instr := range prog {
		target, ok := targetOf(instr)
		if !ok {
			continue
		}
		if _, found := labels[target]; found {
			continue
		}
		if instr.Op == OpCall {
			if _, isBuiltin := builtin.Table[stripLabelPrefix(target)]; isBuiltin {
				continue
			}
		}
		return fmt.Errorf("%w: %s", ErrUnresolvedTarget, target)
	}
	return nil
}
