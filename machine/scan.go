package machine

import (
	"errors"
	"fmt"
)

// ErrDuplicateLabel and ErrUnresolvedTarget back property P6 (label
// uniqueness; every jump/call target resolves).
var (
	ErrDuplicateLabel   = errors.New("machine: duplicate label")
	ErrUnresolvedTarget = errors.New("machine: unresolved jump or call target")
)

// scanLabels builds a label → instruction-index map. A jump targeting
// label l lands on the instruction immediately after the LABEL l
// instruction, per spec §4.7.
func scanLabels(prog []Instr) (map[string]int, error) {
	labels := make(map[string]int, len(prog)/4+1)
	for i, instr := range prog {
		if instr.Op != OpLabel {
			continue
		}
		if _, dup := labels[instr.Label]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLabel, instr.Label)
		}
		labels[instr.Label] = i + 1
	}
	return labels, nil
}

// targetOf reports the label a given instruction names as a jump or
// call target, and whether the instruction has one at all.
func targetOf(instr Instr) (string, bool) {
	switch instr.Op {
	case OpJmp, OpCjmp:
		return instr.Label, true
	case OpCall:
		return instr.Name, true
	default:
		return "", false
	}
}

// stripLabelPrefix removes the "L" user-function prefix CALL names may
// carry, recovering the plain builtin name for table lookup (spec
// §4.7's CALL semantics).
func stripLabelPrefix(name string) string {
	if len(name) > 1 && name[0] == 'L' {
		return name[1:]
	}
	return name
}
