package interp

import "langcore/value"

// substitutePath is a thin alias over value.SubstitutePath kept local to
// this package's call sites; the real logic is shared with the stack
// machine's STA handling (spec §4.5 and §4.7).
func substitutePath(container value.Value, idxs []value.Value, rhs value.Value) (value.Value, error) {
	return value.SubstitutePath(container, idxs, rhs)
}
