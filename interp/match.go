package interp

import (
	"langcore/ast"
	"langcore/value"
)

// frame is the accumulator Match threads: an ordered list of bindings
// (duplicates allowed; later binding wins, per spec §4.6) collected by
// left-to-right traversal.
type frame struct {
	order []string
	bind  map[string]value.Value
}

func newFrame() *frame {
	return &frame{bind: map[string]value.Value{}}
}

func (f *frame) set(name string, v value.Value) {
	if _, ok := f.bind[name]; !ok {
		f.order = append(f.order, name)
	}
	f.bind[name] = v
}

// Match structurally matches pattern against v, threading bindings
// through frame. It returns (updatedFrame, true) on success, or
// (f, false) on any shape mismatch (spec §4.6); f is updated in place, so
// bindings made before the mismatch remain in it.
func Match(pat ast.Pattern, v value.Value, f *frame) (*frame, bool) {
	switch p := pat.(type) {
	case *ast.Wildcard:
		return f, true

	case *ast.Ident:
		f.set(p.Name, v)
		return f, true

	case *ast.SexpPat:
		if !v.IsSexp() {
			return f, false
		}
		tag, err := v.Tag()
		if err != nil || tag != p.Tag {
			return f, false
		}
		children, err := v.Children()
		if err != nil || len(children) != len(p.Sub) {
			return f, false
		}
		cur := f
		for i, sub := range p.Sub {
			next, ok := Match(sub, children[i], cur)
			if !ok {
				return f, false
			}
			cur = next
		}
		return cur, true

	default:
		return f, false
	}
}

// execCase evaluates the scrutinee and scans branches in order,
// returning the first matching branch (or nil if none matched) along
// with the bindings and scope names its pattern frame should be
// installed with.
func (it *Interp) execCase(cfg Config, s *ast.Case) (Config, *ast.CaseBranch, map[string]value.Value, []string, error) {
	next, err := it.Eval(cfg, s.Scrutinee)
	if err != nil {
		return cfg, nil, nil, nil, err
	}
	v := *next.Last

	for i := range s.Branches {
		br := &s.Branches[i]
		f, ok := Match(br.Pat, v, newFrame())
		if !ok {
			continue
		}
		return next, br, f.bind, ast.Vars(br.Pat), nil
	}
	return next, nil, nil, nil, nil
}
