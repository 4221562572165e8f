package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"langcore/ast"
)

func TestVarsDedupesFirstOccurrenceWins(t *testing.T) {
	pat := &ast.SexpPat{
		Tag: "Pair",
		Sub: []ast.Pattern{
			&ast.Ident{Name: "a"},
			&ast.SexpPat{Tag: "Pair", Sub: []ast.Pattern{
				&ast.Ident{Name: "b"},
				&ast.Ident{Name: "a"},
			}},
		},
	}
	assert.Equal(t, []string{"a", "b"}, ast.Vars(pat))
}

func TestVarsWildcardBindsNothing(t *testing.T) {
	pat := &ast.SexpPat{Tag: "Pair", Sub: []ast.Pattern{&ast.Wildcard{}, &ast.Ident{Name: "x"}}}
	assert.Equal(t, []string{"x"}, ast.Vars(pat))
}

func TestJoinSkipIsIdentity(t *testing.T) {
	s := &ast.Skip{}
	joined := ast.Join(s, &ast.Skip{})
	assert.Same(t, s, joined)
}

func TestJoinNonSkipSequences(t *testing.T) {
	s := &ast.Assign{Name: "x", Rhs: &ast.Const{Value: 1}}
	k := &ast.Return{}
	joined := ast.Join(s, k)
	seq, ok := joined.(*ast.Seq)
	assert.True(t, ok)
	assert.Same(t, ast.Stmt(s), seq.First)
	assert.Same(t, ast.Stmt(k), seq.Second)
}

func TestNewForDesugars(t *testing.T) {
	init := &ast.Assign{Name: "i", Rhs: &ast.Const{Value: 0}}
	cond := &ast.Binop{Op: "<", Left: &ast.Var{Name: "i"}, Right: &ast.Const{Value: 10}}
	step := &ast.Assign{Name: "i", Rhs: &ast.Binop{Op: "+", Left: &ast.Var{Name: "i"}, Right: &ast.Const{Value: 1}}}
	body := &ast.ExprStmt{Name: "write", Args: []ast.Expr{&ast.Var{Name: "i"}}}

	desugared := ast.NewFor(init, cond, step, body)

	seq, ok := desugared.(*ast.Seq)
	assert.True(t, ok)
	assert.Same(t, ast.Stmt(init), seq.First)

	while, ok := seq.Second.(*ast.While)
	assert.True(t, ok)
	assert.Same(t, cond, while.Cond)

	bodySeq, ok := while.Body.(*ast.Seq)
	assert.True(t, ok)
	assert.Same(t, ast.Stmt(body), bodySeq.First)
	assert.Same(t, ast.Stmt(step), bodySeq.Second)
}
