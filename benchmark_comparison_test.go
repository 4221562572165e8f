package langcore_test

import (
	"testing"

	"langcore/compiler"
	"langcore/examples"
	"langcore/interp"
	"langcore/machine"
)

// Grounded on the teacher's benchmark_comparison_test.go: a
// tree-walker benchmark paired with a compile-and-run-on-the-VM
// benchmark for the same program, so `go test -bench` comparisons line
// up by name. The teacher benchmarks parsed Pidgin source text; this
// tree has no parser (spec §1), so these run directly against the
// examples package's ast.Program values instead.

func runAST(ex examples.Example) ([]int64, error) {
	return interp.Run(ex.Program, ex.Input)
}

func runSM(ex examples.Example) ([]int64, error) {
	prog, err := compiler.Compile(ex.Program)
	if err != nil {
		return nil, err
	}
	return machine.New().Run(prog, ex.Input)
}

func BenchmarkHelloArithmetic_AST(b *testing.B) {
	ex := examples.HelloArithmetic()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runAST(ex)
	}
}

func BenchmarkHelloArithmetic_SM(b *testing.B) {
	ex := examples.HelloArithmetic()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runSM(ex)
	}
}

func BenchmarkFactorialWhile_AST(b *testing.B) {
	ex := examples.FactorialWhile()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runAST(ex)
	}
}

func BenchmarkFactorialWhile_SM(b *testing.B) {
	ex := examples.FactorialWhile()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runSM(ex)
	}
}

func BenchmarkArrayIndexLength_AST(b *testing.B) {
	ex := examples.ArrayIndexLength()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runAST(ex)
	}
}

func BenchmarkArrayIndexLength_SM(b *testing.B) {
	ex := examples.ArrayIndexLength()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runSM(ex)
	}
}

func BenchmarkSexpPatternMatch_AST(b *testing.B) {
	ex := examples.SexpPatternMatch()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runAST(ex)
	}
}

func BenchmarkSexpPatternMatch_SM(b *testing.B) {
	ex := examples.SexpPatternMatch()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runSM(ex)
	}
}

func BenchmarkRepeatSemantics_AST(b *testing.B) {
	ex := examples.RepeatSemantics()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runAST(ex)
	}
}

func BenchmarkRepeatSemantics_SM(b *testing.B) {
	ex := examples.RepeatSemantics()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = runSM(ex)
	}
}
