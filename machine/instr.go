// Package machine implements the linear stack-machine instruction set
// and the interpreter that executes it (spec §4.7), observationally
// equivalent to the direct AST interpreter in package interp.
//
// Instructions are represented symbolically — a struct per instruction
// carrying a label string rather than a resolved byte offset — unlike
// the teacher's packed vm.Chunk, because jump/call targets here are
// compiler-assigned label names (spec §4.8's "L<n>" scheme) resolved by
// a pre-execution scan (Verify/scanLabels), not fixed-width operands
// patched during code generation.
package machine

// Op identifies an instruction's opcode, grounded on the teacher's
// vm.Opcode naming and disassembly-table idiom (vm/opcode.go).
type Op int

const (
	OpBinop Op = iota
	OpConst
	OpString
	OpSexp
	OpLd
	OpSt
	OpSta
	OpLabel
	OpJmp
	OpCjmp
	OpBegin
	OpEnd
	OpCall
	OpRet
	OpDrop
	OpDup
	OpSwap
	OpTag
	OpEnter
	OpLeave
)

var opNames = map[Op]string{
	OpBinop: "BINOP",
	OpConst: "CONST",
	OpString: "STRING",
	OpSexp:  "SEXP",
	OpLd:    "LD",
	OpSt:    "ST",
	OpSta:   "STA",
	OpLabel: "LABEL",
	OpJmp:   "JMP",
	OpCjmp:  "CJMP",
	OpBegin: "BEGIN",
	OpEnd:   "END",
	OpCall:  "CALL",
	OpRet:   "RET",
	OpDrop:  "DROP",
	OpDup:   "DUP",
	OpSwap:  "SWAP",
	OpTag:   "TAG",
	OpEnter: "ENTER",
	OpLeave: "LEAVE",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return "UNKNOWN"
}

// Instr is one symbolic stack-machine instruction. Only the fields
// relevant to Op are populated; the zero value of the rest is ignored.
type Instr struct {
	Op     Op
	BinOp  string   // BINOP
	Int    int64    // CONST
	Str    string   // STRING / SEXP tag / TAG tag / LD/ST/STA name
	N      int      // SEXP arity / STA index count / CALL arg count
	Suffix string   // CJMP: "z" or "nz"
	Label  string   // LABEL / JMP / CJMP target
	Name   string   // BEGIN function name / CALL callee name
	Args   []string // BEGIN
	Locals []string // BEGIN
	Names  []string // ENTER
	IsProc bool     // CALL
	HasVal bool     // RET
}

func Binop(op string) Instr            { return Instr{Op: OpBinop, BinOp: op} }
func Const(i int64) Instr              { return Instr{Op: OpConst, Int: i} }
func String(s string) Instr            { return Instr{Op: OpString, Str: s} }
func Sexp(tag string, n int) Instr     { return Instr{Op: OpSexp, Str: tag, N: n} }
func Ld(name string) Instr             { return Instr{Op: OpLd, Str: name} }
func St(name string) Instr             { return Instr{Op: OpSt, Str: name} }
func Sta(name string, n int) Instr     { return Instr{Op: OpSta, Str: name, N: n} }
func Label(l string) Instr             { return Instr{Op: OpLabel, Label: l} }
func Jmp(l string) Instr               { return Instr{Op: OpJmp, Label: l} }
func Cjmp(suffix, l string) Instr      { return Instr{Op: OpCjmp, Suffix: suffix, Label: l} }
func Begin(name string, args, locals []string) Instr {
	return Instr{Op: OpBegin, Name: name, Args: args, Locals: locals}
}
func End() Instr                           { return Instr{Op: OpEnd} }
func Call(name string, n int, isProc bool) Instr {
	return Instr{Op: OpCall, Name: name, N: n, IsProc: isProc}
}
func Ret(hasVal bool) Instr  { return Instr{Op: OpRet, HasVal: hasVal} }
func Drop() Instr            { return Instr{Op: OpDrop} }
func Dup() Instr             { return Instr{Op: OpDup} }
func Swap() Instr            { return Instr{Op: OpSwap} }
func Tag(t string) Instr     { return Instr{Op: OpTag, Str: t} }
func Enter(names []string) Instr { return Instr{Op: OpEnter, Names: names} }
func Leave() Instr            { return Instr{Op: OpLeave} }
