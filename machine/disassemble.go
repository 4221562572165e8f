package machine

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble renders a compiled program as human-readable text,
// mirroring the teacher's Chunk.Disassemble (vm/chunk.go) — one line
// per instruction, operands inline rather than decoded from a byte
// stream since this instruction set is already symbolic.
func Disassemble(prog []Instr) string {
	var b strings.Builder
	for i, instr := range prog {
		fmt.Fprintf(&b, "%04d  %s\n", i, disassembleOne(instr))
	}
	return b.String()
}

func disassembleOne(instr Instr) string {
	switch instr.Op {
	case OpBinop:
		return "BINOP " + instr.BinOp
	case OpConst:
		return "CONST " + strconv.FormatInt(instr.Int, 10)
	case OpString:
		return "STRING " + strconv.Quote(instr.Str)
	case OpSexp:
		return fmt.Sprintf("SEXP %s %d", instr.Str, instr.N)
	case OpLd:
		return "LD " + instr.Str
	case OpSt:
		return "ST " + instr.Str
	case OpSta:
		return fmt.Sprintf("STA %s %d", instr.Str, instr.N)
	case OpLabel:
		return "LABEL " + instr.Label
	case OpJmp:
		return "JMP " + instr.Label
	case OpCjmp:
		return fmt.Sprintf("CJMP %s %s", instr.Suffix, instr.Label)
	case OpBegin:
		return fmt.Sprintf("BEGIN %s args=%s locals=%s", instr.Name, strings.Join(instr.Args, ","), strings.Join(instr.Locals, ","))
	case OpEnd:
		return "END"
	case OpCall:
		return fmt.Sprintf("CALL %s %d proc=%t", instr.Name, instr.N, instr.IsProc)
	case OpRet:
		return fmt.Sprintf("RET %t", instr.HasVal)
	case OpDrop:
		return "DROP"
	case OpDup:
		return "DUP"
	case OpSwap:
		return "SWAP"
	case OpTag:
		return "TAG " + instr.Str
	case OpEnter:
		return "ENTER " + strings.Join(instr.Names, ",")
	case OpLeave:
		return "LEAVE"
	default:
		return "???"
	}
}
