package cpu

// CodeAluOp is an ALU operation type.
type CodeAluOp int

const (
	ALU_OP_ADD = CodeAluOp(0) // add
	ALU_OP_SUB = CodeAluOp(1) // sub
	ALU_OP_MUL = CodeAluOp(2) // mul
	ALU_OP_CMP = CodeAluOp(3) // cmp
)

// doAlu performs the requested ALU action on register a with value b.
// Results wrap modulo 256. CMP leaves a unchanged and sets the flag.
func (cpu *Cpu) doAlu(op CodeAluOp, a *byte, b byte) {
	switch op {
	case ALU_OP_ADD:
		*a = *a + b
	case ALU_OP_SUB:
		*a = *a - b
	case ALU_OP_MUL:
		*a = *a * b
	case ALU_OP_CMP:
		cpu.Flag = compare(*a, b)
	}
}
