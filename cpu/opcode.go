package cpu

import (
	"fmt"
	"strings"
)

// Opcode is the first byte of an instruction.
//
// The encoding is AABCDDDD: AA is the number of operands, B is set for ALU
// operations, C is set for instructions that set the PC, and DDDD is the
// instruction identifier.
type Opcode byte

//go:generate go tool stringer -type=Opcode
const (
	HLT  = Opcode(0b00000001)
	RET  = Opcode(0b00010001)
	PUSH = Opcode(0b01000101)
	POP  = Opcode(0b01000110)
	PRN  = Opcode(0b01000111)
	CALL = Opcode(0b01010000)
	JMP  = Opcode(0b01010100)
	JEQ  = Opcode(0b01010101)
	JNE  = Opcode(0b01010110)
	LDI  = Opcode(0b10000010)
	ADD  = Opcode(0b10100000)
	SUB  = Opcode(0b10100001)
	MUL  = Opcode(0b10100010)
	CMP  = Opcode(0b10100111)
)

// Operands returns the number of operand bytes that follow the opcode.
func (op Opcode) Operands() int {
	return int(op >> 6)
}

// Size returns the length in bytes of an instruction with this opcode.
func (op Opcode) Size() int {
	return 1 + op.Operands()
}

// IsAlu returns true if the opcode is an ALU operation.
func (op Opcode) IsAlu() bool {
	return (op>>5)&1 == 1
}

// SetsPc returns true if the opcode writes the PC directly.
func (op Opcode) SetsPc() bool {
	return (op>>4)&1 == 1
}

// CodeArg is the interpretation of an operand byte.
type CodeArg int

const (
	ARG_REG = CodeArg(0) // Register index, 0-7.
	ARG_IMM = CodeArg(1) // Immediate 8-bit value.
)

// opcodeArgs describes the operands of each supported opcode.
var opcodeArgs = map[Opcode][]CodeArg{
	HLT:  nil,
	RET:  nil,
	PUSH: {ARG_REG},
	POP:  {ARG_REG},
	PRN:  {ARG_REG},
	CALL: {ARG_REG},
	JMP:  {ARG_REG},
	JEQ:  {ARG_REG},
	JNE:  {ARG_REG},
	LDI:  {ARG_REG, ARG_IMM},
	ADD:  {ARG_REG, ARG_REG},
	SUB:  {ARG_REG, ARG_REG},
	MUL:  {ARG_REG, ARG_REG},
	CMP:  {ARG_REG, ARG_REG},
}

// opcodeByName maps mnemonics to opcodes.
var opcodeByName = func() map[string]Opcode {
	names := make(map[string]Opcode, len(opcodeArgs))
	for op := range opcodeArgs {
		names[op.String()] = op
	}
	return names
}()

// Args returns the operand kinds of the opcode, and whether the opcode
// is supported at all.
func (op Opcode) Args() (args []CodeArg, ok bool) {
	args, ok = opcodeArgs[op]
	return
}

// Instruction is a decoded opcode and its operands.
type Instruction struct {
	Opcode   Opcode
	Operands []byte
}

// Size returns the length in bytes of the instruction.
func (ins Instruction) Size() int {
	return ins.Opcode.Size()
}

// Bytes returns the encoded instruction.
func (ins Instruction) Bytes() []byte {
	return append([]byte{byte(ins.Opcode)}, ins.Operands...)
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() string {
	args, ok := ins.Opcode.Args()
	if !ok {
		return fmt.Sprintf("DB 0x%02x", byte(ins.Opcode))
	}

	words := make([]string, 0, len(ins.Operands))
	for n, value := range ins.Operands {
		kind := ARG_IMM
		if n < len(args) {
			kind = args[n]
		}
		switch kind {
		case ARG_REG:
			words = append(words, fmt.Sprintf("R%d", value))
		default:
			words = append(words, fmt.Sprintf("%d", value))
		}
	}

	if len(words) == 0 {
		return ins.Opcode.String()
	}

	return ins.Opcode.String() + " " + strings.Join(words, ",")
}
