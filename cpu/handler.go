package cpu

import (
	"errors"
	"fmt"
)

// handler executes one instruction. args holds the operand bytes.
// Only handlers for opcodes that set the PC update it.
type handler func(cpu *Cpu, args []byte) error

// opcodeTable is the dispatch table.
var opcodeTable = map[Opcode]handler{
	HLT:  opHlt,
	LDI:  opLdi,
	PRN:  opPrn,
	ADD:  aluHandler(ALU_OP_ADD),
	SUB:  aluHandler(ALU_OP_SUB),
	MUL:  aluHandler(ALU_OP_MUL),
	CMP:  aluHandler(ALU_OP_CMP),
	PUSH: opPush,
	POP:  opPop,
	CALL: opCall,
	RET:  opRet,
	JMP:  opJmp,
	JEQ:  opJeq,
	JNE:  opJne,
}

// register returns the register selected by an operand byte.
func (cpu *Cpu) register(index byte) (reg *byte, err error) {
	if int(index) >= len(cpu.Register) {
		err = ErrOperandRange
		return
	}

	reg = &cpu.Register[index]
	return
}

// registers returns the registers selected by the first two operand bytes.
func (cpu *Cpu) registers(args []byte) (a, b *byte, err error) {
	a, err = cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	b, err = cpu.register(args[1])
	if err != nil {
		err = errors.Join(ErrOpcodeArg2, err)
		return
	}

	return
}

func opHlt(cpu *Cpu, args []byte) (err error) {
	cpu.Running = false
	return
}

func opLdi(cpu *Cpu, args []byte) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	*reg = args[1]
	return
}

func opPrn(cpu *Cpu, args []byte) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	if cpu.Output != nil {
		_, err = fmt.Fprintf(cpu.Output, "%d\n", *reg)
		if err != nil {
			err = errors.Join(ErrOpcodeOutput, err)
			return
		}
	}

	return
}

func aluHandler(op CodeAluOp) handler {
	return func(cpu *Cpu, args []byte) (err error) {
		a, b, err := cpu.registers(args)
		if err != nil {
			return
		}

		cpu.doAlu(op, a, *b)
		return
	}
}

func opPush(cpu *Cpu, args []byte) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	err = cpu.Stack().Push(*reg)
	return
}

func opPop(cpu *Cpu, args []byte) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	value, err := cpu.Stack().Pop()
	if err != nil {
		return
	}

	*reg = value
	return
}

func opCall(cpu *Cpu, args []byte) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	next_pc := cpu.Pc + 2
	if next_pc >= len(cpu.Memory) {
		err = ErrOperandRange
		return
	}

	err = cpu.Stack().Push(byte(next_pc))
	if err != nil {
		return
	}

	cpu.Pc = int(*reg)
	return
}

func opRet(cpu *Cpu, args []byte) (err error) {
	value, err := cpu.Stack().Pop()
	if err != nil {
		return
	}

	cpu.Pc = int(value)
	return
}

// jump sets the PC from a register if taken, or skips the instruction.
func (cpu *Cpu) jump(args []byte, taken bool) (err error) {
	reg, err := cpu.register(args[0])
	if err != nil {
		err = errors.Join(ErrOpcodeArg1, err)
		return
	}

	if taken {
		cpu.Pc = int(*reg)
	} else {
		cpu.Pc += 2
	}

	return
}

// opJmp jumps to the address held in a register, as JEQ and JNE do.
func opJmp(cpu *Cpu, args []byte) error {
	return cpu.jump(args, true)
}

func opJeq(cpu *Cpu, args []byte) error {
	return cpu.jump(args, cpu.Flag == FLAG_EQUAL)
}

func opJne(cpu *Cpu, args []byte) error {
	return cpu.jump(args, cpu.Flag != FLAG_EQUAL)
}
