package cpu

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for op := range opcodeArgs {
		f.Add(byte(op), byte(0), byte(1), byte(0x10), uint8(0))
		f.Add(byte(op), byte(7), byte(8), byte(0xff), uint8(STACK_TOP))
	}
	f.Add(byte(0), byte(0), byte(0), byte(0), uint8(0))

	f.Fuzz(func(t *testing.T, opcode, arg1, arg2, value byte, sp uint8) {
		assert := assert.New(t)

		cpu := NewCpu()
		cpu.Output = io.Discard
		assert.NoError(cpu.Load([]byte{opcode, arg1, arg2}))
		for n := range cpu.Register {
			cpu.Register[n] = value + byte(n)
		}
		cpu.Register[REG_SP] = sp

		pre := *cpu

		err := cpu.Tick()

		op := Opcode(opcode)
		args, supported := op.Args()

		if !supported {
			assert.ErrorIs(err, ErrOpcodeInvalid)
			assert.False(cpu.Running)
			assert.Equal(pre.Register, cpu.Register)
			assert.Equal(pre.Memory, cpu.Memory)
			assert.Equal(0, cpu.Pc)
			return
		}

		operands := []byte{arg1, arg2}[:len(args)]

		badReg := false
		for n, arg := range args {
			if arg == ARG_REG && operands[n] >= REGISTER_COUNT {
				badReg = true
			}
		}

		if badReg {
			assert.ErrorIs(err, ErrOperandRange)
			assert.False(cpu.Running)
			assert.Equal(pre.Register, cpu.Register)
			assert.Equal(pre.Memory, cpu.Memory)
			return
		}

		if errors.Is(err, ErrStackFull) || errors.Is(err, ErrStackEmpty) {
			// Failed stack operations leave everything in place.
			assert.Contains([]Opcode{PUSH, POP, CALL, RET}, op)
			assert.False(cpu.Running)
			assert.Equal(pre.Register, cpu.Register)
			assert.Equal(pre.Memory, cpu.Memory)
			assert.Equal(0, cpu.Pc)
			return
		}

		assert.NoError(err)
		assert.Equal(op != HLT, cpu.Running)

		if !op.SetsPc() {
			assert.Equal(op.Size(), cpu.Pc)
		}

		switch {
		case op == CMP:
			a := pre.Register[operands[0]]
			b := pre.Register[operands[1]]
			assert.Equal(compare(a, b), cpu.Flag)
			assert.Equal(pre.Register, cpu.Register)
		case op.IsAlu():
			a := pre.Register[operands[0]]
			b := pre.Register[operands[1]]
			expected := map[Opcode]byte{ADD: a + b, SUB: a - b, MUL: a * b}
			assert.Equal(expected[op], cpu.Register[operands[0]])
			assert.Equal(pre.Flag, cpu.Flag)
		default:
			assert.Equal(pre.Flag, cpu.Flag)
		}
	})
}
