package cpu

import (
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"os"
	"strings"
)

const (
	REGISTER_COUNT = 8   // Number of registers.
	MEMORY_SIZE    = 256 // Bytes of memory.
	REG_SP         = 6   // Register reserved as the stack pointer.
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"MEMORY_SIZE":    fmt.Sprintf("%v", MEMORY_SIZE),
	"STACK_TOP":      fmt.Sprintf("0x%x", STACK_TOP),
	"FLAG_EQUAL":     fmt.Sprintf("0b%03b", byte(FLAG_EQUAL)),
	"FLAG_GREATER":   fmt.Sprintf("0b%03b", byte(FLAG_GREATER)),
	"FLAG_LESS":      fmt.Sprintf("0b%03b", byte(FLAG_LESS)),
}

// Cpu is the simulation context for the LS-8 processor.
type Cpu struct {
	Verbose bool      // Set to enable verbose logging.
	Output  io.Writer // Destination of PRN output.

	Pc       int                  // Current program counter.
	Register [REGISTER_COUNT]byte // Register bank. R6 is the stack pointer.
	Memory   [MEMORY_SIZE]byte    // Main memory.
	Flag     Flag                 // Result of the last comparison.
	Running  bool                 // Cleared by HLT or by any error.

	Ticks int // Instructions executed since reset.

	limit int // End of the loaded program; the stack may not grow below it.
}

// NewCpu creates a new CPU, printing to standard output.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Output: os.Stdout,
	}

	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// OpcodeDefines returns an iterator of opcode mnemonic to opcode value,
// as OP_<mnemonic>.
func (cpu *Cpu) OpcodeDefines() iter.Seq2[string, string] {
	return func(yield func(name, value string) bool) {
		for op := range opcodeArgs {
			if !yield("OP_"+op.String(), fmt.Sprintf("0b%08b", byte(op))) {
				return
			}
		}
	}
}

// Stack returns a view of the CPU stack.
func (cpu *Cpu) Stack() Stack {
	return Stack{
		Memory: &cpu.Memory,
		Sp:     &cpu.Register[REG_SP],
		Limit:  cpu.limit,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc",
		"flag",
		"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
		"stack",
		"depth",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02X", cpu.Pc)
		case "flag":
			strval = cpu.Flag.String()
		case "r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7":
			strval = fmt.Sprintf("%02X", cpu.Register[byte(reg[1]-'0')])
		case "stack":
			val, ok := cpu.Stack().Peek()
			if ok {
				strval = fmt.Sprintf("%02X", val)
			} else {
				strval = "--"
			}
		case "depth":
			strval = fmt.Sprintf("%d", cpu.Stack().Depth())
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Trace returns a single line dump of the PC, the next three bytes of
// memory, and the registers.
func (cpu *Cpu) Trace() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "TRACE: %02X | %02X %02X %02X |",
		cpu.Pc,
		cpu.peek(cpu.Pc),
		cpu.peek(cpu.Pc+1),
		cpu.peek(cpu.Pc+2),
	)

	for _, value := range cpu.Register {
		fmt.Fprintf(&sb, " %02X", value)
	}

	return sb.String()
}

// Reset the CPU state.
// - Clears the registers, flag and PC.
// - Zeros statistics counters.
// - Presets the stack pointer to STACK_TOP.
// - Marks the CPU as running.
// Memory is left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Stack().Reset()
	cpu.Flag = FLAG_NONE
	cpu.Pc = 0
	cpu.Ticks = 0
	cpu.Running = true
}

// Load clears memory, copies the program to address zero, and resets the CPU.
func (cpu *Cpu) Load(program []byte) (err error) {
	if len(program) > len(cpu.Memory) {
		err = ErrProgramTooLarge
		return
	}

	clear(cpu.Memory[:])
	copy(cpu.Memory[:], program)
	cpu.limit = len(program)

	cpu.Reset()

	if cpu.Verbose {
		log.Printf("cpu: loaded %d bytes", len(program))
	}

	return
}

// peek reads memory without range errors, for tracing.
func (cpu *Cpu) peek(addr int) byte {
	if addr < 0 || addr >= len(cpu.Memory) {
		return 0
	}
	return cpu.Memory[addr]
}

// fetch reads a byte of memory.
func (cpu *Cpu) fetch(addr int) (value byte, err error) {
	if addr < 0 || addr >= len(cpu.Memory) {
		err = ErrOperandRange
		return
	}

	value = cpu.Memory[addr]
	return
}

// Decode the instruction at addr.
func (cpu *Cpu) Decode(addr int) (ins Instruction, err error) {
	value, err := cpu.fetch(addr)
	if err != nil {
		return
	}

	ins.Opcode = Opcode(value)
	if _, ok := opcodeTable[ins.Opcode]; !ok {
		err = ErrOpcode{Ip: addr, Opcode: ins.Opcode}
		return
	}

	for n := range ins.Opcode.Operands() {
		value, err = cpu.fetch(addr + 1 + n)
		if err != nil {
			err = &ErrInstruction{Ip: addr, Instruction: ins, Err: err}
			return
		}
		ins.Operands = append(ins.Operands, value)
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	ins, err := cpu.Decode(cpu.Pc)
	if err != nil {
		cpu.Running = false
		return
	}

	err = cpu.Execute(ins)

	return
}

// Run ticks the CPU until it halts or fails.
func (cpu *Cpu) Run() (err error) {
	for cpu.Running {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction at the current PC.
// Any error stops the CPU.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if !cpu.Running {
		err = ErrHalted
		return
	}

	ip := cpu.Pc

	defer func() {
		if err != nil {
			cpu.Running = false
			err = &ErrInstruction{Ip: ip, Instruction: ins, Err: err}
		}
	}()

	if cpu.Verbose {
		log.Printf("%02x: %v", ip, ins)
	}

	handler, ok := opcodeTable[ins.Opcode]
	if !ok {
		err = ErrOpcode{Ip: ip, Opcode: ins.Opcode}
		return
	}

	if len(ins.Operands) != ins.Opcode.Operands() {
		err = ErrOpcodeValueMissing
		return
	}

	err = handler(cpu, ins.Operands)
	if err != nil {
		return
	}

	if !ins.Opcode.SetsPc() {
		cpu.Pc += ins.Size()
	}

	cpu.Ticks += 1

	return
}
