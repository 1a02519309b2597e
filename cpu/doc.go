// Package cpu implements the processor and assembler for the LS-8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit registers (R0-R7,
// with R6 reserved as the stack pointer), 256 bytes of memory, a stack that
// grows downward from STACK_TOP, and a tri-state comparison flag. Each
// instruction is one opcode byte followed by zero, one or two operand bytes;
// the operand count is carried in the top two bits of the opcode.
//
// The assembler provides a small assembly language for the LS-8 instruction
// set, supporting macros, labels, equates, data directives and compile-time
// expression evaluation.
package cpu
