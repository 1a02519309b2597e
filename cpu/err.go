package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("cpu halted"))
	ErrOperandRange    = errors.New(f("operand out of range"))
	ErrStackEmpty      = errors.New(f("stack underflow"))
	ErrStackFull       = errors.New(f("stack overflow"))
	ErrProgramTooLarge = errors.New(f("program too large"))

	// Instruction decode errors
	ErrOpcodeInvalid = errors.New(f("unsupported opcode"))
	ErrOpcodeArg1    = errors.New(f("arg1"))
	ErrOpcodeArg2    = errors.New(f("arg2"))
	ErrOpcodeOutput  = errors.New(f("output"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode is returned when the byte at Ip has no handler.
type ErrOpcode struct {
	Ip     int
	Opcode Opcode
}

func (eo ErrOpcode) Error() string {
	return f("unsupported opcode 0b%08b at 0x%02x", byte(eo.Opcode), eo.Ip)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	if err == ErrOpcodeInvalid {
		return true
	}
	_, ok = err.(ErrOpcode)
	return
}

// ErrInstruction indicates the instruction that failed to execute.
type ErrInstruction struct {
	Ip          int
	Instruction Instruction
	Err         error
}

func (err *ErrInstruction) Error() string {
	return f("0x%02x %v: %v", err.Ip, err.Instruction, err.Err)
}

func (err *ErrInstruction) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseString string

func (err ErrParseString) Error() string {
	return f("%v is not a valid string", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
