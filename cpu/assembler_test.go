package cpu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, asm *Assembler, program ...string) *Program {
	t.Helper()

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	return prog
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Listings))

	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssemblerInstructions(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := assemble(t, asm,
		"; multiply",
		"LDI R0,8",
		"  ldi r1, 9",
		"MUL R0 R1 ; R0 *= R1",
		"PRN R0",
		"",
		"HLT",
	)

	expected := []Listing{
		{2, 0, []string{"LDI", "R0", "8"}, []byte{0x82, 0x00, 0x08}},
		{3, 3, []string{"ldi", "r1", "9"}, []byte{0x82, 0x01, 0x09}},
		{4, 6, []string{"MUL", "R0", "R1"}, []byte{0xa2, 0x00, 0x01}},
		{5, 9, []string{"PRN", "R0"}, []byte{0x47, 0x00}},
		{7, 11, []string{"HLT"}, []byte{0x01}},
	}

	assert.Equal(expected, prog.Listings)
}

func TestAssemblerAllOpcodes(t *testing.T) {
	assert := assert.New(t)

	for op, args := range opcodeArgs {
		words := []string{op.String()}
		expected := []byte{byte(op)}
		for n, arg := range args {
			switch arg {
			case ARG_REG:
				words = append(words, "R"+string(rune('1'+n)))
				expected = append(expected, byte(1+n))
			case ARG_IMM:
				words = append(words, "0x5a")
				expected = append(expected, 0x5a)
			}
		}

		asm := &Assembler{}
		prog := assemble(t, asm, strings.Join(words, " "))
		assert.Equal(expected, prog.Binary(), op.String())

		// Disassembly of the result reads back as the same registers.
		cpu := NewCpu()
		assert.NoError(cpu.Load(prog.Binary()))
		ins, err := cpu.Decode(0)
		assert.NoError(err)
		assert.Equal(expected, ins.Bytes())
	}
}

func TestAssemblerLabels(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := assemble(t, asm,
		"        LDI R1,Sub",
		"        CALL R1",
		"        HLT",
		"Sub:    LDI R0,42",
		"        PRN R0",
		"        RET",
	)

	assert.Equal([]byte{
		0x82, 0x01, 0x06,
		0x50, 0x01,
		0x01,
		0x82, 0x00, 0x2a,
		0x47, 0x00,
		0x11,
	}, prog.Binary())
	assert.Equal(6, asm.Label["Sub"])

	cpu := NewCpu()
	out := &bytes.Buffer{}
	cpu.Output = out
	assert.NoError(cpu.Load(prog.Binary()))
	assert.NoError(cpu.Run())
	assert.Equal("42\n", out.String())
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := assemble(t, asm,
		".equ COUNT 3",
		".equ REG R2",
		"LDI REG, COUNT",
		"LDI R3, $(COUNT * 4 + 1)",
		"LDI R4, 'A'",
		`msg: DS "hi\n"`,
		"DB 0x10, 0b101, -1, ~0x0f, msg",
		"DB $(msg + 1) ','",
	)

	assert.Equal([]byte{
		0x82, 0x02, 0x03,
		0x82, 0x03, 0x0d,
		0x82, 0x04, 0x41,
		'h', 'i', '\n',
		0x10, 0x05, 0xff, 0xf0, 0x09,
		0x0a, ',',
	}, prog.Binary())
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := assemble(t, asm,
		".macro PRINT reg value",
		"LDI reg, value",
		"PRN reg",
		".endm",
		"PRINT R0 7",
		"PRINT R1 $(2 * 4)",
		"HLT",
	)

	assert.Equal([]byte{
		0x82, 0x00, 0x07, 0x47, 0x00,
		0x82, 0x01, 0x08, 0x47, 0x01,
		0x01,
	}, prog.Binary())

	// Macro lines report their definition line.
	assert.Equal(2, prog.Listings[0].LineNo)
	assert.Equal(3, prog.Listings[1].LineNo)
	assert.Equal(7, prog.Listings[4].LineNo)

	// Macro arguments do not leak.
	_, ok := asm.Equate["reg"]
	assert.False(ok)
}

func TestAssemblerMacroLocalLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog := assemble(t, asm,
		".macro SKIP reg",
		"LDI reg, @next",
		"JMP reg",
		"HLT",
		"@next:",
		".endm",
		"SKIP R2",
		"SKIP R3",
	)

	assert.Equal(6, asm.Label["SKIP_1_next"])
	assert.Equal(12, asm.Label["SKIP_2_next"])
	assert.Equal([]byte{
		0x82, 0x02, 0x06, 0x54, 0x02, 0x01,
		0x82, 0x03, 0x0c, 0x54, 0x03, 0x01,
	}, prog.Binary())
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIMIT", "5")
	cpu := NewCpu()
	for name, value := range cpu.OpcodeDefines() {
		asm.Predefine(name, value)
	}

	prog := assemble(t, asm,
		"LDI R0, LIMIT",
		"DB OP_HLT",
		"LDI SP, $(LIMIT + 4)",
	)

	assert.Equal([]byte{0x82, 0x00, 0x05, 0x01, 0x82, 0x06, 0x09}, prog.Binary())

	// Predefines survive a second parse.
	prog = assemble(t, asm, "DB LIMIT")
	assert.Equal([]byte{0x05}, prog.Binary())
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program []string
		err     error
		lineno  int
	}){
		{"invalid", []string{"HLT", "FOO"}, ErrInstructionInvalid, 2},
		{"register", []string{"LDI R8,1"}, ErrRegisterInvalid, 1},
		{"register_imm", []string{"ADD R0,1"}, ErrRegisterInvalid, 1},
		{"missing", []string{"LDI R0"}, ErrOpcodeValueMissing, 1},
		{"extra", []string{"HLT R0"}, ErrOpcodeExtraArgs, 1},
		{"db_empty", []string{"DB"}, ErrOpcodeValueMissing, 1},
		{"number", []string{"LDI R0,300"}, ErrParseNumber("300"), 1},
		{"label_missing", []string{"HLT", "LDI R0,nowhere"}, ErrLabelMissing("nowhere"), 2},
		{"label_dup", []string{"a: HLT", "a: HLT"}, ErrLabelDuplicate, 2},
		{"equ_syntax", []string{".equ X"}, ErrEquateSyntax, 1},
		{"equ_dup", []string{".equ X 1", ".equ X 2"}, ErrEquateDuplicate, 2},
		{"endm", []string{".endm"}, ErrMacroLonelyEndm, 1},
		{"macro_lonely", []string{".macro M", "HLT"}, ErrMacroLonely, 2},
		{"macro_nested", []string{".macro M", ".macro N"}, ErrMacroNesting, 2},
		{"macro_dup", []string{".macro M", ".endm", ".macro M"}, ErrMacroDuplicate, 3},
		{"macro_args", []string{".macro M a", ".endm", "M"}, ErrMacroSyntax, 3},
		{"string", []string{`DS "\q"`}, ErrParseString(`"\q"`), 1},
		{"too_large", []string{strings.Repeat("HLT\n", MEMORY_SIZE+1)}, ErrProgramTooLarge, MEMORY_SIZE + 1},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.program, "\n")))
		assert.ErrorIs(err, entry.err, entry.name)

		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.name) {
			assert.Equal(entry.lineno, se.LineNo, entry.name)
		}
	}
}

func TestAssemblerExpressionError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("LDI R0, $(1 +)"))
	assert.Error(err)

	_, err = asm.Parse(strings.NewReader("LDI R0, $([1])"))
	assert.ErrorIs(err, ErrParseExpression("[1]"))
}

func TestAssemblerMacroError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(strings.Join([]string{
		".macro BAD",
		"FOO",
		".endm",
		"BAD",
	}, "\n")))
	assert.ErrorIs(err, ErrInstructionInvalid)

	var em *ErrMacro
	if assert.True(errors.As(err, &em)) {
		assert.Equal("BAD", em.Macro)
		assert.Equal(2, em.Line)
	}
}
