// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Link is a reference to a label that is resolved after the full pass.
type Link struct {
	Index int    // Index into Listing.Bytes to patch.
	Label string // Label to resolve.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	reString     = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)
)

// Assembler is a single pass macro assembler for the LS-8 system.
type Assembler struct {
	Verbose bool      // If set, verbosely logs the assembler actions.
	Listing []Listing // List of generated listings.

	predefine  map[string]string   // Predefines
	links      map[int][]Link      // Unresolved labels, by listing index.
	expansions int                 // Count of macro expansions, for local labels.
	Label      map[string]int      // Map of jump labels to addresses.
	Equate     map[string]string   // Map of equates.
	Macro      map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]byte{
	"r0": 0,
	"r1": 1,
	"r2": 2,
	"r3": 3,
	"r4": 4,
	"r5": 5,
	"r6": 6,
	"r7": 7,
	"sp": REG_SP,
}

// intOf returns the integer value of a simple word.
func (asm *Assembler) intOf(word string) (value int64, err error) {
	invert := false
	if len(word) > 1 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// valueOf returns the byte value of a simple word. Negative values
// down to -128 are encoded as two's complement.
func (asm *Assembler) valueOf(word string) (value byte, err error) {
	v64, err := asm.intOf(word)
	if err != nil {
		return
	}

	if v64 > 0xff || v64 < -0x80 {
		err = ErrParseNumber(word)
		return
	}

	value = byte(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.intOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do "string" evaluations
	line = reString.ReplaceAllStringFunc(line, func(word string) string {
		str, _err := strconv.Unquote(word)
		if _err != nil {
			err = ErrParseString(word)
			return word
		}
		values := make([]string, len(str))
		for n := range len(str) {
			values[n] = fmt.Sprintf("%v", str[n])
		}
		return strings.Join(values, " ")
	})
	if err != nil {
		return
	}

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrInstructionInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = words[1+n]
		}
		defer func() { asm.Equate = old_equate }()

		// '@' makes labels local to this expansion.
		asm.expansions++
		local := fmt.Sprintf("%v_%v_", name, asm.expansions)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	if len(asm.Listing) == 0 {
		return 0
	}

	last := asm.Listing[len(asm.Listing)-1]

	return last.Ip + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Listing = asm.Listing[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.links = make(map[int][]Link)
	asm.expansions = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	if asm.currentIp() > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	// Final linking of labels.
	for n, links := range asm.links {
		op := &asm.Listing[n]
		for _, link := range links {
			ip, ok := asm.Label[link.Label]
			if !ok {
				line = strings.Join(op.Words, " ")
				lineno = op.LineNo
				err = ErrLabelMissing(link.Label)
				return
			}
			op.Bytes[link.Index] = byte(ip)
		}
	}

	prog = &Program{
		Listings: slices.Clone(asm.Listing),
	}

	return
}

// register gets the register index for a word.
func (asm *Assembler) register(word string) (reg byte, err error) {
	reg, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// immediate gets the value for a word, or records a link to a label.
func (asm *Assembler) immediate(word string, index int, links *[]Link) (value byte, err error) {
	value, err = asm.valueOf(word)
	if err == nil {
		return
	}

	if reLabel.MatchString(word) {
		err = nil
		*links = append(*links, Link{Index: index, Label: word})
	}

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []byte
	var links []Link

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if err != nil || len(codes) == 0 {
			return
		}
		listing := Listing{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Bytes: codes}
		if len(links) > 0 {
			asm.links[len(asm.Listing)] = links
		}
		asm.Listing = append(asm.Listing, listing)
	}()

	mnemonic := strings.ToUpper(words[0])

	switch mnemonic {
	case "DB", "DS":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for n, word := range words[1:] {
			var value byte
			value, err = asm.immediate(word, n, &links)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := opcodeByName[mnemonic]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	args := opcodeArgs[op]
	if len(words)-1 < len(args) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(words)-1 > len(args) {
		err = ErrOpcodeExtraArgs
		return
	}

	codes = append(codes, byte(op))
	for n, arg := range args {
		word := words[1+n]
		var value byte
		switch arg {
		case ARG_REG:
			value, err = asm.register(word)
		case ARG_IMM:
			value, err = asm.immediate(word, 1+n, &links)
		}
		if err != nil {
			return
		}
		codes = append(codes, value)
	}

	return
}
