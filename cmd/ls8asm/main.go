// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
)

func main() {
	var output string
	var verbose bool

	asm := &cpu.Assembler{}

	// Hardware constants and opcode values are always available.
	for name, value := range emulator.NewEmulator().Defines() {
		asm.Predefine(name, value)
	}

	flag.StringVar(&output, "o", "-", "Image output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate as NAME=VALUE", func(define string) error {
		name, value, ok := strings.Cut(define, "=")
		if !ok || len(name) == 0 {
			return cpu.ErrEquateSyntax
		}
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one .asm file, got: %v", os.Args[0], flag.Args())
	}

	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm.Verbose = verbose
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	ouf := os.Stdout
	if output != "-" {
		ouf, err = os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	err = prog.WriteImage(ouf)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
