// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ls8/emulator"
	"github.com/ezrec/ls8/loader"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v program.ls8\n", os.Args[0])
		flag.PrintDefaults()
	}

	verbose := flag.Bool("v", false, "trace each instruction to stderr")

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)

	img, err := loader.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	emu := emulator.NewEmulator()
	emu.Image = img
	emu.Output = os.Stdout
	emu.Verbose = *verbose

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	err = emu.Run()
	if err != nil {
		log.Print(emu.Cpu.Trace())
		log.Fatalf("%v: %v", path, err)
	}
}
