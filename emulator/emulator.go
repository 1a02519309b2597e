// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"iter"
	"log"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/loader"
)

// Emulator state. CPU + the program it runs.
type Emulator struct {
	Verbose  bool          // If set, enables verbose logging.
	*cpu.Cpu               // Reference to the CPU simulation.
	Program  *cpu.Program  // Assembled program, if any.
	Image    *loader.Image // Loaded program image, used in preference to Program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		emu.Cpu.Defines(),
		emu.Cpu.OpcodeDefines(),
	)
}

// Binary returns the bytes that Reset loads into memory.
func (emu *Emulator) Binary() []byte {
	switch {
	case emu.Image != nil:
		return emu.Image.Data
	case emu.Program != nil:
		return emu.Program.Binary()
	}

	return nil
}

// Reset loads the program and resets the CPU.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Load(emu.Binary())
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current program counter.
func (emu *Emulator) Ip() int {
	return emu.Cpu.Pc
}

// LineNo returns the current line number for the executing instruction.
func (emu *Emulator) LineNo() int {
	ip := emu.Cpu.Pc

	if emu.Image != nil {
		return emu.Image.LineOf(ip)
	}

	if emu.Program != nil {
		dbg := emu.Program.Debug(ip)
		if dbg.Listing != nil {
			return dbg.LineNo
		}
	}

	return 0
}

// Tick performs a single tick of the emulator.
// done is set once the CPU has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			done = true
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	if emu.Verbose {
		log.Print(emu.Cpu.Trace())
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = !emu.Cpu.Running

	return
}

// Run ticks the emulator until the program halts or fails.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
