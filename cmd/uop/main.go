// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/uop/asm"
	"github.com/ezrec/uop/emulator"
)

func main() {
	var compile string
	var verbose bool
	var values bool
	var registers []string
	var defines []string

	flag.StringVar(&compile, "c", "-", ".uop listing to assemble and run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&values, "values", false, "Dump the value of every instruction")
	flag.Func("r", "Initial register `name=value` (repeatable)", func(text string) error {
		registers = append(registers, text)
		return nil
	})
	flag.Func("D", "Assembler predefine `name=value` (repeatable)", func(text string) error {
		if !strings.Contains(text, "=") {
			return fmt.Errorf("%v: expected name=value", text)
		}
		defines = append(defines, text)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	var inf io.Reader = os.Stdin
	if compile != "-" {
		file, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer file.Close()
		inf = file
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Reset()

	assembler := &asm.Assembler{Verbose: verbose}
	for name, value := range emu.Defines() {
		assembler.Predefine(name, value)
	}
	for _, text := range defines {
		name, value, _ := strings.Cut(text, "=")
		assembler.Predefine(name, value)
	}

	prog, err := assembler.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	emu.Program = prog

	for _, text := range registers {
		err = emu.Cpu.ParseAssignment(text)
		if err != nil {
			log.Fatalf("-r %v: %v", text, err)
		}
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	fmt.Print(emu.Cpu.String())

	if values {
		// Aligned columns on a terminal, tab separated otherwise.
		format := "%v\t%v\n"
		if term.IsTerminal(int(os.Stdout.Fd())) {
			width := 0
			for name := range emu.Values() {
				width = max(width, len(name))
			}
			format = fmt.Sprintf("%%%dv: %%v\n", width)
		}
		for name, value := range emu.Values() {
			fmt.Printf(format, name, value)
		}
	}
}
