// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/google/uuid"

	"github.com/ezrec/uop/asm"
	"github.com/ezrec/uop/cpu"
	"github.com/ezrec/uop/internal"
	"github.com/ezrec/uop/interp"
	"github.com/ezrec/uop/ir"
)

var _emulator_defines = map[string]string{
	"OP_MAX": fmt.Sprintf("%v", ir.OP_MAX),
}

// Emulator state. Guest CPU + interpreter + program.
type Emulator struct {
	Verbose  bool                // If set, enables verbose logging.
	*cpu.Cpu                     // Reference to the guest CPU.
	Interp   *interp.Interpreter // Interpreter with the guest state bound to the CPU.
	Program  *asm.Program        // Reference to the current program listing.
	Context  *interp.Context     // Values of the last run.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &asm.Program{Block: ir.NewBlock()},
	}

	emu.Interp = interp.NewInterpreter(emu.Cpu)

	for op, binding := range emu.bindings() {
		emu.Interp.Bind(op, binding)
	}

	return
}

// bindings connects the guest state opcodes to the CPU.
func (emu *Emulator) bindings() map[ir.Opcode]interp.Binding {
	c := emu.Cpu

	return map[ir.Opcode]interp.Binding{
		ir.OP_PUSH_RSB: interp.Void1(c.PushRSB),

		ir.OP_A32_GET_REGISTER:             interp.Op1(c.A32GetRegister),
		ir.OP_A32_SET_REGISTER:             interp.Void2(c.A32SetRegister),
		ir.OP_A32_GET_EXTENDED_REGISTER_32: interp.Op1(c.A32GetExtendedRegister32),
		ir.OP_A32_SET_EXTENDED_REGISTER_32: interp.Void2(c.A32SetExtendedRegister32),
		ir.OP_A32_GET_EXTENDED_REGISTER_64: interp.Op1(c.A32GetExtendedRegister64),
		ir.OP_A32_SET_EXTENDED_REGISTER_64: interp.Void2(c.A32SetExtendedRegister64),
		ir.OP_A32_GET_C_FLAG:               interp.Op0(c.GetCFlag),
		ir.OP_A32_SET_NZCV:                 interp.Void1(c.SetNZCV),
		ir.OP_A32_GET_NZCV_RAW:             interp.Op0(c.GetNZCVRaw),
		ir.OP_A32_SET_NZCV_RAW:             interp.Void1(c.SetNZCVRaw),
		ir.OP_A32_SET_GE_FLAGS:             interp.Void1(c.SetGEFlags),
		ir.OP_A32_OR_Q_FLAG:                interp.Void1(c.OrQFlag),

		ir.OP_A64_GET_X:      interp.Op1(c.A64GetX),
		ir.OP_A64_SET_X:      interp.Void2(c.A64SetX),
		ir.OP_A64_GET_W:      interp.Op1(c.A64GetW),
		ir.OP_A64_SET_W:      interp.Void2(c.A64SetW),
		ir.OP_A64_GET_Q:      interp.Op1(c.A64GetQ),
		ir.OP_A64_SET_Q:      interp.Void2(c.A64SetQ),
		ir.OP_A64_GET_C_FLAG: interp.Op0(c.GetCFlag),
		ir.OP_A64_SET_NZCV:   interp.Void1(c.SetNZCV),
	}
}

// Defines returns an iterator over all of the defines, in name order.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.MergeSorted(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset the guest state and drop the values of the last run.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Context = nil
}

// LineNo returns the source line of instruction index.
func (emu *Emulator) LineNo(index int) int {
	return emu.Program.LineNo(index)
}

// Run verifies the program block, then executes it once against the
// guest CPU. Failures are returned as *ErrRuntime.
func (emu *Emulator) Run() (err error) {
	block := emu.Program.Block
	id := uuid.New()

	emu.Cpu.Verbose = emu.Verbose
	emu.Interp.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emu: %v: run %d instructions", id, block.Len())
	}

	index := -1
	defer func() {
		if err != nil {
			if emu.Verbose {
				log.Printf("emu: %v: %v", id, err)
			}
			err = &ErrRuntime{LineNo: emu.LineNo(index), Index: index, Err: err}
		}
	}()

	err = ir.Verify(block)
	if err != nil {
		var ev *ir.ErrVerify
		if errors.As(err, &ev) {
			index = ev.Index
		}
		return
	}

	emu.Context, err = emu.Interp.Run(block)
	if err != nil {
		var em *interp.ErrMalformed
		if errors.As(err, &em) {
			index = em.Index
			emu.Cpu.Ticks += em.Index
		}
		return
	}

	emu.Cpu.Ticks += block.Len()

	if emu.Verbose {
		log.Printf("emu: %v: done, %d ticks", id, emu.Cpu.Ticks)
	}

	return
}

// Values iterates the defined values of the last run by instruction name.
func (emu *Emulator) Values() iter.Seq2[string, interp.Value] {
	return func(yield func(string, interp.Value) bool) {
		if emu.Context == nil {
			return
		}
		for index, value := range emu.Context.Values() {
			if !yield(emu.Program.Name(index), value) {
				return
			}
		}
	}
}
