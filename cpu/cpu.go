// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"

	"github.com/ezrec/uop/interp"
	"github.com/ezrec/uop/ir"
)

var _cpu_defines = map[string]string{
	"NZCV_N":      fmt.Sprintf("0x%x", uint32(interp.NZCV_N)),
	"NZCV_Z":      fmt.Sprintf("0x%x", uint32(interp.NZCV_Z)),
	"NZCV_C":      fmt.Sprintf("0x%x", uint32(interp.NZCV_C)),
	"NZCV_V":      fmt.Sprintf("0x%x", uint32(interp.NZCV_V)),
	"NZCV_MASK":   fmt.Sprintf("0x%x", uint32(interp.NZCV_MASK)),
	"STACK_LIMIT": fmt.Sprintf("%d", STACK_LIMIT),
}

// Cpu is the guest register file that a block of micro-ops reads and
// writes through the guest state opcodes.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	R [ir.A32_REG_COUNT]uint32        // A32 general purpose registers.
	D [32]uint64                      // A32 extension registers. s(2n) and s(2n+1) alias d(n).
	X [ir.A64_REG_COUNT]uint64        // A64 general purpose registers. X[31] is sp.
	V [ir.A64_VEC_COUNT]interp.Vector // A64 vector registers.

	NZCV interp.NZCV // Condition flags.
	GE   uint32      // Per byte lane greater-or-equal mask.
	Q    bool        // Sticky saturation flag.

	RSB   Stack // Return stack buffer.
	Ticks int   // Executed instruction counter.
}

// NewCpu creates a new guest CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears all registers and flags.
// - Empties the return stack buffer.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.R[:])
	clear(cpu.D[:])
	clear(cpu.X[:])
	clear(cpu.V[:])
	cpu.NZCV = 0
	cpu.GE = 0
	cpu.Q = false
	cpu.RSB.Reset()
	cpu.Ticks = 0
}

func hex32(val uint32) string {
	return fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
}

func hex64(val uint64) string {
	return hex32(uint32(val>>32)) + "_" + hex32(uint32(val))
}

// String returns the current CPU state as a string.
// Extension and vector registers are only listed when non-zero.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.R {
		text += fmt.Sprintf("% 5s: %v\n", ir.A32Reg(n), hex32(val))
	}
	for n, val := range cpu.D {
		if val != 0 {
			text += fmt.Sprintf("% 5s: %v\n", ir.A32_EXT_REG_D0+ir.A32ExtReg(n), hex64(val))
		}
	}
	for n, val := range cpu.X {
		text += fmt.Sprintf("% 5s: %v\n", ir.A64Reg(n), hex64(val))
	}
	for n, val := range cpu.V {
		if val != (interp.Vector{}) {
			text += fmt.Sprintf("% 5s: %v:%v\n", ir.A64Vec(n), hex64(val[1]), hex64(val[0]))
		}
	}

	text += fmt.Sprintf("% 5s: %v\n", "nzcv", cpu.NZCV)
	text += fmt.Sprintf("% 5s: %v\n", "ge", hex32(cpu.GE))
	text += fmt.Sprintf("% 5s: %v\n", "q", cpu.Q)

	strval := "----_----_----_----"
	if val, ok := cpu.RSB.Peek(); ok {
		strval = hex64(val)
	}
	text += fmt.Sprintf("% 5s: %v\n", "rsb", strval)

	return
}

// SetRegister sets a register by name: r0-r15, sp, lr, pc, x0-x30,
// v0-v31 (low lane), s0-s31, d0-d31, nzcv, ge or q.
// sp names the A32 stack pointer; the A64 one is x31.
func (cpu *Cpu) SetRegister(name string, value uint64) (err error) {
	name = strings.ToLower(name)

	narrow := func() (val uint32, err error) {
		if value > 0xffff_ffff {
			err = fmt.Errorf("%v: %w", name, ErrRegisterValue)
			return
		}
		return uint32(value), nil
	}

	if reg, ok := ir.ParseA32Reg(name); ok {
		var val uint32
		val, err = narrow()
		if err == nil {
			cpu.R[reg] = val
		}
		return
	}

	if name == "x31" {
		cpu.X[ir.A64_REG_SP] = value
		return
	}

	if reg, ok := ir.ParseA64Reg(name); ok {
		cpu.X[reg] = value
		return
	}

	if vec, ok := ir.ParseA64Vec(name); ok {
		cpu.V[vec] = interp.Vector{value, 0}
		return
	}

	if reg, ok := ir.ParseA32ExtReg(name); ok {
		if reg.IsDouble() {
			cpu.D[reg-ir.A32_EXT_REG_D0] = value
			return
		}
		var val uint32
		val, err = narrow()
		if err == nil {
			cpu.setSingle(reg, val)
		}
		return
	}

	switch name {
	case "nzcv":
		var val uint32
		val, err = narrow()
		if err == nil {
			cpu.NZCV = interp.NZCV(val) & interp.NZCV_MASK
		}
		return
	case "ge":
		cpu.GE, err = narrow()
		return
	case "q":
		switch value {
		case 0:
			cpu.Q = false
		case 1:
			cpu.Q = true
		default:
			err = fmt.Errorf("%v: %w", name, ErrRegisterValue)
		}
		return
	}

	return ErrRegisterName(name)
}

// ParseAssignment parses "name=value" and applies it with SetRegister.
func (cpu *Cpu) ParseAssignment(text string) (err error) {
	name, number, ok := strings.Cut(text, "=")
	if !ok {
		return ErrRegisterName(text)
	}

	value, err := strconv.ParseUint(strings.ReplaceAll(strings.TrimSpace(number), "_", ""), 0, 64)
	if err != nil {
		return fmt.Errorf("%v: %w", name, err)
	}

	return cpu.SetRegister(strings.TrimSpace(name), value)
}

// ConditionPassed evaluates an ARM condition code against the current flags.
func (cpu *Cpu) ConditionPassed(cond ir.Cond) bool {
	nzcv := cpu.NZCV

	switch cond {
	case ir.COND_EQ:
		return nzcv.Z()
	case ir.COND_NE:
		return !nzcv.Z()
	case ir.COND_CS:
		return nzcv.C()
	case ir.COND_CC:
		return !nzcv.C()
	case ir.COND_MI:
		return nzcv.N()
	case ir.COND_PL:
		return !nzcv.N()
	case ir.COND_VS:
		return nzcv.V()
	case ir.COND_VC:
		return !nzcv.V()
	case ir.COND_HI:
		return nzcv.C() && !nzcv.Z()
	case ir.COND_LS:
		return !nzcv.C() || nzcv.Z()
	case ir.COND_GE:
		return nzcv.N() == nzcv.V()
	case ir.COND_LT:
		return nzcv.N() != nzcv.V()
	case ir.COND_GT:
		return !nzcv.Z() && nzcv.N() == nzcv.V()
	case ir.COND_LE:
		return nzcv.Z() || nzcv.N() != nzcv.V()
	case ir.COND_AL, ir.COND_NV:
		return true
	}

	return false
}
