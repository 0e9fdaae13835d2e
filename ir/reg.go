// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// A32Reg names an A32 general purpose register.
type A32Reg uint8

const (
	A32_REG_SP    = A32Reg(13) // sp
	A32_REG_LR    = A32Reg(14) // lr
	A32_REG_PC    = A32Reg(15) // pc
	A32_REG_COUNT = 16
)

func (reg A32Reg) String() string {
	switch reg {
	case A32_REG_SP:
		return "sp"
	case A32_REG_LR:
		return "lr"
	case A32_REG_PC:
		return "pc"
	}
	return fmt.Sprintf("r%d", uint8(reg))
}

// A32ExtReg names an A32 extension (VFP) register.
// s0-s31 are numbered 0-31, d0-d31 are numbered 32-63.
type A32ExtReg uint8

const (
	A32_EXT_REG_S0    = A32ExtReg(0)
	A32_EXT_REG_D0    = A32ExtReg(32)
	A32_EXT_REG_COUNT = 64
)

// IsDouble returns true for the d registers.
func (reg A32ExtReg) IsDouble() bool {
	return reg >= A32_EXT_REG_D0
}

func (reg A32ExtReg) String() string {
	if reg.IsDouble() {
		return fmt.Sprintf("d%d", uint8(reg-A32_EXT_REG_D0))
	}
	return fmt.Sprintf("s%d", uint8(reg))
}

// A64Reg names an A64 general purpose register. 31 is the stack pointer.
type A64Reg uint8

const (
	A64_REG_SP    = A64Reg(31)
	A64_REG_COUNT = 32
)

func (reg A64Reg) String() string {
	if reg == A64_REG_SP {
		return "sp"
	}
	return fmt.Sprintf("x%d", uint8(reg))
}

// A64Vec names an A64 vector register.
type A64Vec uint8

const (
	A64_VEC_COUNT = 32
)

func (vec A64Vec) String() string {
	return fmt.Sprintf("v%d", uint8(vec))
}

// regIndex parses "<prefix><n>" with n < limit.
func regIndex(name, prefix string, limit int) (index int, ok bool) {
	digits, found := strings.CutPrefix(name, prefix)
	if !found || len(digits) == 0 {
		return
	}
	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 || index >= limit {
		return 0, false
	}
	return index, true
}

// ParseA32Reg parses r0-r15, sp, lr or pc.
func ParseA32Reg(name string) (reg A32Reg, ok bool) {
	switch name {
	case "sp":
		return A32_REG_SP, true
	case "lr":
		return A32_REG_LR, true
	case "pc":
		return A32_REG_PC, true
	}
	index, ok := regIndex(name, "r", A32_REG_COUNT)
	return A32Reg(index), ok
}

// ParseA32ExtReg parses s0-s31 or d0-d31.
func ParseA32ExtReg(name string) (reg A32ExtReg, ok bool) {
	if index, ok := regIndex(name, "s", 32); ok {
		return A32_EXT_REG_S0 + A32ExtReg(index), true
	}
	index, ok := regIndex(name, "d", 32)
	return A32_EXT_REG_D0 + A32ExtReg(index), ok
}

// ParseA64Reg parses x0-x30 or sp.
func ParseA64Reg(name string) (reg A64Reg, ok bool) {
	if name == "sp" {
		return A64_REG_SP, true
	}
	index, ok := regIndex(name, "x", A64_REG_COUNT-1)
	return A64Reg(index), ok
}

// ParseA64Vec parses v0-v31.
func ParseA64Vec(name string) (vec A64Vec, ok bool) {
	index, ok := regIndex(name, "v", A64_VEC_COUNT)
	return A64Vec(index), ok
}
