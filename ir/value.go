// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"fmt"
)

// Value is an instruction operand: either an immediate, or a reference
// to the instruction that produces it.
type Value struct {
	typ  Type
	inst *Inst
	bits uint64
}

// ImmU1 creates a 1-bit immediate.
func ImmU1(value bool) Value {
	var bits uint64
	if value {
		bits = 1
	}
	return Value{typ: TYPE_U1, bits: bits}
}

// ImmU8 creates an 8-bit immediate.
func ImmU8(value uint8) Value {
	return Value{typ: TYPE_U8, bits: uint64(value)}
}

// ImmU16 creates a 16-bit immediate.
func ImmU16(value uint16) Value {
	return Value{typ: TYPE_U16, bits: uint64(value)}
}

// ImmU32 creates a 32-bit immediate.
func ImmU32(value uint32) Value {
	return Value{typ: TYPE_U32, bits: uint64(value)}
}

// ImmU64 creates a 64-bit immediate.
func ImmU64(value uint64) Value {
	return Value{typ: TYPE_U64, bits: value}
}

// ImmNZCV creates a packed NZCV flags immediate.
func ImmNZCV(flags uint32) Value {
	return Value{typ: TYPE_NZCV_FLAGS, bits: uint64(flags)}
}

// ImmCond creates a condition code immediate.
func ImmCond(cond Cond) Value {
	return Value{typ: TYPE_COND, bits: uint64(cond)}
}

// ImmA32Reg creates an A32 register reference.
func ImmA32Reg(reg A32Reg) Value {
	return Value{typ: TYPE_A32_REG, bits: uint64(reg)}
}

// ImmA32ExtReg creates an A32 extension register reference.
func ImmA32ExtReg(reg A32ExtReg) Value {
	return Value{typ: TYPE_A32_EXT_REG, bits: uint64(reg)}
}

// ImmA64Reg creates an A64 register reference.
func ImmA64Reg(reg A64Reg) Value {
	return Value{typ: TYPE_A64_REG, bits: uint64(reg)}
}

// ImmA64Vec creates an A64 vector register reference.
func ImmA64Vec(vec A64Vec) Value {
	return Value{typ: TYPE_A64_VEC, bits: uint64(vec)}
}

// Imm creates an immediate of typ from raw bits, truncated to the
// width of typ.
func Imm(typ Type, bits uint64) Value {
	if width := typ.Width(); width > 0 && width < 64 {
		bits &= (uint64(1) << width) - 1
	}
	return Value{typ: typ, bits: bits}
}

// Ref creates a reference to the result of inst.
func Ref(inst *Inst) Value {
	return Value{inst: inst}
}

// IsEmpty returns true for the zero Value.
func (v Value) IsEmpty() bool {
	return v.inst == nil && v.typ == TYPE_VOID
}

// IsImmediate returns true unless v references an instruction.
func (v Value) IsImmediate() bool {
	return v.inst == nil
}

// Inst returns the referenced instruction, or nil for immediates.
func (v Value) Inst() *Inst {
	return v.inst
}

// Type returns the type of the immediate, or the result type of the
// referenced instruction.
func (v Value) Type() Type {
	if v.inst != nil {
		return v.inst.Type()
	}
	return v.typ
}

// Bits returns the literal bits of an immediate.
func (v Value) Bits() uint64 {
	return v.bits
}

// String formats v as it appears in a listing.
func (v Value) String() string {
	if v.inst != nil {
		return fmt.Sprintf("%%%d", v.inst.Index())
	}

	switch v.typ {
	case TYPE_VOID:
		return "void"
	case TYPE_A32_REG:
		return A32Reg(v.bits).String()
	case TYPE_A32_EXT_REG:
		return A32ExtReg(v.bits).String()
	case TYPE_A64_REG:
		return A64Reg(v.bits).String()
	case TYPE_A64_VEC:
		return A64Vec(v.bits).String()
	case TYPE_COND:
		return Cond(v.bits).String()
	case TYPE_U1:
		return fmt.Sprintf("%d:%s", v.bits, v.typ.Suffix())
	}

	return fmt.Sprintf("%#x:%s", v.bits, v.typ.Suffix())
}
