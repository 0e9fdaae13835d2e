// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package interp

import (
	"fmt"
)

// Vector is a 128-bit value, least significant word first.
type Vector [2]uint64

// NZCV is the packed flags word: N, Z, C and V in bits 31 to 28.
type NZCV uint32

const (
	NZCV_N = NZCV(1 << 31) // n
	NZCV_Z = NZCV(1 << 30) // z
	NZCV_C = NZCV(1 << 29) // c
	NZCV_V = NZCV(1 << 28) // v

	NZCV_MASK = NZCV_N | NZCV_Z | NZCV_C | NZCV_V
)

// PackNZCV packs four flags into an NZCV word.
func PackNZCV(n, z, c, v bool) (nzcv NZCV) {
	if n {
		nzcv |= NZCV_N
	}
	if z {
		nzcv |= NZCV_Z
	}
	if c {
		nzcv |= NZCV_C
	}
	if v {
		nzcv |= NZCV_V
	}
	return
}

func (nzcv NZCV) N() bool { return nzcv&NZCV_N != 0 }
func (nzcv NZCV) Z() bool { return nzcv&NZCV_Z != 0 }
func (nzcv NZCV) C() bool { return nzcv&NZCV_C != 0 }
func (nzcv NZCV) V() bool { return nzcv&NZCV_V != 0 }

func (nzcv NZCV) String() string {
	text := []byte("nzcv")
	for n, set := range []bool{nzcv.N(), nzcv.Z(), nzcv.C(), nzcv.V()} {
		if set {
			text[n] -= 'a' - 'A'
		}
	}
	return string(text)
}

// ResultAndCarry is a 32-bit result with a carry out.
type ResultAndCarry struct {
	Result uint32
	Carry  bool
}

// ResultAndOverflow is a result with an overflow (or saturation) flag.
type ResultAndOverflow[T uint8 | uint16 | uint32 | uint64] struct {
	Result   T
	Overflow bool
}

// ResultAndCarryAndOverflow is a 32-bit result with carry and overflow.
type ResultAndCarryAndOverflow struct {
	Result   uint32
	Carry    bool
	Overflow bool
}

// ResultAndGE is a 32-bit packed result with its GE lane mask.
type ResultAndGE struct {
	Result uint32
	GE     uint32
}

// ResultAndNZCV is an arithmetic result with all four condition flags.
type ResultAndNZCV[T uint32 | uint64] struct {
	Result T
	N      bool
	Z      bool
	C      bool
	V      bool
}

// NZCV packs the flags.
func (r ResultAndNZCV[T]) NZCV() NZCV {
	return PackNZCV(r.N, r.Z, r.C, r.V)
}

// UpperAndLower is a 256-bit result split into two vectors.
type UpperAndLower struct {
	Upper Vector
	Lower Vector
}

// Storable is every Go type a Value can hold.
type Storable interface {
	bool | uint8 | uint16 | uint32 | uint64 |
		int8 | int16 | int32 | int64 |
		NZCV | Vector |
		ResultAndCarry |
		ResultAndOverflow[uint8] | ResultAndOverflow[uint16] |
		ResultAndOverflow[uint32] | ResultAndOverflow[uint64] |
		ResultAndCarryAndOverflow |
		ResultAndGE |
		ResultAndNZCV[uint32] | ResultAndNZCV[uint64] |
		UpperAndLower
}

// Kind is the active representation of a Value.
type Kind uint8

const (
	KIND_UNSET = Kind(iota)
	KIND_SCALAR
	KIND_VECTOR
	KIND_CARRY
	KIND_OVERFLOW
	KIND_CARRY_OVERFLOW
	KIND_GE
	KIND_NZCV
	KIND_UPPER_LOWER
)

var kindNames = [...]string{
	"unset", "scalar", "vector", "carry", "overflow",
	"carry+overflow", "ge", "nzcv", "upper/lower",
}

func (kind Kind) String() string {
	if int(kind) < len(kindNames) {
		return kindNames[kind]
	}
	return fmt.Sprintf("Kind(%d)", uint8(kind))
}

// Value is one computed result. The zero Value is unset.
//
// Scalars and composite results keep their numeric result in lo, with
// width giving its size in bits. Vectors use lo and hi. UpperAndLower
// keeps Lower in lo and hi, and Upper in upper.
type Value struct {
	kind  Kind
	width uint8
	flags NZCV
	ge    uint32
	lo    uint64
	hi    uint64
	upper Vector
}

// Of builds a Value from x. Signed integers are stored as the unsigned
// bit pattern of the same width.
func Of[T Storable](x T) (v Value) {
	switch x := any(x).(type) {
	case bool:
		v = scalar(1, 0)
		if x {
			v.lo = 1
		}
	case uint8:
		v = scalar(8, uint64(x))
	case uint16:
		v = scalar(16, uint64(x))
	case uint32:
		v = scalar(32, uint64(x))
	case uint64:
		v = scalar(64, x)
	case int8:
		v = scalar(8, uint64(uint8(x)))
	case int16:
		v = scalar(16, uint64(uint16(x)))
	case int32:
		v = scalar(32, uint64(uint32(x)))
	case int64:
		v = scalar(64, uint64(x))
	case NZCV:
		v = scalar(32, uint64(x))
	case Vector:
		v = Value{kind: KIND_VECTOR, width: 128, lo: x[0], hi: x[1]}
	case ResultAndCarry:
		v = composite(KIND_CARRY, 32, uint64(x.Result), PackNZCV(false, false, x.Carry, false))
	case ResultAndOverflow[uint8]:
		v = composite(KIND_OVERFLOW, 8, uint64(x.Result), PackNZCV(false, false, false, x.Overflow))
	case ResultAndOverflow[uint16]:
		v = composite(KIND_OVERFLOW, 16, uint64(x.Result), PackNZCV(false, false, false, x.Overflow))
	case ResultAndOverflow[uint32]:
		v = composite(KIND_OVERFLOW, 32, uint64(x.Result), PackNZCV(false, false, false, x.Overflow))
	case ResultAndOverflow[uint64]:
		v = composite(KIND_OVERFLOW, 64, x.Result, PackNZCV(false, false, false, x.Overflow))
	case ResultAndCarryAndOverflow:
		v = composite(KIND_CARRY_OVERFLOW, 32, uint64(x.Result), PackNZCV(false, false, x.Carry, x.Overflow))
	case ResultAndGE:
		v = composite(KIND_GE, 32, uint64(x.Result), 0)
		v.ge = x.GE
	case ResultAndNZCV[uint32]:
		v = composite(KIND_NZCV, 32, uint64(x.Result), x.NZCV())
	case ResultAndNZCV[uint64]:
		v = composite(KIND_NZCV, 64, x.Result, x.NZCV())
	case UpperAndLower:
		v = Value{kind: KIND_UPPER_LOWER, width: 128, lo: x.Lower[0], hi: x.Lower[1], upper: x.Upper}
	}
	return
}

func scalar(width uint8, bits uint64) Value {
	return Value{kind: KIND_SCALAR, width: width, lo: bits}
}

func composite(kind Kind, width uint8, result uint64, flags NZCV) Value {
	return Value{kind: kind, width: width, lo: result, flags: flags}
}

// Get reads v as T. Composite results unwrap to their numeric result
// when T is an integer of the result's width. Any other mismatch panics
// with *ErrMalformed.
func Get[T Storable](v Value) (x T) {
	v.load(&x)
	return
}

// load stores v into the variable ptr points to.
func (v Value) load(ptr any) {
	switch p := ptr.(type) {
	case *bool:
		*p = v.result(1) != 0
	case *uint8:
		*p = uint8(v.result(8))
	case *uint16:
		*p = uint16(v.result(16))
	case *uint32:
		*p = uint32(v.result(32))
	case *uint64:
		*p = v.result(64)
	case *int8:
		*p = int8(v.result(8))
	case *int16:
		*p = int16(v.result(16))
	case *int32:
		*p = int32(v.result(32))
	case *int64:
		*p = int64(v.result(64))
	case *NZCV:
		*p = NZCV(v.result(32))
	case *Vector:
		v.expect(KIND_VECTOR, 128)
		*p = Vector{v.lo, v.hi}
	case *ResultAndCarry:
		v.expect(KIND_CARRY, 32)
		*p = ResultAndCarry{Result: uint32(v.lo), Carry: v.flags.C()}
	case *ResultAndOverflow[uint8]:
		v.expect(KIND_OVERFLOW, 8)
		*p = ResultAndOverflow[uint8]{Result: uint8(v.lo), Overflow: v.flags.V()}
	case *ResultAndOverflow[uint16]:
		v.expect(KIND_OVERFLOW, 16)
		*p = ResultAndOverflow[uint16]{Result: uint16(v.lo), Overflow: v.flags.V()}
	case *ResultAndOverflow[uint32]:
		v.expect(KIND_OVERFLOW, 32)
		*p = ResultAndOverflow[uint32]{Result: uint32(v.lo), Overflow: v.flags.V()}
	case *ResultAndOverflow[uint64]:
		v.expect(KIND_OVERFLOW, 64)
		*p = ResultAndOverflow[uint64]{Result: v.lo, Overflow: v.flags.V()}
	case *ResultAndCarryAndOverflow:
		v.expect(KIND_CARRY_OVERFLOW, 32)
		*p = ResultAndCarryAndOverflow{Result: uint32(v.lo), Carry: v.flags.C(), Overflow: v.flags.V()}
	case *ResultAndGE:
		v.expect(KIND_GE, 32)
		*p = ResultAndGE{Result: uint32(v.lo), GE: v.ge}
	case *ResultAndNZCV[uint32]:
		v.expect(KIND_NZCV, 32)
		*p = ResultAndNZCV[uint32]{Result: uint32(v.lo), N: v.flags.N(), Z: v.flags.Z(), C: v.flags.C(), V: v.flags.V()}
	case *ResultAndNZCV[uint64]:
		v.expect(KIND_NZCV, 64)
		*p = ResultAndNZCV[uint64]{Result: v.lo, N: v.flags.N(), Z: v.flags.Z(), C: v.flags.C(), V: v.flags.V()}
	case *UpperAndLower:
		v.expect(KIND_UPPER_LOWER, 128)
		*p = UpperAndLower{Upper: v.upper, Lower: Vector{v.lo, v.hi}}
	default:
		panic(malformed(ErrType))
	}
}

// result returns the numeric result of a scalar or composite of the
// given width.
func (v Value) result(width uint8) uint64 {
	switch v.kind {
	case KIND_UNSET, KIND_VECTOR, KIND_UPPER_LOWER:
		panic(malformed(ErrType))
	}
	if v.width != width {
		panic(malformed(ErrType))
	}
	return v.lo
}

func (v Value) expect(kind Kind, width uint8) {
	if v.kind != kind || v.width != width {
		panic(malformed(ErrType))
	}
}

// Kind returns the active representation.
func (v Value) Kind() Kind {
	return v.kind
}

// Width returns the width in bits of the numeric result.
func (v Value) Width() int {
	return int(v.width)
}

// IsSet returns false for the zero Value.
func (v Value) IsSet() bool {
	return v.kind != KIND_UNSET
}

// Carry returns the carry flag of a composite that has one.
func (v Value) Carry() bool {
	switch v.kind {
	case KIND_CARRY, KIND_CARRY_OVERFLOW, KIND_NZCV:
		return v.flags.C()
	}
	panic(malformed(ErrNoCarry))
}

// Overflow returns the overflow flag of a composite that has one.
func (v Value) Overflow() bool {
	switch v.kind {
	case KIND_OVERFLOW, KIND_CARRY_OVERFLOW, KIND_NZCV:
		return v.flags.V()
	}
	panic(malformed(ErrNoOverflow))
}

// NZCV returns the packed flags of an NZCV composite of either width.
func (v Value) NZCV() NZCV {
	if v.kind != KIND_NZCV {
		panic(malformed(ErrNoNZCV))
	}
	return v.flags
}

func (v Value) String() string {
	switch v.kind {
	case KIND_UNSET:
		return "unset"
	case KIND_SCALAR:
		if v.width == 1 {
			return fmt.Sprintf("%d:u1", v.lo)
		}
		return fmt.Sprintf("%#x:u%d", v.lo, v.width)
	case KIND_VECTOR:
		return fmt.Sprintf("%#016x_%016x:u128", v.hi, v.lo)
	case KIND_CARRY:
		return fmt.Sprintf("%#x:u%d c=%v", v.lo, v.width, b2i(v.flags.C()))
	case KIND_OVERFLOW:
		return fmt.Sprintf("%#x:u%d v=%v", v.lo, v.width, b2i(v.flags.V()))
	case KIND_CARRY_OVERFLOW:
		return fmt.Sprintf("%#x:u%d c=%v v=%v", v.lo, v.width, b2i(v.flags.C()), b2i(v.flags.V()))
	case KIND_GE:
		return fmt.Sprintf("%#x:u%d ge=%#08x", v.lo, v.width, v.ge)
	case KIND_NZCV:
		return fmt.Sprintf("%#x:u%d %v", v.lo, v.width, v.flags)
	case KIND_UPPER_LOWER:
		return fmt.Sprintf("upper=%#016x_%016x lower=%#016x_%016x",
			v.upper[1], v.upper[0], v.hi, v.lo)
	}
	return v.kind.String()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
