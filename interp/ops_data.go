// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package interp

import (
	"github.com/ezrec/uop/internal"
)

// Pack2x32To1x64 joins two words into a long, lo in the low half.
func Pack2x32To1x64(lo, hi uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}

// Pack2x64To1x128 joins two longs into a vector, lo in lane 0.
func Pack2x64To1x128(lo, hi uint64) Vector {
	return Vector{lo, hi}
}

// LeastSignificantWord truncates a to its low word.
func LeastSignificantWord(a uint64) uint32 {
	return uint32(a)
}

// MostSignificantWord returns the upper word, with bit 31 of a as the
// carry.
func MostSignificantWord(a uint64) ResultAndCarry {
	return ResultAndCarry{Result: uint32(a >> 32), Carry: internal.Bit(31, a)}
}

func LeastSignificantHalf(a uint32) uint16 {
	return uint16(a)
}

func LeastSignificantByte(a uint32) uint8 {
	return uint8(a)
}

// MostSignificantBit returns bit 31 of a.
func MostSignificantBit(a uint32) bool {
	return internal.MostSignificantBit(a)
}

// IsZero32 returns true if a is zero.
func IsZero32(a uint32) bool {
	return a == 0
}

// IsZero64 returns true if a is zero.
func IsZero64(a uint64) bool {
	return a == 0
}

// TestBit returns bit n of a. Bits past 63 read as clear.
func TestBit(a uint64, n uint8) bool {
	return internal.Bit(int(n), a)
}

// LogicalShiftLeft32 shifts value left. The carry is the last bit
// shifted out: bit 32-shift of value, or clear for shifts past 32.
func LogicalShiftLeft32(value uint32, shift uint8, carryIn bool) ResultAndCarry {
	if shift == 0 {
		return ResultAndCarry{Result: value, Carry: carryIn}
	}

	result := internal.LogicalShiftLeft(value, int(shift))
	carry := internal.Bit(0, internal.LogicalShiftRight(value, 32-int(shift)))
	return ResultAndCarry{Result: result, Carry: carry}
}

func LogicalShiftLeft64(value uint64, shift uint8) uint64 {
	return internal.LogicalShiftLeft(value, int(shift))
}

// LogicalShiftRight32 shifts value right, filling with zeros. The carry
// is the last bit shifted out.
func LogicalShiftRight32(value uint32, shift uint8, carryIn bool) ResultAndCarry {
	if shift == 0 {
		return ResultAndCarry{Result: value, Carry: carryIn}
	}

	result := internal.LogicalShiftRight(value, int(shift))
	carry := internal.Bit(0, internal.LogicalShiftRight(value, int(shift)-1))
	return ResultAndCarry{Result: result, Carry: carry}
}

func LogicalShiftRight64(value uint64, shift uint8) uint64 {
	return internal.LogicalShiftRight(value, int(shift))
}

// ArithmeticShiftRight32 shifts value right, filling with the sign bit.
func ArithmeticShiftRight32(value uint32, shift uint8, carryIn bool) ResultAndCarry {
	if shift == 0 {
		return ResultAndCarry{Result: value, Carry: carryIn}
	}

	result := internal.ArithmeticShiftRight(value, int(shift))
	carry := internal.Bit(0, internal.ArithmeticShiftRight(value, int(shift)-1))
	return ResultAndCarry{Result: result, Carry: carry}
}

func ArithmeticShiftRight64(value uint64, shift uint8) uint64 {
	return internal.ArithmeticShiftRight(value, int(shift))
}

// RotateRight32 rotates value right. The carry is the new sign bit.
func RotateRight32(value uint32, shift uint8, carryIn bool) ResultAndCarry {
	if shift == 0 {
		return ResultAndCarry{Result: value, Carry: carryIn}
	}

	result := internal.RotateRight(value, int(shift))
	return ResultAndCarry{Result: result, Carry: internal.MostSignificantBit(result)}
}

func RotateRight64(value uint64, shift uint8) uint64 {
	return internal.RotateRight(value, int(shift))
}

// RotateRightExtended rotates value right by one through the carry.
func RotateRightExtended(value uint32, carryIn bool) ResultAndCarry {
	return ResultAndCarry{
		Result: internal.ModifyBit(31, value>>1, carryIn),
		Carry:  internal.Bit(0, value),
	}
}

// add computes a+b+carryIn with the ARM condition flags.
func add[T uint32 | uint64](a, b T, carryIn bool) ResultAndNZCV[T] {
	var cin T
	if carryIn {
		cin = 1
	}

	result := a + b + cin
	return ResultAndNZCV[T]{
		Result: result,
		N:      internal.MostSignificantBit(result),
		Z:      result == 0,
		C:      result < a || (carryIn && result == a),
		V:      internal.MostSignificantBit((a ^ result) &^ (a ^ b)),
	}
}

// Add32 returns a+b+carryIn with all four condition flags.
func Add32(a, b uint32, carryIn bool) ResultAndNZCV[uint32] {
	return add(a, b, carryIn)
}

// Add64 returns a+b+carryIn with all four condition flags.
func Add64(a, b uint64, carryIn bool) ResultAndNZCV[uint64] {
	return add(a, b, carryIn)
}

// Sub32 subtracts with ARM borrow semantics: carryIn set means no borrow.
func Sub32(a, b uint32, carryIn bool) ResultAndNZCV[uint32] {
	return add(a, ^b, carryIn)
}

func Sub64(a, b uint64, carryIn bool) ResultAndNZCV[uint64] {
	return add(a, ^b, carryIn)
}

// AddWithCarry32 returns a+b+carryIn with only the carry and overflow.
func AddWithCarry32(a, b uint32, carryIn bool) ResultAndCarryAndOverflow {
	r := add(a, b, carryIn)
	return ResultAndCarryAndOverflow{Result: r.Result, Carry: r.C, Overflow: r.V}
}

// SubWithCarry32 returns a-b-!carryIn with only the carry and overflow.
func SubWithCarry32(a, b uint32, carryIn bool) ResultAndCarryAndOverflow {
	return AddWithCarry32(a, ^b, carryIn)
}

// Mul32 returns the low word of a*b.
func Mul32(a, b uint32) uint32 {
	return a * b
}

// Mul64 returns the low long of a*b.
func Mul64(a, b uint64) uint64 {
	return a * b
}

// SignedMultiplyHigh64 returns the upper half of the 128-bit signed
// product of a and b.
func SignedMultiplyHigh64(a, b int64) int64 {
	upper, _ := internal.Multiply64To128(uint64(a), uint64(b))
	if a < 0 {
		upper -= uint64(b)
	}
	if b < 0 {
		upper -= uint64(a)
	}
	return int64(upper)
}

// UnsignedMultiplyHigh64 returns the upper half of the 128-bit product.
func UnsignedMultiplyHigh64(a, b uint64) uint64 {
	upper, _ := internal.Multiply64To128(a, b)
	return upper
}

// UnsignedDiv32 divides a by b, truncating. A zero b panics.
func UnsignedDiv32(a, b uint32) uint32 {
	return a / b
}

func UnsignedDiv64(a, b uint64) uint64 {
	return a / b
}

// SignedDiv32 divides a by b, rounding toward zero.
func SignedDiv32(a, b int32) int32 {
	return a / b
}

func SignedDiv64(a, b int64) int64 {
	return a / b
}

// And32 and the operations below are plain bitwise logic.
func And32(a, b uint32) uint32 { return a & b }
func And64(a, b uint64) uint64 { return a & b }
func Eor32(a, b uint32) uint32 { return a ^ b }
func Eor64(a, b uint64) uint64 { return a ^ b }
func Or32(a, b uint32) uint32  { return a | b }
func Or64(a, b uint64) uint64  { return a | b }
func Not32(a uint32) uint32    { return ^a }
func Not64(a uint64) uint64    { return ^a }

// SignExtendByteToWord and its siblings widen a signed operand.
func SignExtendByteToWord(a int8) int32  { return int32(a) }
func SignExtendHalfToWord(a int16) int32 { return int32(a) }
func SignExtendByteToLong(a int8) int64  { return int64(a) }
func SignExtendHalfToLong(a int16) int64 { return int64(a) }
func SignExtendWordToLong(a int32) int64 { return int64(a) }

// ZeroExtendByteToWord and its siblings widen an unsigned operand.
func ZeroExtendByteToWord(a uint8) uint32  { return uint32(a) }
func ZeroExtendHalfToWord(a uint16) uint32 { return uint32(a) }
func ZeroExtendByteToLong(a uint8) uint64  { return uint64(a) }
func ZeroExtendHalfToLong(a uint16) uint64 { return uint64(a) }
func ZeroExtendWordToLong(a uint32) uint64 { return uint64(a) }
func ZeroExtendLongToQuad(a uint64) Vector { return Vector{a, 0} }

// ByteReverseWord swaps the byte order of a.
func ByteReverseWord(a uint32) uint32 { return internal.Swap32(a) }
func ByteReverseHalf(a uint16) uint16 { return internal.Swap16(a) }
func ByteReverseDual(a uint64) uint64 { return internal.Swap64(a) }

// CountLeadingZeros32 returns 32 for a zero a.
func CountLeadingZeros32(a uint32) uint32 {
	return uint32(internal.CountLeadingZeros(a))
}

func CountLeadingZeros64(a uint64) uint64 {
	return uint64(internal.CountLeadingZeros(a))
}

// extractRegister returns the low half of {hi:lo} shifted right by shift.
func extractRegister[T uint32 | uint64](lo, hi T, shift uint8) T {
	width := internal.BitSize[T]()
	return internal.LogicalShiftLeft(hi, width-int(shift)) |
		internal.LogicalShiftRight(lo, int(shift))
}

// ExtractRegister32 returns the low word of {hi:lo} >> shift.
func ExtractRegister32(lo, hi uint32, shift uint8) uint32 {
	return extractRegister(lo, hi, shift)
}

func ExtractRegister64(lo, hi uint64, shift uint8) uint64 {
	return extractRegister(lo, hi, shift)
}

// MaxSigned32 and friends compare by signedness and width.
func MaxSigned32(a, b int32) int32     { return max(a, b) }
func MaxSigned64(a, b int64) int64     { return max(a, b) }
func MaxUnsigned32(a, b uint32) uint32 { return max(a, b) }
func MaxUnsigned64(a, b uint64) uint64 { return max(a, b) }
func MinSigned32(a, b int32) int32     { return min(a, b) }
func MinSigned64(a, b int64) int64     { return min(a, b) }
func MinUnsigned32(a, b uint32) uint32 { return min(a, b) }
func MinUnsigned64(a, b uint64) uint64 { return min(a, b) }
