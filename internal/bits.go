// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package internal holds the bit manipulation primitives shared by the
// interpreter. Shift helpers are "safe": every shift amount, including
// negative amounts and amounts at or past the register width, has a
// defined result.
package internal

import (
	"math/bits"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// BitSize returns the width of T in bits.
func BitSize[T constraints.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

// Bit returns true if bit n of x is set.
// Bits outside of the width of T read as clear.
func Bit[T constraints.Integer](n int, x T) bool {
	if n < 0 || n >= BitSize[T]() {
		return false
	}
	return (x>>uint(n))&1 != 0
}

// ModifyBit returns x with bit n replaced by set.
func ModifyBit[T constraints.Unsigned](n int, x T, set bool) T {
	mask := T(1) << uint(n)
	if set {
		return x | mask
	}
	return x &^ mask
}

// MostSignificantBit returns the sign bit of x.
func MostSignificantBit[T constraints.Unsigned](x T) bool {
	return Bit(BitSize[T]()-1, x)
}

// LogicalShiftLeft shifts x left by amount.
// Amounts of at least the width yield 0; negative amounts shift right.
func LogicalShiftLeft[T constraints.Unsigned](x T, amount int) T {
	if amount < 0 {
		return LogicalShiftRight(x, -amount)
	}
	if amount >= BitSize[T]() {
		return 0
	}
	return x << uint(amount)
}

// LogicalShiftRight shifts x right by amount, filling with zeros.
// Amounts of at least the width yield 0; negative amounts shift left.
func LogicalShiftRight[T constraints.Unsigned](x T, amount int) T {
	if amount < 0 {
		return LogicalShiftLeft(x, -amount)
	}
	if amount >= BitSize[T]() {
		return 0
	}
	return x >> uint(amount)
}

// ArithmeticShiftRight shifts x right by amount, replicating the sign bit.
// Amounts of at least the width yield all sign bits; negative amounts
// shift left.
func ArithmeticShiftRight[T constraints.Unsigned](x T, amount int) T {
	if amount < 0 {
		return LogicalShiftLeft(x, -amount)
	}
	if amount >= BitSize[T]() {
		if MostSignificantBit(x) {
			return ^T(0)
		}
		return 0
	}
	if !MostSignificantBit(x) {
		return x >> uint(amount)
	}
	return ^(^x >> uint(amount))
}

// RotateRight rotates x right by amount modulo the width.
func RotateRight[T constraints.Unsigned](x T, amount int) T {
	size := BitSize[T]()
	amount %= size
	if amount < 0 {
		amount += size
	}
	if amount == 0 {
		return x
	}
	return (x >> uint(amount)) | (x << uint(size-amount))
}

// CountLeadingZeros returns the number of leading zero bits in x.
func CountLeadingZeros[T constraints.Unsigned](x T) int {
	return bits.LeadingZeros64(uint64(x)) - (64 - BitSize[T]())
}

// Swap16 reverses the byte order of x.
func Swap16(x uint16) uint16 {
	return bits.ReverseBytes16(x)
}

// Swap32 reverses the byte order of x.
func Swap32(x uint32) uint32 {
	return bits.ReverseBytes32(x)
}

// Swap64 reverses the byte order of x.
func Swap64(x uint64) uint64 {
	return bits.ReverseBytes64(x)
}

// Multiply64To128 returns the full 128-bit unsigned product of a and b.
func Multiply64To128(a, b uint64) (upper, lower uint64) {
	return bits.Mul64(a, b)
}
