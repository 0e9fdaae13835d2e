package interp

import (
	"golang.org/x/exp/constraints"

	"github.com/ezrec/uop/internal"
)

// signedLimits returns the largest and smallest values of S.
func signedLimits[S constraints.Signed]() (hi, lo S) {
	lo = S(1) << (internal.BitSize[S]() - 1)
	hi = ^lo
	return
}

func signedSaturatedAdd[S constraints.Signed](a, b S) (result S, saturated bool) {
	result = a + b
	if (a^result)&(b^result) < 0 {
		hi, lo := signedLimits[S]()
		if a < 0 {
			return lo, true
		}
		return hi, true
	}
	return
}

func signedSaturatedSub[S constraints.Signed](a, b S) (result S, saturated bool) {
	result = a - b
	if (a^b)&(a^result) < 0 {
		hi, lo := signedLimits[S]()
		if a < 0 {
			return lo, true
		}
		return hi, true
	}
	return
}

func unsignedSaturatedAdd[U constraints.Unsigned](a, b U) (result U, saturated bool) {
	result = a + b
	if result < a {
		return ^U(0), true
	}
	return
}

func unsignedSaturatedSub[U constraints.Unsigned](a, b U) (result U, saturated bool) {
	if b > a {
		return 0, true
	}
	return a - b, false
}

func SignedSaturatedAdd8(a, b int8) ResultAndOverflow[uint8] {
	r, v := signedSaturatedAdd(a, b)
	return ResultAndOverflow[uint8]{Result: uint8(r), Overflow: v}
}

func SignedSaturatedAdd16(a, b int16) ResultAndOverflow[uint16] {
	r, v := signedSaturatedAdd(a, b)
	return ResultAndOverflow[uint16]{Result: uint16(r), Overflow: v}
}

func SignedSaturatedAdd32(a, b int32) ResultAndOverflow[uint32] {
	r, v := signedSaturatedAdd(a, b)
	return ResultAndOverflow[uint32]{Result: uint32(r), Overflow: v}
}

func SignedSaturatedAdd64(a, b int64) ResultAndOverflow[uint64] {
	r, v := signedSaturatedAdd(a, b)
	return ResultAndOverflow[uint64]{Result: uint64(r), Overflow: v}
}

func SignedSaturatedSub8(a, b int8) ResultAndOverflow[uint8] {
	r, v := signedSaturatedSub(a, b)
	return ResultAndOverflow[uint8]{Result: uint8(r), Overflow: v}
}

func SignedSaturatedSub16(a, b int16) ResultAndOverflow[uint16] {
	r, v := signedSaturatedSub(a, b)
	return ResultAndOverflow[uint16]{Result: uint16(r), Overflow: v}
}

func SignedSaturatedSub32(a, b int32) ResultAndOverflow[uint32] {
	r, v := signedSaturatedSub(a, b)
	return ResultAndOverflow[uint32]{Result: uint32(r), Overflow: v}
}

func SignedSaturatedSub64(a, b int64) ResultAndOverflow[uint64] {
	r, v := signedSaturatedSub(a, b)
	return ResultAndOverflow[uint64]{Result: uint64(r), Overflow: v}
}

func UnsignedSaturatedAdd8(a, b uint8) ResultAndOverflow[uint8] {
	r, v := unsignedSaturatedAdd(a, b)
	return ResultAndOverflow[uint8]{Result: r, Overflow: v}
}

func UnsignedSaturatedAdd16(a, b uint16) ResultAndOverflow[uint16] {
	r, v := unsignedSaturatedAdd(a, b)
	return ResultAndOverflow[uint16]{Result: r, Overflow: v}
}

func UnsignedSaturatedAdd32(a, b uint32) ResultAndOverflow[uint32] {
	r, v := unsignedSaturatedAdd(a, b)
	return ResultAndOverflow[uint32]{Result: r, Overflow: v}
}

func UnsignedSaturatedAdd64(a, b uint64) ResultAndOverflow[uint64] {
	r, v := unsignedSaturatedAdd(a, b)
	return ResultAndOverflow[uint64]{Result: r, Overflow: v}
}

func UnsignedSaturatedSub8(a, b uint8) ResultAndOverflow[uint8] {
	r, v := unsignedSaturatedSub(a, b)
	return ResultAndOverflow[uint8]{Result: r, Overflow: v}
}

func UnsignedSaturatedSub16(a, b uint16) ResultAndOverflow[uint16] {
	r, v := unsignedSaturatedSub(a, b)
	return ResultAndOverflow[uint16]{Result: r, Overflow: v}
}

func UnsignedSaturatedSub32(a, b uint32) ResultAndOverflow[uint32] {
	r, v := unsignedSaturatedSub(a, b)
	return ResultAndOverflow[uint32]{Result: r, Overflow: v}
}

func UnsignedSaturatedSub64(a, b uint64) ResultAndOverflow[uint64] {
	r, v := unsignedSaturatedSub(a, b)
	return ResultAndOverflow[uint64]{Result: r, Overflow: v}
}
