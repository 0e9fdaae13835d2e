package interp

// Packed operations treat a word as four byte lanes or two halfword
// lanes. The GE mask has every bit of a lane set when the lane's GE
// condition holds.

type laneOp func(x, y int64) (r int64, ge bool)

func packed(a, b uint32, width int, signed bool, op laneOp) (res ResultAndGE) {
	mask := uint32(1)<<width - 1
	for shift := 0; shift < 32; shift += width {
		x := int64((a >> shift) & mask)
		y := int64((b >> shift) & mask)
		if signed {
			x = signExtend(x, width)
			y = signExtend(y, width)
		}
		r, ge := op(x, y)
		res.Result |= (uint32(r) & mask) << shift
		if ge {
			res.GE |= mask << shift
		}
	}
	return
}

func signExtend(x int64, width int) int64 {
	return x << (64 - width) >> (64 - width)
}

// addUnsigned sets GE on carry out of the lane.
func addUnsigned(width int) laneOp {
	return func(x, y int64) (int64, bool) {
		r := x + y
		return r, r >= 1<<width
	}
}

// addSigned sets GE when the lane sum is not negative.
func addSigned(x, y int64) (int64, bool) {
	r := x + y
	return r, r >= 0
}

// sub sets GE when the lane difference is not negative.
func sub(x, y int64) (int64, bool) {
	r := x - y
	return r, r >= 0
}

func PackedAddU8(a, b uint32) ResultAndGE  { return packed(a, b, 8, false, addUnsigned(8)) }
func PackedAddS8(a, b uint32) ResultAndGE  { return packed(a, b, 8, true, addSigned) }
func PackedSubU8(a, b uint32) ResultAndGE  { return packed(a, b, 8, false, sub) }
func PackedSubS8(a, b uint32) ResultAndGE  { return packed(a, b, 8, true, sub) }
func PackedAddU16(a, b uint32) ResultAndGE { return packed(a, b, 16, false, addUnsigned(16)) }
func PackedAddS16(a, b uint32) ResultAndGE { return packed(a, b, 16, true, addSigned) }
func PackedSubU16(a, b uint32) ResultAndGE { return packed(a, b, 16, false, sub) }
func PackedSubS16(a, b uint32) ResultAndGE { return packed(a, b, 16, true, sub) }
