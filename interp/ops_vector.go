package interp

func ZeroVector() Vector {
	return Vector{}
}

func VectorAnd(a, b Vector) Vector {
	return Vector{a[0] & b[0], a[1] & b[1]}
}

func VectorOr(a, b Vector) Vector {
	return Vector{a[0] | b[0], a[1] | b[1]}
}

func VectorEor(a, b Vector) Vector {
	return Vector{a[0] ^ b[0], a[1] ^ b[1]}
}

func VectorNot(a Vector) Vector {
	return Vector{^a[0], ^a[1]}
}

// VectorGetElement64 returns 64-bit lane index (0 or 1).
func VectorGetElement64(v Vector, index uint8) uint64 {
	if int(index) >= len(v) {
		panic(malformed(ErrOutOfRange))
	}
	return v[index]
}

// VectorSetElement64 returns v with 64-bit lane index replaced.
func VectorSetElement64(v Vector, index uint8, x uint64) Vector {
	if int(index) >= len(v) {
		panic(malformed(ErrOutOfRange))
	}
	v[index] = x
	return v
}

// VectorMultiplyWidenU32 multiplies the four unsigned 32-bit lanes of a
// and b into four 64-bit products. Products of lanes 0 and 1 form the
// lower vector, lanes 2 and 3 the upper.
func VectorMultiplyWidenU32(a, b Vector) (res UpperAndLower) {
	var products [4]uint64
	for lane := range products {
		shift := 32 * (lane % 2)
		x := uint32(a[lane/2] >> shift)
		y := uint32(b[lane/2] >> shift)
		products[lane] = uint64(x) * uint64(y)
	}

	res.Lower = Vector{products[0], products[1]}
	res.Upper = Vector{products[2], products[3]}
	return
}
