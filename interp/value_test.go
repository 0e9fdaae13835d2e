package interp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// catch runs fn and returns the *ErrMalformed it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		em, ok := r.(*ErrMalformed)
		if !ok {
			panic(r)
		}
		err = em
	}()

	fn()
	return
}

func TestValueScalar(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(true, Get[bool](Of(true)))
	assert.Equal(uint8(0xa5), Get[uint8](Of(uint8(0xa5))))
	assert.Equal(uint16(0xa55a), Get[uint16](Of(uint16(0xa55a))))
	assert.Equal(uint32(0xdeadbeef), Get[uint32](Of(uint32(0xdeadbeef))))
	assert.Equal(uint64(0x0123456789abcdef), Get[uint64](Of(uint64(0x0123456789abcdef))))

	// Signed values are stored as the unsigned bit pattern.
	v := Of(int8(-1))
	assert.Equal(uint8(0xff), Get[uint8](v))
	assert.Equal(int8(-1), Get[int8](v))
	assert.Equal(8, v.Width())

	v = Of(int32(-2))
	assert.Equal(uint32(0xfffffffe), Get[uint32](v))
	assert.Equal(int32(-2), Get[int32](v))

	v = Of(Vector{1, 2})
	assert.Equal(KIND_VECTOR, v.Kind())
	assert.Equal(Vector{1, 2}, Get[Vector](v))

	assert.Equal(NZCV(0x60000000), Get[NZCV](Of(uint32(0x60000000))))
}

func TestValueWidthMismatch(t *testing.T) {
	assert := assert.New(t)

	v := Of(uint32(5))

	err := catch(func() { Get[uint64](v) })
	assert.ErrorIs(err, ErrType)

	err = catch(func() { Get[Vector](v) })
	assert.ErrorIs(err, ErrType)

	err = catch(func() { Get[uint32](Value{}) })
	assert.ErrorIs(err, ErrType)

	err = catch(func() { Get[uint64](Of(Vector{})) })
	assert.ErrorIs(err, ErrType)

	err = catch(func() { Get[ResultAndCarry](v) })
	assert.ErrorIs(err, ErrType)
}

func TestValueComposite(t *testing.T) {
	assert := assert.New(t)

	// The numeric result unwraps transparently, never the flags.
	nzcv := Of(ResultAndNZCV[uint32]{Result: 0x80000000, N: true, V: true})
	assert.Equal(uint32(0x80000000), Get[uint32](nzcv))
	assert.Equal(int32(-0x80000000), Get[int32](nzcv))
	assert.False(nzcv.Carry())
	assert.True(nzcv.Overflow())
	assert.Equal(NZCV_N|NZCV_V, nzcv.NZCV())
	assert.Equal(ResultAndNZCV[uint32]{Result: 0x80000000, N: true, V: true}, Get[ResultAndNZCV[uint32]](nzcv))

	nzcv64 := Of(ResultAndNZCV[uint64]{Result: 0, Z: true, C: true})
	assert.Equal(uint64(0), Get[uint64](nzcv64))
	assert.Equal(NZCV_Z|NZCV_C, nzcv64.NZCV())
	err := catch(func() { Get[ResultAndNZCV[uint32]](nzcv64) })
	assert.ErrorIs(err, ErrType)

	carry := Of(ResultAndCarry{Result: 7, Carry: true})
	assert.Equal(uint32(7), Get[uint32](carry))
	assert.True(carry.Carry())
	err = catch(func() { carry.Overflow() })
	assert.ErrorIs(err, ErrNoOverflow)

	overflow := Of(ResultAndOverflow[uint8]{Result: 0x7f, Overflow: true})
	assert.Equal(uint8(0x7f), Get[uint8](overflow))
	assert.True(overflow.Overflow())
	err = catch(func() { overflow.Carry() })
	assert.ErrorIs(err, ErrNoCarry)
	err = catch(func() { Get[uint32](overflow) })
	assert.ErrorIs(err, ErrType)

	both := Of(ResultAndCarryAndOverflow{Result: 1, Carry: true, Overflow: false})
	assert.True(both.Carry())
	assert.False(both.Overflow())
	assert.Equal(uint32(1), Get[uint32](both))

	ge := Of(ResultAndGE{Result: 0x01020304, GE: 0xff00ff00})
	assert.Equal(uint32(0x01020304), Get[uint32](ge))
	assert.Equal(uint32(0xff00ff00), Get[ResultAndGE](ge).GE)

	pair := Of(UpperAndLower{Upper: Vector{3, 4}, Lower: Vector{1, 2}})
	assert.Equal(UpperAndLower{Upper: Vector{3, 4}, Lower: Vector{1, 2}}, Get[UpperAndLower](pair))
	err = catch(func() { Get[uint64](pair) })
	assert.ErrorIs(err, ErrType)
}

func TestValueFlagsFromScalar(t *testing.T) {
	assert := assert.New(t)

	v := Of(uint32(1))

	err := catch(func() { v.Carry() })
	assert.ErrorIs(err, ErrNoCarry)

	err = catch(func() { v.Overflow() })
	assert.ErrorIs(err, ErrNoOverflow)

	err = catch(func() { v.NZCV() })
	assert.ErrorIs(err, ErrNoNZCV)

	var em *ErrMalformed
	assert.True(errors.As(err, &em))
	assert.Equal(-1, em.Index)
}

func TestValueString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("unset", Value{}.String())
	assert.Equal("1:u1", Of(true).String())
	assert.Equal("0x2a:u32", Of(uint32(42)).String())
	assert.Equal("0x0:u32 nZCv", Of(ResultAndNZCV[uint32]{Z: true, C: true}).String())
	assert.Equal("NzcV", (NZCV_N | NZCV_V).String())

	assert.Equal("unset", KIND_UNSET.String())
	assert.Equal("carry+overflow", KIND_CARRY_OVERFLOW.String())
	assert.Equal("upper/lower", KIND_UPPER_LOWER.String())
	assert.Equal("Kind(200)", Kind(200).String())
}

func TestPackNZCV(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(NZCV(0x80000000), PackNZCV(true, false, false, false))
	assert.Equal(NZCV(0x40000000), PackNZCV(false, true, false, false))
	assert.Equal(NZCV(0x20000000), PackNZCV(false, false, true, false))
	assert.Equal(NZCV(0x10000000), PackNZCV(false, false, false, true))
	assert.Equal(NZCV_MASK, PackNZCV(true, true, true, true))
}
