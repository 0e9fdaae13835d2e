package interp

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/uop/ir"
)

// flags evaluates conditions against a fixed NZCV word.
type flags NZCV

func (fl flags) ConditionPassed(cond ir.Cond) bool {
	nzcv := NZCV(fl)
	switch cond {
	case ir.COND_EQ:
		return nzcv.Z()
	case ir.COND_NE:
		return !nzcv.Z()
	case ir.COND_CS:
		return nzcv.C()
	case ir.COND_CC:
		return !nzcv.C()
	}
	return true
}

func isGuest(op ir.Opcode) bool {
	return strings.HasPrefix(op.String(), "A32") || strings.HasPrefix(op.String(), "A64")
}

func TestInterpreterBindings(t *testing.T) {
	assert := assert.New(t)

	interp := NewInterpreter(nil)
	for n := range ir.OP_MAX {
		op := ir.Opcode(n)
		assert.Equal(!isGuest(op), interp.Bound(op), op.String())
	}
	assert.False(interp.Bound(ir.Opcode(0xffff)))

	assert.Panics(func() { interp.Bind(ir.OP_ADD_32, Op1(Not32)) })
	assert.Panics(func() { interp.Bind(ir.OP_A32_GET_REGISTER, Op1(func(uint32) uint32 { return 0 })) })
	assert.Panics(func() { interp.Bind(ir.OP_A32_SET_REGISTER, Binding{}) })
	assert.NotPanics(func() {
		interp.Bind(ir.OP_A32_GET_REGISTER, Op1(func(reg ir.A32Reg) uint32 { return uint32(reg) }))
	})
	assert.True(interp.Bound(ir.OP_A32_GET_REGISTER))
}

func TestInterpreterFlags(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	a := b.Append(ir.OP_IDENTITY, ir.ImmU32(0x7fffffff))
	sum := b.Append(ir.OP_ADD_32, ir.Ref(a), ir.ImmU32(1), ir.ImmU1(false))
	nzcv := b.Append(ir.OP_GET_NZCV_FROM_OP, ir.Ref(sum))
	carry := b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(sum))
	overflow := b.Append(ir.OP_GET_OVERFLOW_FROM_OP, ir.Ref(sum))
	msb := b.Append(ir.OP_MOST_SIGNIFICANT_BIT, ir.Ref(sum))
	wide := b.Append(ir.OP_ADD_64, ir.ImmU64(0xffffffffffffffff), ir.ImmU64(1), ir.ImmU1(false))
	nzcv64 := b.Append(ir.OP_GET_NZCV_FROM_OP, ir.Ref(wide))
	packed := b.Append(ir.OP_NZCV_FROM_PACKED_FLAGS, ir.ImmU32(0x60000000))
	assert.NoError(ir.Verify(b))

	ctx, err := NewInterpreter(nil).Run(b)
	assert.NoError(err)

	assert.Equal(uint32(0x80000000), Get[uint32](ctx.Value(sum.Index())))
	assert.Equal(NZCV_N|NZCV_V, Get[NZCV](ctx.Value(nzcv.Index())))
	assert.False(Get[bool](ctx.Value(carry.Index())))
	assert.True(Get[bool](ctx.Value(overflow.Index())))
	assert.True(Get[bool](ctx.Value(msb.Index())))
	assert.Equal(NZCV_Z|NZCV_C, Get[NZCV](ctx.Value(nzcv64.Index())))
	assert.Equal(NZCV(0x60000000), Get[NZCV](ctx.Value(packed.Index())))
}

func TestInterpreterIdentity(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	sum := b.Append(ir.OP_ADD_32, ir.ImmU32(0xffffffff), ir.ImmU32(1), ir.ImmU1(false))
	copied := b.Append(ir.OP_IDENTITY, ir.Ref(sum))
	carry := b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(copied))
	u1 := b.Append(ir.OP_IDENTITY, ir.ImmU1(true))
	u8 := b.Append(ir.OP_IDENTITY, ir.ImmU8(0x80))
	u16 := b.Append(ir.OP_IDENTITY, ir.ImmU16(0x8000))
	u64 := b.Append(ir.OP_IDENTITY, ir.ImmU64(0x8000000000000000))

	ctx, err := NewInterpreter(nil).Run(b)
	assert.NoError(err)

	assert.Equal(ctx.Value(sum.Index()), ctx.Value(copied.Index()))
	assert.True(Get[bool](ctx.Value(carry.Index())))
	assert.Equal(Of(true), ctx.Value(u1.Index()))
	assert.Equal(Of(uint8(0x80)), ctx.Value(u8.Index()))
	assert.Equal(Of(uint16(0x8000)), ctx.Value(u16.Index()))
	assert.Equal(Of(uint64(0x8000000000000000)), ctx.Value(u64.Index()))

	for _, imm := range []ir.Value{ir.ImmNZCV(0), ir.ImmCond(ir.COND_EQ), ir.ImmA32Reg(0), ir.Imm(ir.TYPE_U128, 0)} {
		b = ir.NewBlock()
		b.Append(ir.OP_IDENTITY, imm)
		_, err = NewInterpreter(nil).Run(b)
		assert.ErrorIs(err, ErrImmediate, imm.String())
	}
}

func TestInterpreterConditionalSelect(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	eq := b.Append(ir.OP_CONDITIONAL_SELECT_32, ir.ImmCond(ir.COND_EQ), ir.ImmU32(1), ir.ImmU32(2))
	ne := b.Append(ir.OP_CONDITIONAL_SELECT_64, ir.ImmCond(ir.COND_NE), ir.ImmU64(1), ir.ImmU64(2))
	cs := b.Append(ir.OP_CONDITIONAL_SELECT_NZCV, ir.ImmCond(ir.COND_CS), ir.ImmNZCV(0x20000000), ir.ImmNZCV(0x40000000))

	ctx, err := NewInterpreter(flags(NZCV_Z)).Run(b)
	assert.NoError(err)
	assert.Equal(uint32(1), Get[uint32](ctx.Value(eq.Index())))
	assert.Equal(uint64(2), Get[uint64](ctx.Value(ne.Index())))
	assert.Equal(NZCV_Z, Get[NZCV](ctx.Value(cs.Index())))

	ctx, err = NewInterpreter(flags(NZCV_C)).Run(b)
	assert.NoError(err)
	assert.Equal(uint32(2), Get[uint32](ctx.Value(eq.Index())))
	assert.Equal(uint64(1), Get[uint64](ctx.Value(ne.Index())))
	assert.Equal(NZCV_C, Get[NZCV](ctx.Value(cs.Index())))

	_, err = NewInterpreter(nil).Run(b)
	assert.ErrorIs(err, ErrNoCondition)
}

func TestInterpreterComposites(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	va := b.Append(ir.OP_PACK_2X64_TO_1X128, ir.ImmU64(0x00000002_00000001), ir.ImmU64(0x00000004_00000003))
	vb := b.Append(ir.OP_PACK_2X64_TO_1X128, ir.ImmU64(0x00000010_00000010), ir.ImmU64(0x00000010_00000010))
	wide := b.Append(ir.OP_VECTOR_MULTIPLY_WIDEN_U32, ir.Ref(va), ir.Ref(vb))
	upper := b.Append(ir.OP_GET_UPPER_FROM_OP, ir.Ref(wide))
	lower := b.Append(ir.OP_GET_LOWER_FROM_OP, ir.Ref(wide))
	lane := b.Append(ir.OP_VECTOR_GET_ELEMENT_64, ir.Ref(upper), ir.ImmU8(1))

	uadd := b.Append(ir.OP_PACKED_ADD_U8, ir.ImmU32(0xff000001), ir.ImmU32(0x01000001))
	ge := b.Append(ir.OP_GET_GE_FROM_OP, ir.Ref(uadd))

	sat := b.Append(ir.OP_SIGNED_SATURATED_ADD_8, ir.ImmU8(0x7f), ir.ImmU8(1))
	satv := b.Append(ir.OP_GET_OVERFLOW_FROM_OP, ir.Ref(sat))
	satx := b.Append(ir.OP_ZERO_EXTEND_BYTE_TO_WORD, ir.Ref(sat))

	adc := b.Append(ir.OP_ADD_WITH_CARRY_32, ir.ImmU32(0xffffffff), ir.ImmU32(0), ir.ImmU1(true))
	adcc := b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(adc))

	msw := b.Append(ir.OP_MOST_SIGNIFICANT_WORD, ir.ImmU64(0x0000000180000000))
	mswc := b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(msw))

	lsl := b.Append(ir.OP_LOGICAL_SHIFT_LEFT_32, ir.ImmU32(0x80000000), ir.ImmU8(1), ir.ImmU1(false))
	lslc := b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(lsl))
	assert.NoError(ir.Verify(b))

	ctx, err := NewInterpreter(nil).Run(b)
	assert.NoError(err)

	assert.Equal(Vector{0x30, 0x40}, Get[Vector](ctx.Value(upper.Index())))
	assert.Equal(Vector{0x10, 0x20}, Get[Vector](ctx.Value(lower.Index())))
	assert.Equal(uint64(0x40), Get[uint64](ctx.Value(lane.Index())))
	assert.Equal(uint32(0xff000000), Get[uint32](ctx.Value(ge.Index())))
	assert.True(Get[bool](ctx.Value(satv.Index())))
	assert.Equal(uint32(0x7f), Get[uint32](ctx.Value(satx.Index())))
	assert.True(Get[bool](ctx.Value(adcc.Index())))
	assert.Equal(uint32(1), Get[uint32](ctx.Value(msw.Index())))
	assert.True(Get[bool](ctx.Value(mswc.Index())))
	assert.Equal(uint32(0), Get[uint32](ctx.Value(lsl.Index())))
	assert.True(Get[bool](ctx.Value(lslc.Index())))
}

func TestInterpreterMalformed(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		build func(b *ir.Block)
		index int
		err   error
	}){
		{"breakpoint", func(b *ir.Block) {
			b.Append(ir.OP_VOID)
			b.Append(ir.OP_BREAKPOINT)
		}, 1, ErrBreakpoint},
		{"unbound", func(b *ir.Block) {
			b.Append(ir.OP_A32_GET_REGISTER, ir.ImmA32Reg(0))
		}, 0, ErrUnbound},
		{"invalid", func(b *ir.Block) {
			b.Append(ir.Opcode(0x7fff))
		}, 0, ErrOpcode},
		{"short operands", func(b *ir.Block) {
			b.Append(ir.OP_VOID)
			b.Append(ir.OP_ADD_32, ir.ImmU32(1))
		}, 1, ir.ErrArgCount},
		{"extra operands", func(b *ir.Block) {
			b.Append(ir.OP_NOT_32, ir.ImmU32(1), ir.ImmU32(2))
		}, 0, ir.ErrArgCount},
		{"immediate width", func(b *ir.Block) {
			b.Append(ir.OP_ADD_32, ir.ImmU64(1), ir.ImmU32(1), ir.ImmU1(false))
		}, 0, ErrType},
		{"reference width", func(b *ir.Block) {
			wide := b.Append(ir.OP_IDENTITY, ir.ImmU64(1))
			b.Append(ir.OP_NOT_32, ir.Ref(wide))
		}, 1, ErrType},
		{"carry of scalar", func(b *ir.Block) {
			mul := b.Append(ir.OP_MUL_32, ir.ImmU32(2), ir.ImmU32(3))
			b.Append(ir.OP_GET_CARRY_FROM_OP, ir.Ref(mul))
		}, 1, ErrNoCarry},
		{"overflow of carry", func(b *ir.Block) {
			ror := b.Append(ir.OP_ROTATE_RIGHT_32, ir.ImmU32(2), ir.ImmU8(1), ir.ImmU1(false))
			b.Append(ir.OP_GET_OVERFLOW_FROM_OP, ir.Ref(ror))
		}, 1, ErrNoOverflow},
		{"carry of immediate", func(b *ir.Block) {
			b.Append(ir.OP_GET_CARRY_FROM_OP, ir.ImmU32(1))
		}, 0, ErrImmediate},
		{"nzcv of scalar", func(b *ir.Block) {
			b.Append(ir.OP_GET_NZCV_FROM_OP, ir.Ref(b.Append(ir.OP_IDENTITY, ir.ImmU32(1))))
		}, 1, ErrNoNZCV},
		{"ge of nzcv", func(b *ir.Block) {
			sum := b.Append(ir.OP_ADD_32, ir.ImmU32(1), ir.ImmU32(1), ir.ImmU1(false))
			b.Append(ir.OP_GET_GE_FROM_OP, ir.Ref(sum))
		}, 1, ErrType},
		{"vector from immediate", func(b *ir.Block) {
			b.Append(ir.OP_VECTOR_NOT, ir.Imm(ir.TYPE_U128, 0))
		}, 0, ErrImmediate},
		{"composite from immediate", func(b *ir.Block) {
			b.Append(ir.OP_GET_UPPER_FROM_OP, ir.ImmU64(0))
		}, 0, ErrImmediate},
		{"condition from reference", func(b *ir.Block) {
			cond := b.Append(ir.OP_IDENTITY, ir.ImmU8(0))
			b.Append(ir.OP_CONDITIONAL_SELECT_32, ir.Ref(cond), ir.ImmU32(1), ir.ImmU32(2))
		}, 1, ErrReference},
		{"undefined producer", func(b *ir.Block) {
			other := ir.NewBlock()
			other.Append(ir.OP_VOID)
			foreign := other.Append(ir.OP_IDENTITY, ir.ImmU32(1))
			b.Append(ir.OP_NOT_32, ir.Ref(foreign))
		}, 0, ErrUndefined},
	}

	for _, entry := range table {
		b := ir.NewBlock()
		entry.build(b)

		ctx, err := NewInterpreter(flags(0)).Run(b)
		assert.ErrorIs(err, entry.err, entry.name)

		var em *ErrMalformed
		if assert.True(errors.As(err, &em), entry.name) {
			assert.Equal(entry.index, em.Index, entry.name)
			assert.Equal(b.Inst(entry.index).Opcode(), em.Opcode, entry.name)
		}

		// Execution stops at the fault.
		_, ok := ctx.Lookup(entry.index)
		assert.False(ok, entry.name)
	}
}

func TestInterpreterExecutePanics(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	first := b.Append(ir.OP_IDENTITY, ir.ImmU32(1))
	second := b.Append(ir.OP_NOT_32, ir.Ref(first))

	interp := NewInterpreter(nil)
	ctx := NewContext(b.Len())

	err := catch(func() { interp.Execute(ctx, second) })
	assert.ErrorIs(err, ErrUndefined)

	interp.Execute(ctx, first)
	interp.Execute(ctx, second)
	assert.Equal(uint32(0xfffffffe), Get[uint32](ctx.Value(second.Index())))

	err = catch(func() { interp.Execute(ctx, second) })
	assert.ErrorIs(err, ErrRedefined)
}

func TestInterpreterDivideByZero(t *testing.T) {
	assert := assert.New(t)

	b := ir.NewBlock()
	b.Append(ir.OP_UNSIGNED_DIV_32, ir.ImmU32(1), ir.ImmU32(0))

	// Not a malformed block, so not converted into an error.
	assert.Panics(func() { NewInterpreter(nil).Run(b) })
}

func TestInterpreterConcurrent(t *testing.T) {
	assert := assert.New(t)

	interp := NewInterpreter(nil)

	var wg sync.WaitGroup
	results := make([]uint64, 8)
	for n := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := ir.NewBlock()
			x := b.Append(ir.OP_IDENTITY, ir.ImmU64(uint64(n)))
			sq := b.Append(ir.OP_MUL_64, ir.Ref(x), ir.Ref(x))
			ctx, err := interp.Run(b)
			if err == nil {
				results[n] = Get[uint64](ctx.Value(sq.Index()))
			}
		}()
	}
	wg.Wait()

	for n, result := range results {
		assert.Equal(uint64(n*n), result)
	}
}

func TestInterpreterFatal(t *testing.T) {
	assert := assert.New(t)

	interp := NewInterpreter(nil)
	interp.Bind(ir.OP_A32_GET_REGISTER, Op1(func(reg ir.A32Reg) uint32 {
		if reg > 3 {
			Fatal(ErrOutOfRange)
		}
		return uint32(reg)
	}))
	assert.True(interp.Bound(ir.OP_A32_GET_REGISTER))

	b := ir.NewBlock()
	b.Append(ir.OP_A32_GET_REGISTER, ir.ImmA32Reg(2))
	b.Append(ir.OP_A32_GET_REGISTER, ir.ImmA32Reg(9))

	ctx, err := interp.Run(b)
	assert.ErrorIs(err, ErrOutOfRange)

	var em *ErrMalformed
	if assert.True(errors.As(err, &em)) {
		assert.Equal(1, em.Index)
		assert.Equal(ir.OP_A32_GET_REGISTER, em.Opcode)
	}
	assert.Equal(uint32(2), Get[uint32](ctx.Value(0)))
}
