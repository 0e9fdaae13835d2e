package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/uop/interp"
	"github.com/ezrec/uop/ir"
)

// fatal runs fn and returns the malformed IR error it raised, if any.
func fatal(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = r.(*interp.ErrMalformed)
		}
	}()
	fn()
	return
}

func TestConditionPassed(t *testing.T) {
	assert := assert.New(t)

	const (
		N = interp.NZCV_N
		Z = interp.NZCV_Z
		C = interp.NZCV_C
		V = interp.NZCV_V
	)

	table := [](struct {
		cond ir.Cond
		pass []interp.NZCV
		fail []interp.NZCV
	}){
		{ir.COND_EQ, []interp.NZCV{Z, Z | C}, []interp.NZCV{0, N}},
		{ir.COND_NE, []interp.NZCV{0, N}, []interp.NZCV{Z}},
		{ir.COND_CS, []interp.NZCV{C}, []interp.NZCV{0}},
		{ir.COND_CC, []interp.NZCV{0}, []interp.NZCV{C}},
		{ir.COND_MI, []interp.NZCV{N}, []interp.NZCV{0}},
		{ir.COND_PL, []interp.NZCV{0}, []interp.NZCV{N}},
		{ir.COND_VS, []interp.NZCV{V}, []interp.NZCV{0}},
		{ir.COND_VC, []interp.NZCV{0}, []interp.NZCV{V}},
		{ir.COND_HI, []interp.NZCV{C}, []interp.NZCV{C | Z, 0}},
		{ir.COND_LS, []interp.NZCV{0, C | Z}, []interp.NZCV{C}},
		{ir.COND_GE, []interp.NZCV{0, N | V}, []interp.NZCV{N, V}},
		{ir.COND_LT, []interp.NZCV{N, V}, []interp.NZCV{0, N | V}},
		{ir.COND_GT, []interp.NZCV{0, N | V}, []interp.NZCV{Z, N}},
		{ir.COND_LE, []interp.NZCV{Z, N}, []interp.NZCV{0, N | V}},
		{ir.COND_AL, []interp.NZCV{0, N | Z | C | V}, nil},
		{ir.COND_NV, []interp.NZCV{0, N | Z | C | V}, nil},
	}

	cpu := NewCpu()
	for _, entry := range table {
		for _, nzcv := range entry.pass {
			cpu.NZCV = nzcv
			assert.True(cpu.ConditionPassed(entry.cond), "%v %v", entry.cond, nzcv)
			if entry.cond < ir.COND_AL {
				assert.False(cpu.ConditionPassed(entry.cond.Invert()), "%v %v", entry.cond.Invert(), nzcv)
			}
		}
		for _, nzcv := range entry.fail {
			cpu.NZCV = nzcv
			assert.False(cpu.ConditionPassed(entry.cond), "%v %v", entry.cond, nzcv)
		}
	}
}

func TestSetRegister(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.NoError(cpu.SetRegister("r3", 0x1234))
	assert.Equal(uint32(0x1234), cpu.R[3])

	assert.NoError(cpu.SetRegister("LR", 0xffff_ffff))
	assert.Equal(uint32(0xffff_ffff), cpu.R[ir.A32_REG_LR])

	assert.NoError(cpu.SetRegister("x30", 0x1_0000_0000))
	assert.Equal(uint64(0x1_0000_0000), cpu.X[30])

	assert.NoError(cpu.SetRegister("x31", 0x8000))
	assert.Equal(uint64(0x8000), cpu.X[ir.A64_REG_SP])

	assert.NoError(cpu.SetRegister("v2", 0x55))
	assert.Equal(interp.Vector{0x55, 0}, cpu.V[2])

	assert.NoError(cpu.SetRegister("d1", 0x11111111_22222222))
	assert.NoError(cpu.SetRegister("s3", 0x33333333))
	assert.Equal(uint64(0x33333333_22222222), cpu.D[1])

	assert.NoError(cpu.SetRegister("nzcv", 0x6fff_ffff))
	assert.Equal(interp.NZCV_Z|interp.NZCV_C, cpu.NZCV)

	assert.NoError(cpu.SetRegister("q", 1))
	assert.True(cpu.Q)

	assert.ErrorIs(cpu.SetRegister("r0", 0x1_0000_0000), ErrRegisterValue)
	assert.ErrorIs(cpu.SetRegister("q", 2), ErrRegisterValue)
	assert.ErrorIs(cpu.SetRegister("r16", 0), ErrRegisterInvalid)
	assert.ErrorIs(cpu.SetRegister("bogus", 0), ErrRegisterInvalid)

	var name ErrRegisterName
	assert.True(errors.As(cpu.SetRegister("x32", 0), &name))
	assert.Equal(ErrRegisterName("x32"), name)
}

func TestParseAssignment(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.ParseAssignment("r1=0x10"))
	assert.Equal(uint32(0x10), cpu.R[1])
	assert.NoError(cpu.ParseAssignment(" x2 = 0xdead_beef "))
	assert.Equal(uint64(0xdeadbeef), cpu.X[2])

	assert.ErrorIs(cpu.ParseAssignment("r1"), ErrRegisterInvalid)
	assert.Error(cpu.ParseAssignment("r1=zebra"))
}

func TestExtendedRegisters(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	s0, _ := ir.ParseA32ExtReg("s0")
	s1, _ := ir.ParseA32ExtReg("s1")
	d0, _ := ir.ParseA32ExtReg("d0")
	d31, _ := ir.ParseA32ExtReg("d31")

	cpu.A32SetExtendedRegister32(s0, 0xaaaa_aaaa)
	cpu.A32SetExtendedRegister32(s1, 0xbbbb_bbbb)
	assert.Equal(uint64(0xbbbb_bbbb_aaaa_aaaa), cpu.A32GetExtendedRegister64(d0))

	cpu.A32SetExtendedRegister64(d31, 0x1234)
	assert.Equal(uint64(0x1234), cpu.D[31])
	assert.Equal(uint32(0xbbbb_bbbb), cpu.A32GetExtendedRegister32(s1))

	assert.ErrorIs(fatal(func() { cpu.A32GetExtendedRegister32(d0) }), ErrRegisterWidth)
	assert.ErrorIs(fatal(func() { cpu.A32SetExtendedRegister64(s0, 0) }), ErrRegisterWidth)
	assert.ErrorIs(fatal(func() { cpu.A32GetExtendedRegister64(ir.A32ExtReg(99)) }), ErrRegisterInvalid)
}

func TestGuestState(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	cpu.A32SetRegister(ir.A32_REG_PC, 0x8000)
	assert.Equal(uint32(0x8000), cpu.A32GetRegister(ir.A32_REG_PC))
	assert.ErrorIs(fatal(func() { cpu.A32GetRegister(ir.A32Reg(16)) }), ErrRegisterInvalid)

	cpu.A64SetX(5, 0xffff_ffff_0000_0000)
	cpu.A64SetW(5, 0x42)
	assert.Equal(uint64(0x42), cpu.A64GetX(5))
	assert.Equal(uint32(0x42), cpu.A64GetW(5))

	cpu.A64SetQ(31, interp.Vector{1, 2})
	assert.Equal(interp.Vector{1, 2}, cpu.A64GetQ(31))
	assert.ErrorIs(fatal(func() { cpu.A64GetQ(32) }), ErrRegisterInvalid)

	cpu.SetNZCVRaw(0xffff_ffff)
	assert.Equal(uint32(interp.NZCV_MASK), cpu.GetNZCVRaw())
	assert.True(cpu.GetCFlag())
	cpu.SetNZCV(interp.NZCV_N)
	assert.False(cpu.GetCFlag())

	cpu.OrQFlag(true)
	cpu.OrQFlag(false)
	assert.True(cpu.Q)

	cpu.SetGEFlags(0xff00ff00)
	assert.Equal(uint32(0xff00ff00), cpu.GE)

	cpu.PushRSB(0x4000)
	val, ok := cpu.RSB.Peek()
	assert.True(ok)
	assert.Equal(uint64(0x4000), val)
}

func TestReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.R[0] = 1
	cpu.X[1] = 2
	cpu.D[2] = 3
	cpu.V[3] = interp.Vector{4, 5}
	cpu.NZCV = interp.NZCV_MASK
	cpu.GE = 0xff
	cpu.Q = true
	cpu.Ticks = 7
	cpu.PushRSB(8)

	cpu.Reset()
	assert.Equal(uint32(0), cpu.R[0])
	assert.Equal(uint64(0), cpu.X[1])
	assert.Equal(uint64(0), cpu.D[2])
	assert.Equal(interp.Vector{}, cpu.V[3])
	assert.Equal(interp.NZCV(0), cpu.NZCV)
	assert.Equal(uint32(0), cpu.GE)
	assert.False(cpu.Q)
	assert.Equal(0, cpu.Ticks)
	assert.True(cpu.RSB.Empty())
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.R[0] = 0x1234_5678
	cpu.V[7] = interp.Vector{0, 1}

	text := cpu.String()
	assert.Contains(text, "   r0: 1234_5678\n")
	assert.Contains(text, "   v7: 0000_0000_0000_0001:0000_0000_0000_0000\n")
	assert.NotContains(text, "v6:")
	assert.Contains(text, "  rsb: ----_----_----_----\n")
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for name, value := range NewCpu().Defines() {
		defines[name] = value
	}

	assert.Equal("0x20000000", defines["NZCV_C"])
	assert.Equal("16", defines["STACK_LIMIT"])
}
