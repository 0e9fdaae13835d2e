package cpu

import (
	"log"

	"github.com/ezrec/uop/interp"
	"github.com/ezrec/uop/ir"
)

// The methods below carry the signatures of the guest state opcodes so the
// emulator can bind them directly.

func regIndex(n, limit int) int {
	if n >= limit {
		interp.Fatal(ErrRegisterInvalid)
	}
	return n
}

func (cpu *Cpu) single(reg ir.A32ExtReg) (index int, shift uint) {
	if reg.IsDouble() {
		interp.Fatal(ErrRegisterWidth)
	}
	return int(reg) / 2, uint(reg%2) * 32
}

func (cpu *Cpu) double(reg ir.A32ExtReg) int {
	if !reg.IsDouble() {
		interp.Fatal(ErrRegisterWidth)
	}
	return regIndex(int(reg-ir.A32_EXT_REG_D0), len(cpu.D))
}

func (cpu *Cpu) setSingle(reg ir.A32ExtReg, value uint32) {
	index, shift := cpu.single(reg)
	cpu.D[index] &^= uint64(0xffff_ffff) << shift
	cpu.D[index] |= uint64(value) << shift
}

func (cpu *Cpu) A32GetRegister(reg ir.A32Reg) uint32 {
	return cpu.R[regIndex(int(reg), len(cpu.R))]
}

func (cpu *Cpu) A32SetRegister(reg ir.A32Reg, value uint32) {
	if cpu.Verbose {
		log.Printf("cpu: %v <= %#x", reg, value)
	}
	cpu.R[regIndex(int(reg), len(cpu.R))] = value
}

// A32GetExtendedRegister32 reads an s register.
func (cpu *Cpu) A32GetExtendedRegister32(reg ir.A32ExtReg) uint32 {
	index, shift := cpu.single(reg)
	return uint32(cpu.D[index] >> shift)
}

// A32SetExtendedRegister32 writes an s register.
func (cpu *Cpu) A32SetExtendedRegister32(reg ir.A32ExtReg, value uint32) {
	if cpu.Verbose {
		log.Printf("cpu: %v <= %#x", reg, value)
	}
	cpu.setSingle(reg, value)
}

// A32GetExtendedRegister64 reads a d register.
func (cpu *Cpu) A32GetExtendedRegister64(reg ir.A32ExtReg) uint64 {
	return cpu.D[cpu.double(reg)]
}

// A32SetExtendedRegister64 writes a d register.
func (cpu *Cpu) A32SetExtendedRegister64(reg ir.A32ExtReg, value uint64) {
	if cpu.Verbose {
		log.Printf("cpu: %v <= %#x", reg, value)
	}
	cpu.D[cpu.double(reg)] = value
}

func (cpu *Cpu) GetCFlag() bool {
	return cpu.NZCV.C()
}

func (cpu *Cpu) SetNZCV(nzcv interp.NZCV) {
	if cpu.Verbose {
		log.Printf("cpu: nzcv <= %v", nzcv)
	}
	cpu.NZCV = nzcv & interp.NZCV_MASK
}

// GetNZCVRaw returns the flags in bits 31 to 28 of a word.
func (cpu *Cpu) GetNZCVRaw() uint32 {
	return uint32(cpu.NZCV)
}

// SetNZCVRaw sets the flags from bits 31 to 28 of a word. Other bits are ignored.
func (cpu *Cpu) SetNZCVRaw(value uint32) {
	cpu.SetNZCV(interp.NZCV(value))
}

func (cpu *Cpu) SetGEFlags(ge uint32) {
	cpu.GE = ge
}

// OrQFlag sets the sticky saturation flag when q is set.
func (cpu *Cpu) OrQFlag(q bool) {
	cpu.Q = cpu.Q || q
}

func (cpu *Cpu) A64GetX(reg ir.A64Reg) uint64 {
	return cpu.X[regIndex(int(reg), len(cpu.X))]
}

func (cpu *Cpu) A64SetX(reg ir.A64Reg, value uint64) {
	if cpu.Verbose {
		log.Printf("cpu: %v <= %#x", reg, value)
	}
	cpu.X[regIndex(int(reg), len(cpu.X))] = value
}

func (cpu *Cpu) A64GetW(reg ir.A64Reg) uint32 {
	return uint32(cpu.X[regIndex(int(reg), len(cpu.X))])
}

// A64SetW writes the low word of an X register and clears the high word.
func (cpu *Cpu) A64SetW(reg ir.A64Reg, value uint32) {
	cpu.A64SetX(reg, uint64(value))
}

func (cpu *Cpu) A64GetQ(vec ir.A64Vec) interp.Vector {
	return cpu.V[regIndex(int(vec), len(cpu.V))]
}

func (cpu *Cpu) A64SetQ(vec ir.A64Vec, value interp.Vector) {
	if cpu.Verbose {
		log.Printf("cpu: %v <= %#x:%#x", vec, value[1], value[0])
	}
	cpu.V[regIndex(int(vec), len(cpu.V))] = value
}

// PushRSB records a predicted return address.
func (cpu *Cpu) PushRSB(addr uint64) {
	cpu.RSB.Push(addr)
}
