package interp

import (
	"github.com/ezrec/uop/ir"
)

// Operand is every Go type an operand can be resolved as.
type Operand interface {
	Storable | ir.A32Reg | ir.A32ExtReg | ir.A64Reg | ir.A64Vec | ir.Cond
}

// Arg resolves operand n of inst as T.
//
// An immediate operand must have been declared with the IR type that
// matches T exactly. Vectors and composites never come from immediates.
// A reference operand reads the producer's slot in ctx through Get.
// Register names and condition codes are only ever immediates.
func Arg[T Operand](ctx *Context, inst *ir.Inst, n int) (x T) {
	arg := inst.Arg(n)
	if arg.IsImmediate() {
		immediate(arg, &x)
		return
	}

	switch any(x).(type) {
	case ir.A32Reg, ir.A32ExtReg, ir.A64Reg, ir.A64Vec, ir.Cond:
		panic(malformed(ErrReference))
	}

	ctx.Value(arg.Inst().Index()).load(&x)
	return
}

// immediate decodes arg into the variable ptr points to.
func immediate(arg ir.Value, ptr any) {
	switch p := ptr.(type) {
	case *bool:
		*p = bitsOf(arg, ir.TYPE_U1) != 0
	case *uint8:
		*p = uint8(bitsOf(arg, ir.TYPE_U8))
	case *uint16:
		*p = uint16(bitsOf(arg, ir.TYPE_U16))
	case *uint32:
		*p = uint32(bitsOf(arg, ir.TYPE_U32))
	case *uint64:
		*p = bitsOf(arg, ir.TYPE_U64)
	case *int8:
		*p = int8(bitsOf(arg, ir.TYPE_U8))
	case *int16:
		*p = int16(bitsOf(arg, ir.TYPE_U16))
	case *int32:
		*p = int32(bitsOf(arg, ir.TYPE_U32))
	case *int64:
		*p = int64(bitsOf(arg, ir.TYPE_U64))
	case *NZCV:
		*p = NZCV(bitsOf(arg, ir.TYPE_NZCV_FLAGS))
	case *ir.A32Reg:
		*p = ir.A32Reg(bitsOf(arg, ir.TYPE_A32_REG))
	case *ir.A32ExtReg:
		*p = ir.A32ExtReg(bitsOf(arg, ir.TYPE_A32_EXT_REG))
	case *ir.A64Reg:
		*p = ir.A64Reg(bitsOf(arg, ir.TYPE_A64_REG))
	case *ir.A64Vec:
		*p = ir.A64Vec(bitsOf(arg, ir.TYPE_A64_VEC))
	case *ir.Cond:
		*p = ir.Cond(bitsOf(arg, ir.TYPE_COND))
	default:
		panic(malformed(ErrImmediate))
	}
}

func bitsOf(arg ir.Value, typ ir.Type) uint64 {
	if arg.Type() != typ {
		panic(malformed(ErrType))
	}
	return arg.Bits()
}

// argTypeOf is the IR type an operand of type T is declared with.
// Composites are only reachable through a reference, so they are
// declared opaque.
func argTypeOf[T Operand]() ir.Type {
	var x T
	switch any(x).(type) {
	case ir.A32Reg:
		return ir.TYPE_A32_REG
	case ir.A32ExtReg:
		return ir.TYPE_A32_EXT_REG
	case ir.A64Reg:
		return ir.TYPE_A64_REG
	case ir.A64Vec:
		return ir.TYPE_A64_VEC
	case ir.Cond:
		return ir.TYPE_COND
	case bool, uint8, uint16, uint32, uint64, int8, int16, int32, int64, NZCV, Vector:
		return retTypeOf[T]()
	}
	return ir.TYPE_OPAQUE
}

// retTypeOf is the IR type of a result of type T. Composites have the
// type of their numeric result.
func retTypeOf[T Operand]() ir.Type {
	var x T
	switch any(x).(type) {
	case bool:
		return ir.TYPE_U1
	case uint8, int8, ResultAndOverflow[uint8]:
		return ir.TYPE_U8
	case uint16, int16, ResultAndOverflow[uint16]:
		return ir.TYPE_U16
	case uint32, int32, ResultAndCarry, ResultAndOverflow[uint32],
		ResultAndCarryAndOverflow, ResultAndGE, ResultAndNZCV[uint32]:
		return ir.TYPE_U32
	case uint64, int64, ResultAndOverflow[uint64], ResultAndNZCV[uint64]:
		return ir.TYPE_U64
	case NZCV:
		return ir.TYPE_NZCV_FLAGS
	case Vector, UpperAndLower:
		return ir.TYPE_U128
	}
	return ir.TYPE_VOID
}
