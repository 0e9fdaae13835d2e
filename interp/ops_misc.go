package interp

import (
	"github.com/ezrec/uop/ir"
)

func (interp *Interpreter) execVoid(ctx *Context, inst *ir.Inst) {
}

// execIdentity copies a producer's Value verbatim, or builds a Value
// from an integer immediate.
func (interp *Interpreter) execIdentity(ctx *Context, inst *ir.Inst) {
	arg := inst.Arg(0)

	if !arg.IsImmediate() {
		ctx.Define(inst.Index(), ctx.Value(arg.Inst().Index()))
		return
	}

	var v Value
	switch arg.Type() {
	case ir.TYPE_U1:
		v = Of(arg.Bits() != 0)
	case ir.TYPE_U8:
		v = Of(uint8(arg.Bits()))
	case ir.TYPE_U16:
		v = Of(uint16(arg.Bits()))
	case ir.TYPE_U32:
		v = Of(uint32(arg.Bits()))
	case ir.TYPE_U64:
		v = Of(arg.Bits())
	default:
		panic(malformed(ErrImmediate))
	}

	ctx.Define(inst.Index(), v)
}

func (interp *Interpreter) execBreakpoint(ctx *Context, inst *ir.Inst) {
	panic(malformed(ErrBreakpoint))
}

// producer returns the stored Value of the instruction operand n
// refers to.
func producer(ctx *Context, inst *ir.Inst, n int) Value {
	arg := inst.Arg(n)
	if arg.IsImmediate() {
		panic(malformed(ErrImmediate))
	}
	return ctx.Value(arg.Inst().Index())
}

func (interp *Interpreter) execGetCarryFromOp(ctx *Context, inst *ir.Inst) {
	ctx.Define(inst.Index(), Of(producer(ctx, inst, 0).Carry()))
}

func (interp *Interpreter) execGetOverflowFromOp(ctx *Context, inst *ir.Inst) {
	ctx.Define(inst.Index(), Of(producer(ctx, inst, 0).Overflow()))
}

// execGetNZCVFromOp accepts NZCV results of either width.
func (interp *Interpreter) execGetNZCVFromOp(ctx *Context, inst *ir.Inst) {
	ctx.Define(inst.Index(), Of(producer(ctx, inst, 0).NZCV()))
}

// PushRSB is a return stack hint. The core interpreter ignores it; an
// emulator binds its own handler to track return addresses.
func PushRSB(uint64) {
}

// GetGEFromOp returns the GE flags of a packed add or subtract.
func GetGEFromOp(v ResultAndGE) uint32 {
	return v.GE
}

// GetUpperFromOp returns the upper vector of a widening result.
func GetUpperFromOp(v UpperAndLower) Vector {
	return v.Upper
}

// GetLowerFromOp returns the lower vector of a widening result.
func GetLowerFromOp(v UpperAndLower) Vector {
	return v.Lower
}

// NZCVFromPackedFlags reinterprets a packed flags word, unchanged.
func NZCVFromPackedFlags(flags uint32) NZCV {
	return NZCV(flags)
}

func (interp *Interpreter) conditionPassed(cond ir.Cond) bool {
	if interp.Cond == nil {
		panic(malformed(ErrNoCondition))
	}
	return interp.Cond.ConditionPassed(cond)
}

// ConditionalSelect32 returns then if cond passes on the guest flags,
// otherwise otherwise.
func (interp *Interpreter) ConditionalSelect32(cond ir.Cond, then, otherwise uint32) uint32 {
	if interp.conditionPassed(cond) {
		return then
	}
	return otherwise
}

// ConditionalSelect64 is ConditionalSelect32 for longs.
func (interp *Interpreter) ConditionalSelect64(cond ir.Cond, then, otherwise uint64) uint64 {
	if interp.conditionPassed(cond) {
		return then
	}
	return otherwise
}

// ConditionalSelectNZCV selects between two flag sets.
func (interp *Interpreter) ConditionalSelectNZCV(cond ir.Cond, then, otherwise NZCV) NZCV {
	if interp.conditionPassed(cond) {
		return then
	}
	return otherwise
}
