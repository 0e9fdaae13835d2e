// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package interp

import (
	"fmt"
	"log"

	"github.com/ezrec/uop/ir"
)

// Conditions evaluates condition codes against the guest flags.
type Conditions interface {
	ConditionPassed(cond ir.Cond) bool
}

// Interpreter executes IR blocks. It holds no per-run state, so one
// Interpreter may run independent blocks concurrently.
type Interpreter struct {
	Verbose bool       // If set, logs every executed instruction.
	Cond    Conditions // Condition evaluator for the conditional selects.

	table [ir.OP_MAX]Binding
}

// NewInterpreter creates an interpreter with every core opcode bound.
// Guest state opcodes are left for the caller to Bind.
func NewInterpreter(cond Conditions) (interp *Interpreter) {
	interp = &Interpreter{Cond: cond}

	for op, binding := range interp.core() {
		interp.Bind(op, binding)
	}

	return
}

// Bind sets the handler for op, replacing any previous one. A binding
// whose signature differs from the opcode table panics.
func (interp *Interpreter) Bind(op ir.Opcode, binding Binding) {
	if !op.Valid() || !binding.matches(op) {
		panic(fmt.Errorf("%v: %w", op, ErrSignature))
	}

	interp.table[op] = binding
}

// Bound returns true if op has a handler.
func (interp *Interpreter) Bound(op ir.Opcode) bool {
	return op.Valid() && interp.table[op].Handler != nil
}

// Execute runs one instruction. Violations panic with *ErrMalformed.
func (interp *Interpreter) Execute(ctx *Context, inst *ir.Inst) {
	op := inst.Opcode()
	if !interp.Bound(op) {
		err := ErrUnbound
		if !op.Valid() {
			err = ErrOpcode
		}
		panic(&ErrMalformed{Index: inst.Index(), Opcode: op, Err: err})
	}
	if inst.NumArgs() != op.NumArgs() {
		panic(&ErrMalformed{Index: inst.Index(), Opcode: op, Err: ir.ErrArgCount})
	}

	interp.table[op].Handler(ctx, inst)

	if interp.Verbose {
		if v, ok := ctx.Lookup(inst.Index()); ok {
			log.Printf("interp: %v ; %v", inst, v)
		} else {
			log.Printf("interp: %v", inst)
		}
	}
}

// Run executes every instruction of block, in order, in a new Context.
// A malformed block stops execution and is returned as *ErrMalformed.
func (interp *Interpreter) Run(block *ir.Block) (ctx *Context, err error) {
	ctx = NewContext(block.Len())

	var current *ir.Inst
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		em, ok := r.(*ErrMalformed)
		if !ok {
			panic(r)
		}
		if em.Index < 0 && current != nil {
			em.Index = current.Index()
			em.Opcode = current.Opcode()
		}
		err = em
	}()

	for _, inst := range block.Insts() {
		current = inst
		interp.Execute(ctx, inst)
	}

	return
}

// core returns the bindings of every opcode the interpreter implements
// itself.
func (interp *Interpreter) core() map[ir.Opcode]Binding {
	return map[ir.Opcode]Binding{
		ir.OP_VOID:       Raw(interp.execVoid, ir.TYPE_VOID),
		ir.OP_IDENTITY:   Raw(interp.execIdentity, ir.TYPE_OPAQUE, ir.TYPE_OPAQUE),
		ir.OP_BREAKPOINT: Raw(interp.execBreakpoint, ir.TYPE_VOID),

		ir.OP_PUSH_RSB: Void1(PushRSB),

		ir.OP_GET_CARRY_FROM_OP:      Raw(interp.execGetCarryFromOp, ir.TYPE_U1, ir.TYPE_OPAQUE),
		ir.OP_GET_OVERFLOW_FROM_OP:   Raw(interp.execGetOverflowFromOp, ir.TYPE_U1, ir.TYPE_OPAQUE),
		ir.OP_GET_GE_FROM_OP:         Op1(GetGEFromOp),
		ir.OP_GET_NZCV_FROM_OP:       Raw(interp.execGetNZCVFromOp, ir.TYPE_NZCV_FLAGS, ir.TYPE_OPAQUE),
		ir.OP_GET_UPPER_FROM_OP:      Op1(GetUpperFromOp),
		ir.OP_GET_LOWER_FROM_OP:      Op1(GetLowerFromOp),
		ir.OP_NZCV_FROM_PACKED_FLAGS: Op1(NZCVFromPackedFlags),

		ir.OP_PACK_2X32_TO_1X64:         Op2(Pack2x32To1x64),
		ir.OP_PACK_2X64_TO_1X128:        Op2(Pack2x64To1x128),
		ir.OP_LEAST_SIGNIFICANT_WORD:    Op1(LeastSignificantWord),
		ir.OP_MOST_SIGNIFICANT_WORD:     Op1(MostSignificantWord),
		ir.OP_LEAST_SIGNIFICANT_HALF:    Op1(LeastSignificantHalf),
		ir.OP_LEAST_SIGNIFICANT_BYTE:    Op1(LeastSignificantByte),
		ir.OP_MOST_SIGNIFICANT_BIT:      Op1(MostSignificantBit),
		ir.OP_IS_ZERO_32:                Op1(IsZero32),
		ir.OP_IS_ZERO_64:                Op1(IsZero64),
		ir.OP_TEST_BIT:                  Op2(TestBit),
		ir.OP_CONDITIONAL_SELECT_32:     Op3(interp.ConditionalSelect32),
		ir.OP_CONDITIONAL_SELECT_64:     Op3(interp.ConditionalSelect64),
		ir.OP_CONDITIONAL_SELECT_NZCV:   Op3(interp.ConditionalSelectNZCV),
		ir.OP_LOGICAL_SHIFT_LEFT_32:     Op3(LogicalShiftLeft32),
		ir.OP_LOGICAL_SHIFT_LEFT_64:     Op2(LogicalShiftLeft64),
		ir.OP_LOGICAL_SHIFT_RIGHT_32:    Op3(LogicalShiftRight32),
		ir.OP_LOGICAL_SHIFT_RIGHT_64:    Op2(LogicalShiftRight64),
		ir.OP_ARITHMETIC_SHIFT_RIGHT_32: Op3(ArithmeticShiftRight32),
		ir.OP_ARITHMETIC_SHIFT_RIGHT_64: Op2(ArithmeticShiftRight64),
		ir.OP_ROTATE_RIGHT_32:           Op3(RotateRight32),
		ir.OP_ROTATE_RIGHT_64:           Op2(RotateRight64),
		ir.OP_ROTATE_RIGHT_EXTENDED:     Op2(RotateRightExtended),
		ir.OP_ADD_32:                    Op3(Add32),
		ir.OP_ADD_64:                    Op3(Add64),
		ir.OP_SUB_32:                    Op3(Sub32),
		ir.OP_SUB_64:                    Op3(Sub64),
		ir.OP_ADD_WITH_CARRY_32:         Op3(AddWithCarry32),
		ir.OP_SUB_WITH_CARRY_32:         Op3(SubWithCarry32),
		ir.OP_MUL_32:                    Op2(Mul32),
		ir.OP_MUL_64:                    Op2(Mul64),
		ir.OP_SIGNED_MULTIPLY_HIGH_64:   Op2(SignedMultiplyHigh64),
		ir.OP_UNSIGNED_MULTIPLY_HIGH_64: Op2(UnsignedMultiplyHigh64),
		ir.OP_UNSIGNED_DIV_32:           Op2(UnsignedDiv32),
		ir.OP_UNSIGNED_DIV_64:           Op2(UnsignedDiv64),
		ir.OP_SIGNED_DIV_32:             Op2(SignedDiv32),
		ir.OP_SIGNED_DIV_64:             Op2(SignedDiv64),
		ir.OP_AND_32:                    Op2(And32),
		ir.OP_AND_64:                    Op2(And64),
		ir.OP_EOR_32:                    Op2(Eor32),
		ir.OP_EOR_64:                    Op2(Eor64),
		ir.OP_OR_32:                     Op2(Or32),
		ir.OP_OR_64:                     Op2(Or64),
		ir.OP_NOT_32:                    Op1(Not32),
		ir.OP_NOT_64:                    Op1(Not64),
		ir.OP_SIGN_EXTEND_BYTE_TO_WORD:  Op1(SignExtendByteToWord),
		ir.OP_SIGN_EXTEND_HALF_TO_WORD:  Op1(SignExtendHalfToWord),
		ir.OP_SIGN_EXTEND_BYTE_TO_LONG:  Op1(SignExtendByteToLong),
		ir.OP_SIGN_EXTEND_HALF_TO_LONG:  Op1(SignExtendHalfToLong),
		ir.OP_SIGN_EXTEND_WORD_TO_LONG:  Op1(SignExtendWordToLong),
		ir.OP_ZERO_EXTEND_BYTE_TO_WORD:  Op1(ZeroExtendByteToWord),
		ir.OP_ZERO_EXTEND_HALF_TO_WORD:  Op1(ZeroExtendHalfToWord),
		ir.OP_ZERO_EXTEND_BYTE_TO_LONG:  Op1(ZeroExtendByteToLong),
		ir.OP_ZERO_EXTEND_HALF_TO_LONG:  Op1(ZeroExtendHalfToLong),
		ir.OP_ZERO_EXTEND_WORD_TO_LONG:  Op1(ZeroExtendWordToLong),
		ir.OP_ZERO_EXTEND_LONG_TO_QUAD:  Op1(ZeroExtendLongToQuad),
		ir.OP_BYTE_REVERSE_WORD:         Op1(ByteReverseWord),
		ir.OP_BYTE_REVERSE_HALF:         Op1(ByteReverseHalf),
		ir.OP_BYTE_REVERSE_DUAL:         Op1(ByteReverseDual),
		ir.OP_COUNT_LEADING_ZEROS_32:    Op1(CountLeadingZeros32),
		ir.OP_COUNT_LEADING_ZEROS_64:    Op1(CountLeadingZeros64),
		ir.OP_EXTRACT_REGISTER_32:       Op3(ExtractRegister32),
		ir.OP_EXTRACT_REGISTER_64:       Op3(ExtractRegister64),
		ir.OP_MAX_SIGNED_32:             Op2(MaxSigned32),
		ir.OP_MAX_SIGNED_64:             Op2(MaxSigned64),
		ir.OP_MAX_UNSIGNED_32:           Op2(MaxUnsigned32),
		ir.OP_MAX_UNSIGNED_64:           Op2(MaxUnsigned64),
		ir.OP_MIN_SIGNED_32:             Op2(MinSigned32),
		ir.OP_MIN_SIGNED_64:             Op2(MinSigned64),
		ir.OP_MIN_UNSIGNED_32:           Op2(MinUnsigned32),
		ir.OP_MIN_UNSIGNED_64:           Op2(MinUnsigned64),

		ir.OP_SIGNED_SATURATED_ADD_8:    Op2(SignedSaturatedAdd8),
		ir.OP_SIGNED_SATURATED_ADD_16:   Op2(SignedSaturatedAdd16),
		ir.OP_SIGNED_SATURATED_ADD_32:   Op2(SignedSaturatedAdd32),
		ir.OP_SIGNED_SATURATED_ADD_64:   Op2(SignedSaturatedAdd64),
		ir.OP_SIGNED_SATURATED_SUB_8:    Op2(SignedSaturatedSub8),
		ir.OP_SIGNED_SATURATED_SUB_16:   Op2(SignedSaturatedSub16),
		ir.OP_SIGNED_SATURATED_SUB_32:   Op2(SignedSaturatedSub32),
		ir.OP_SIGNED_SATURATED_SUB_64:   Op2(SignedSaturatedSub64),
		ir.OP_UNSIGNED_SATURATED_ADD_8:  Op2(UnsignedSaturatedAdd8),
		ir.OP_UNSIGNED_SATURATED_ADD_16: Op2(UnsignedSaturatedAdd16),
		ir.OP_UNSIGNED_SATURATED_ADD_32: Op2(UnsignedSaturatedAdd32),
		ir.OP_UNSIGNED_SATURATED_ADD_64: Op2(UnsignedSaturatedAdd64),
		ir.OP_UNSIGNED_SATURATED_SUB_8:  Op2(UnsignedSaturatedSub8),
		ir.OP_UNSIGNED_SATURATED_SUB_16: Op2(UnsignedSaturatedSub16),
		ir.OP_UNSIGNED_SATURATED_SUB_32: Op2(UnsignedSaturatedSub32),
		ir.OP_UNSIGNED_SATURATED_SUB_64: Op2(UnsignedSaturatedSub64),

		ir.OP_PACKED_ADD_U8:  Op2(PackedAddU8),
		ir.OP_PACKED_ADD_S8:  Op2(PackedAddS8),
		ir.OP_PACKED_SUB_U8:  Op2(PackedSubU8),
		ir.OP_PACKED_SUB_S8:  Op2(PackedSubS8),
		ir.OP_PACKED_ADD_U16: Op2(PackedAddU16),
		ir.OP_PACKED_ADD_S16: Op2(PackedAddS16),
		ir.OP_PACKED_SUB_U16: Op2(PackedSubU16),
		ir.OP_PACKED_SUB_S16: Op2(PackedSubS16),

		ir.OP_ZERO_VECTOR:               Op0(ZeroVector),
		ir.OP_VECTOR_AND:                Op2(VectorAnd),
		ir.OP_VECTOR_OR:                 Op2(VectorOr),
		ir.OP_VECTOR_EOR:                Op2(VectorEor),
		ir.OP_VECTOR_NOT:                Op1(VectorNot),
		ir.OP_VECTOR_GET_ELEMENT_64:     Op2(VectorGetElement64),
		ir.OP_VECTOR_SET_ELEMENT_64:     Op3(VectorSetElement64),
		ir.OP_VECTOR_MULTIPLY_WIDEN_U32: Op2(VectorMultiplyWidenU32),
	}
}
