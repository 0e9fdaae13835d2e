// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"fmt"
)

// Opcode is a micro-operation.
type Opcode uint16

const (
	OP_VOID Opcode = iota
	OP_IDENTITY
	OP_BREAKPOINT

	// Hints
	OP_PUSH_RSB

	// A32 guest state
	OP_A32_GET_REGISTER
	OP_A32_SET_REGISTER
	OP_A32_GET_EXTENDED_REGISTER_32
	OP_A32_SET_EXTENDED_REGISTER_32
	OP_A32_GET_EXTENDED_REGISTER_64
	OP_A32_SET_EXTENDED_REGISTER_64
	OP_A32_GET_C_FLAG
	OP_A32_SET_NZCV
	OP_A32_GET_NZCV_RAW
	OP_A32_SET_NZCV_RAW
	OP_A32_SET_GE_FLAGS
	OP_A32_OR_Q_FLAG

	// A64 guest state
	OP_A64_GET_X
	OP_A64_SET_X
	OP_A64_GET_W
	OP_A64_SET_W
	OP_A64_GET_Q
	OP_A64_SET_Q
	OP_A64_GET_C_FLAG
	OP_A64_SET_NZCV

	// Pseudo-operations
	OP_GET_CARRY_FROM_OP
	OP_GET_OVERFLOW_FROM_OP
	OP_GET_GE_FROM_OP
	OP_GET_NZCV_FROM_OP
	OP_GET_UPPER_FROM_OP
	OP_GET_LOWER_FROM_OP
	OP_NZCV_FROM_PACKED_FLAGS

	// Data processing
	OP_PACK_2X32_TO_1X64
	OP_PACK_2X64_TO_1X128
	OP_LEAST_SIGNIFICANT_WORD
	OP_MOST_SIGNIFICANT_WORD
	OP_LEAST_SIGNIFICANT_HALF
	OP_LEAST_SIGNIFICANT_BYTE
	OP_MOST_SIGNIFICANT_BIT
	OP_IS_ZERO_32
	OP_IS_ZERO_64
	OP_TEST_BIT
	OP_CONDITIONAL_SELECT_32
	OP_CONDITIONAL_SELECT_64
	OP_CONDITIONAL_SELECT_NZCV
	OP_LOGICAL_SHIFT_LEFT_32
	OP_LOGICAL_SHIFT_LEFT_64
	OP_LOGICAL_SHIFT_RIGHT_32
	OP_LOGICAL_SHIFT_RIGHT_64
	OP_ARITHMETIC_SHIFT_RIGHT_32
	OP_ARITHMETIC_SHIFT_RIGHT_64
	OP_ROTATE_RIGHT_32
	OP_ROTATE_RIGHT_64
	OP_ROTATE_RIGHT_EXTENDED
	OP_ADD_32
	OP_ADD_64
	OP_SUB_32
	OP_SUB_64
	OP_ADD_WITH_CARRY_32
	OP_SUB_WITH_CARRY_32
	OP_MUL_32
	OP_MUL_64
	OP_SIGNED_MULTIPLY_HIGH_64
	OP_UNSIGNED_MULTIPLY_HIGH_64
	OP_UNSIGNED_DIV_32
	OP_UNSIGNED_DIV_64
	OP_SIGNED_DIV_32
	OP_SIGNED_DIV_64
	OP_AND_32
	OP_AND_64
	OP_EOR_32
	OP_EOR_64
	OP_OR_32
	OP_OR_64
	OP_NOT_32
	OP_NOT_64
	OP_SIGN_EXTEND_BYTE_TO_WORD
	OP_SIGN_EXTEND_HALF_TO_WORD
	OP_SIGN_EXTEND_BYTE_TO_LONG
	OP_SIGN_EXTEND_HALF_TO_LONG
	OP_SIGN_EXTEND_WORD_TO_LONG
	OP_ZERO_EXTEND_BYTE_TO_WORD
	OP_ZERO_EXTEND_HALF_TO_WORD
	OP_ZERO_EXTEND_BYTE_TO_LONG
	OP_ZERO_EXTEND_HALF_TO_LONG
	OP_ZERO_EXTEND_WORD_TO_LONG
	OP_ZERO_EXTEND_LONG_TO_QUAD
	OP_BYTE_REVERSE_WORD
	OP_BYTE_REVERSE_HALF
	OP_BYTE_REVERSE_DUAL
	OP_COUNT_LEADING_ZEROS_32
	OP_COUNT_LEADING_ZEROS_64
	OP_EXTRACT_REGISTER_32
	OP_EXTRACT_REGISTER_64
	OP_MAX_SIGNED_32
	OP_MAX_SIGNED_64
	OP_MAX_UNSIGNED_32
	OP_MAX_UNSIGNED_64
	OP_MIN_SIGNED_32
	OP_MIN_SIGNED_64
	OP_MIN_UNSIGNED_32
	OP_MIN_UNSIGNED_64

	// Saturating arithmetic
	OP_SIGNED_SATURATED_ADD_8
	OP_SIGNED_SATURATED_ADD_16
	OP_SIGNED_SATURATED_ADD_32
	OP_SIGNED_SATURATED_ADD_64
	OP_SIGNED_SATURATED_SUB_8
	OP_SIGNED_SATURATED_SUB_16
	OP_SIGNED_SATURATED_SUB_32
	OP_SIGNED_SATURATED_SUB_64
	OP_UNSIGNED_SATURATED_ADD_8
	OP_UNSIGNED_SATURATED_ADD_16
	OP_UNSIGNED_SATURATED_ADD_32
	OP_UNSIGNED_SATURATED_ADD_64
	OP_UNSIGNED_SATURATED_SUB_8
	OP_UNSIGNED_SATURATED_SUB_16
	OP_UNSIGNED_SATURATED_SUB_32
	OP_UNSIGNED_SATURATED_SUB_64

	// Packed (SIMD within a register) arithmetic
	OP_PACKED_ADD_U8
	OP_PACKED_ADD_S8
	OP_PACKED_SUB_U8
	OP_PACKED_SUB_S8
	OP_PACKED_ADD_U16
	OP_PACKED_ADD_S16
	OP_PACKED_SUB_U16
	OP_PACKED_SUB_S16

	// Vector
	OP_ZERO_VECTOR
	OP_VECTOR_AND
	OP_VECTOR_OR
	OP_VECTOR_EOR
	OP_VECTOR_NOT
	OP_VECTOR_GET_ELEMENT_64
	OP_VECTOR_SET_ELEMENT_64
	OP_VECTOR_MULTIPLY_WIDEN_U32

	_OP_MAX
)

// OP_MAX is the number of opcodes.
const OP_MAX = int(_OP_MAX)

type opinfoEntry struct {
	name string
	ret  Type
	args []Type
}

// Shorthands for the table below.
const (
	tV    = TYPE_VOID
	tOpq  = TYPE_OPAQUE
	tU1   = TYPE_U1
	tU8   = TYPE_U8
	tU16  = TYPE_U16
	tU32  = TYPE_U32
	tU64  = TYPE_U64
	tU128 = TYPE_U128
	tNZCV = TYPE_NZCV_FLAGS
	tCond = TYPE_COND
)

func args(types ...Type) []Type {
	return types
}

var opinfo = [_OP_MAX]opinfoEntry{
	OP_VOID:       {"Void", tV, nil},
	OP_IDENTITY:   {"Identity", tOpq, args(tOpq)},
	OP_BREAKPOINT: {"Breakpoint", tV, nil},

	OP_PUSH_RSB: {"PushRSB", tV, args(tU64)},

	OP_A32_GET_REGISTER:             {"A32GetRegister", tU32, args(TYPE_A32_REG)},
	OP_A32_SET_REGISTER:             {"A32SetRegister", tV, args(TYPE_A32_REG, tU32)},
	OP_A32_GET_EXTENDED_REGISTER_32: {"A32GetExtendedRegister32", tU32, args(TYPE_A32_EXT_REG)},
	OP_A32_SET_EXTENDED_REGISTER_32: {"A32SetExtendedRegister32", tV, args(TYPE_A32_EXT_REG, tU32)},
	OP_A32_GET_EXTENDED_REGISTER_64: {"A32GetExtendedRegister64", tU64, args(TYPE_A32_EXT_REG)},
	OP_A32_SET_EXTENDED_REGISTER_64: {"A32SetExtendedRegister64", tV, args(TYPE_A32_EXT_REG, tU64)},
	OP_A32_GET_C_FLAG:               {"A32GetCFlag", tU1, nil},
	OP_A32_SET_NZCV:                 {"A32SetNZCV", tV, args(tNZCV)},
	OP_A32_GET_NZCV_RAW:             {"A32GetNZCVRaw", tU32, nil},
	OP_A32_SET_NZCV_RAW:             {"A32SetNZCVRaw", tV, args(tU32)},
	OP_A32_SET_GE_FLAGS:             {"A32SetGEFlags", tV, args(tU32)},
	OP_A32_OR_Q_FLAG:                {"A32OrQFlag", tV, args(tU1)},

	OP_A64_GET_X:      {"A64GetX", tU64, args(TYPE_A64_REG)},
	OP_A64_SET_X:      {"A64SetX", tV, args(TYPE_A64_REG, tU64)},
	OP_A64_GET_W:      {"A64GetW", tU32, args(TYPE_A64_REG)},
	OP_A64_SET_W:      {"A64SetW", tV, args(TYPE_A64_REG, tU32)},
	OP_A64_GET_Q:      {"A64GetQ", tU128, args(TYPE_A64_VEC)},
	OP_A64_SET_Q:      {"A64SetQ", tV, args(TYPE_A64_VEC, tU128)},
	OP_A64_GET_C_FLAG: {"A64GetCFlag", tU1, nil},
	OP_A64_SET_NZCV:   {"A64SetNZCV", tV, args(tNZCV)},

	OP_GET_CARRY_FROM_OP:      {"GetCarryFromOp", tU1, args(tOpq)},
	OP_GET_OVERFLOW_FROM_OP:   {"GetOverflowFromOp", tU1, args(tOpq)},
	OP_GET_GE_FROM_OP:         {"GetGEFromOp", tU32, args(tOpq)},
	OP_GET_NZCV_FROM_OP:       {"GetNZCVFromOp", tNZCV, args(tOpq)},
	OP_GET_UPPER_FROM_OP:      {"GetUpperFromOp", tU128, args(tOpq)},
	OP_GET_LOWER_FROM_OP:      {"GetLowerFromOp", tU128, args(tOpq)},
	OP_NZCV_FROM_PACKED_FLAGS: {"NZCVFromPackedFlags", tNZCV, args(tU32)},

	OP_PACK_2X32_TO_1X64:         {"Pack2x32To1x64", tU64, args(tU32, tU32)},
	OP_PACK_2X64_TO_1X128:        {"Pack2x64To1x128", tU128, args(tU64, tU64)},
	OP_LEAST_SIGNIFICANT_WORD:    {"LeastSignificantWord", tU32, args(tU64)},
	OP_MOST_SIGNIFICANT_WORD:     {"MostSignificantWord", tU32, args(tU64)},
	OP_LEAST_SIGNIFICANT_HALF:    {"LeastSignificantHalf", tU16, args(tU32)},
	OP_LEAST_SIGNIFICANT_BYTE:    {"LeastSignificantByte", tU8, args(tU32)},
	OP_MOST_SIGNIFICANT_BIT:      {"MostSignificantBit", tU1, args(tU32)},
	OP_IS_ZERO_32:                {"IsZero32", tU1, args(tU32)},
	OP_IS_ZERO_64:                {"IsZero64", tU1, args(tU64)},
	OP_TEST_BIT:                  {"TestBit", tU1, args(tU64, tU8)},
	OP_CONDITIONAL_SELECT_32:     {"ConditionalSelect32", tU32, args(tCond, tU32, tU32)},
	OP_CONDITIONAL_SELECT_64:     {"ConditionalSelect64", tU64, args(tCond, tU64, tU64)},
	OP_CONDITIONAL_SELECT_NZCV:   {"ConditionalSelectNZCV", tNZCV, args(tCond, tNZCV, tNZCV)},
	OP_LOGICAL_SHIFT_LEFT_32:     {"LogicalShiftLeft32", tU32, args(tU32, tU8, tU1)},
	OP_LOGICAL_SHIFT_LEFT_64:     {"LogicalShiftLeft64", tU64, args(tU64, tU8)},
	OP_LOGICAL_SHIFT_RIGHT_32:    {"LogicalShiftRight32", tU32, args(tU32, tU8, tU1)},
	OP_LOGICAL_SHIFT_RIGHT_64:    {"LogicalShiftRight64", tU64, args(tU64, tU8)},
	OP_ARITHMETIC_SHIFT_RIGHT_32: {"ArithmeticShiftRight32", tU32, args(tU32, tU8, tU1)},
	OP_ARITHMETIC_SHIFT_RIGHT_64: {"ArithmeticShiftRight64", tU64, args(tU64, tU8)},
	OP_ROTATE_RIGHT_32:           {"RotateRight32", tU32, args(tU32, tU8, tU1)},
	OP_ROTATE_RIGHT_64:           {"RotateRight64", tU64, args(tU64, tU8)},
	OP_ROTATE_RIGHT_EXTENDED:     {"RotateRightExtended", tU32, args(tU32, tU1)},
	OP_ADD_32:                    {"Add32", tU32, args(tU32, tU32, tU1)},
	OP_ADD_64:                    {"Add64", tU64, args(tU64, tU64, tU1)},
	OP_SUB_32:                    {"Sub32", tU32, args(tU32, tU32, tU1)},
	OP_SUB_64:                    {"Sub64", tU64, args(tU64, tU64, tU1)},
	OP_ADD_WITH_CARRY_32:         {"AddWithCarry32", tU32, args(tU32, tU32, tU1)},
	OP_SUB_WITH_CARRY_32:         {"SubWithCarry32", tU32, args(tU32, tU32, tU1)},
	OP_MUL_32:                    {"Mul32", tU32, args(tU32, tU32)},
	OP_MUL_64:                    {"Mul64", tU64, args(tU64, tU64)},
	OP_SIGNED_MULTIPLY_HIGH_64:   {"SignedMultiplyHigh64", tU64, args(tU64, tU64)},
	OP_UNSIGNED_MULTIPLY_HIGH_64: {"UnsignedMultiplyHigh64", tU64, args(tU64, tU64)},
	OP_UNSIGNED_DIV_32:           {"UnsignedDiv32", tU32, args(tU32, tU32)},
	OP_UNSIGNED_DIV_64:           {"UnsignedDiv64", tU64, args(tU64, tU64)},
	OP_SIGNED_DIV_32:             {"SignedDiv32", tU32, args(tU32, tU32)},
	OP_SIGNED_DIV_64:             {"SignedDiv64", tU64, args(tU64, tU64)},
	OP_AND_32:                    {"And32", tU32, args(tU32, tU32)},
	OP_AND_64:                    {"And64", tU64, args(tU64, tU64)},
	OP_EOR_32:                    {"Eor32", tU32, args(tU32, tU32)},
	OP_EOR_64:                    {"Eor64", tU64, args(tU64, tU64)},
	OP_OR_32:                     {"Or32", tU32, args(tU32, tU32)},
	OP_OR_64:                     {"Or64", tU64, args(tU64, tU64)},
	OP_NOT_32:                    {"Not32", tU32, args(tU32)},
	OP_NOT_64:                    {"Not64", tU64, args(tU64)},
	OP_SIGN_EXTEND_BYTE_TO_WORD:  {"SignExtendByteToWord", tU32, args(tU8)},
	OP_SIGN_EXTEND_HALF_TO_WORD:  {"SignExtendHalfToWord", tU32, args(tU16)},
	OP_SIGN_EXTEND_BYTE_TO_LONG:  {"SignExtendByteToLong", tU64, args(tU8)},
	OP_SIGN_EXTEND_HALF_TO_LONG:  {"SignExtendHalfToLong", tU64, args(tU16)},
	OP_SIGN_EXTEND_WORD_TO_LONG:  {"SignExtendWordToLong", tU64, args(tU32)},
	OP_ZERO_EXTEND_BYTE_TO_WORD:  {"ZeroExtendByteToWord", tU32, args(tU8)},
	OP_ZERO_EXTEND_HALF_TO_WORD:  {"ZeroExtendHalfToWord", tU32, args(tU16)},
	OP_ZERO_EXTEND_BYTE_TO_LONG:  {"ZeroExtendByteToLong", tU64, args(tU8)},
	OP_ZERO_EXTEND_HALF_TO_LONG:  {"ZeroExtendHalfToLong", tU64, args(tU16)},
	OP_ZERO_EXTEND_WORD_TO_LONG:  {"ZeroExtendWordToLong", tU64, args(tU32)},
	OP_ZERO_EXTEND_LONG_TO_QUAD:  {"ZeroExtendLongToQuad", tU128, args(tU64)},
	OP_BYTE_REVERSE_WORD:         {"ByteReverseWord", tU32, args(tU32)},
	OP_BYTE_REVERSE_HALF:         {"ByteReverseHalf", tU16, args(tU16)},
	OP_BYTE_REVERSE_DUAL:         {"ByteReverseDual", tU64, args(tU64)},
	OP_COUNT_LEADING_ZEROS_32:    {"CountLeadingZeros32", tU32, args(tU32)},
	OP_COUNT_LEADING_ZEROS_64:    {"CountLeadingZeros64", tU64, args(tU64)},
	OP_EXTRACT_REGISTER_32:       {"ExtractRegister32", tU32, args(tU32, tU32, tU8)},
	OP_EXTRACT_REGISTER_64:       {"ExtractRegister64", tU64, args(tU64, tU64, tU8)},
	OP_MAX_SIGNED_32:             {"MaxSigned32", tU32, args(tU32, tU32)},
	OP_MAX_SIGNED_64:             {"MaxSigned64", tU64, args(tU64, tU64)},
	OP_MAX_UNSIGNED_32:           {"MaxUnsigned32", tU32, args(tU32, tU32)},
	OP_MAX_UNSIGNED_64:           {"MaxUnsigned64", tU64, args(tU64, tU64)},
	OP_MIN_SIGNED_32:             {"MinSigned32", tU32, args(tU32, tU32)},
	OP_MIN_SIGNED_64:             {"MinSigned64", tU64, args(tU64, tU64)},
	OP_MIN_UNSIGNED_32:           {"MinUnsigned32", tU32, args(tU32, tU32)},
	OP_MIN_UNSIGNED_64:           {"MinUnsigned64", tU64, args(tU64, tU64)},

	OP_SIGNED_SATURATED_ADD_8:    {"SignedSaturatedAdd8", tU8, args(tU8, tU8)},
	OP_SIGNED_SATURATED_ADD_16:   {"SignedSaturatedAdd16", tU16, args(tU16, tU16)},
	OP_SIGNED_SATURATED_ADD_32:   {"SignedSaturatedAdd32", tU32, args(tU32, tU32)},
	OP_SIGNED_SATURATED_ADD_64:   {"SignedSaturatedAdd64", tU64, args(tU64, tU64)},
	OP_SIGNED_SATURATED_SUB_8:    {"SignedSaturatedSub8", tU8, args(tU8, tU8)},
	OP_SIGNED_SATURATED_SUB_16:   {"SignedSaturatedSub16", tU16, args(tU16, tU16)},
	OP_SIGNED_SATURATED_SUB_32:   {"SignedSaturatedSub32", tU32, args(tU32, tU32)},
	OP_SIGNED_SATURATED_SUB_64:   {"SignedSaturatedSub64", tU64, args(tU64, tU64)},
	OP_UNSIGNED_SATURATED_ADD_8:  {"UnsignedSaturatedAdd8", tU8, args(tU8, tU8)},
	OP_UNSIGNED_SATURATED_ADD_16: {"UnsignedSaturatedAdd16", tU16, args(tU16, tU16)},
	OP_UNSIGNED_SATURATED_ADD_32: {"UnsignedSaturatedAdd32", tU32, args(tU32, tU32)},
	OP_UNSIGNED_SATURATED_ADD_64: {"UnsignedSaturatedAdd64", tU64, args(tU64, tU64)},
	OP_UNSIGNED_SATURATED_SUB_8:  {"UnsignedSaturatedSub8", tU8, args(tU8, tU8)},
	OP_UNSIGNED_SATURATED_SUB_16: {"UnsignedSaturatedSub16", tU16, args(tU16, tU16)},
	OP_UNSIGNED_SATURATED_SUB_32: {"UnsignedSaturatedSub32", tU32, args(tU32, tU32)},
	OP_UNSIGNED_SATURATED_SUB_64: {"UnsignedSaturatedSub64", tU64, args(tU64, tU64)},

	OP_PACKED_ADD_U8:  {"PackedAddU8", tU32, args(tU32, tU32)},
	OP_PACKED_ADD_S8:  {"PackedAddS8", tU32, args(tU32, tU32)},
	OP_PACKED_SUB_U8:  {"PackedSubU8", tU32, args(tU32, tU32)},
	OP_PACKED_SUB_S8:  {"PackedSubS8", tU32, args(tU32, tU32)},
	OP_PACKED_ADD_U16: {"PackedAddU16", tU32, args(tU32, tU32)},
	OP_PACKED_ADD_S16: {"PackedAddS16", tU32, args(tU32, tU32)},
	OP_PACKED_SUB_U16: {"PackedSubU16", tU32, args(tU32, tU32)},
	OP_PACKED_SUB_S16: {"PackedSubS16", tU32, args(tU32, tU32)},

	OP_ZERO_VECTOR:               {"ZeroVector", tU128, nil},
	OP_VECTOR_AND:                {"VectorAnd", tU128, args(tU128, tU128)},
	OP_VECTOR_OR:                 {"VectorOr", tU128, args(tU128, tU128)},
	OP_VECTOR_EOR:                {"VectorEor", tU128, args(tU128, tU128)},
	OP_VECTOR_NOT:                {"VectorNot", tU128, args(tU128)},
	OP_VECTOR_GET_ELEMENT_64:     {"VectorGetElement64", tU64, args(tU128, tU8)},
	OP_VECTOR_SET_ELEMENT_64:     {"VectorSetElement64", tU128, args(tU128, tU8, tU64)},
	OP_VECTOR_MULTIPLY_WIDEN_U32: {"VectorMultiplyWidenU32", tU128, args(tU128, tU128)},
}

var opcodeByName = map[string]Opcode{}

func init() {
	// Verify that every opcode has been added to the opinfo table.
	for n := range opinfo {
		info := &opinfo[n]
		if info.name == "" {
			panic(fmt.Sprintf("missing opinfo for opcode %d", n))
		}
		opcodeByName[info.name] = Opcode(n)
	}
}

// OpcodeByName finds an opcode by its listing name, such as "Add32".
func OpcodeByName(name string) (op Opcode, ok bool) {
	op, ok = opcodeByName[name]
	return
}

// Valid returns true if op is a defined opcode.
func (op Opcode) Valid() bool {
	return op < _OP_MAX
}

func (op Opcode) String() string {
	if !op.Valid() {
		return fmt.Sprintf("Opcode(%d)", uint16(op))
	}
	return opinfo[op].name
}

// Type returns the declared result type.
func (op Opcode) Type() Type {
	if !op.Valid() {
		return TYPE_VOID
	}
	return opinfo[op].ret
}

// NumArgs returns the declared operand count.
func (op Opcode) NumArgs() int {
	if !op.Valid() {
		return 0
	}
	return len(opinfo[op].args)
}

// ArgType returns the declared type of operand n.
func (op Opcode) ArgType(n int) Type {
	return opinfo[op].args[n]
}
