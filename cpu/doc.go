// Package cpu implements the guest register file for the μop interpreter.
//
// The CPU holds the A32 and A64 general purpose registers, the A32
// extension registers, the A64 vector registers, the condition flags and a
// return stack buffer. Its methods match the guest state opcodes of the IR,
// and ConditionPassed evaluates condition codes for conditional selects.
package cpu
