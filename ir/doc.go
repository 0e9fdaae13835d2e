// Package ir models the micro-operation intermediate representation that
// the interpreter executes.
//
// A Block is an ordered stream of Inst values. Each Inst has an Opcode and
// an ordered list of operands; an operand (Value) is either an immediate
// carrying its own Type and literal bits, or a reference to an earlier
// Inst of the same Block. Blocks allocate a dense index per instruction,
// so per-run value stores can be plain slices.
//
// The opcode table declares the result Type and argument Types of every
// Opcode; Verify checks a Block against it.
package ir
