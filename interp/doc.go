// Package interp is the reference interpreter for the micro-operation IR.
//
// An Interpreter owns a handler table indexed by ir.Opcode. Each handler
// is built from a typed adapter (Op0..Op3, Void0..Void2, Raw) that
// records its operand and result ir.Types, so operand resolution is a
// fixed-arity lookup rather than signature inspection.
//
// Results are stored in a Context: a dense, write-once array of Values
// indexed by instruction index. A Value is a tagged union of scalars,
// 128-bit vectors, and composite results that carry flags alongside the
// numeric result.
//
// A malformed instruction stream is never a recoverable condition inside
// the package. Such violations panic with *ErrMalformed, and only
// Interpreter.Run converts that panic into a returned error.
package interp
