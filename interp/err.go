package interp

import (
	"errors"

	"github.com/ezrec/uop/ir"
	"github.com/ezrec/uop/translate"
)

var f = translate.From

var (
	// Value store errors
	ErrUndefined  = errors.New(f("value undefined"))
	ErrRedefined  = errors.New(f("value redefined"))
	ErrOutOfRange = errors.New(f("index out of range"))

	// Operand errors
	ErrType       = errors.New(f("type mismatch"))
	ErrImmediate  = errors.New(f("immediate not permitted"))
	ErrReference  = errors.New(f("reference not permitted"))
	ErrNoCarry    = errors.New(f("value has no carry"))
	ErrNoOverflow = errors.New(f("value has no overflow"))
	ErrNoNZCV     = errors.New(f("value has no nzcv"))

	// Dispatch errors
	ErrOpcode      = errors.New(f("opcode invalid"))
	ErrUnbound     = errors.New(f("opcode has no handler"))
	ErrBreakpoint  = errors.New(f("stray breakpoint"))
	ErrNoCondition = errors.New(f("no condition evaluator"))

	// Bind errors
	ErrSignature = errors.New(f("binding signature mismatch"))
)

// ErrMalformed is the payload of every fatal invariant violation.
// Index is -1 until the violation is attributed to an instruction.
type ErrMalformed struct {
	Index  int
	Opcode ir.Opcode
	Err    error
}

func malformed(err error) *ErrMalformed {
	return &ErrMalformed{Index: -1, Err: err}
}

func (err *ErrMalformed) Error() string {
	if err.Index < 0 {
		return f("malformed IR: %v", err.Err)
	}
	return f("%%%d %v: malformed IR: %v", err.Index, err.Opcode, err.Err)
}

func (err *ErrMalformed) Unwrap() error {
	return err.Err
}

// Fatal aborts the running block with err as a malformed IR violation.
// Bindings outside this package use it for operands they cannot serve.
func Fatal(err error) {
	panic(malformed(err))
}
