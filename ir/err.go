package ir

import (
	"errors"

	"github.com/ezrec/uop/translate"
)

var f = translate.From

var (
	ErrOpcodeInvalid  = errors.New(f("opcode invalid"))
	ErrArgCount       = errors.New(f("argument count"))
	ErrArgEmpty       = errors.New(f("argument empty"))
	ErrArgType        = errors.New(f("argument type"))
	ErrArgForeign     = errors.New(f("argument refers outside of block"))
	ErrArgForward     = errors.New(f("argument refers forward"))
	ErrArgVoidProduct = errors.New(f("argument refers to a void result"))
)

// ErrVerify locates a verification failure in a block.
type ErrVerify struct {
	Index int // Instruction index.
	Arg   int // Argument number, or -1 for the instruction itself.
	Err   error
}

func (err *ErrVerify) Error() string {
	if err.Arg < 0 {
		return f("%%%d: %v", err.Index, err.Err)
	}
	return f("%%%d arg %d: %v", err.Index, err.Arg, err.Err)
}

func (err *ErrVerify) Unwrap() error {
	return err.Err
}
