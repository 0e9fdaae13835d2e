package cpu

import (
	"errors"

	"github.com/ezrec/uop/translate"
)

var f = translate.From

var (
	// Register errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrRegisterWidth   = errors.New(f("register width mismatch"))
	ErrRegisterValue   = errors.New(f("register value out of range"))
)

// ErrRegisterName is returned by SetRegister for an unknown register name.
type ErrRegisterName string

func (err ErrRegisterName) Error() string {
	return f("register %v invalid", string(err))
}

func (err ErrRegisterName) Unwrap() error {
	return ErrRegisterInvalid
}
