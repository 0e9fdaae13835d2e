package emulator

import (
	"github.com/ezrec/uop/translate"
)

var f = translate.From

// ErrRuntime locates a failed run in the listing. Index is the failing
// instruction, or -1 when the failure is not tied to one.
type ErrRuntime struct {
	LineNo int
	Index  int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.Index < 0 {
		return f("run: %v", err.Err)
	}
	return f("line %d (%%%d) %v", err.LineNo, err.Index, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
