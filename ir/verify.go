// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"errors"
)

// Verify checks that every instruction in the block matches the opcode
// table, and that every reference is to an earlier instruction of the
// same block. All failures are joined into the returned error.
func Verify(b *Block) (err error) {
	var errs []error

	for index, inst := range b.Insts() {
		errs = append(errs, b.verifyInst(index, inst)...)
	}

	err = errors.Join(errs...)
	return
}

func (b *Block) verifyInst(index int, inst *Inst) (errs []error) {
	fail := func(arg int, err error) {
		errs = append(errs, &ErrVerify{Index: index, Arg: arg, Err: err})
	}

	op := inst.Opcode()
	if !op.Valid() {
		fail(-1, ErrOpcodeInvalid)
		return
	}

	if inst.NumArgs() != op.NumArgs() {
		fail(-1, ErrArgCount)
		return
	}

	for n := range inst.NumArgs() {
		arg := inst.Arg(n)
		if arg.IsEmpty() {
			fail(n, ErrArgEmpty)
			continue
		}

		if ref := arg.Inst(); ref != nil {
			switch {
			case ref.Index() >= b.Len() || b.Inst(ref.Index()) != ref:
				fail(n, ErrArgForeign)
				continue
			case ref.Index() >= index:
				fail(n, ErrArgForward)
				continue
			case ref.Type() == TYPE_VOID:
				fail(n, ErrArgVoidProduct)
				continue
			}
		}

		if !op.ArgType(n).Accepts(arg.Type()) {
			fail(n, ErrArgType)
		}
	}

	return
}
