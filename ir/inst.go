// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"fmt"
	"strings"
)

// Inst is one micro-operation. Its identity is its pointer, and its
// dense index within the Block that allocated it.
type Inst struct {
	index int
	op    Opcode
	args  []Value
}

// Index returns the dense index allocated by the owning Block.
func (inst *Inst) Index() int {
	return inst.index
}

// Opcode returns the operation.
func (inst *Inst) Opcode() Opcode {
	return inst.op
}

// NumArgs returns the operand count.
func (inst *Inst) NumArgs() int {
	return len(inst.args)
}

// Arg returns operand n.
func (inst *Inst) Arg(n int) Value {
	return inst.args[n]
}

// Type returns the result type. An Identity has the type of its operand.
func (inst *Inst) Type() Type {
	if inst.op == OP_IDENTITY && len(inst.args) == 1 {
		return inst.args[0].Type()
	}
	return inst.op.Type()
}

// String formats the instruction as a listing line.
func (inst *Inst) String() string {
	words := make([]string, 0, len(inst.args)+1)
	words = append(words, inst.op.String())
	for _, arg := range inst.args {
		words = append(words, arg.String())
	}

	text := strings.Join(words, " ")
	if inst.op.Type() == TYPE_VOID {
		return text
	}

	return fmt.Sprintf("%%%d = %s", inst.index, text)
}
