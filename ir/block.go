// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"iter"
	"slices"
	"strings"
)

// Block is a straight-line stream of instructions. It owns the dense
// index space of its instructions.
type Block struct {
	insts []*Inst
}

// NewBlock creates an empty block.
func NewBlock() *Block {
	return &Block{}
}

// Append adds a new instruction to the end of the block.
func (b *Block) Append(op Opcode, args ...Value) (inst *Inst) {
	inst = &Inst{
		index: len(b.insts),
		op:    op,
		args:  slices.Clone(args),
	}
	b.insts = append(b.insts, inst)

	return
}

// Len returns the number of instructions, which is also the size of
// the index space.
func (b *Block) Len() int {
	return len(b.insts)
}

// Inst returns the instruction at index n.
func (b *Block) Inst(n int) *Inst {
	return b.insts[n]
}

// Insts iterates the instructions in stream order.
func (b *Block) Insts() iter.Seq2[int, *Inst] {
	return func(yield func(int, *Inst) bool) {
		for n, inst := range b.insts {
			if !yield(n, inst) {
				return
			}
		}
	}
}

// String returns the block as a listing, one instruction per line.
func (b *Block) String() string {
	var text strings.Builder
	for _, inst := range b.insts {
		text.WriteString(inst.String())
		text.WriteString("\n")
	}
	return text.String()
}
