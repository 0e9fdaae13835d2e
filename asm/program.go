package asm

import (
	"github.com/ezrec/uop/ir"
)

// Program is an assembled block with its source mapping.
type Program struct {
	Block *ir.Block
	Lines []int    // Source line of each instruction.
	Names []string // Assigned name of each instruction, or "".
}

// LineNo returns the source line of instruction index, or 0 if unknown.
func (prog *Program) LineNo(index int) int {
	if index < 0 || index >= len(prog.Lines) {
		return 0
	}
	return prog.Lines[index]
}

// Name returns the assigned name of instruction index, or "%index" when
// it was not named.
func (prog *Program) Name(index int) string {
	if index >= 0 && index < len(prog.Names) && prog.Names[index] != "" {
		return "%" + prog.Names[index]
	}
	return ir.Ref(prog.Block.Inst(index)).String()
}
