// Package asm implements the listing assembler for μop blocks.
//
// A listing holds one block, one instruction per line:
//
//	; comment
//	.equ STEP 0x10
//	%a   = A32GetRegister r1
//	%sum = Add32 %a STEP 0
//	       A32SetRegister r0 %sum
//
// Operands are parsed according to the argument types the opcode declares.
// The assembler supports equates, macros, character constants and
// compile-time $(expr) evaluation. The listing produced by ir.Block.String
// assembles back into an equivalent block.
package asm
