// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

import (
	"strings"
)

// Type is an IR value type. Types are bit flags so that an opcode
// argument may accept more than one.
type Type uint16

const (
	TYPE_VOID        = Type(0)
	TYPE_A32_REG     = Type(1 << 0)
	TYPE_A32_EXT_REG = Type(1 << 1)
	TYPE_A64_REG     = Type(1 << 2)
	TYPE_A64_VEC     = Type(1 << 3)
	TYPE_OPAQUE      = Type(1 << 4)
	TYPE_U1          = Type(1 << 5)
	TYPE_U8          = Type(1 << 6)
	TYPE_U16         = Type(1 << 7)
	TYPE_U32         = Type(1 << 8)
	TYPE_U64         = Type(1 << 9)
	TYPE_U128        = Type(1 << 10)
	TYPE_NZCV_FLAGS  = Type(1 << 11)
	TYPE_COND        = Type(1 << 12)
)

var typeNames = []struct {
	typ  Type
	name string
	sfx  string
}{
	{TYPE_A32_REG, "A32Reg", ""},
	{TYPE_A32_EXT_REG, "A32ExtReg", ""},
	{TYPE_A64_REG, "A64Reg", ""},
	{TYPE_A64_VEC, "A64Vec", ""},
	{TYPE_OPAQUE, "Opaque", ""},
	{TYPE_U1, "U1", "u1"},
	{TYPE_U8, "U8", "u8"},
	{TYPE_U16, "U16", "u16"},
	{TYPE_U32, "U32", "u32"},
	{TYPE_U64, "U64", "u64"},
	{TYPE_U128, "U128", "u128"},
	{TYPE_NZCV_FLAGS, "NZCVFlags", "nzcv"},
	{TYPE_COND, "Cond", ""},
}

// String returns the type name, with '|' between alternatives.
func (typ Type) String() string {
	if typ == TYPE_VOID {
		return "Void"
	}

	var names []string
	for _, entry := range typeNames {
		if typ&entry.typ != 0 {
			names = append(names, entry.name)
		}
	}

	return strings.Join(names, "|")
}

// Suffix returns the immediate suffix used in listings, such as "u32".
// Only integer and flag types have one.
func (typ Type) Suffix() string {
	for _, entry := range typeNames {
		if typ == entry.typ {
			return entry.sfx
		}
	}
	return ""
}

// TypeBySuffix is the inverse of Type.Suffix.
func TypeBySuffix(sfx string) (typ Type, ok bool) {
	for _, entry := range typeNames {
		if entry.sfx != "" && entry.sfx == sfx {
			return entry.typ, true
		}
	}
	return
}

// Accepts returns true if a value of type other may be passed where typ
// is declared. Opaque accepts every non-void type.
func (typ Type) Accepts(other Type) bool {
	if typ == TYPE_OPAQUE || other == TYPE_OPAQUE {
		return other != TYPE_VOID
	}
	return typ&other != 0
}

// Width returns the bit width of an integer type, or 0.
func (typ Type) Width() int {
	switch typ {
	case TYPE_U1:
		return 1
	case TYPE_U8:
		return 8
	case TYPE_U16:
		return 16
	case TYPE_U32, TYPE_NZCV_FLAGS:
		return 32
	case TYPE_U64:
		return 64
	case TYPE_U128:
		return 128
	}
	return 0
}
