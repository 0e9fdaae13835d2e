// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package ir

// Cond is an architectural condition code.
type Cond uint8

const (
	COND_EQ = Cond(0)
	COND_NE = Cond(1)
	COND_CS = Cond(2)
	COND_CC = Cond(3)
	COND_MI = Cond(4)
	COND_PL = Cond(5)
	COND_VS = Cond(6)
	COND_VC = Cond(7)
	COND_HI = Cond(8)
	COND_LS = Cond(9)
	COND_GE = Cond(10)
	COND_LT = Cond(11)
	COND_GT = Cond(12)
	COND_LE = Cond(13)
	COND_AL = Cond(14)
	COND_NV = Cond(15)
)

// Aliases accepted by ParseCond.
const (
	COND_HS = COND_CS // hs
	COND_LO = COND_CC // lo
)

var condNames = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al", "nv",
}

func (cond Cond) String() string {
	if int(cond) < len(condNames) {
		return condNames[cond]
	}
	return "cond?"
}

// Invert returns the opposite condition. AL and NV are both "always".
func (cond Cond) Invert() Cond {
	if cond >= COND_AL {
		return cond
	}
	return cond ^ 1
}

// ParseCond parses a condition name.
func ParseCond(name string) (cond Cond, ok bool) {
	switch name {
	case "hs":
		return COND_HS, true
	case "lo":
		return COND_LO, true
	}
	for n, cname := range condNames {
		if cname == name {
			return Cond(n), true
		}
	}
	return
}
