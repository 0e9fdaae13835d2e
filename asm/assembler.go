// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/uop/ir"
)

// Macro represents a macro definition in the listing.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass macro assembler for μop blocks.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	block     *ir.Block
	name      map[string]*ir.Inst
	lines     []int
	names     []string
	expansion int
}

// Parse assembles a listing with a default Assembler.
func Parse(input io.Reader) (prog *Program, err error) {
	return (&Assembler{}).Parse(input)
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
)

// number parses a decimal, hex, octal or binary integer. Negative values
// are returned in two's complement.
func number(word string) (value uint64, err error) {
	if strings.HasPrefix(word, "-") {
		var v64 int64
		v64, err = strconv.ParseInt(word, 0, 64)
		value = uint64(v64)
	} else {
		value, err = strconv.ParseUint(word, 0, 64)
	}
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// valueOf returns the value of a simple word, checked against width bits.
func (asm *Assembler) valueOf(word string, width int) (value uint64, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	invert := false
	if word[0] == '~' {
		invert = true
		word = word[1:]
	}
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	if width == 1 {
		switch word {
		case "true":
			word = "1"
		case "false":
			word = "0"
		}
	}

	value, err = number(word)
	if err != nil {
		return
	}

	if width < 64 {
		mask := (uint64(1) << width) - 1
		if strings.HasPrefix(word, "-") {
			if int64(value) < -int64(uint64(1)<<(width-1)) {
				err = fmt.Errorf("%v: %w", word, ErrValueRange)
				return
			}
			value &= mask
		} else if value > mask {
			err = fmt.Errorf("%v: %w", word, ErrValueRange)
			return
		}
		if invert {
			value = ^value & mask
		}
	} else if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 uint64
		v64, err = asm.valueOf(str, 64)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if v64, ok := st_int.Int64(); ok {
		value = v64
		return
	}
	u64, ok := st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int64(u64)
	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		if value < 0 {
			return fmt.Sprintf("%d", value)
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(strings.Replace(line, "=", " = ", 1))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		asm.expansion++
		prefix := fmt.Sprintf("%v_%v_", name, asm.expansion)
		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", prefix)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// Parse parses an input stream into a Program holding one block.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	asm.block = ir.NewBlock()
	asm.name = map[string]*ir.Inst{}
	asm.lines = nil
	asm.names = nil
	asm.expansion = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Block: asm.block,
		Lines: asm.lines,
		Names: asm.names,
	}

	return
}

// operand parses word as an argument declared as typ.
func (asm *Assembler) operand(word string, typ ir.Type) (value ir.Value, err error) {
	if name, ok := strings.CutPrefix(word, "%"); ok {
		inst, ok := asm.name[name]
		if !ok {
			err = ErrNameMissing(word)
			return
		}
		value = ir.Ref(inst)
		return
	}

	ok := true
	switch typ {
	case ir.TYPE_A32_REG:
		var reg ir.A32Reg
		reg, ok = ir.ParseA32Reg(word)
		value = ir.ImmA32Reg(reg)
	case ir.TYPE_A32_EXT_REG:
		var reg ir.A32ExtReg
		reg, ok = ir.ParseA32ExtReg(word)
		value = ir.ImmA32ExtReg(reg)
	case ir.TYPE_A64_REG:
		var reg ir.A64Reg
		reg, ok = ir.ParseA64Reg(word)
		value = ir.ImmA64Reg(reg)
	case ir.TYPE_A64_VEC:
		var vec ir.A64Vec
		vec, ok = ir.ParseA64Vec(word)
		value = ir.ImmA64Vec(vec)
	case ir.TYPE_COND:
		var cond ir.Cond
		cond, ok = ir.ParseCond(word)
		value = ir.ImmCond(cond)
	default:
		// A "value:type" suffix selects the immediate type, which an
		// opaque argument requires.
		if idx := strings.LastIndex(word, ":"); idx > 0 {
			var sfx ir.Type
			sfx, ok = ir.TypeBySuffix(word[idx+1:])
			if ok {
				typ = sfx
				word = word[:idx]
			}
		}
		if !ok || typ == ir.TYPE_OPAQUE || typ == ir.TYPE_U128 {
			err = ErrParseValue(word)
			return
		}
		var bits uint64
		bits, err = asm.valueOf(word, typ.Width())
		if err != nil {
			return
		}
		value = ir.Imm(typ, bits)
	}

	if !ok {
		err = ErrParseValue(word)
	}

	return
}

// parseWords evaluates the words in a line of listing text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	// %name = Opcode args...
	var name string
	if strings.HasPrefix(words[0], "%") {
		if len(words) < 2 || words[1] != "=" || len(words[0]) == 1 {
			err = ErrAssignSyntax
			return
		}
		name = words[0][1:]
		if _, ok := asm.name[name]; ok {
			err = fmt.Errorf("%v: %w", words[0], ErrNameDuplicate)
			return
		}
		words = words[2:]
		if len(words) == 0 {
			err = ErrOpcodeMissing
			return
		}
	}

	op, ok := ir.OpcodeByName(words[0])
	if !ok {
		err = ErrOpcodeInvalid(words[0])
		return
	}

	if name != "" && op.Type() == ir.TYPE_VOID {
		err = ErrAssignVoid
		return
	}

	args := words[1:]
	if len(args) < op.NumArgs() {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > op.NumArgs() {
		err = ErrOpcodeExtraArgs
		return
	}

	values := make([]ir.Value, len(args))
	for n, word := range args {
		values[n], err = asm.operand(word, op.ArgType(n))
		if err != nil {
			return
		}
	}

	inst := asm.block.Append(op, values...)
	asm.lines = append(asm.lines, lineno)
	asm.names = append(asm.names, name)
	if name != "" {
		asm.name[name] = inst
	}

	if asm.Verbose {
		log.Printf("asm: %v", inst)
	}

	return
}
