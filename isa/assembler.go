// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"OP_MOV_RM_REG": fmt.Sprintf("%#x", OP_MOV_RM_REG),
}

var (
	reCharacter = regexp.MustCompile(`'[ -&(-~]'`)
	reParenEval = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler producing mov instruction images.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string
	Equate    map[string]string // Map of equates.
}

// Predefine defines an equate visible to every subsequent Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the 16-bit value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xffff || v64 < -0x8000 {
		err = ErrWordRange
		return
	}

	value = uint16(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		value16, _err := asm.valueOf(str)
		if _err != nil {
			// Registers and other non-integer equates are not visible.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0xffff || st_int64 < -0x8000 {
		err = ErrWordRange
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine expands a source line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations, printable ASCII only
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		return fmt.Sprintf("%v", word[1])
	})

	// Do $() evaluations
	line = reParenEval.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

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
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentOffset gets the word offset of the next opcode.
func (asm *Assembler) currentOffset() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Offset + len(last.Codes)
}

// parseMov encodes 'mov DST, SRC'.
func (asm *Assembler) parseMov(args []string) (codes []Code, err error) {
	if len(args) < 2 {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > 2 {
		err = ErrOpcodeExtraArgs
		return
	}

	dst_width, dst, ok := Lookup(strings.ToLower(args[0]))
	if !ok {
		err = ErrRegisterInvalid
		return
	}
	src_width, src, ok := Lookup(strings.ToLower(args[1]))
	if !ok {
		err = ErrRegisterInvalid
		return
	}
	if src_width != dst_width {
		err = ErrOperandWidth
		return
	}

	codes = []Code{MakeCodeMov(dst_width, false, src, dst)}
	return
}

// parseWords converts a line's words into opcodes.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	var codes []Code

	switch strings.ToLower(words[0]) {
	case "bits":
		if len(words) != 2 || words[1] != "16" {
			err = ErrOpcodeInvalid
		}
		return
	case ".word":
		if len(words) == 1 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, Code(value))
		}
	case "mov":
		codes, err = asm.parseMov(words[1:])
		if err != nil {
			return
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	op := Opcode{
		LineNo: lineno,
		Offset: asm.currentOffset(),
		Words:  words,
		Codes:  codes,
	}

	if asm.Verbose {
		logrus.WithFields(logrus.Fields{
			"line":   lineno,
			"offset": op.Offset,
		}).Debugf("asm: %v => %v", strings.Join(words, " "), codes)
	}

	asm.Opcode = append(asm.Opcode, op)

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
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

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
