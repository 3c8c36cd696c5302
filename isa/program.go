package isa

import (
	"iter"
)

// Opcode represents a line of assembled source with its generated words.
type Opcode struct {
	LineNo int
	Offset int
	Words  []string
	Codes  []Code
}

// Program is an assembled instruction image.
type Program struct {
	Opcodes []Opcode
}

// Codes iterates over every word in the program by word offset.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(offset int, code Code) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Offset+n, code) {
					return
				}
			}
		}
	}
}

// Binary returns the program image, each word high byte first.
func (prog *Program) Binary() (bin []byte) {
	for _, code := range prog.Codes() {
		bin = append(bin, byte(code>>8), byte(code))
	}

	return
}

// LineNo returns the source line number that produced the word at offset,
// or 0 if there is none.
func (prog *Program) LineNo(offset int) int {
	for _, op := range prog.Opcodes {
		if offset >= op.Offset && offset < op.Offset+len(op.Codes) {
			return op.LineNo
		}
	}

	return 0
}
