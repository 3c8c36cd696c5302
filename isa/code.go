// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
)

const (
	OP_MOV_RM_REG = 0b1000_1000 // Operation field of the mov r/m, reg family.

	DIRECTION_REG_DST = 0b0000_0010 // Direction field value when reg is the destination.

	MODE_REGISTER = 0b11 // Register-direct addressing.
)

// Code is a single 16-bit instruction word.
type Code uint16

// Fields are the bit-fields of an instruction word. Operation, Direction
// and Width are taken from the high byte and shifted into the low byte's
// frame; Reg keeps its bit positions so it can be used as a RegisterKey.
type Fields struct {
	Operation uint8       // Top six bits, in place within the high byte.
	Direction uint8       // 0 or DIRECTION_REG_DST.
	Width     Width       // W bit.
	Mode      uint8       // MOD field, 0..3.
	Reg       RegisterKey // reg field, bits 3-5 unshifted.
	RM        RegisterKey // r/m field, bits 0-2.
}

// Operands are the resolved source and destination register names.
type Operands struct {
	Src string
	Dst string
}

// CodeFromBytes assembles a word from two consecutive stream bytes; the
// first byte read is the high byte.
func CodeFromBytes(hi, lo byte) Code {
	return Code(uint16(lo) | (uint16(hi) << 8))
}

// MakeCodeMov creates a register-direct mov instruction.
func MakeCodeMov(width Width, direction bool, reg, rm uint8) Code {
	word := uint16(OP_MOV_RM_REG) << 8
	if direction {
		word |= uint16(DIRECTION_REG_DST) << 8
	}
	word |= (uint16(width) & 1) << 8
	word |= MODE_REGISTER << 6
	word |= (uint16(reg) & 0x7) << 3
	word |= (uint16(rm) & 0x7) << 0

	return Code(word)
}

// Fields extracts the bit-fields of the instruction.
func (code Code) Fields() (fields Fields) {
	word := uint16(code)
	fields.Operation = uint8((word & 0b1111_1100_0000_0000) >> 8)
	fields.Direction = uint8((word & 0b0000_0010_0000_0000) >> 8)
	fields.Width = Width((word & 0b0000_0001_0000_0000) >> 8)
	fields.Mode = uint8((word & 0b0000_0000_1100_0000) >> 6)
	fields.Reg = RegisterKey(word & 0b0000_0000_0011_1000)
	fields.RM = RegisterKey(word & 0b0000_0000_0000_0111)
	return
}

// IsMov returns true if the operation field is the mov r/m, reg family.
// Other operations are decoded with the same layout regardless.
func (code Code) IsMov() bool {
	return code.Fields().Operation == OP_MOV_RM_REG
}

// Operands resolves the source and destination registers.
func (code Code) Operands() (ops Operands, err error) {
	return code.Fields().Operands()
}

// Operands resolves the source and destination registers of the fields.
func (fields Fields) Operands() (ops Operands, err error) {
	table, err := TableOf(fields.Width)
	if err != nil {
		return
	}

	val1, err := table.Name(fields.Reg)
	if err != nil {
		return
	}

	val2, err := table.Name(fields.RM)
	if err != nil {
		return
	}

	if fields.Direction == DIRECTION_REG_DST {
		ops = Operands{Src: val2, Dst: val1}
	} else {
		ops = Operands{Src: val1, Dst: val2}
	}

	return
}

// Disassemble returns the assembly language text of the instruction.
func (code Code) Disassemble() (text string, err error) {
	ops, err := code.Operands()
	if err != nil {
		return
	}

	text = fmt.Sprintf("mov %v, %v", ops.Dst, ops.Src)
	return
}

// Binary returns the word as 16 binary digits, most significant first.
func (code Code) Binary() string {
	return fmt.Sprintf("%016b", uint16(code))
}

// String returns the assembly language representation of this instruction.
func (code Code) String() string {
	text, err := code.Disassemble()
	if err != nil {
		return fmt.Sprintf("(bad) %v", err)
	}

	return text
}
