// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"iter"
	"maps"
	"slices"
)

// Width is the operand width class selected by the W bit.
type Width int

//go:generate go tool stringer -linecomment -type=Width
const (
	WIDTH_BYTE = Width(0) // byte
	WIDTH_WORD = Width(1) // word
)

// RegisterKey is a raw register selector field value, either the reg field
// in its shifted form (0x00, 0x08 .. 0x38) or the r/m field (0x00 .. 0x07).
type RegisterKey uint8

// RegisterTable maps register selector keys to register names for one
// operand width. Tables are read-only.
type RegisterTable struct {
	width Width
	names map[RegisterKey]string
}

// WordRegisters is the register table for 16-bit operands.
var WordRegisters = RegisterTable{
	width: WIDTH_WORD,
	names: map[RegisterKey]string{
		0b00_000_000: "ax",
		0b00_001_000: "cx",
		0b00_010_000: "dx",
		0b00_011_000: "bx",
		0b00_100_000: "sp",
		0b00_101_000: "bp",
		0b00_110_000: "si",
		0b00_111_000: "di",
		0b00_000_001: "cx",
		0b00_000_010: "dx",
		0b00_000_011: "bx",
		0b00_000_100: "sp",
		0b00_000_101: "bp",
		0b00_000_110: "si",
		0b00_000_111: "di",
	},
}

// ByteRegisters is the register table for 8-bit operands.
var ByteRegisters = RegisterTable{
	width: WIDTH_BYTE,
	names: map[RegisterKey]string{
		0b00_000_000: "al",
		0b00_001_000: "cl",
		0b00_010_000: "dl",
		0b00_011_000: "bl",
		0b00_100_000: "ah",
		0b00_101_000: "ch",
		0b00_110_000: "dh",
		0b00_111_000: "bh",
		0b00_000_001: "cl",
		0b00_000_010: "dl",
		0b00_000_011: "bl",
		0b00_000_100: "ah",
		0b00_000_101: "ch",
		0b00_000_110: "dh",
		0b00_000_111: "bh",
	},
}

// TableOf returns the register table for a width.
func TableOf(width Width) (table RegisterTable, err error) {
	switch width {
	case WIDTH_WORD:
		table = WordRegisters
	case WIDTH_BYTE:
		table = ByteRegisters
	default:
		err = ErrWidthInvalid
	}

	return
}

// Width returns the operand width served by the table.
func (table RegisterTable) Width() Width {
	return table.width
}

// Name returns the register name for a selector key.
func (table RegisterTable) Name(key RegisterKey) (name string, err error) {
	name, ok := table.names[key]
	if !ok {
		err = &ErrRegisterKey{Width: table.width, Key: key}
	}

	return
}

// Keys iterates over all defined keys and their names, in ascending key order.
func (table RegisterTable) Keys() iter.Seq2[RegisterKey, string] {
	return func(yield func(key RegisterKey, name string) bool) {
		for _, key := range slices.Sorted(maps.Keys(table.names)) {
			if !yield(key, table.names[key]) {
				return
			}
		}
	}
}

// Lookup finds a register name by its architectural name, returning the
// width and the 3-bit selector value.
func Lookup(name string) (width Width, selector uint8, ok bool) {
	for _, table := range []RegisterTable{WordRegisters, ByteRegisters} {
		for key, reg := range table.Keys() {
			if reg == name && key&0b111 == 0 {
				return table.width, uint8(key >> 3), true
			}
		}
	}

	return
}
