package isa

import (
	"errors"

	"github.com/ezrec/dis86/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrWidthInvalid = errors.New(f("width invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrOperandWidth       = errors.New(f("operand width mismatch"))
	ErrWordRange          = errors.New(f("word out of range"))
)

// ErrRegisterKey is returned when a register selector has no entry in the
// register table for its width. It means the field extraction and the
// table key space have diverged.
type ErrRegisterKey struct {
	Width Width
	Key   RegisterKey
}

func (err *ErrRegisterKey) Error() string {
	return f("register key 0x%02x unknown for %v width", uint8(err.Key), err.Width.String())
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
