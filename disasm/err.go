package disasm

import (
	"github.com/ezrec/dis86/isa"
	"github.com/ezrec/dis86/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a decode error.
type ErrRuntime struct {
	Offset int      // Byte offset of the word in the stream.
	Code   isa.Code // Word that failed to decode.
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("offset %#04x word %04x %v", err.Offset, uint16(err.Code), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
