package io

import (
	"errors"
	"io"
	"iter"

	"github.com/ezrec/dis86/isa"
)

// Tape provides sequential word I/O over byte streams. Words are read and
// written high byte first. A trailing partial word on input ends the
// stream without error.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	err error
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
	tc.err = nil
}

// Err returns the read error that ended the last Receive, if any.
func (tc *Tape) Err() error {
	return tc.err
}

// Receive returns an iterator that yields words from the input stream.
func (tc *Tape) Receive() iter.Seq[uint16] {
	return func(yield func(value uint16) bool) {
		tc.err = nil
		for {
			var two [2]byte
			_, err := io.ReadFull(tc.Input, two[:])
			if err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
					tc.err = err
				}
				return
			}
			if !yield(uint16(isa.CodeFromBytes(two[0], two[1]))) {
				return
			}
		}
	}
}

// Send writes a word to the output stream.
func (tc *Tape) Send(value uint16) (err error) {
	_, err = tc.Output.Write([]byte{byte(value >> 8), byte(value)})
	return
}
