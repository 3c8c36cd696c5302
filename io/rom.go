package io

import (
	"io"
	"iter"

	"github.com/ezrec/dis86/isa"
)

// Rom is a fully loaded instruction image.
type Rom struct {
	Data []uint16
}

var _ Channel = (*Rom)(nil)

// LoadRom reads an entire image. The image must be a whole number of
// words; nothing is returned otherwise.
func LoadRom(input io.Reader) (rom *Rom, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	if len(data)%2 != 0 {
		err = &ErrRomLength{Size: len(data)}
		return
	}

	rom = &Rom{Data: make([]uint16, 0, len(data)/2)}
	for n := 0; n < len(data); n += 2 {
		rom.Data = append(rom.Data, uint16(isa.CodeFromBytes(data[n], data[n+1])))
	}

	return
}

// Rewind is a no-op; every Receive starts from the first word.
func (rc *Rom) Rewind() {
}

// Err always returns nil.
func (rc *Rom) Err() error {
	return nil
}

// Receive returns an iterator that yields each word of the image.
func (rc *Rom) Receive() iter.Seq[uint16] {
	return func(yield func(value uint16) bool) {
		for _, data := range rc.Data {
			if !yield(data) {
				return
			}
		}
	}
}
