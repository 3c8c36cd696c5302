// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package disasm drives an instruction word source through the decoder
// and writes the decoded report.
package disasm

import (
	"fmt"
	stdio "io"
	"iter"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/ezrec/dis86/io"
	"github.com/ezrec/dis86/isa"
)

const WORD_SIZE = 2 // Bytes per instruction word.

// Disassembler state. Word source + report outputs.
type Disassembler struct {
	Verbose bool         // If set, enables verbose logging.
	Source  io.Channel   // Instruction word source.
	Output  stdio.Writer // Report output.
	Listing stdio.Writer // If set, receives an assembler listing.

	count int
	next  func() (uint16, bool)
	stop  func()
}

// NewDisassembler creates a new disassembler reading from source and
// reporting to output.
func NewDisassembler(source io.Channel, output stdio.Writer) (dis *Disassembler) {
	dis = &Disassembler{
		Source: source,
		Output: output,
	}

	return
}

// Close the disassembler, releasing the word source iterator.
func (dis *Disassembler) Close() (err error) {
	if dis.stop != nil {
		dis.stop()
		dis.stop = nil
		dis.next = nil
	}

	return
}

// Reset the disassembler to the start of its source.
func (dis *Disassembler) Reset() (err error) {
	dis.Close()

	dis.Source.Rewind()
	dis.next, dis.stop = iter.Pull(dis.Source.Receive())
	dis.count = 0

	if dis.Listing != nil {
		_, err = fmt.Fprintln(dis.Listing, "bits 16")
		if err != nil {
			return
		}
	}

	if dis.Verbose {
		logrus.Debugf("disasm: reset")
	}

	return
}

// Count returns the number of words decoded since a reset.
func (dis *Disassembler) Count() int {
	return dis.count
}

// Offset returns the byte offset of the next word.
func (dis *Disassembler) Offset() int {
	return dis.count * WORD_SIZE
}

// Tick decodes a single instruction.
func (dis *Disassembler) Tick() (done bool, err error) {
	if dis.next == nil {
		err = dis.Reset()
		if err != nil {
			return
		}
	}

	word, ok := dis.next()
	if !ok {
		done = true
		err = dis.Source.Err()
		return
	}

	code := isa.Code(word)
	offset := dis.Offset()

	if dis.Verbose {
		log := logrus.WithFields(logrus.Fields{
			"offset": fmt.Sprintf("%#04x", offset),
			"word":   fmt.Sprintf("%04x", word),
		})
		if !code.IsMov() {
			log.Warnf("disasm: operation %#02x is not mov r/m, reg", code.Fields().Operation)
		}
		log.Debugf("disasm: fields %v", spew.Sdump(code.Fields()))
	}

	text, err := code.Disassemble()
	if err != nil {
		err = &ErrRuntime{Offset: offset, Code: code, Err: err}
		return
	}

	_, err = fmt.Fprintf(dis.Output, "Decoded instruction: %v\n%v\n", text, code.Binary())
	if err != nil {
		return
	}

	if dis.Listing != nil {
		_, err = fmt.Fprintln(dis.Listing, text)
		if err != nil {
			return
		}
	}

	dis.count++

	return
}

// Run decodes every instruction of the source, stopping at the first error.
func (dis *Disassembler) Run() (err error) {
	defer dis.Close()

	err = dis.Reset()
	if err != nil {
		return
	}

	for {
		var done bool
		done, err = dis.Tick()
		if err != nil || done {
			return
		}
	}
}
