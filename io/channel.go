// Package io provides the instruction word sources for dis86.
// It includes a streaming source (Tape) that decodes words as they are
// read, and a batch source (Rom) that validates the whole image first.
package io

import (
	"iter"
)

// Channel defines the interface for all instruction word sources.
// Words are yielded in stream order.
type Channel interface {
	// Rewind resets the channel to its initial state, if possible.
	Rewind()
	// Receive returns an iterator that yields 16-bit words from the channel.
	Receive() iter.Seq[uint16]
	// Err returns the error, if any, that ended the last Receive early.
	Err() error
}
