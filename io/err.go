package io

import (
	"strconv"

	"github.com/ezrec/dis86/translate"
)

var f = translate.From

// ErrRomLength is returned when an image is not a whole number of words.
type ErrRomLength struct {
	Size int
}

func (err *ErrRomLength) Error() string {
	return f("image size %v is not a multiple of 2 bytes", strconv.Itoa(err.Size))
}
