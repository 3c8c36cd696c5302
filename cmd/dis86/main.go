// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/dis86/disasm"
	"github.com/ezrec/dis86/io"
	"github.com/ezrec/dis86/isa"
)

func main() {
	var compile string
	var input string
	var output string
	var listing string
	var batch bool
	var verbose bool
	var defines [][2]string

	flag.StringVar(&compile, "c", "", ".asm file to assemble into a binary image")
	flag.StringVar(&input, "i", "-", "Binary instruction image")
	flag.StringVar(&output, "o", "-", "Report output, or binary image output with -c")
	flag.StringVar(&listing, "l", "", "Listing .asm file to write")
	flag.BoolVar(&batch, "b", false, "Batch mode, validate the image length before decoding")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an assembler equate, NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return isa.ErrEquateSyntax
		}
		defines = append(defines, [2]string{name, value})
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		logrus.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ouf := os.Stdout
	if output != "-" {
		var err error
		ouf, err = os.Create(output)
		if err != nil {
			logrus.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
	}

	// Assemble a new instruction image.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			logrus.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &isa.Assembler{Verbose: verbose}
		for _, define := range defines {
			asm.Predefine(define[0], define[1])
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			logrus.Fatalf("%v: %v", compile, err)
		}

		tape := &io.Tape{Output: ouf}
		for offset, code := range prog.Codes() {
			if verbose {
				logrus.WithField("line", prog.LineNo(offset)).Debugf("%04x: %v", uint16(code), code)
			}
			err = tape.Send(uint16(code))
			if err != nil {
				logrus.Fatalf("%v: %v", output, err)
			}
		}
		return
	}

	inf := os.Stdin
	if input != "-" {
		var err error
		inf, err = os.Open(input)
		if err != nil {
			logrus.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
	}

	var source io.Channel
	if batch {
		rom, err := io.LoadRom(inf)
		if err != nil {
			logrus.Fatalf("%v: %v", input, err)
		}
		source = rom
	} else {
		source = &io.Tape{Input: inf}
	}

	dis := disasm.NewDisassembler(source, ouf)
	dis.Verbose = verbose

	if len(listing) != 0 {
		lsf, err := os.Create(listing)
		if err != nil {
			logrus.Fatalf("%v: %v", listing, err)
		}
		defer lsf.Close()
		dis.Listing = lsf
	}

	err := dis.Run()
	if err != nil {
		logrus.Fatalf("%v: %v", input, err)
	}
}
