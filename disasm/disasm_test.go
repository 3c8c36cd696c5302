package disasm

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/dis86/io"
	"github.com/ezrec/dis86/isa"
)

func doRun(t *testing.T, source io.Channel) (output, listing string, count int) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	lst := &bytes.Buffer{}

	dis := NewDisassembler(source, out)
	dis.Listing = lst

	err := dis.Run()
	assert.NoError(err)

	return out.String(), lst.String(), dis.Count()
}

func TestDisassembler(t *testing.T) {
	assert := assert.New(t)

	tape := &io.Tape{Input: bytes.NewReader(nil)}
	dis := NewDisassembler(tape, &bytes.Buffer{})

	assert.False(dis.Verbose)
	assert.Nil(dis.Listing)
	assert.Equal(0, dis.Count())
	assert.Equal(0, dis.Offset())
}

func TestDisassembler_Single(t *testing.T) {
	assert := assert.New(t)

	tape := &io.Tape{Input: bytes.NewReader([]byte{0x89, 0xc1})}
	output, listing, count := doRun(t, tape)

	assert.Equal("Decoded instruction: mov cx, ax\n1000100111000001\n", output)
	assert.Equal("bits 16\nmov cx, ax\n", listing)
	assert.Equal(1, count)
}

func TestDisassembler_Empty(t *testing.T) {
	assert := assert.New(t)

	tape := &io.Tape{Input: bytes.NewReader(nil)}
	output, listing, count := doRun(t, tape)

	assert.Empty(output)
	assert.Equal("bits 16\n", listing)
	assert.Equal(0, count)
}

func TestDisassembler_Order(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	program := []string{
		"mov cx, bx",
		"mov ch, ah",
		"mov dx, bx",
		"mov si, bx",
		"mov bx, di",
		"mov al, cl",
		"mov ch, ch",
		"mov bx, ax",
		"mov bx, si",
		"mov sp, di",
		"mov bp, ax",
	}

	asm := &isa.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(err)

	tape := &io.Tape{Input: bytes.NewReader(prog.Binary())}
	output, listing, count := doRun(t, tape)

	assert.Equal(len(program), count)
	assert.Equal("bits 16\n"+strings.Join(program, "\n")+"\n", listing)

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Len(lines, 2*len(program))
	for n, text := range program {
		assert.Equal("Decoded instruction: "+text, lines[2*n])
		assert.Len(lines[2*n+1], 16)
	}
}

func TestDisassembler_Trailing(t *testing.T) {
	assert := assert.New(t)

	// Streaming stops cleanly at an incomplete trailing word.
	tape := &io.Tape{Input: bytes.NewReader([]byte{0x8b, 0xc1, 0x88})}
	output, _, count := doRun(t, tape)

	assert.Equal("Decoded instruction: mov ax, cx\n1000101111000001\n", output)
	assert.Equal(1, count)
}

func TestDisassembler_Batch(t *testing.T) {
	assert := assert.New(t)

	rom, err := io.LoadRom(bytes.NewReader([]byte{0x88, 0xc3}))
	assert.NoError(err)

	output, _, count := doRun(t, rom)
	assert.Equal("Decoded instruction: mov bl, al\n1000100011000011\n", output)
	assert.Equal(1, count)

	// An odd sized image fails before anything is decoded.
	rom, err = io.LoadRom(bytes.NewReader([]byte{0x88, 0xc3, 0x89}))
	assert.Error(err)
	assert.Nil(rom)
}

func TestDisassembler_Tick(t *testing.T) {
	assert := assert.New(t)

	rom := &io.Rom{Data: []uint16{0x89c1, 0x8bc1}}
	output := &bytes.Buffer{}
	dis := NewDisassembler(rom, output)
	defer dis.Close()

	done, err := dis.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(1, dis.Count())
	assert.Equal(2, dis.Offset())

	done, err = dis.Tick()
	assert.NoError(err)
	assert.False(done)
	assert.Equal(4, dis.Offset())

	done, err = dis.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, dis.Count())

	assert.Equal("Decoded instruction: mov cx, ax\n1000100111000001\n"+
		"Decoded instruction: mov ax, cx\n1000101111000001\n", output.String())

	// Reset starts over from the first word.
	assert.NoError(dis.Reset())
	assert.Equal(0, dis.Count())
	done, err = dis.Tick()
	assert.NoError(err)
	assert.False(done)
}

func TestDisassembler_SourceError(t *testing.T) {
	assert := assert.New(t)

	failure := errors.New("device gone")
	tape := &io.Tape{Input: iotest.ErrReader(failure)}
	output := &bytes.Buffer{}

	dis := NewDisassembler(tape, output)
	err := dis.Run()
	assert.ErrorIs(err, failure)
	assert.Empty(output.String())
}

type failWriter struct {
	err error
}

func (fw *failWriter) Write(data []byte) (int, error) {
	return 0, fw.err
}

func TestDisassembler_OutputError(t *testing.T) {
	assert := assert.New(t)

	failure := errors.New("disk full")
	rom := &io.Rom{Data: []uint16{0x89c1}}

	dis := NewDisassembler(rom, &failWriter{err: failure})
	assert.ErrorIs(dis.Run(), failure)
	assert.Equal(0, dis.Count())

	dis = NewDisassembler(rom, &bytes.Buffer{})
	dis.Listing = &failWriter{err: failure}
	assert.ErrorIs(dis.Run(), failure)
}

func TestDisassembler_Verbose(t *testing.T) {
	assert := assert.New(t)

	logged := &bytes.Buffer{}
	old_out := logrus.StandardLogger().Out
	old_level := logrus.GetLevel()
	logrus.SetOutput(logged)
	logrus.SetLevel(logrus.DebugLevel)
	defer func() {
		logrus.SetOutput(old_out)
		logrus.SetLevel(old_level)
	}()

	rom := &io.Rom{Data: []uint16{0x89c1, 0x00c0}}
	output := &bytes.Buffer{}
	dis := NewDisassembler(rom, output)
	dis.Verbose = true

	assert.NoError(dis.Run())
	assert.Equal(2, dis.Count())

	// Non-mov operations still decode, but are flagged.
	assert.Contains(output.String(), "Decoded instruction: mov al, al\n")
	assert.Contains(logged.String(), "is not mov r/m, reg")
	assert.Contains(logged.String(), "Operation")
	assert.Equal(1, strings.Count(logged.String(), "level=warning"))
}

func TestErrRuntime(t *testing.T) {
	assert := assert.New(t)

	err := error(&ErrRuntime{Offset: 4, Code: 0x89c1, Err: isa.ErrWidthInvalid})
	assert.ErrorIs(err, isa.ErrWidthInvalid)
	assert.Contains(err.Error(), "89c1")
}
