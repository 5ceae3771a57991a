// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"bufio"
	"io"
	"strings"
)

// DEFAULT_ESCAPE is the byte that drops the console into its escape handler.
const DEFAULT_ESCAPE = '?'

// Console provides byte input and rune output over an io.Reader and
// io.Writer. Output is buffered, and flushed whenever the console is
// about to block on input.
//
// Reading the Escape byte calls OnEscape instead of returning the byte,
// then the read resumes. The handler may use ReadLine and Write on the
// same console.
type Console struct {
	Input  io.Reader
	Output io.Writer

	Escape   byte         // Escape byte. Zero disables escapes.
	OnEscape func() error // Escape handler.

	reader *bufio.Reader
	writer *bufio.Writer
}

var _ Channel = (*Console)(nil)

// Rewind drops any buffered input and unflushed output.
func (con *Console) Rewind() {
	con.reader = nil
	con.writer = nil
}

func (con *Console) in() (reader *bufio.Reader, err error) {
	if con.Input == nil {
		err = ErrNoInput
		return
	}

	if con.reader == nil {
		con.reader = bufio.NewReader(con.Input)
	}

	reader = con.reader
	return
}

func (con *Console) out() (writer *bufio.Writer, err error) {
	if con.Output == nil {
		err = ErrNoOutput
		return
	}

	if con.writer == nil {
		con.writer = bufio.NewWriter(con.Output)
	}

	writer = con.writer
	return
}

// ReadByte reads the next input byte, servicing escapes.
func (con *Console) ReadByte() (b byte, err error) {
	reader, err := con.in()
	if err != nil {
		return
	}

	for {
		err = con.Flush()
		if err != nil {
			return
		}

		b, err = reader.ReadByte()
		if err != nil {
			return
		}

		if con.Escape == 0 || b != con.Escape || con.OnEscape == nil {
			return
		}

		err = con.OnEscape()
		if err != nil {
			return
		}
	}
}

// ReadLine reads the rest of the current input line, without its line ending.
func (con *Console) ReadLine() (line string, err error) {
	reader, err := con.in()
	if err != nil {
		return
	}

	err = con.Flush()
	if err != nil {
		return
	}

	line, err = reader.ReadString('\n')
	if err == io.EOF && len(line) > 0 {
		err = nil
	}

	line = strings.TrimRight(line, "\r\n")
	return
}

// WriteRune buffers one rune of output.
func (con *Console) WriteRune(r rune) (n int, err error) {
	writer, err := con.out()
	if err != nil {
		return
	}

	return writer.WriteRune(r)
}

// Write buffers output bytes.
func (con *Console) Write(p []byte) (n int, err error) {
	writer, err := con.out()
	if err != nil {
		return
	}

	return writer.Write(p)
}

// Flush writes any buffered output.
func (con *Console) Flush() (err error) {
	if con.writer == nil {
		return
	}

	err = con.writer.Flush()
	return
}
