// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package metis

import (
	"bufio"
	"io"
)

// Transport exchanges raw lines with the instrument. ReadUntil returns
// the bytes up to and excluding delim. Deadlines, if any, belong to the
// transport.
type Transport interface {
	Write(p []byte) (int, error)
	ReadUntil(delim byte) ([]byte, error)
}

// LineTransport adapts a byte stream (serial port, socket) to Transport
type LineTransport struct {
	w io.Writer
	r *bufio.Reader
}

// NewLineTransport wraps rw. The transport buffers reads, so rw must not
// be read from elsewhere afterwards.
func NewLineTransport(rw io.ReadWriter) *LineTransport {
	return &LineTransport{w: rw, r: bufio.NewReader(rw)}
}

// Write sends p unchanged
func (t *LineTransport) Write(p []byte) (int, error) {
	return t.w.Write(p)
}

// ReadUntil reads one line terminated by delim. A stream that ends
// before delim yields the partial line and the stream's error.
func (t *LineTransport) ReadUntil(delim byte) ([]byte, error) {
	line, err := t.r.ReadBytes(delim)
	if err != nil {
		return line, err
	}
	return line[:len(line)-1], nil
}
