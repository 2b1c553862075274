// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package display provides the character display used by the meter.
package display

import (
	"errors"
	"fmt"
	"io"
)

const (
	// Width is the number of visible characters in a Line.
	Width = 15
	// Lines is the number of lines on the display.
	Lines = 4
)

// Display shows fixed width lines of text.
type Display interface {
	// ShowLine writes text to line n, numbered from 1.
	ShowLine(text string, n int) error
}

// Line is a line of text under construction.
type Line [Width]byte

// NewLine returns a blank Line.
func NewLine() Line {
	var l Line
	for i := range l {
		l[i] = ' '
	}
	return l
}

// Put copies b into the line starting at col.
// Text beyond the end of the line is dropped.
func (l *Line) Put(col int, b []byte) {
	if col < 0 || col >= Width {
		return
	}
	copy(l[col:], b)
}

// String returns the text of the line.
func (l Line) String() string {
	return string(l[:])
}

// Writer shows lines as text records on an io.Writer, such as a terminal or
// a serial port.
type Writer struct {
	w io.Writer
}

var _ Display = (*Writer)(nil)

// NewWriter creates a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// ShowLine writes the line as "n|text|".
func (d *Writer) ShowLine(text string, n int) error {
	if n < 1 || n > Lines {
		return ErrInvalidLine
	}
	_, err := fmt.Fprintf(d.w, "%d|%s|\r\n", n, text)
	return err
}

// ErrInvalidLine indicates the line number is not on the display.
var ErrInvalidLine = errors.New("invalid line")
