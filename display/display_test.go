// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package display_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/vlp/display"
)

func TestNewLine(t *testing.T) {
	l := display.NewLine()
	assert.Equal(t, "               ", l.String())
}

func TestPut(t *testing.T) {
	l := display.NewLine()
	l.Put(0, []byte(" 12.5"))
	l.Put(8, []byte(" 1.3"))
	assert.Equal(t, " 12.5    1.3   ", l.String())
	// clipped at the end of the line
	l.Put(12, []byte("abcdef"))
	assert.Equal(t, " 12.5    1.3abc", l.String())
	// ignored off the line
	l.Put(-1, []byte("x"))
	l.Put(display.Width, []byte("x"))
	assert.Equal(t, " 12.5    1.3abc", l.String())
}

func TestWriter(t *testing.T) {
	var b bytes.Buffer
	d := display.NewWriter(&b)
	assert.Nil(t, d.ShowLine("Power   Voltage", 1))
	assert.Nil(t, d.ShowLine("x", 4))
	assert.Equal(t, "1|Power   Voltage|\r\n4|x|\r\n", b.String())
	assert.Equal(t, display.ErrInvalidLine, d.ShowLine("x", 0))
	assert.Equal(t, display.ErrInvalidLine, d.ShowLine("x", 5))
}

type failWriter struct{}

var errFail = errors.New("fail")

func (failWriter) Write([]byte) (int, error) {
	return 0, errFail
}

func TestWriterError(t *testing.T) {
	d := display.NewWriter(failWriter{})
	assert.Equal(t, errFail, d.ShowLine("x", 1))
}
