// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package gpio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/vlp/gpio"
)

type latch struct {
	l gpio.Level
}

func (l *latch) Read() gpio.Level {
	return l.l
}

func (l *latch) Write(v gpio.Level) {
	l.l = v
}

func TestLevel(t *testing.T) {
	assert.Equal(t, gpio.Level(true), gpio.High)
	assert.Equal(t, gpio.Level(false), gpio.Low)
	assert.Equal(t, gpio.High, !gpio.Low)
}

func TestLineCapabilities(t *testing.T) {
	var l latch
	var w gpio.Writer = &l
	var r gpio.Reader = &l
	w.Write(gpio.High)
	assert.Equal(t, gpio.High, r.Read())
	w.Write(gpio.Low)
	assert.Equal(t, gpio.Low, r.Read())
}
