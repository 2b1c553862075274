// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/sim"
	"github.com/warthog618/vlp/spi"
)

type countDelay struct {
	calls []uint
}

func (d *countDelay) Ms(ms uint) {
	d.calls = append(d.calls, ms)
}

func levels(b byte) []gpio.Level {
	ll := make([]gpio.Level, 8)
	for i := range ll {
		ll[i] = gpio.Level(b&(0x80>>uint(i)) != 0)
	}
	return ll
}

func TestNewIdlesClockHigh(t *testing.T) {
	sclk := sim.NewLine(gpio.Low)
	spi.New(&countDelay{}, 1, sclk, sim.NewLine(gpio.Low), sim.NewLine(gpio.Low))
	assert.Equal(t, gpio.High, sclk.Level())
}

func TestChipSelect(t *testing.T) {
	sclk := sim.NewLine(gpio.Low)
	ssz := sim.NewLine(gpio.Low)
	s := spi.New(&countDelay{}, 1, sclk, sim.NewLine(gpio.Low), sim.NewLine(gpio.Low)).
		WithChipSelect(ssz)
	assert.Equal(t, gpio.High, ssz.Level())
	assert.Equal(t, gpio.High, sclk.Level())

	// not framed by transfers
	s.Transfer(0xa5)
	assert.Equal(t, []gpio.Level{gpio.High}, ssz.Writes())

	ssz.Set(gpio.Low)
	sclk.Set(gpio.Low)
	s.Idle()
	assert.Equal(t, gpio.High, ssz.Level())
	assert.Equal(t, gpio.High, sclk.Level())
}

func TestIdleWithoutChipSelect(t *testing.T) {
	sclk := sim.NewLine(gpio.High)
	s := spi.New(&countDelay{}, 1, sclk, sim.NewLine(gpio.Low), sim.NewLine(gpio.Low))
	sclk.Set(gpio.Low)
	assert.NotPanics(t, s.Idle)
	assert.Equal(t, gpio.High, sclk.Level())
}

func TestTransferLoopback(t *testing.T) {
	patterns := []byte{0x00, 0xff, 0xa5, 0x5a, 0x01, 0x80, 0x38}
	for _, p := range patterns {
		d := &countDelay{}
		sclk := sim.NewLine(gpio.High)
		data := sim.NewLine(gpio.Low)
		s := spi.New(d, 1, sclk, data, data)
		assert.Equal(t, p, s.Transfer(p), "0x%02x", p)
		assert.Equal(t, levels(p), data.Writes(), "0x%02x", p)
		assert.Equal(t, []uint{1, 1, 1, 1, 1, 1, 1, 1}, d.calls)
	}
}

func TestTransferClock(t *testing.T) {
	sclk := sim.NewLine(gpio.High)
	s := spi.New(&countDelay{}, 1, sclk, sim.NewLine(gpio.Low), sim.NewLine(gpio.Low))
	s.Transfer(0x00)
	ww := sclk.Writes()
	// initial idle, then a low/high pulse per bit
	assert.Len(t, ww, 17)
	for i := 1; i < len(ww); i += 2 {
		assert.Equal(t, gpio.Low, ww[i])
		assert.Equal(t, gpio.High, ww[i+1])
	}
	assert.Equal(t, gpio.High, sclk.Level())
}

func TestTransferSamplesAfterRisingEdge(t *testing.T) {
	sclk := sim.NewLine(gpio.High)
	miso := sim.NewLine(gpio.Low)
	// the peer only drives high while the clock is high
	miso.OnRead = func() { miso.Set(sclk.Level()) }
	s := spi.New(&countDelay{}, 1, sclk, sim.NewLine(gpio.Low), miso)
	assert.Equal(t, byte(0xff), s.Transfer(0x00))
}

func TestTransferDevice(t *testing.T) {
	adc := sim.NewAD7705()
	s := spi.New(&countDelay{}, 1, adc.SCLK(), adc.DIN(), adc.DOUT())
	// read clock register
	s.Transfer(0x28)
	assert.Equal(t, byte(0x05), s.Transfer(0xff))
	s.Write(0x20, 0x04)
	s.Transfer(0x28)
	assert.Equal(t, byte(0x04), s.Transfer(0xff))
	assert.Equal(t, []byte{0x28, 0xff, 0x20, 0x04, 0x28, 0xff}, adc.Received())
}

func TestShifter(t *testing.T) {
	sh := spi.NewShifter(0xc3)
	out := []gpio.Level{}
	in := levels(0x96)
	for i := 0; !sh.Done(); i++ {
		assert.Equal(t, 7-i, sh.Pos())
		out = append(out, sh.Out())
		sh.In(in[i])
	}
	assert.Equal(t, levels(0xc3), out)
	assert.Equal(t, byte(0x96), sh.Byte())
	assert.Equal(t, -1, sh.Pos())
	// further samples are ignored once done
	sh.In(gpio.High)
	assert.Equal(t, byte(0x96), sh.Byte())
	assert.Equal(t, gpio.High, sh.Out())
}
