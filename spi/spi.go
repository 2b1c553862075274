// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spi provides a bit bashed SPI master built on digital lines.
package spi

import (
	"sync"

	"github.com/warthog618/vlp/gpio"
)

// Delayer blocks for whole milliseconds.
type Delayer interface {
	Ms(ms uint)
}

// SPI represents a device connected via an SPI bus using 3 lines.
//
// The bus runs in mode 3 (CPOL=1, CPHA=1) - the clock idles high, Mosi is
// driven while the clock is low and Miso is sampled after the rising edge.
// The optional chip select, Ssz, is only driven by Idle. Transfers do not
// frame it, if the device needs framing the caller does that.
type SPI struct {
	Mu sync.Mutex
	// time after the rising edge before Miso is sampled, in ms.
	Tclk uint
	Sclk gpio.Writer
	Ssz  gpio.Writer
	Mosi gpio.Writer
	Miso gpio.Reader
	d    Delayer
}

// New creates a SPI and idles the clock high.
func New(d Delayer, tclk uint, sclk, mosi gpio.Writer, miso gpio.Reader) *SPI {
	s := &SPI{
		Tclk: tclk,
		Sclk: sclk,
		Mosi: mosi,
		Miso: miso,
		d:    d,
	}
	s.Idle()
	return s
}

// WithChipSelect sets the Ssz line and idles the bus.
func (s *SPI) WithChipSelect(ssz gpio.Writer) *SPI {
	s.Ssz = ssz
	s.Idle()
	return s
}

// Idle drives the chip select, if any, and the clock high.
func (s *SPI) Idle() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if s.Ssz != nil {
		s.Ssz.Write(gpio.High)
	}
	s.Sclk.Write(gpio.High)
}

// Transfer exchanges a byte with the device, MSB first, and returns the byte
// clocked in on Miso.
func (s *SPI) Transfer(b byte) byte {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	sh := NewShifter(b)
	for !sh.Done() {
		s.Sclk.Write(gpio.Low)
		s.Mosi.Write(sh.Out())
		s.Sclk.Write(gpio.High) // device latches Mosi on the rising edge
		s.d.Ms(s.Tclk)
		sh.In(s.Miso.Read())
	}
	return sh.Byte()
}

// Write transfers each byte in turn, discarding the bytes read.
func (s *SPI) Write(bb ...byte) {
	for _, b := range bb {
		s.Transfer(b)
	}
}
