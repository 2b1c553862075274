// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/warthog618/vlp/gpio"
)

// AD7705 register selects, RS2-RS0 of the communications register.
const (
	regComm  = 0
	regSetup = 1
	regClock = 2
	regData  = 3
	regNone  = -1
)

// Power on values of the setup and clock registers.
const (
	setupReset = 0x01 // FSYNC set, conversions held
	clockReset = 0x05
	fsync      = 0x01
)

// AD7705 simulates the serial interface of an AD7705 delta-sigma ADC.
//
// The device is driven in SPI mode 3 - it shifts DOUT on the falling edge of
// SCLK and latches DIN on the rising edge, MSB first.
// Only the communications, setup, clock and data registers are modelled.
// The data register returns the value of the source once the setup register
// has been written with FSYNC clear.
type AD7705 struct {
	source func() uint16
	sclk   gpio.Level
	din    gpio.Level
	dout   gpio.Level
	// shift in
	rx     byte
	rxBits int
	// shift out
	tx     uint16
	txBits int
	// consecutive ones on DIN, 32 resets the interface.
	ones    int
	pending int
	setup   byte
	clock   byte
	resets  int
	reads   int
	rxLog   []byte
}

// NewAD7705 creates a simulated AD7705 with the clock idle high.
func NewAD7705() *AD7705 {
	a := &AD7705{sclk: gpio.High, dout: gpio.High}
	a.reset()
	return a
}

// Set sets a constant conversion result.
func (a *AD7705) Set(v uint16) {
	a.source = func() uint16 { return v }
}

// SetSource sets a function that provides each conversion result.
func (a *AD7705) SetSource(f func() uint16) {
	a.source = f
}

// SCLK returns the serial clock input.
func (a *AD7705) SCLK() gpio.Writer {
	return writerFunc(a.clockEdge)
}

// DIN returns the serial data input.
func (a *AD7705) DIN() gpio.Writer {
	return writerFunc(func(l gpio.Level) { a.din = l })
}

// DOUT returns the serial data output.
func (a *AD7705) DOUT() gpio.Reader {
	return readerFunc(func() gpio.Level { return a.dout })
}

// Setup returns the contents of the setup register.
func (a *AD7705) Setup() byte {
	return a.setup
}

// Clock returns the contents of the clock register.
func (a *AD7705) Clock() byte {
	return a.clock
}

// Resets returns the number of interface resets, including power on.
func (a *AD7705) Resets() int {
	return a.resets
}

// Reads returns the number of data register reads.
func (a *AD7705) Reads() int {
	return a.reads
}

// Received returns every complete byte shifted into the device.
func (a *AD7705) Received() []byte {
	return a.rxLog
}

// Converting returns true if the device has been set up and is converting.
func (a *AD7705) Converting() bool {
	return a.setup&fsync == 0
}

func (a *AD7705) reset() {
	a.setup = setupReset
	a.clock = clockReset
	a.pending = regNone
	a.txBits = 0
	a.rx = 0
	a.rxBits = 0
	a.ones = 0
	a.resets++
}

func (a *AD7705) clockEdge(l gpio.Level) {
	prev := a.sclk
	a.sclk = l
	switch {
	case prev == gpio.High && l == gpio.Low:
		a.shiftOut()
	case prev == gpio.Low && l == gpio.High:
		a.shiftIn()
	}
}

func (a *AD7705) shiftOut() {
	if a.txBits == 0 {
		a.dout = gpio.High
		return
	}
	a.txBits--
	a.dout = gpio.Level((a.tx>>uint(a.txBits))&0x01 == 0x01)
}

func (a *AD7705) shiftIn() {
	a.rx <<= 1
	if a.din == gpio.High {
		a.rx |= 0x01
		a.ones++
	} else {
		a.ones = 0
	}
	a.rxBits++
	if a.rxBits < 8 {
		return
	}
	b := a.rx
	a.rx = 0
	a.rxBits = 0
	a.rxLog = append(a.rxLog, b)
	if a.ones >= 32 {
		a.reset()
		return
	}
	a.handle(b)
}

func (a *AD7705) handle(b byte) {
	switch a.pending {
	case regSetup:
		a.setup = b
		a.pending = regNone
		return
	case regClock:
		a.clock = b
		a.pending = regNone
		return
	}
	// DIN is ignored while a register is being read out.
	if a.txBits != 0 {
		return
	}
	// a write to the communications register requires DRDY/ clear.
	if b&0x80 != 0 {
		return
	}
	rs := int(b>>4) & 0x07
	read := b&0x08 != 0
	if !read {
		if rs == regSetup || rs == regClock {
			a.pending = rs
		}
		return
	}
	switch rs {
	case regSetup:
		a.tx, a.txBits = uint16(a.setup), 8
	case regClock:
		a.tx, a.txBits = uint16(a.clock), 8
	case regData:
		a.reads++
		a.tx, a.txBits = a.conversion(), 16
	}
}

func (a *AD7705) conversion() uint16 {
	if !a.Converting() || a.source == nil {
		return 0
	}
	return a.source()
}
