// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package ad7705 provides a driver for the AD7705 16-bit delta-sigma ADC as
// wired in the meter - channel AIN1, unipolar, gain 2, unbuffered.
package ad7705

// Communications register values.
const (
	// Select AIN1+/AIN1-, next operation is a write to the clock register.
	CmdWriteClock = 0x20
	// Select AIN1+/AIN1-, next operation is a write to the setup register.
	CmdWriteSetup = 0x10
	// Select AIN1+/AIN1-, next operation is a read of the data register.
	CmdReadData = 0x38
	// Filler for reads, and 32 of these bits reset the serial interface.
	Reset = 0xff
)

// Register payloads.
const (
	// Master clock enabled, 2.4576MHz undivided, 50Hz output rate.
	ClockConfig = 0x04
	// Self-calibration, gain 2, unipolar, buffer off, FSYNC clear.
	SetupConfig = 0x4c
)

// Bus exchanges bytes with the ADC.
type Bus interface {
	// Idle returns the bus lines to their idle levels.
	Idle()
	Transfer(b byte) byte
}

// AD7705 reads conversion results from a connected AD7705.
//
// The chip select is left at the level set by the bus, never framed per
// transfer.
// There is no handshake on DRDY, each read returns the latest conversion
// the device holds.
type AD7705 struct {
	t Bus
}

// New creates an AD7705.
// The device must be initialised with Init before it is read.
func New(t Bus) *AD7705 {
	return &AD7705{t: t}
}

// Init idles the bus, resets the serial interface and configures the device
// to convert continuously.
func (adc *AD7705) Init() {
	adc.t.Idle()
	for i := 0; i < 4; i++ {
		adc.t.Transfer(Reset)
	}
	adc.t.Transfer(CmdWriteClock)
	adc.t.Transfer(ClockConfig)
	adc.t.Transfer(CmdWriteSetup)
	adc.t.Transfer(SetupConfig)
}

// Read returns the latest conversion result.
func (adc *AD7705) Read() uint16 {
	adc.t.Transfer(CmdReadData)
	d := uint16(adc.t.Transfer(Reset)) << 8 // MSB first
	d |= uint16(adc.t.Transfer(Reset))
	return d
}
