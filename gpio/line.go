// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package gpio provides the digital lines used by the meter.
//
// Lines are described by the Reader and Writer capabilities so that the
// drivers built on them can run against real Raspberry Pi pins or against a
// simulated peer.
//
// On Linux, Pin provides access to the BCM2835/BCM2711 pins via /dev/gpiomem
// and supports:
//   - Pin mode/direction (input/output)
//   - Pin write (high/low)
//   - Pin read (high/low)
//   - Pull up/down/off
//
// Pins are identified by their BCM GPIO number.
//
// Example of use:
//
//	gpio.Open()
//	defer gpio.Close()
//
//	pin := gpio.NewPin(gpio.GPIO5)
//	pin.High()
//	pin.Output()
package gpio

// Level represents the high (true) or low (false) level of a line.
type Level bool

// Level of a line, High / Low
const (
	Low  Level = false
	High Level = true
)

// Reader is a line that can be sampled.
type Reader interface {
	Read() Level
}

// Writer is a line that can be driven.
type Writer interface {
	Write(Level)
}
