// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package hd44780 provides a driver for HD44780 compatible character LCDs
// connected via an 8-bit parallel bus in write only mode.
package hd44780

import (
	"github.com/warthog618/vlp/display"
	"github.com/warthog618/vlp/gpio"
)

// Commands
const (
	Clear = 0x01
	// display on, cursor off, blink off
	DisplayOn = 0x0c
	// 8-bit interface, 2 lines, 5x7 font
	FunctionSet = 0x38
	// set DDRAM address, or'd with the address
	SetAddress = 0x80
)

// DDRAM address of the start of each line of a 16x4 module.
var lineAddr = [display.Lines]byte{0x00, 0x40, 0x10, 0x50}

// Delayer blocks for whole milliseconds.
type Delayer interface {
	Ms(ms uint)
}

// HD44780 is a character LCD.
//
// The RW line is assumed held low.
type HD44780 struct {
	data [8]gpio.Writer
	rs   gpio.Writer
	en   gpio.Writer
	d    Delayer
}

var _ display.Display = (*HD44780)(nil)

// New creates a HD44780 on the data lines D0-D7, RS and E.
func New(d Delayer, data [8]gpio.Writer, rs, en gpio.Writer) *HD44780 {
	lcd := &HD44780{data: data, rs: rs, en: en, d: d}
	lcd.en.Write(gpio.Low)
	return lcd
}

// Init sets the interface mode, turns the display on and clears it.
func (lcd *HD44780) Init() {
	lcd.Command(FunctionSet)
	lcd.Command(DisplayOn)
	lcd.Command(Clear)
}

// Command writes a byte to the instruction register.
func (lcd *HD44780) Command(c byte) {
	lcd.write(c, gpio.Low)
}

// Data writes a byte to the data register, at the current address.
func (lcd *HD44780) Data(c byte) {
	lcd.write(c, gpio.High)
}

// ShowLine writes text starting at the beginning of line n.
func (lcd *HD44780) ShowLine(text string, n int) error {
	if n < 1 || n > display.Lines {
		return display.ErrInvalidLine
	}
	lcd.Command(SetAddress | lineAddr[n-1])
	for i := 0; i < len(text); i++ {
		lcd.Data(text[i])
	}
	return nil
}

// write latches a byte on the falling edge of E.
func (lcd *HD44780) write(c byte, rs gpio.Level) {
	for i, l := range lcd.data {
		l.Write(gpio.Level(c>>uint(i)&0x01 == 0x01))
	}
	lcd.rs.Write(rs)
	lcd.en.Write(gpio.High)
	lcd.d.Ms(1)
	lcd.en.Write(gpio.Low)
}
