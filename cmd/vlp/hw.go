// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"io"
	"os"

	"github.com/warthog618/vlp"
	"github.com/warthog618/vlp/delay"
	"github.com/warthog618/vlp/display"
	"github.com/warthog618/vlp/display/hd44780"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/spi"
	"github.com/warthog618/vlp/spi/ad7705"
	"go.bug.st/serial"
)

// board is the meter hardware on the Pi header.
type board struct {
	hw      vlp.Hardware
	adc     *ad7705.AD7705
	outputs []*gpio.Pin
	closers []io.Closer
}

// openBoard maps the GPIO pins and builds the meter hardware on them.
// If lcd is false the display is not driven, even if configured.
func openBoard(s settings, lcd bool) (*board, error) {
	err := gpio.Open()
	if err != nil {
		return nil, err
	}
	b := &board{}
	d, err := delay.New(delay.NewClockTimer(delay.SystemClock{}, s.Fosc), s.Fosc)
	if err != nil {
		gpio.Close()
		return nil, err
	}
	sclk := b.high(s.Pins.Sclk)
	mosi := b.high(s.Pins.Mosi)
	miso := gpio.NewPin(s.Pins.Miso)
	miso.Input()
	button := gpio.NewPin(s.Pins.Button)
	button.Input()
	button.PullUp()
	bus := spi.New(d, 1, sclk, mosi, miso).WithChipSelect(b.high(s.Pins.CS))
	b.adc = ad7705.New(bus)
	b.hw = vlp.Hardware{
		ADC:    b.adc,
		Button: button,
		Buzzer: b.high(s.Pins.Buzzer),
		Delay:  d,
	}
	if !lcd {
		return b, nil
	}
	b.hw.Display, err = b.openDisplay(s, d)
	if err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// high makes pin an output driven high.
func (b *board) high(pin int) *gpio.Pin {
	p := gpio.NewPin(pin)
	p.High()
	return b.output(p)
}

// low makes pin an output driven low.
func (b *board) low(pin int) *gpio.Pin {
	p := gpio.NewPin(pin)
	p.Low()
	return b.output(p)
}

// output switches p to an output after its level has been set, and records
// it for Close.
func (b *board) output(p *gpio.Pin) *gpio.Pin {
	p.Output()
	b.outputs = append(b.outputs, p)
	return p
}

func (b *board) openDisplay(s settings, d *delay.Delay) (display.Display, error) {
	if s.Display.Type != displayLCD {
		disp, c, err := openTextDisplay(s)
		if c != nil {
			b.closers = append(b.closers, c)
		}
		return disp, err
	}
	// either select line low enables the LCD
	b.low(s.LCD.Dis1)
	b.high(s.LCD.Dis2)
	b.low(s.LCD.RW)
	var data [8]gpio.Writer
	for i, o := range s.LCD.Data {
		data[i] = b.low(o)
	}
	lcd := hd44780.New(d, data, b.low(s.LCD.RS), b.low(s.LCD.EN))
	lcd.Init()
	return lcd, nil
}

// Close reverts the outputs to inputs and releases the GPIO.
func (b *board) Close() {
	for _, c := range b.closers {
		c.Close()
	}
	for _, p := range b.outputs {
		logger.Debugw("release", "pin", p.Pin(), "level", p.Shadow())
		p.Input()
	}
	gpio.Close()
}

// openTextDisplay opens a text display on stdout or a serial port.
// The returned closer is nil unless a port was opened.
func openTextDisplay(s settings) (display.Display, io.Closer, error) {
	if s.Display.Type != displaySerial {
		return display.NewWriter(os.Stdout), nil, nil
	}
	port, err := serial.Open(s.Display.Port, &serial.Mode{BaudRate: s.Display.Baud})
	if err != nil {
		return nil, nil, err
	}
	return display.NewWriter(port), port, nil
}
