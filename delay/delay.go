// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package delay provides the blocking millisecond delay that every other
// component of the meter uses as its time reference.
//
// The delay counts overflows of a 16-bit up counter clocked at Fosc/12, the
// 12T mode of the 8051 timer the meter was designed around.
// The counter is reloaded before each millisecond so that it overflows after
// exactly Fosc/12/1000 ticks.
package delay

import (
	"errors"
	"time"
)

// DefaultFosc is the oscillator frequency of the reference board.
const DefaultFosc = 12000000

// Timer is a 16-bit counter that sets an overflow flag when it wraps.
type Timer interface {
	// Load sets the counter to v.
	Load(v uint16)
	// Start enables counting.
	Start()
	// Stop disables counting.
	Stop()
	// Overflowed returns true once the counter has wrapped since the last
	// ClearOverflow.
	Overflowed() bool
	// ClearOverflow clears the overflow flag.
	ClearOverflow()
}

// Delay blocks for whole milliseconds using a Timer.
type Delay struct {
	t      Timer
	reload uint16
}

// New creates a Delay for a timer clocked from an oscillator of fosc Hz.
func New(t Timer, fosc uint32) (*Delay, error) {
	r, err := Reload(fosc)
	if err != nil {
		return nil, err
	}
	return &Delay{t: t, reload: r}, nil
}

// Reload returns the counter value that overflows after 1ms at fosc Hz.
func Reload(fosc uint32) (uint16, error) {
	ticks := fosc / 12 / 1000
	if ticks == 0 || ticks > 0x10000 {
		return 0, ErrFosc
	}
	return uint16(0x10000 - ticks), nil
}

// Ms blocks for ms milliseconds.
// The counter is stopped on return.
// A zero delay returns immediately without touching the timer.
func (d *Delay) Ms(ms uint) {
	if ms == 0 {
		return
	}
	d.t.Start()
	for ; ms > 0; ms-- {
		d.t.ClearOverflow()
		d.t.Load(d.reload)
		for !d.t.Overflowed() {
		}
	}
	d.t.Stop()
}

var (
	// ErrFosc indicates the oscillator frequency cannot produce a 1ms reload.
	ErrFosc = errors.New("oscillator frequency out of range")
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock provided by the host.
type SystemClock struct{}

// Now returns the current host time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
