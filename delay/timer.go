// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package delay

import "time"

// ClockTimer emulates the 16-bit 12T mode counter using a Clock as the
// oscillator.
type ClockTimer struct {
	c Clock
	// counter period
	tick    time.Duration
	running bool
	// time the counter was loaded or started
	base time.Time
	// counter value at base
	count uint16
	ovf   bool
}

var _ Timer = (*ClockTimer)(nil)

// NewClockTimer creates a ClockTimer counting at fosc/12 Hz.
// A zero fosc counts at the resolution of the Clock, and is rejected by New.
func NewClockTimer(c Clock, fosc uint32) *ClockTimer {
	var tick time.Duration
	if fosc != 0 {
		tick = time.Second * 12 / time.Duration(fosc)
	}
	if tick <= 0 {
		tick = 1
	}
	return &ClockTimer{c: c, tick: tick}
}

// Load sets the counter to v.
func (t *ClockTimer) Load(v uint16) {
	t.count = v
	t.base = t.c.Now()
}

// Start enables counting.
func (t *ClockTimer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.base = t.c.Now()
}

// Stop disables counting, freezing the counter.
func (t *ClockTimer) Stop() {
	if !t.running {
		return
	}
	t.sync()
	t.running = false
}

// Overflowed returns true once the counter has wrapped since the flag was
// last cleared.
func (t *ClockTimer) Overflowed() bool {
	t.sync()
	return t.ovf
}

// ClearOverflow clears the overflow flag.
func (t *ClockTimer) ClearOverflow() {
	t.ovf = false
}

// sync advances the counter by the ticks elapsed since base.
func (t *ClockTimer) sync() {
	if !t.running {
		return
	}
	now := t.c.Now()
	ticks := uint64(now.Sub(t.base) / t.tick)
	if ticks == 0 {
		return
	}
	t.base = t.base.Add(time.Duration(ticks) * t.tick)
	if uint64(t.count)+ticks >= 0x10000 {
		t.ovf = true
	}
	t.count = uint16(uint64(t.count) + ticks)
}
