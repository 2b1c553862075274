// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package sim provides simulated meter hardware.
//
// The simulation works at the level of the digital lines so the drivers above
// it run unchanged, only the lines and the clock are swapped out.
package sim

import (
	"time"

	"github.com/warthog618/vlp/gpio"
)

// Clock is a virtual clock that advances by a fixed step each time it is read.
type Clock struct {
	start time.Time
	now   time.Time
	step  time.Duration
}

// NewClock creates a Clock advancing step per call to Now.
func NewClock(step time.Duration) *Clock {
	start := time.Date(2019, time.July, 3, 0, 0, 0, 0, time.UTC)
	return &Clock{start: start, now: start, step: step}
}

// Now returns the current virtual time, then advances it.
func (c *Clock) Now() time.Time {
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Elapsed returns the virtual time passed since the clock was created.
func (c *Clock) Elapsed() time.Duration {
	return c.now.Sub(c.start)
}

// Line is a simulated digital line.
//
// It can be driven by both the system under test and the test itself, and
// records every level written to it.
type Line struct {
	level  gpio.Level
	writes []gpio.Level
	// OnRead, if set, is called before each Read.
	OnRead func()
}

var (
	_ gpio.Reader = (*Line)(nil)
	_ gpio.Writer = (*Line)(nil)
)

// NewLine creates a Line at the given level.
func NewLine(l gpio.Level) *Line {
	return &Line{level: l}
}

// Read returns the level of the line.
func (l *Line) Read() gpio.Level {
	if l.OnRead != nil {
		l.OnRead()
	}
	return l.level
}

// Write drives the line and records the level.
func (l *Line) Write(v gpio.Level) {
	l.level = v
	l.writes = append(l.writes, v)
}

// Set drives the line from outside the system under test without recording it.
func (l *Line) Set(v gpio.Level) {
	l.level = v
}

// Hold drives the line to v for the next n reads, then restores the current
// level.
// Any OnRead hook is replaced.
func (l *Line) Hold(v gpio.Level, n int) {
	prev := l.level
	l.level = v
	reads := 0
	l.OnRead = func() {
		reads++
		if reads > n {
			l.level = prev
			l.OnRead = nil
		}
	}
}

// Level returns the current level without triggering OnRead.
func (l *Line) Level() gpio.Level {
	return l.level
}

// Writes returns the levels written to the line.
func (l *Line) Writes() []gpio.Level {
	return l.writes
}

type writerFunc func(gpio.Level)

func (f writerFunc) Write(l gpio.Level) {
	f(l)
}

type readerFunc func() gpio.Level

func (f readerFunc) Read() gpio.Level {
	return f()
}
