// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spi

import "github.com/warthog618/vlp/gpio"

// Shifter tracks the exchange of one byte, one bit position at a time, from
// bit 7 down to bit 0.
type Shifter struct {
	out byte
	in  byte
	// next bit position, -1 once all 8 bits are exchanged.
	pos int
}

// NewShifter creates a Shifter that sends out.
func NewShifter(out byte) Shifter {
	return Shifter{out: out, pos: 7}
}

// Done returns true once all 8 bits have been exchanged.
func (s *Shifter) Done() bool {
	return s.pos < 0
}

// Pos returns the current bit position.
func (s *Shifter) Pos() int {
	return s.pos
}

// Out returns the level to drive for the current bit position.
func (s *Shifter) Out() gpio.Level {
	if s.pos < 0 {
		return gpio.High
	}
	return gpio.Level((s.out>>uint(s.pos))&0x01 == 0x01)
}

// In records the sampled level in the current bit position and advances to
// the next.
func (s *Shifter) In(l gpio.Level) {
	if s.pos < 0 {
		return
	}
	if l == gpio.High {
		s.in |= 1 << uint(s.pos)
	}
	s.pos--
}

// Byte returns the bits received so far.
func (s *Shifter) Byte() byte {
	return s.in
}
