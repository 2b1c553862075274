// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

// Benchmarks of the register level pin accesses used by the bit bashed SPI
// and the button poll.
package gpio

import (
	"testing"
)

func BenchmarkRead(b *testing.B) {
	fakeMem(b, BCM2711)
	pin := NewPin(GPIO9)
	pin.Input()
	for i := 0; i < b.N; i++ {
		pin.Read()
	}
}

func BenchmarkWrite(b *testing.B) {
	fakeMem(b, BCM2711)
	pin := NewPin(GPIO11)
	pin.Output()
	for i := 0; i < b.N; i++ {
		pin.Write(Low)
	}
}

func BenchmarkToggle(b *testing.B) {
	fakeMem(b, BCM2711)
	pin := NewPin(GPIO11)
	pin.Output()
	l := Low
	for i := 0; i < b.N; i++ {
		l = !l
		pin.Write(l)
	}
}
