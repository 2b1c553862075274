// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

//go:build linux
// +build linux

package gpio

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Chip identifies the GPIO controller.
type Chip int

// GPIO controllers with distinct pull register layouts.
const (
	UnknownChip Chip = iota
	BCM2835
	BCM2711
)

// Arrays for 8 / 32 bit access to memory and a semaphore for write locking
var (
	// The memlock covers read/modify/write access to the mem block.
	// Individual reads and writes can skip the lock on the assumption that
	// concurrent register writes are atomic. e.g. Read, Write and Mode.
	memlock sync.Mutex
	mem     []uint32
	mem8    []uint8
	chip    Chip
)

// Open and memory map GPIO memory range from /dev/gpiomem .
func Open() (err error) {
	if len(mem) != 0 {
		return ErrAlreadyOpen
	}
	file, err := os.OpenFile("/dev/gpiomem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return
	}
	defer file.Close()

	memlock.Lock()
	defer memlock.Unlock()

	mem8, err = unix.Mmap(
		int(file.Fd()),
		0,
		memLength,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED)
	if err != nil {
		return
	}
	mem = unsafe.Slice((*uint32)(unsafe.Pointer(&mem8[0])), len(mem8)/4)
	chip = detectChip()
	return nil
}

// Close unmaps GPIO memory.
func Close() error {
	memlock.Lock()
	defer memlock.Unlock()
	if len(mem8) == 0 {
		return nil
	}
	mem = make([]uint32, 0)
	err := unix.Munmap(mem8)
	mem8 = nil
	return err
}

// ChipType returns the controller detected by Open.
func ChipType() Chip {
	return chip
}

func (c Chip) String() string {
	switch c {
	case BCM2835:
		return "bcm2835"
	case BCM2711:
		return "bcm2711"
	default:
		return "unknown"
	}
}

func detectChip() Chip {
	compat, err := os.ReadFile("/proc/device-tree/compatible")
	if err != nil {
		return UnknownChip
	}
	if bytes.Contains(compat, []byte("bcm2711")) {
		return BCM2711
	}
	return BCM2835
}

var (
	// ErrAlreadyOpen indicates the mem is already open.
	ErrAlreadyOpen = errors.New("already open")
)
