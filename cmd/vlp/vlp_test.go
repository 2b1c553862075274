// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/vlp"
	"github.com/warthog618/vlp/delay"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/meter"
)

func TestParseOffset(t *testing.T) {
	patterns := []struct {
		arg string
		pin int
		ok  bool
	}{
		{"11", 11, true},
		{"GPIO17", 17, true},
		{"gpio5", 5, true},
		{" 27 ", 27, true},
		{"28", 0, false},
		{"-1", 0, false},
		{"GPIO", 0, false},
		{"sclk", 0, false},
	}
	for _, p := range patterns {
		t.Run(p.arg, func(t *testing.T) {
			pin, err := parseOffset(p.arg)
			if !p.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, p.pin, pin)
		})
	}
}

func TestParseOffsets(t *testing.T) {
	pp, err := parseOffsets("2,3,4,5,6,12,13,16")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5, 6, 12, 13, 16}, pp)

	_, err = parseOffsets("2,,4")
	assert.Error(t, err)
}

type lines []string

func (l *lines) ShowLine(text string, n int) error {
	*l = append(*l, text)
	return nil
}

func TestSimRig(t *testing.T) {
	s := settings{Fosc: delay.DefaultFosc, Constants: meter.Default}
	r, err := newSimRig(s, false, 0x8000)
	require.NoError(t, err)
	var shown lines
	r.hw.Display = &shown
	m := vlp.New(r.hw, s.Constants, golog.NewTestLogger(t))
	ctx := context.Background()
	require.NoError(t, m.Start(ctx))
	assert.Equal(t, vlp.Running, m.State())
	f, err := m.Step(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8000), f.Raw)
	assert.Equal(t, " 2496.8  268.4 ", f.Line)
	assert.Equal(t, 2, r.adc.Resets())
	assert.Equal(t, []string{vlp.Header, f.Line}, []string(shown))

	r.button.Hold(gpio.Low, 1)
	f, err = m.Step(ctx)
	require.NoError(t, err)
	assert.True(t, f.Tared)
	assert.Greater(t, r.clock.Elapsed().Milliseconds(), int64(vlp.BeepTime-1))
}

func TestSimRigFosc(t *testing.T) {
	for _, fosc := range []uint32{0, 1, 11999} {
		var err error
		require.NotPanics(t, func() {
			_, err = newSimRig(settings{Fosc: fosc}, false, 0)
		})
		assert.ErrorIs(t, err, delay.ErrFosc, fosc)
	}
}
