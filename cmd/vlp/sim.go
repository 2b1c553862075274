// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/warthog618/vlp"
	"github.com/warthog618/vlp/delay"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/sim"
	"github.com/warthog618/vlp/spi"
	"github.com/warthog618/vlp/spi/ad7705"
)

func init() {
	simCmd.Flags().Uint16Var(&simOpts.Raw, "raw", 0x8000, "initial conversion result")
	simCmd.Flags().Uint16Var(&simOpts.Sweep, "sweep", 0, "step added to the conversion result after each reading")
	simCmd.Flags().IntVarP(&simOpts.Count, "count", "n", 10, "number of readings, 0 runs until interrupted")
	simCmd.Flags().IntVar(&simOpts.TareAt, "tare-at", -1, "reading at which to press the button")
	simCmd.Flags().BoolVar(&simOpts.Realtime, "realtime", false, "run delays against the system clock")
	rootCmd.AddCommand(configurable(simCmd))
}

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the meter on simulated hardware",
	Long: `Run the meter against a simulated AD7705 with a fixed or swept conversion
result. The display is written to stdout, or to a serial port if display.type
is serial.`,
	Args: cobra.NoArgs,
	RunE: simulate,
}

var simOpts = struct {
	Raw      uint16
	Sweep    uint16
	Count    int
	TareAt   int
	Realtime bool
}{}

// simStep is the virtual time taken by each read of the simulated clock.
const simStep = 250 * time.Microsecond

// simRig is the meter hardware built on simulated lines.
type simRig struct {
	hw     vlp.Hardware
	adc    *sim.AD7705
	button *sim.Line
	buzzer *sim.Line
	clock  *sim.Clock
}

func newSimRig(s settings, realtime bool, raw uint16) (*simRig, error) {
	r := &simRig{
		adc:    sim.NewAD7705(),
		button: sim.NewLine(gpio.High),
		buzzer: sim.NewLine(gpio.High),
	}
	var c delay.Clock = delay.SystemClock{}
	if !realtime {
		r.clock = sim.NewClock(simStep)
		c = r.clock
	}
	d, err := delay.New(delay.NewClockTimer(c, s.Fosc), s.Fosc)
	if err != nil {
		return nil, err
	}
	r.adc.Set(raw)
	r.hw = vlp.Hardware{
		ADC:    ad7705.New(spi.New(d, 1, r.adc.SCLK(), r.adc.DIN(), r.adc.DOUT())),
		Button: r.button,
		Buzzer: r.buzzer,
		Delay:  d,
	}
	return r, nil
}

func simulate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	if s.Display.Type == displayLCD {
		s.Display.Type = displayStdout
	}
	r, err := newSimRig(s, simOpts.Realtime, simOpts.Raw)
	if err != nil {
		return err
	}
	disp, c, err := openTextDisplay(s)
	if err != nil {
		return err
	}
	if c != nil {
		defer c.Close()
	}
	r.hw.Display = disp
	raw := simOpts.Raw
	r.adc.SetSource(func() uint16 {
		v := raw
		raw += simOpts.Sweep
		return v
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	m := vlp.New(r.hw, s.Constants, logger)
	if err = m.Start(ctx); err != nil {
		return err
	}
	for i := 0; simOpts.Count == 0 || i < simOpts.Count; i++ {
		if i == simOpts.TareAt {
			// held for the tare check, released for the wait
			r.button.Hold(gpio.Low, 1)
		}
		f, err := m.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.Debugw("frame", "raw", f.Raw, "overrange", f.Overrange, "tared", f.Tared)
	}
	if r.clock != nil {
		fmt.Printf("virtual time %s, adc resets %d, reads %d, bias %.1f mW\n",
			r.clock.Elapsed(), r.adc.Resets(), r.adc.Reads(), m.Bias())
	}
	return nil
}
