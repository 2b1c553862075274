// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/vlp"
)

func init() {
	readCmd.Flags().IntVarP(&readOpts.Count, "count", "n", 1, "number of readings")
	readCmd.Flags().BoolVar(&readOpts.Sim, "sim", false, "read from a simulated ADC")
	readCmd.Flags().Uint16Var(&readOpts.Raw, "raw", 0x8000, "conversion result of the simulated ADC")
	rootCmd.AddCommand(configurable(readCmd))
}

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read the ADC",
	Long:  `Read the ADC and print the raw code and the conditioned voltage and power.`,
	Args:  cobra.NoArgs,
	RunE:  read,
}

var readOpts = struct {
	Count int
	Sim   bool
	Raw   uint16
}{}

func read(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	var a vlp.ADC
	if readOpts.Sim {
		r, err := newSimRig(s, false, readOpts.Raw)
		if err != nil {
			return err
		}
		a = r.hw.ADC
	} else {
		b, err := openBoard(s, false)
		if err != nil {
			return err
		}
		defer b.Close()
		a = b.adc
	}
	a.Init()
	for i := 0; i < readOpts.Count; i++ {
		raw := a.Read()
		r := s.Constants.Condition(raw)
		fmt.Printf("0x%04x %s %s\n", raw, r.Potential(), r.Watts())
	}
	return nil
}
