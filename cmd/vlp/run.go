// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/warthog618/vlp"
	"github.com/warthog618/vlp/gpio"
)

func init() {
	rootCmd.AddCommand(configurable(runCmd))
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the meter",
	Long:  `Run the meter on the Pi GPIO until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	b, err := openBoard(s, true)
	if err != nil {
		return err
	}
	defer b.Close()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Infow("running", "chip", gpio.ChipType().String(), "display", s.Display.Type)
	return vlp.New(b.hw, s.Constants, logger).Run(ctx)
}
