// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warthog618/vlp/fixed"
)

func init() {
	rootCmd.AddCommand(formatCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format <tenths>...",
	Short: "Format values as shown on the display",
	Long: `Format each value, in tenths, as it would appear in a display field.
Values beyond ±99999 are saturated and flagged.`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: true,
	RunE:               format,
}

func format(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 32)
		if err != nil {
			return fmt.Errorf("can't parse value '%s'", arg)
		}
		s, err := fixed.Format(int32(v))
		switch {
		case errors.Is(err, fixed.ErrOverrange):
			fmt.Printf("%q overrange\n", s)
		case err != nil:
			return err
		default:
			fmt.Printf("%q\n", s)
		}
	}
	return nil
}
