// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/edaniels/golog"
	"github.com/spf13/cobra"
	"github.com/warthog618/vlp/gpio"
)

var version = "1.1"

var rootCmd = &cobra.Command{
	Use:   "vlp",
	Short: "vlp drives a VLP-2000 optical power meter",
	Long: `vlp reads an AD7705 ADC over a bit bashed SPI link, converts the readings
to sensor voltage and optical power, and shows them on a character display.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

var logger = golog.NewDevelopmentLogger("vlp")

func init() {
	rootCmd.PersistentFlags().StringP("config-file", "c", "", "JSON configuration file")
	rootCmd.SetHelpTemplate(rootCmd.HelpTemplate() + extendedHelp)
}

var extendedHelp = `
Configuration:
  Settings are taken from --key=value flags, VLP_ environment variables,
  a JSON config file, and built in defaults, in that order of precedence.
  Use "vlp config" to show the effective settings.
`

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// configurable marks a command as accepting configuration flags that are
// parsed by the config loader rather than cobra.
func configurable(cmd *cobra.Command) *cobra.Command {
	cmd.FParseErrWhitelist = cobra.FParseErrWhitelist{UnknownFlags: true}
	return cmd
}

// parseOffset parses a BCM GPIO pin, either as a number or as GPIOnn.
func parseOffset(arg string) (int, error) {
	s := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(arg)), "GPIO")
	o, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("can't parse pin '%s'", arg)
	}
	if o >= gpio.MaxGPIOPin {
		return 0, fmt.Errorf("unknown pin '%d'", o)
	}
	return int(o), nil
}

func parseOffsets(arg string) ([]int, error) {
	oo := []int(nil)
	for _, a := range strings.Split(arg, ",") {
		o, err := parseOffset(a)
		if err != nil {
			return nil, err
		}
		oo = append(oo, o)
	}
	return oo, nil
}
