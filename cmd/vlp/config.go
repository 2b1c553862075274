// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/warthog618/config"
	"github.com/warthog618/config/blob"
	"github.com/warthog618/config/blob/decoder/json"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/vlp/delay"
	"github.com/warthog618/vlp/gpio"
	"github.com/warthog618/vlp/meter"
	"gopkg.in/yaml.v3"
)

func init() {
	rootCmd.AddCommand(configurable(configCmd))
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

// Display types.
const (
	displayLCD    = "lcd"
	displayStdout = "stdout"
	displaySerial = "serial"
)

type settings struct {
	Fosc      uint32          `yaml:"fosc"`
	Pins      pinSettings     `yaml:"pins"`
	LCD       lcdSettings     `yaml:"lcd"`
	Display   displaySettings `yaml:"display"`
	Constants meter.Constants `yaml:"constants"`
}

type pinSettings struct {
	Sclk   int `yaml:"sclk"`
	Mosi   int `yaml:"mosi"`
	Miso   int `yaml:"miso"`
	CS     int `yaml:"cs"`
	Button int `yaml:"button"`
	Buzzer int `yaml:"buzzer"`
}

type lcdSettings struct {
	RS   int    `yaml:"rs"`
	EN   int    `yaml:"en"`
	RW   int    `yaml:"rw"`
	Dis1 int    `yaml:"dis1"`
	Dis2 int    `yaml:"dis2"`
	Data [8]int `yaml:"data,flow"`
}

type displaySettings struct {
	Type string `yaml:"type"`
	Port string `yaml:"port,omitempty"`
	Baud int    `yaml:"baud"`
}

var defaultConfig = map[string]interface{}{
	"fosc":         delay.DefaultFosc,
	"sclk":         gpio.GPIO11,
	"mosi":         gpio.GPIO10,
	"miso":         gpio.GPIO9,
	"cs":           gpio.GPIO22,
	"button":       gpio.GPIO17,
	"buzzer":       gpio.GPIO27,
	"lcd.rs":       gpio.GPIO7,
	"lcd.en":       gpio.GPIO8,
	"lcd.rw":       gpio.GPIO25,
	"lcd.dis1":     gpio.GPIO23,
	"lcd.dis2":     gpio.GPIO24,
	"lcd.data":     "2,3,4,5,6,12,13,16",
	"display.type": displayLCD,
	"display.port": "",
	"display.baud": 9600,
}

func loadConfig() *config.Config {
	def := dict.New(dict.WithMap(defaultConfig))
	cfg := config.New(
		pflag.New(pflag.WithFlags(
			[]pflag.Flag{{Short: 'c', Name: "config-file"}})),
		env.New(env.WithEnvPrefix("VLP_")),
		config.WithDefault(def))
	cfg.Append(
		blob.NewConfigFile(cfg, "config.file", "vlp.json", json.NewDecoder()))
	return cfg
}

func loadSettings() (s settings, err error) {
	cfg := loadConfig()
	s.Fosc = uint32(cfg.MustGet("fosc").Int())
	s.Constants = meter.Default
	pins := []struct {
		key string
		pin *int
	}{
		{"sclk", &s.Pins.Sclk},
		{"mosi", &s.Pins.Mosi},
		{"miso", &s.Pins.Miso},
		{"cs", &s.Pins.CS},
		{"button", &s.Pins.Button},
		{"buzzer", &s.Pins.Buzzer},
		{"lcd.rs", &s.LCD.RS},
		{"lcd.en", &s.LCD.EN},
		{"lcd.rw", &s.LCD.RW},
		{"lcd.dis1", &s.LCD.Dis1},
		{"lcd.dis2", &s.LCD.Dis2},
	}
	for _, p := range pins {
		*p.pin, err = parseOffset(cfg.MustGet(p.key).String())
		if err != nil {
			return s, fmt.Errorf("%s: %w", p.key, err)
		}
	}
	data, err := parseOffsets(cfg.MustGet("lcd.data").String())
	if err != nil {
		return s, fmt.Errorf("lcd.data: %w", err)
	}
	if len(data) != len(s.LCD.Data) {
		return s, fmt.Errorf("lcd.data: need %d pins, got %d", len(s.LCD.Data), len(data))
	}
	copy(s.LCD.Data[:], data)
	s.Display.Type = cfg.MustGet("display.type").String()
	s.Display.Port = cfg.MustGet("display.port").String()
	s.Display.Baud = cfg.MustGet("display.baud").Int()
	switch s.Display.Type {
	case displayLCD, displayStdout:
	case displaySerial:
		if s.Display.Port == "" {
			return s, fmt.Errorf("display.port: required for serial display")
		}
	default:
		return s, fmt.Errorf("display.type: unknown type '%s'", s.Display.Type)
	}
	return s, nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(s)
}
